package generative

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxEventSize caps a single SSE line. The default bufio.Scanner limit of
// 64 KiB is too small for chunks carrying long completions.
const maxEventSize = 1 << 20

// sseScanner reads server-sent events from a response body. It joins
// multi-line data fields, skips comments and blank lines, and hides the
// framing from the transport, which only wants JSON payloads.
type sseScanner struct {
	s *bufio.Scanner
}

func newSSEScanner(r io.Reader) *sseScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &sseScanner{s: s}
}

// next returns the data payload of the next event, or io.EOF when the
// stream is exhausted.
func (sc *sseScanner) next() (string, error) {
	var data []string
	for sc.s.Scan() {
		line := sc.s.Text()
		switch {
		case line == "":
			// blank line terminates an event
			if len(data) > 0 {
				return strings.Join(data, "\n"), nil
			}
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		default:
			// event:, id:, retry: fields are not used by this backend
		}
	}
	if err := sc.s.Err(); err != nil {
		return "", fmt.Errorf("reading event stream: %w", err)
	}
	if len(data) > 0 {
		return strings.Join(data, "\n"), nil
	}
	return "", io.EOF
}
