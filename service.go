package generative

import (
	"context"
	"iter"
)

// Service is the transport contract a GenerativeModel is built on. It
// performs the actual network I/O and JSON decoding, and reports transport
// failures (bad status, malformed payload, auth failure) as errors; it does
// not interpret response-level failure signals such as block reasons, which
// are this package's job.
//
// RESTService is the built-in implementation. Tests substitute fakes, and
// callers can wrap a Service to add caching or instrumentation, the same
// way they would wrap an http.RoundTripper.
type Service interface {
	// Generate performs one synchronous generation request.
	Generate(ctx context.Context, req *Request) (*GenerateContentResponse, error)

	// GenerateStream performs one streaming generation request. The
	// returned sequence yields decoded chunks in arrival order and at
	// most one terminal error; it must stop reading from the network
	// when the consumer stops iterating.
	GenerateStream(ctx context.Context, req *Request) iter.Seq2[*GenerateContentResponse, error]

	// CountTokens tokenizes the request's contents without generating.
	CountTokens(ctx context.Context, req *Request) (*TokenCount, error)
}
