package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production endpoint of the generation backend.
const DefaultBaseURL = "https://api.lumonlabs.io/v1"

const maxErrorBodySize = 1 << 20

// RESTService is the built-in Service implementation. It speaks the
// backend's JSON wire format over HTTP, with SSE for the streaming
// endpoint.
//
// The transport is also where RequestOptions are honored: MaxRetries drives
// an exponential backoff loop around retriable statuses (429 and 5xx), and
// Timeout bounds the whole attempt sequence. The core above never retries.
type RESTService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// RESTOption configures a RESTService.
type RESTOption func(*RESTService)

// WithBaseURL points the service at a different endpoint, e.g. a staging
// deployment or an httptest server.
func WithBaseURL(url string) RESTOption {
	return func(s *RESTService) { s.baseURL = url }
}

// WithHTTPClient substitutes the HTTP client used for all requests.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(s *RESTService) { s.client = c }
}

// WithLogger enables debug logging of requests and retries. The default is
// a no-op logger.
func WithLogger(l *zap.Logger) RESTOption {
	return func(s *RESTService) { s.logger = l }
}

// NewRESTService returns a Service that authenticates with apiKey.
func NewRESTService(apiKey string, opts ...RESTOption) *RESTService {
	s := &RESTService{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Service = (*RESTService)(nil)

// Generate implements Service.
func (s *RESTService) Generate(ctx context.Context, req *Request) (*GenerateContentResponse, error) {
	body, err := s.marshalRequest(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, req.Model)

	data, err := s.doWithRetry(ctx, url, body, req.Options)
	if err != nil {
		return nil, err
	}
	return decodeResponse(data)
}

// CountTokens implements Service. The count endpoint accepts only contents;
// generation parameters do not apply.
func (s *RESTService) CountTokens(ctx context.Context, req *Request) (*TokenCount, error) {
	wreq := wireCountRequest{}
	for _, c := range req.Contents {
		wc, err := encodeContent(c)
		if err != nil {
			return nil, err
		}
		wreq.Contents = append(wreq.Contents, wc)
	}
	body, err := json.Marshal(wreq)
	if err != nil {
		return nil, fmt.Errorf("marshaling count request: %w", err)
	}
	url := fmt.Sprintf("%s/models/%s:countTokens", s.baseURL, req.Model)

	data, err := s.doWithRetry(ctx, url, body, req.Options)
	if err != nil {
		return nil, err
	}
	var wresp wireCountResponse
	if err := json.Unmarshal(data, &wresp); err != nil {
		return nil, fmt.Errorf("malformed count response: %w", err)
	}
	return &TokenCount{TotalTokens: wresp.TotalTokens}, nil
}

// GenerateStream implements Service. Each SSE event carries one complete
// response chunk. The response body is closed when the iterator finishes
// for any reason, including the consumer breaking out of the loop, so no
// bytes are pulled from the wire after abandonment. Streaming requests are
// never retried: chunks may already have reached the consumer.
func (s *RESTService) GenerateStream(ctx context.Context, req *Request) iter.Seq2[*GenerateContentResponse, error] {
	return func(yield func(*GenerateContentResponse, error) bool) {
		body, err := s.marshalRequest(req)
		if err != nil {
			yield(nil, err)
			return
		}
		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", s.baseURL, req.Model)

		ctx, cancel := s.requestContext(ctx, req.Options)
		defer cancel()

		resp, err := s.do(ctx, url, body, true)
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		scanner := newSSEScanner(resp.Body)
		for {
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}
			payload, err := scanner.next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			chunk, err := decodeResponse([]byte(payload))
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (s *RESTService) marshalRequest(req *Request) ([]byte, error) {
	wreq, err := encodeRequest(req)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(wreq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return body, nil
}

// requestContext applies the per-request timeout, if any.
func (s *RESTService) requestContext(ctx context.Context, opts *RequestOptions) (context.Context, context.CancelFunc) {
	if opts != nil && opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// doWithRetry performs a unary request, retrying 429 and 5xx responses per
// RequestOptions.MaxRetries with exponential backoff.
func (s *RESTService) doWithRetry(ctx context.Context, url string, body []byte, opts *RequestOptions) ([]byte, error) {
	ctx, cancel := s.requestContext(ctx, opts)
	defer cancel()

	attempts := 1
	if opts != nil && opts.MaxRetries > 0 {
		attempts += opts.MaxRetries
	}

	operation := func() ([]byte, error) {
		resp, err := s.do(ctx, url, body, false)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && retriableStatus(apiErr.StatusCode) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("reading response body: %w", err))
		}
		return data, nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 10 * time.Second

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Debug("retrying request",
				zap.String("url", url),
				zap.Duration("backoff", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return nil, permanent.Err
		}
		return nil, err
	}
	return data, nil
}

func retriableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

// do performs one HTTP attempt. Non-2xx responses are drained, parsed into
// *APIError and closed; 2xx responses are returned with the body open.
func (s *RESTService) do(ctx context.Context, url string, body []byte, stream bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("X-Request-Id", requestID)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	s.logger.Debug("request complete",
		zap.String("url", url),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, parseAPIError(resp)
	}
	return resp, nil
}

// parseAPIError decodes the google.rpc error envelope carried on non-2xx
// responses. A body that does not parse still produces an APIError so that
// status-based handling (retries, translation) keeps working.
func parseAPIError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unreadable error body: %v", err),
		}
	}
	var payload wireErrorPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(data),
		}
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     payload.Error.Status,
		Message:    payload.Error.Message,
	}
	for _, d := range payload.Error.Details {
		if d.Reason != "" {
			apiErr.Reason = d.Reason
			break
		}
	}
	return apiErr
}
