package generative

import (
	"context"
	"fmt"
)

// GenerativeModel is the entry point for talking to one model. It holds
// per-instance configuration and composes the transport, the response
// validator and the error translator behind three operations.
//
// The zero-value fields are all optional; a model constructed with just a
// Service and a name is usable. Configuration fields are read on every call
// and must not be mutated while calls are in flight. Concurrent calls on
// one GenerativeModel are independent and safe.
type GenerativeModel struct {
	svc   Service
	model string

	// GenerationConfig applies to every generation request made through
	// this model. Nil means backend defaults.
	GenerationConfig *GenerationConfig

	// SafetySettings adjust per-category blocking thresholds on every
	// request.
	SafetySettings []*SafetySetting

	// Options are passed through to the Service on every request.
	Options *RequestOptions
}

// NewGenerativeModel returns a model facade over svc for the named model,
// e.g. "prism-1-pro".
func NewGenerativeModel(svc Service, model string) *GenerativeModel {
	return &GenerativeModel{svc: svc, model: model}
}

// Name returns the model identifier this facade was built for.
func (m *GenerativeModel) Name() string { return m.model }

// buildRequest normalizes prompt parts into a single-turn request. A
// failure here means nothing was sent; callers translate it into
// PromptContentErr.
func (m *GenerativeModel) buildRequest(stream bool, parts []Part) (*Request, error) {
	content, err := normalizeParts(parts)
	if err != nil {
		return nil, err
	}
	return m.newRequest(stream, []*Content{content}), nil
}

// newRequest assembles a request from already-validated content turns.
func (m *GenerativeModel) newRequest(stream bool, contents []*Content) *Request {
	return &Request{
		Model:            m.model,
		Contents:         contents,
		GenerationConfig: m.GenerationConfig,
		SafetySettings:   m.SafetySettings,
		Stream:           stream,
		Options:          m.Options,
	}
}

// GenerateContent sends the prompt and returns the single validated
// response. Any failure, whether in prompt assembly, transport or response
// validation, is returned as one of the public error types.
func (m *GenerativeModel) GenerateContent(ctx context.Context, parts ...Part) (*GenerateContentResponse, error) {
	req, err := m.buildRequest(false, parts)
	if err != nil {
		return nil, translateError(&PromptContentErr{Cause: err})
	}
	return m.generate(ctx, req)
}

// generate runs one built request through transport and validation. Chat
// sessions reuse it with multi-turn requests.
func (m *GenerativeModel) generate(ctx context.Context, req *Request) (*GenerateContentResponse, error) {
	resp, err := m.svc.Generate(ctx, req)
	if err != nil {
		return nil, translateError(err)
	}
	if err := validateResponse(resp); err != nil {
		return nil, translateError(err)
	}
	return resp, nil
}

// GenerateContentStream sends the prompt and returns a stream of validated
// response chunks. The call itself never fails: if the request cannot even
// be built, the returned stream yields the translated error on its first
// pull, so streaming callers handle every failure in one place.
func (m *GenerativeModel) GenerateContentStream(ctx context.Context, parts ...Part) ResponseStream {
	req, err := m.buildRequest(true, parts)
	if err != nil {
		return failedStream(translateError(&PromptContentErr{Cause: err}))
	}
	return m.generateStream(ctx, req)
}

func (m *GenerativeModel) generateStream(ctx context.Context, req *Request) ResponseStream {
	return validatedStream(m.svc.GenerateStream(ctx, req))
}

// CountTokens tokenizes the prompt without generating anything. Every
// failure on this path is wrapped as CountTokensErr; tokenization produces
// no candidates, so the richer generation taxonomy does not apply.
func (m *GenerativeModel) CountTokens(ctx context.Context, parts ...Part) (*TokenCount, error) {
	req, err := m.buildRequest(false, parts)
	if err != nil {
		return nil, &CountTokensErr{Cause: fmt.Errorf("invalid prompt content: %w", err)}
	}
	count, err := m.svc.CountTokens(ctx, req)
	if err != nil {
		return nil, &CountTokensErr{Cause: err}
	}
	return count, nil
}
