package generative

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"
)

// fakeService scripts transport behavior for facade tests.
type fakeService struct {
	resp      *GenerateContentResponse
	err       error
	chunks    []*GenerateContentResponse
	streamErr error
	count     *TokenCount

	lastReq *Request
}

func (f *fakeService) Generate(ctx context.Context, req *Request) (*GenerateContentResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeService) GenerateStream(ctx context.Context, req *Request) iter.Seq2[*GenerateContentResponse, error] {
	f.lastReq = req
	return func(yield func(*GenerateContentResponse, error) bool) {
		for _, chunk := range f.chunks {
			if !yield(chunk, nil) {
				return
			}
		}
		if f.streamErr != nil {
			yield(nil, f.streamErr)
		}
	}
}

func (f *fakeService) CountTokens(ctx context.Context, req *Request) (*TokenCount, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.count, nil
}

func TestGenerateContentReturnsValidatedResponse(t *testing.T) {
	svc := &fakeService{resp: textResponse(FinishReasonStop, "Hi there!")}
	model := NewGenerativeModel(svc, "prism-1-pro")

	resp, err := model.GenerateContent(context.Background(), Text("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := resp.Text()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hi there!" {
		t.Errorf("expected response text unchanged, got %q", text)
	}
	if svc.lastReq.Model != "prism-1-pro" {
		t.Errorf("model name not propagated: %q", svc.lastReq.Model)
	}
	if svc.lastReq.Stream {
		t.Error("synchronous request must not set the stream flag")
	}
}

func TestGenerateContentBlockedPrompt(t *testing.T) {
	svc := &fakeService{resp: blockedResponse(BlockReasonSafety)}
	model := NewGenerativeModel(svc, "prism-1-pro")

	_, err := model.GenerateContent(context.Background(), Text("something nasty"))
	var blocked *PromptBlockedErr
	if !errors.As(err, &blocked) {
		t.Fatalf("expected PromptBlockedErr, got %T: %v", err, err)
	}
	if blocked.Response.PromptFeedback.BlockReason != BlockReasonSafety {
		t.Errorf("block reason not preserved: %v", blocked.Response.PromptFeedback.BlockReason)
	}
}

func TestGenerateContentStoppedEarly(t *testing.T) {
	svc := &fakeService{resp: textResponse(FinishReasonRecitation, "quoted text")}
	model := NewGenerativeModel(svc, "prism-1-pro")

	_, err := model.GenerateContent(context.Background(), Text("recite something"))
	var stopped *StoppedEarlyErr
	if !errors.As(err, &stopped) {
		t.Fatalf("expected StoppedEarlyErr, got %T: %v", err, err)
	}
	if stopped.Reason != FinishReasonRecitation {
		t.Errorf("expected reason %v, got %v", FinishReasonRecitation, stopped.Reason)
	}
}

func TestGenerateContentTransportFailure(t *testing.T) {
	svc := &fakeService{err: &APIError{
		StatusCode: 400,
		Status:     "INVALID_ARGUMENT",
		Reason:     "API_KEY_INVALID",
		Message:    "API key not valid. Please pass a valid API key.",
	}}
	model := NewGenerativeModel(svc, "prism-1-pro")

	_, err := model.GenerateContent(context.Background(), Text("Hello"))
	if !errors.Is(err, InvalidCredentialErr) {
		t.Fatalf("expected InvalidCredentialErr, got %v", err)
	}
}

func TestGenerateContentInvalidPrompt(t *testing.T) {
	svc := &fakeService{}
	model := NewGenerativeModel(svc, "prism-1-pro")

	_, err := model.GenerateContent(context.Background(), Blob{Data: []byte{1, 2, 3}})
	var prompt *PromptContentErr
	if !errors.As(err, &prompt) {
		t.Fatalf("expected PromptContentErr, got %T: %v", err, err)
	}
	if svc.lastReq != nil {
		t.Error("nothing should reach the transport for an invalid prompt")
	}
}

func TestGenerateContentStreamScenario(t *testing.T) {
	// 3 clean chunks then a safety termination: the consumer observes
	// exactly 3 responses and then the translated failure.
	svc := &fakeService{chunks: []*GenerateContentResponse{
		textResponse("", "The "),
		textResponse("", "quick "),
		textResponse("", "fox"),
		textResponse(FinishReasonSafety, ""),
	}}
	model := NewGenerativeModel(svc, "prism-1-pro")

	var texts []string
	var gotErr error
	for resp, err := range model.GenerateContentStream(context.Background(), Text("Tell me a story")) {
		if err != nil {
			gotErr = err
			continue
		}
		text, terr := resp.Text()
		if terr != nil {
			t.Fatalf("unexpected error: %v", terr)
		}
		texts = append(texts, text)
	}

	if len(texts) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(texts), texts)
	}
	var stopped *StoppedEarlyErr
	if !errors.As(gotErr, &stopped) {
		t.Fatalf("expected StoppedEarlyErr, got %T: %v", gotErr, gotErr)
	}
	if !svc.lastReq.Stream {
		t.Error("streaming request must set the stream flag")
	}
}

func TestGenerateContentStreamInvalidPromptFailsOnFirstPull(t *testing.T) {
	svc := &fakeService{}
	model := NewGenerativeModel(svc, "prism-1-pro")

	// The call itself must not fail; iteration does.
	stream := model.GenerateContentStream(context.Background(), Blob{MIMEType: "image/png"})
	var gotErr error
	pulls := 0
	for _, err := range stream {
		pulls++
		gotErr = err
	}
	if pulls != 1 {
		t.Fatalf("expected one failing pull, got %d", pulls)
	}
	var prompt *PromptContentErr
	if !errors.As(gotErr, &prompt) {
		t.Fatalf("expected PromptContentErr, got %T: %v", gotErr, gotErr)
	}
}

func TestGenerateContentStreamTransportFailure(t *testing.T) {
	svc := &fakeService{streamErr: &APIError{
		StatusCode: 400,
		Status:     "INVALID_ARGUMENT",
		Reason:     "API_KEY_INVALID",
		Message:    "API key not valid.",
	}}
	model := NewGenerativeModel(svc, "prism-1-pro")

	var gotErr error
	for _, err := range model.GenerateContentStream(context.Background(), Text("Hello")) {
		gotErr = err
	}
	if !errors.Is(gotErr, InvalidCredentialErr) {
		t.Fatalf("expected InvalidCredentialErr, got %v", gotErr)
	}
}

func TestCountTokens(t *testing.T) {
	svc := &fakeService{count: &TokenCount{TotalTokens: 42}}
	model := NewGenerativeModel(svc, "prism-1-pro")

	count, err := model.CountTokens(context.Background(), Text("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.TotalTokens != 42 {
		t.Errorf("expected 42 tokens, got %d", count.TotalTokens)
	}
}

func TestCountTokensWrapsEveryFailure(t *testing.T) {
	testCases := []struct {
		name string
		svc  *fakeService
	}{
		{
			name: "transport failure",
			svc:  &fakeService{err: fmt.Errorf("connection refused")},
		},
		{
			name: "credential failure",
			svc: &fakeService{err: &APIError{
				StatusCode: 400,
				Status:     "INVALID_ARGUMENT",
				Reason:     "API_KEY_INVALID",
				Message:    "API key not valid.",
			}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model := NewGenerativeModel(tc.svc, "prism-1-pro")
			_, err := model.CountTokens(context.Background(), Text("Hello"))
			var counter *CountTokensErr
			if !errors.As(err, &counter) {
				t.Fatalf("expected CountTokensErr, got %T: %v", err, err)
			}
		})
	}
}

func TestModelConfigurationPropagates(t *testing.T) {
	svc := &fakeService{resp: textResponse(FinishReasonStop, "ok")}
	model := NewGenerativeModel(svc, "prism-1-pro")
	model.GenerationConfig = &GenerationConfig{
		Temperature:     Float32(0.7),
		MaxOutputTokens: Int32(128),
	}
	model.SafetySettings = []*SafetySetting{
		{Category: HarmCategoryHarassment, Threshold: HarmBlockOnlyHigh},
	}

	if _, err := model.GenerateContent(context.Background(), Text("Hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := svc.lastReq
	if req.GenerationConfig == nil || *req.GenerationConfig.Temperature != 0.7 {
		t.Error("generation config not propagated")
	}
	if len(req.SafetySettings) != 1 || req.SafetySettings[0].Category != HarmCategoryHarassment {
		t.Error("safety settings not propagated")
	}
}
