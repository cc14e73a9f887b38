package generative

import (
	"errors"
	"strings"
)

// FinishReason reports why a candidate stopped generating. An empty value
// means the backend did not include one, which happens on intermediate
// streaming chunks.
type FinishReason string

const (
	FinishReasonUnspecified FinishReason = "FINISH_REASON_UNSPECIFIED"
	FinishReasonStop        FinishReason = "STOP"
	FinishReasonMaxTokens   FinishReason = "MAX_TOKENS"
	FinishReasonSafety      FinishReason = "SAFETY"
	FinishReasonRecitation  FinishReason = "RECITATION"
	FinishReasonOther       FinishReason = "OTHER"
)

// normalStop reports whether the reason allows the candidate to be used.
// Absent and unspecified reasons are treated as "still generating" rather
// than failures.
func (r FinishReason) normalStop() bool {
	return r == "" || r == FinishReasonUnspecified || r == FinishReasonStop
}

// BlockReason reports why the backend rejected an entire prompt before any
// generation occurred.
type BlockReason string

const (
	BlockReasonUnspecified BlockReason = "BLOCK_REASON_UNSPECIFIED"
	BlockReasonSafety      BlockReason = "SAFETY"
	BlockReasonOther       BlockReason = "OTHER"
)

// blocked reports whether the reason actually indicates a block. The
// backend occasionally sends the unspecified value on perfectly usable
// responses, so only concrete reasons count.
func (r BlockReason) blocked() bool {
	return r != "" && r != BlockReasonUnspecified
}

// HarmProbability grades how likely content is to fall in a harm category.
type HarmProbability string

const (
	HarmProbabilityNegligible HarmProbability = "NEGLIGIBLE"
	HarmProbabilityLow        HarmProbability = "LOW"
	HarmProbabilityMedium     HarmProbability = "MEDIUM"
	HarmProbabilityHigh       HarmProbability = "HIGH"
)

// SafetyRating is the backend's per-category assessment of a prompt or
// candidate.
type SafetyRating struct {
	Category    HarmCategory
	Probability HarmProbability
}

// PromptFeedback carries the backend's verdict on the prompt itself,
// independent of any generated candidates.
type PromptFeedback struct {
	BlockReason   BlockReason
	SafetyRatings []*SafetyRating
}

// Candidate is one generated completion.
type Candidate struct {
	Index         int32
	Content       *Content
	FinishReason  FinishReason
	SafetyRatings []*SafetyRating
}

// UsageMetadata reports token accounting for a request, typically present
// on the final streaming chunk and on every synchronous response.
type UsageMetadata struct {
	PromptTokenCount     int32
	CandidatesTokenCount int32
	TotalTokenCount      int32
}

// GenerateContentResponse is one decoded backend response: either the
// single response of a synchronous call or one chunk of a stream.
type GenerateContentResponse struct {
	Candidates     []*Candidate
	PromptFeedback *PromptFeedback
	UsageMetadata  *UsageMetadata
}

// ErrNoCandidates is returned by Text when a response carries no usable
// candidate content.
var ErrNoCandidates = errors.New("response contains no candidates")

// Text returns the concatenated text parts of the first candidate.
func (r *GenerateContentResponse) Text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	cand := r.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

// TokenCount is the result of a CountTokens call.
type TokenCount struct {
	TotalTokens int32
}
