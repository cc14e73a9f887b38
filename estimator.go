package generative

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// blobTokenCost is the flat per-image token charge applied by the backend
// regardless of image size.
const blobTokenCost = 258

// TokenEstimator produces approximate token counts without a network call.
// The backend's own tokenizer is not published, so the estimator runs a
// general-purpose BPE encoding locally; counts are close enough for budget
// checks and history trimming, but only [GenerativeModel.CountTokens] is
// authoritative.
type TokenEstimator struct {
	enc *tiktoken.Tiktoken
}

// NewTokenEstimator loads the local encoding. The first call downloads the
// BPE ranks unless a tiktoken cache is configured.
func NewTokenEstimator() (*TokenEstimator, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("loading token encoding: %w", err)
	}
	return &TokenEstimator{enc: enc}, nil
}

// Estimate returns the approximate token count of the given prompt parts.
func (e *TokenEstimator) Estimate(parts ...Part) (int, error) {
	total := 0
	for i, p := range parts {
		switch v := p.(type) {
		case Text:
			total += len(e.enc.Encode(string(v), nil, nil))
		case Blob:
			total += blobTokenCost
		default:
			return 0, fmt.Errorf("part %d: unsupported part type %T", i, v)
		}
	}
	return total, nil
}

// EstimateContents sums Estimate over whole conversation turns, e.g. a chat
// history.
func (e *TokenEstimator) EstimateContents(contents ...*Content) (int, error) {
	total := 0
	for _, c := range contents {
		n, err := e.Estimate(c.Parts...)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
