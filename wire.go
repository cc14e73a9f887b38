package generative

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Wire DTOs for the REST transport. These stay behind the Service boundary;
// public types never carry JSON tags so the wire representation can move
// without touching the API surface.

type wireBlob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wirePart struct {
	Text       string    `json:"text,omitempty"`
	InlineData *wireBlob `json:"inlineData,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireGenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            *float32 `json:"topP,omitempty"`
	TopK            *int32   `json:"topK,omitempty"`
	CandidateCount  *int32   `json:"candidateCount,omitempty"`
	MaxOutputTokens *int32   `json:"maxOutputTokens,omitempty"`
	StopSequences   []string `json:"stopSequences,omitempty"`
}

type wireSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type wireGenerateRequest struct {
	Contents         []wireContent         `json:"contents"`
	GenerationConfig *wireGenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []wireSafetySetting   `json:"safetySettings,omitempty"`
}

type wireCountRequest struct {
	Contents []wireContent `json:"contents"`
}

type wireSafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

type wireCandidate struct {
	Content       *wireContent       `json:"content,omitempty"`
	FinishReason  string             `json:"finishReason,omitempty"`
	Index         int32              `json:"index,omitempty"`
	SafetyRatings []wireSafetyRating `json:"safetyRatings,omitempty"`
}

type wirePromptFeedback struct {
	BlockReason   string             `json:"blockReason,omitempty"`
	SafetyRatings []wireSafetyRating `json:"safetyRatings,omitempty"`
}

type wireUsageMetadata struct {
	PromptTokenCount     int32 `json:"promptTokenCount"`
	CandidatesTokenCount int32 `json:"candidatesTokenCount"`
	TotalTokenCount      int32 `json:"totalTokenCount"`
}

type wireGenerateResponse struct {
	Candidates     []wireCandidate     `json:"candidates,omitempty"`
	PromptFeedback *wirePromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *wireUsageMetadata  `json:"usageMetadata,omitempty"`
}

type wireCountResponse struct {
	TotalTokens int32 `json:"totalTokens"`
}

// wireErrorPayload is the google.rpc error envelope returned on non-2xx
// statuses.
type wireErrorPayload struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type   string `json:"@type"`
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

func encodeRequest(req *Request) (wireGenerateRequest, error) {
	out := wireGenerateRequest{}
	for _, c := range req.Contents {
		wc, err := encodeContent(c)
		if err != nil {
			return wireGenerateRequest{}, err
		}
		out.Contents = append(out.Contents, wc)
	}
	if gc := req.GenerationConfig; gc != nil {
		out.GenerationConfig = &wireGenerationConfig{
			Temperature:     gc.Temperature,
			TopP:            gc.TopP,
			TopK:            gc.TopK,
			CandidateCount:  gc.CandidateCount,
			MaxOutputTokens: gc.MaxOutputTokens,
			StopSequences:   gc.StopSequences,
		}
	}
	for _, s := range req.SafetySettings {
		out.SafetySettings = append(out.SafetySettings, wireSafetySetting{
			Category:  string(s.Category),
			Threshold: string(s.Threshold),
		})
	}
	return out, nil
}

func encodeContent(c *Content) (wireContent, error) {
	wc := wireContent{Role: c.Role}
	for _, p := range c.Parts {
		switch v := p.(type) {
		case Text:
			wc.Parts = append(wc.Parts, wirePart{Text: string(v)})
		case Blob:
			wc.Parts = append(wc.Parts, wirePart{InlineData: &wireBlob{
				MIMEType: v.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(v.Data),
			}})
		default:
			return wireContent{}, fmt.Errorf("unsupported part type %T", p)
		}
	}
	return wc, nil
}

func decodeResponse(data []byte) (*GenerateContentResponse, error) {
	var wr wireGenerateResponse
	if err := json.Unmarshal(data, &wr); err != nil {
		return nil, fmt.Errorf("malformed response payload: %w", err)
	}
	resp := &GenerateContentResponse{}
	for _, wc := range wr.Candidates {
		cand := &Candidate{
			Index:        wc.Index,
			FinishReason: FinishReason(wc.FinishReason),
		}
		if wc.Content != nil {
			content, err := decodeContent(wc.Content)
			if err != nil {
				return nil, err
			}
			cand.Content = content
		}
		for _, r := range wc.SafetyRatings {
			cand.SafetyRatings = append(cand.SafetyRatings, decodeRating(r))
		}
		resp.Candidates = append(resp.Candidates, cand)
	}
	if wr.PromptFeedback != nil {
		fb := &PromptFeedback{BlockReason: BlockReason(wr.PromptFeedback.BlockReason)}
		for _, r := range wr.PromptFeedback.SafetyRatings {
			fb.SafetyRatings = append(fb.SafetyRatings, decodeRating(r))
		}
		resp.PromptFeedback = fb
	}
	if wr.UsageMetadata != nil {
		resp.UsageMetadata = &UsageMetadata{
			PromptTokenCount:     wr.UsageMetadata.PromptTokenCount,
			CandidatesTokenCount: wr.UsageMetadata.CandidatesTokenCount,
			TotalTokenCount:      wr.UsageMetadata.TotalTokenCount,
		}
	}
	return resp, nil
}

func decodeContent(wc *wireContent) (*Content, error) {
	content := &Content{Role: wc.Role}
	for _, p := range wc.Parts {
		switch {
		case p.InlineData != nil:
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("malformed inline data: %w", err)
			}
			content.Parts = append(content.Parts, Blob{MIMEType: p.InlineData.MIMEType, Data: data})
		default:
			content.Parts = append(content.Parts, Text(p.Text))
		}
	}
	return content, nil
}

func decodeRating(r wireSafetyRating) *SafetyRating {
	return &SafetyRating{
		Category:    HarmCategory(r.Category),
		Probability: HarmProbability(r.Probability),
	}
}
