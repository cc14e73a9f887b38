package generative

import (
	"context"
	"fmt"
)

// Chat is a conversation session layered on a GenerativeModel: a thin
// accumulator that replays history on every turn. A failed turn leaves the
// history untouched, so retrying the same message is always safe.
//
// A Chat is not safe for concurrent use; it belongs to one conversation
// loop.
type Chat struct {
	m       *GenerativeModel
	history []*Content
}

// StartChat begins a session, optionally seeded with prior turns. Seed
// turns are trusted as-is; they are not re-validated.
func (m *GenerativeModel) StartChat(history ...*Content) *Chat {
	return &Chat{m: m, history: history}
}

// History returns the accumulated conversation turns, oldest first. The
// returned slice is shared with the session; treat it as read-only.
func (c *Chat) History() []*Content {
	return c.history
}

// SendMessage sends the next user turn with all prior history and, on
// success, appends both the user turn and the model's reply to the session.
func (c *Chat) SendMessage(ctx context.Context, parts ...Part) (*GenerateContentResponse, error) {
	turn, err := normalizeParts(parts)
	if err != nil {
		return nil, translateError(&PromptContentErr{Cause: err})
	}
	req := c.m.newRequest(false, append(append([]*Content{}, c.history...), turn))
	resp, err := c.m.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, err := replyContent(resp)
	if err != nil {
		return nil, translateError(&InternalErr{Cause: err})
	}
	c.history = append(c.history, turn, reply)
	return resp, nil
}

// SendMessageStream sends the next user turn as a streaming request. The
// chunks' text parts are accumulated as they are yielded, and the session
// history is extended only if the stream finishes without a failure; a
// consumer that abandons the stream early also abandons the turn.
func (c *Chat) SendMessageStream(ctx context.Context, parts ...Part) ResponseStream {
	turn, err := normalizeParts(parts)
	if err != nil {
		return failedStream(translateError(&PromptContentErr{Cause: err}))
	}
	req := c.m.newRequest(true, append(append([]*Content{}, c.history...), turn))

	return func(yield func(*GenerateContentResponse, error) bool) {
		var replyParts []Part
		for resp, err := range c.m.generateStream(ctx, req) {
			if err != nil {
				yield(nil, err)
				return
			}
			if text, terr := resp.Text(); terr == nil && text != "" {
				replyParts = append(replyParts, Text(text))
			}
			if !yield(resp, nil) {
				return
			}
		}
		if len(replyParts) > 0 {
			c.history = append(c.history, turn, &Content{Role: RoleModel, Parts: replyParts})
		}
	}
}

// replyContent extracts the model turn to record in history. A validated
// response can still be shaped uselessly (no candidates at all); that is a
// malformation, not a conversational outcome.
func replyContent(resp *GenerateContentResponse) (*Content, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("reply has no candidate content: %w", ErrNoCandidates)
	}
	reply := resp.Candidates[0].Content
	if reply.Role == "" {
		reply = &Content{Role: RoleModel, Parts: reply.Parts}
	}
	return reply, nil
}
