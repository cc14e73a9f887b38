package generative

// validateResponse inspects one decoded backend response for the failure
// signals the transport does not treat as errors: a blocked prompt, or a
// first candidate that stopped for any reason other than a normal stop.
//
// The same predicate runs on the single synchronous response and on every
// streaming chunk, so the two paths cannot drift apart. It has no side
// effects and never modifies the response.
func validateResponse(resp *GenerateContentResponse) error {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason.blocked() {
		return &PromptBlockedErr{Response: resp}
	}
	if len(resp.Candidates) > 0 {
		if reason := resp.Candidates[0].FinishReason; !reason.normalStop() {
			return &StoppedEarlyErr{Reason: reason, Response: resp}
		}
	}
	return nil
}
