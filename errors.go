package generative

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidCredentialErr is returned when the backend rejects the API
// credential used by the transport. Check with errors.Is.
var InvalidCredentialErr = errors.New("invalid API credential")

// UnsupportedLocationErr is returned when the backend refuses to serve the
// caller's region. Check with errors.Is.
var UnsupportedLocationErr = errors.New("user location is not supported")

// PromptBlockedErr is returned when the backend rejected the entire prompt
// before generating anything. The offending response, including its
// PromptFeedback, is retained for inspection; its candidate content, if
// any, must not be used.
type PromptBlockedErr struct {
	Response *GenerateContentResponse
}

func (e *PromptBlockedErr) Error() string {
	reason := BlockReasonUnspecified
	if e.Response != nil && e.Response.PromptFeedback != nil {
		reason = e.Response.PromptFeedback.BlockReason
	}
	return fmt.Sprintf("prompt was blocked: %s", reason)
}

// StoppedEarlyErr is returned when generation terminated for any reason
// other than a normal stop, such as a safety filter or the output token
// limit. Reason preserves the backend's finish reason; Response holds the
// partial response, which is surfaced for inspection only.
type StoppedEarlyErr struct {
	Reason   FinishReason
	Response *GenerateContentResponse
}

func (e *StoppedEarlyErr) Error() string {
	return fmt.Sprintf("response stopped early: %s", e.Reason)
}

// PromptContentErr is returned when the prompt could not be assembled into
// a request, for example an image blob with no MIME type. Nothing was sent
// to the backend.
type PromptContentErr struct {
	Cause error
}

func (e *PromptContentErr) Error() string {
	return fmt.Sprintf("invalid prompt content: %v", e.Cause)
}

func (e *PromptContentErr) Unwrap() error { return e.Cause }

// InternalErr wraps every failure that does not fit a more specific public
// error: transport faults, malformed payloads, cancelled contexts. The
// underlying error remains reachable through errors.Is and errors.As.
type InternalErr struct {
	Cause error
}

func (e *InternalErr) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}

func (e *InternalErr) Unwrap() error { return e.Cause }

// CountTokensErr wraps any failure of a CountTokens call. Token counting
// produces no candidates, so it has no blocked or stopped-early cases; one
// wrapper covers everything.
type CountTokensErr struct {
	Cause error
}

func (e *CountTokensErr) Error() string {
	return fmt.Sprintf("count tokens: %v", e.Cause)
}

func (e *CountTokensErr) Unwrap() error { return e.Cause }

// APIError is the transport-level error produced by a Service when the
// backend returns a non-2xx status. It is not part of the public taxonomy:
// the translator folds it into one of the public errors before it reaches
// a caller, but it survives underneath InternalErr for unwrapping.
type APIError struct {
	// StatusCode is the HTTP status of the failed request.
	StatusCode int
	// Status is the gRPC-style status string, e.g. "INVALID_ARGUMENT".
	Status string
	// Reason is the machine-readable reason from the error details, e.g.
	// "API_KEY_INVALID", when the backend supplies one.
	Reason  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// invalidCredential reports whether the error payload carries the invalid
// API key signal. The backend reports it as INVALID_ARGUMENT with an
// API_KEY_INVALID reason detail, or PERMISSION_DENIED for revoked keys.
func (e *APIError) invalidCredential() bool {
	if e.Reason == "API_KEY_INVALID" {
		return true
	}
	return e.Status == "PERMISSION_DENIED" && strings.Contains(e.Message, "API key")
}

// unsupportedLocation reports whether the error payload carries the
// unsupported-region signal.
func (e *APIError) unsupportedLocation() bool {
	return e.Status == "FAILED_PRECONDITION" &&
		strings.Contains(e.Message, "location is not supported")
}

// translateError maps any failure observed below the facade onto exactly
// one member of the public error taxonomy. It is total: every input,
// including nil-adjacent garbage, comes out as a public error. It is
// idempotent: an already-public error passes through unchanged, so it is
// harmless to translate at more than one layer.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, InvalidCredentialErr),
		errors.Is(err, UnsupportedLocationErr):
		return err
	}

	var (
		blocked *PromptBlockedErr
		stopped *StoppedEarlyErr
		prompt  *PromptContentErr
		intern  *InternalErr
		counter *CountTokensErr
	)
	switch {
	case errors.As(err, &blocked):
		return blocked
	case errors.As(err, &stopped):
		return stopped
	case errors.As(err, &prompt):
		return prompt
	case errors.As(err, &intern):
		return intern
	case errors.As(err, &counter):
		return counter
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.invalidCredential():
			return InvalidCredentialErr
		case apiErr.unsupportedLocation():
			return UnsupportedLocationErr
		}
	}

	return &InternalErr{Cause: err}
}
