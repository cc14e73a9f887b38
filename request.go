package generative

import "time"

// GenerationConfig holds sampling parameters for a generation request.
// Pointer fields distinguish "unset" from an explicit zero; use the
// [Float32] and [Int32] helpers to build them inline.
type GenerationConfig struct {
	Temperature     *float32
	TopP            *float32
	TopK            *int32
	CandidateCount  *int32
	MaxOutputTokens *int32
	StopSequences   []string
}

// Float32 returns a pointer to v, for use with GenerationConfig fields.
func Float32(v float32) *float32 { return &v }

// Int32 returns a pointer to v, for use with GenerationConfig fields.
func Int32(v int32) *int32 { return &v }

// HarmCategory identifies a class of potentially harmful content that a
// safety setting applies to.
type HarmCategory string

const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// HarmBlockThreshold controls how aggressively a harm category is filtered.
type HarmBlockThreshold string

const (
	HarmBlockLowAndAbove    HarmBlockThreshold = "BLOCK_LOW_AND_ABOVE"
	HarmBlockMediumAndAbove HarmBlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	HarmBlockOnlyHigh       HarmBlockThreshold = "BLOCK_ONLY_HIGH"
	HarmBlockNone           HarmBlockThreshold = "BLOCK_NONE"
)

// SafetySetting adjusts the blocking threshold for one harm category.
type SafetySetting struct {
	Category  HarmCategory
	Threshold HarmBlockThreshold
}

// RequestOptions are per-request transport knobs. The core never acts on
// them itself; the Service implementation consumes them.
type RequestOptions struct {
	// Timeout bounds a single request, including all retry attempts.
	// Zero means no client-side timeout beyond the caller's context.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts the transport may
	// make after a retriable failure (HTTP 429 and 5xx). Zero disables
	// retries.
	MaxRetries int
}

// Request is the fully built form of one call to the backend. It is
// assembled by GenerativeModel and immutable from then on.
type Request struct {
	Model            string
	Contents         []*Content
	GenerationConfig *GenerationConfig
	SafetySettings   []*SafetySetting

	// Stream selects the incremental delivery endpoint.
	Stream bool

	Options *RequestOptions
}
