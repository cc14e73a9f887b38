// Package generative provides a client library for a remote multimodal
// generation service.
//
// The package exposes a single typed surface over a backend whose wire
// responses and failure modes are inconsistent: a blocked prompt, an
// early-terminated stream and a transport failure all arrive in different
// shapes, and this library folds them into one closed error set before they
// reach your code.
//
// # Core Concepts
//
// GenerativeModel: the entry point applications call. It holds the model
// name and per-instance configuration, and is safe for concurrent use.
//
//	model := generative.NewGenerativeModel(svc, "prism-1-pro")
//	model.GenerationConfig = &generative.GenerationConfig{Temperature: generative.Float32(0.2)}
//
// Service: the transport contract. A Service performs the actual network
// I/O; RESTService is the built-in implementation, and tests can substitute
// a fake.
//
//	type Service interface {
//		Generate(ctx context.Context, req *Request) (*GenerateContentResponse, error)
//		GenerateStream(ctx context.Context, req *Request) iter.Seq2[*GenerateContentResponse, error]
//		CountTokens(ctx context.Context, req *Request) (*TokenCount, error)
//	}
//
// Content and Part: a request is an ordered sequence of Content turns, each
// made of Parts (Text, Blob for images and other binary data).
//
// Streaming: GenerateContentStream returns an iter.Seq2 of responses. The
// sequence yields chunks in arrival order, stops permanently at the first
// failure, and stops pulling from the network the moment you break out of
// the loop.
//
//	for resp, err := range model.GenerateContentStream(ctx, generative.Text("hello")) {
//		if err != nil {
//			// always one of the public error types below
//		}
//		// use resp
//	}
//
// # Errors
//
// Every failure surfaced by GenerateContent and GenerateContentStream is one
// of: [PromptBlockedErr], [StoppedEarlyErr], [PromptContentErr],
// [InvalidCredentialErr], [UnsupportedLocationErr] or [InternalErr].
// CountTokens fails only with [CountTokensErr]. No transport or wire-level
// error type ever crosses the package boundary untranslated.
package generative
