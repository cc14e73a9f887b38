package generative

import "iter"

// ResponseStream is the sequence returned by streaming generation. Iterate
// it with range; each step yields either a chunk or a public error, never
// both. After an error the sequence is over.
type ResponseStream = iter.Seq2[*GenerateContentResponse, error]

// validatedStream wraps the transport's raw chunk sequence with the same
// validation applied to synchronous responses, and guarantees the stream
// contract:
//
//   - chunks reach the consumer in arrival order
//   - every chunk passes validateResponse before it is yielded
//   - the first failure, whether a failed chunk or an origin error, is
//     translated, yielded once, and ends the sequence; later chunks are
//     never observed even if the origin already has them
//   - breaking out of the loop stops origin pulls immediately; the origin
//     iterator's own cleanup releases the underlying connection
//
// There is no buffering: a chunk is pulled from the origin only when the
// consumer asks for the next element.
func validatedStream(raw ResponseStream) ResponseStream {
	return func(yield func(*GenerateContentResponse, error) bool) {
		for resp, err := range raw {
			if err != nil {
				yield(nil, translateError(err))
				return
			}
			if verr := validateResponse(resp); verr != nil {
				yield(nil, translateError(verr))
				return
			}
			if !yield(resp, nil) {
				return
			}
		}
	}
}

// failedStream returns a sequence whose first pull yields err and nothing
// else. Request-construction failures surface this way so that streaming
// calls fail under iteration exactly like transport failures do, instead of
// sometimes raising synchronously.
func failedStream(err error) ResponseStream {
	return func(yield func(*GenerateContentResponse, error) bool) {
		yield(nil, err)
	}
}
