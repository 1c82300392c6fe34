package genstream

import (
	"io"
	"iter"
)

// StreamState indicates the current state of a Stream's live sequence.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, yielding partial responses.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream is the result of one streaming request. It carries two
// independent views of the same response body.
//
// Next() is the live sequence: it pulls one partial response per frame and
// returns io.EOF after the last one. A decode, framing or parse failure is
// terminal; Next returns it on that call and every call after. The sequence
// is single-pass and cannot be restarted.
//
// Response() is the final result: it consumes the stream to its end, merges
// every partial response into one, and returns the enhanced aggregate. It
// returns the error that terminated the stream instead, if any. The result
// is memoized. Response may be called before, during or after iterating
// Next, and from a different goroutine than Next.
//
// Next, State and Close must be called from one goroutine.
type Stream interface {
	Next() (*EnhancedResponse, error)
	State() StreamState
	Response() (*EnhancedResponse, error)
	Close() error
}

// All adapts a Stream's live sequence to a range-over-func iterator. The
// iterator stops after io.EOF, or after yielding a terminal error once.
func All(s Stream) iter.Seq2[*EnhancedResponse, error] {
	return func(yield func(*EnhancedResponse, error) bool) {
		for {
			resp, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(resp, nil) {
				return
			}
		}
	}
}
