package mock

import "github.com/fwojciec/genstream"

// Interface compliance check.
var _ genstream.Stream = (*Stream)(nil)

// Stream is a test double for genstream.Stream.
// Set the function fields for the methods you need. NextFn and ResponseFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because test code commonly calls defer stream.Close()
// and these methods rarely need custom behavior.
type Stream struct {
	NextFn     func() (*genstream.EnhancedResponse, error)
	StateFn    func() genstream.StreamState
	ResponseFn func() (*genstream.EnhancedResponse, error)
	CloseFn    func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (*genstream.EnhancedResponse, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() genstream.StreamState {
	if s.StateFn == nil {
		return genstream.StreamStateNew
	}
	return s.StateFn()
}

// Response delegates to ResponseFn.
func (s *Stream) Response() (*genstream.EnhancedResponse, error) {
	return s.ResponseFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
