package mock

import (
	"io"
	"sync"
)

// Interface compliance check.
var _ io.ReadCloser = (*Body)(nil)

// Body is a response body that delivers Chunks one per Read, the way a
// network transport hands over whatever arrived. After the last chunk Read
// returns Err, or io.EOF when Err is nil. Reads after Close return
// io.ErrClosedPipe.
//
// A chunk larger than the caller's buffer is split across Reads.
type Body struct {
	Chunks [][]byte
	Err    error

	mu     sync.Mutex
	next   int
	rest   []byte
	reads  int
	closes int
}

// NewBody returns a Body delivering the given chunks then io.EOF.
func NewBody(chunks ...string) *Body {
	b := &Body{}
	for _, c := range chunks {
		b.Chunks = append(b.Chunks, []byte(c))
	}
	return b
}

// Read delivers the next chunk.
func (b *Body) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closes > 0 {
		return 0, io.ErrClosedPipe
	}
	b.reads++
	if len(b.rest) == 0 {
		if b.next >= len(b.Chunks) {
			if b.Err != nil {
				return 0, b.Err
			}
			return 0, io.EOF
		}
		b.rest = b.Chunks[b.next]
		b.next++
	}
	n := copy(p, b.rest)
	b.rest = b.rest[n:]
	return n, nil
}

// Close records the call.
func (b *Body) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closes++
	return nil
}

// Reads returns the number of Read calls so far.
func (b *Body) Reads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

// Closes returns the number of Close calls so far.
func (b *Body) Closes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closes
}
