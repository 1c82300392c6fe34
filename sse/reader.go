package sse

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/genstream"
)

// Reader pulls response records out of a framed byte stream. It reads from
// the underlying io.Reader only when every frame already received has been
// returned.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r       io.Reader
	buf     []byte
	dec     *Decoder
	ext     Extractor
	pending []string
	err     error // terminal error, if any
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:   r,
		buf: make([]byte, defaultReadSize),
		dec: NewDecoder(),
	}
}

// Next returns the next record. It returns io.EOF after the last frame of a
// stream that ended on a frame boundary. Any other error is terminal and is
// returned again by every later call:
//   - a malformed payload or leftover text at the end matches
//     genstream.ErrParseFailed;
//   - a read error with no partial frame buffered is returned wrapped.
//     With a partial frame buffered it matches ErrParseFailed and still
//     unwraps to the read error.
func (r *Reader) Next() (genstream.Response, error) {
	for {
		if len(r.pending) > 0 {
			payload := r.pending[0]
			r.pending = r.pending[1:]
			resp, err := ParseFrame(payload)
			if err != nil {
				r.err = err
				r.pending = nil
				return genstream.Response{}, err
			}
			return resp, nil
		}
		if r.err != nil {
			return genstream.Response{}, r.err
		}
		r.fill()
	}
}

// fill performs one read and queues the frames it completes. On the end of
// the stream it sets r.err.
func (r *Reader) fill() {
	n, err := r.r.Read(r.buf)
	if n > 0 {
		r.pending = append(r.pending, r.ext.Push(r.dec.Decode(r.buf[:n]))...)
	}
	switch {
	case err == nil:
		return
	case errors.Is(err, io.EOF):
		r.pending = append(r.pending, r.ext.Push(r.dec.Flush())...)
		if ferr := r.ext.Finish(); ferr != nil {
			r.err = ferr
			return
		}
		r.err = io.EOF
	default:
		if r.ext.Finish() != nil {
			r.err = &genstream.Error{
				Code:    genstream.ErrorCodeParseFailed,
				Message: "stream ended mid-frame",
				Err:     err,
			}
			return
		}
		r.err = fmt.Errorf("sse: read: %w", err)
	}
}
