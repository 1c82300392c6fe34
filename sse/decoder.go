package sse

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder incrementally decodes UTF-8 bytes into text. A multi-byte
// character split across two chunks is held back and completed by the next
// call, so a chunk boundary never produces a replacement character. A
// leading byte order mark is dropped. Invalid bytes decode to U+FFFD.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	t       transform.Transformer
	pending []byte
	dst     []byte
}

// NewDecoder returns a Decoder at the start of a stream.
func NewDecoder() *Decoder {
	return &Decoder{t: unicode.UTF8BOM.NewDecoder()}
}

// Decode returns the text for chunk, holding back a trailing incomplete
// character.
func (d *Decoder) Decode(chunk []byte) string {
	return d.decode(chunk, false)
}

// Flush ends the stream. Held-back bytes of an incomplete character decode
// to U+FFFD.
func (d *Decoder) Flush() string {
	s := d.decode(nil, true)
	d.t.Reset()
	return s
}

func (d *Decoder) decode(chunk []byte, atEOF bool) string {
	src := chunk
	if len(d.pending) > 0 {
		src = append(d.pending, chunk...)
		d.pending = nil
	}
	if len(src) == 0 && !atEOF {
		return ""
	}
	if need := len(src) + 3; cap(d.dst) < need {
		d.dst = make([]byte, need)
	}
	dst := d.dst[:cap(d.dst)]

	var out []byte
	for {
		nDst, nSrc, err := d.t.Transform(dst, src, atEOF)
		out = append(out, dst[:nDst]...)
		src = src[nSrc:]
		switch err {
		case transform.ErrShortDst:
			if nDst == 0 && nSrc == 0 {
				dst = make([]byte, 2*len(dst)+3)
				d.dst = dst
			}
			continue
		case transform.ErrShortSrc:
			d.pending = append([]byte(nil), src...)
		}
		return string(out)
	}
}
