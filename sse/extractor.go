package sse

import (
	"regexp"
	"strings"

	"github.com/fwojciec/genstream"
)

// frameRE matches one complete frame at the front of the buffer. The
// payload excludes line breaks; the terminator is one of the three blank
// line conventions.
var frameRE = regexp.MustCompile(`^` + framePrefix + `([^\r\n]*)(?:\n\n|\r\r|\r\n\r\n)`)

// Extractor cuts complete frames out of decoded text. Text after the last
// complete frame stays buffered until more text arrives.
//
// An Extractor is not safe for concurrent use.
type Extractor struct {
	buf string
}

// Push appends text to the buffer and returns the payloads of every frame
// completed by it, in order.
func (e *Extractor) Push(text string) []string {
	e.buf += text
	var payloads []string
	for {
		m := frameRE.FindStringSubmatchIndex(e.buf)
		if m == nil {
			return payloads
		}
		payloads = append(payloads, e.buf[m[2]:m[3]])
		e.buf = e.buf[m[1]:]
	}
}

// Buffered returns the text not yet consumed by a complete frame.
func (e *Extractor) Buffered() string {
	return e.buf
}

// Finish ends the stream. Anything but whitespace left in the buffer means
// the stream was cut mid-frame or carried text outside the framing.
func (e *Extractor) Finish() error {
	if strings.TrimSpace(e.buf) == "" {
		return nil
	}
	return &genstream.Error{
		Code:    genstream.ErrorCodeParseFailed,
		Message: "failed to parse stream",
	}
}
