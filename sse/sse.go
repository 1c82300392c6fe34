// Package sse reads generate-content responses framed as server-sent
// events.
//
// Every frame is the literal prefix "data: ", one JSON document on a single
// line, and a blank-line terminator ("\n\n", "\r\r" or "\r\n\r\n"). Frames
// may straddle reads and one read may carry many frames. The stream always
// ends on a frame boundary, so leftover text at the end is a parse failure.
//
// The stages are exposed separately: a [Decoder] turns bytes into text
// without splitting multi-byte characters, an [Extractor] cuts frames out
// of the text, and [ParseFrame] decodes one payload. A [Reader] chains all
// three over an io.Reader.
package sse

const (
	// framePrefix starts every frame.
	framePrefix = "data: "

	// defaultReadSize is the size of the read buffer used by Reader.
	defaultReadSize = 32 * 1024
)
