package sse

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/fwojciec/genstream"
)

// ParseFrame decodes one frame payload into a response record. Only the
// JSON structure is checked; blocked prompts and disqualified candidates are
// valid records.
func ParseFrame(payload string) (genstream.Response, error) {
	var r genstream.Response
	if err := sonic.ConfigStd.UnmarshalFromString(payload, &r); err != nil {
		return genstream.Response{}, &genstream.Error{
			Code:    genstream.ErrorCodeParseFailed,
			Message: fmt.Sprintf("error parsing JSON response: %q", payload),
			Err:     err,
		}
	}
	return r, nil
}
