package genstream

import (
	"fmt"
	"strings"
)

// EnhancedResponse is a Response with on-demand extraction helpers. The
// helpers are evaluated against the embedded record every time they are
// called, so holding and inspecting an EnhancedResponse never fails; only
// asking for text or function calls of a blocked response does.
type EnhancedResponse struct {
	Response

	logger Logger
}

// Enhance wraps r with the extraction helpers. A nil logger discards the
// multiple-candidates warning.
func Enhance(r Response, logger Logger) *EnhancedResponse {
	if logger == nil {
		logger = NopLogger{}
	}
	return &EnhancedResponse{Response: r, logger: logger}
}

// Text returns the concatenated text of the first candidate's parts,
// excluding thought parts. It returns "" when there is no text.
//
// It fails with ErrResponse when the prompt was blocked or the first
// candidate finished for a safety or recitation reason.
func (r *EnhancedResponse) Text() (string, error) {
	ok, err := r.firstCandidate("text not available")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return r.joinText(func(p Part) bool { return !p.Thought }), nil
}

// ThoughtSummary returns the concatenated text of the first candidate's
// thought parts, or "" when there are none. Errors match Text.
func (r *EnhancedResponse) ThoughtSummary() (string, error) {
	ok, err := r.firstCandidate("thought summary not available")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return r.joinText(func(p Part) bool { return p.Thought }), nil
}

// FunctionCalls returns every function call of the first candidate in
// order, or nil when there are none. Errors match Text.
func (r *EnhancedResponse) FunctionCalls() ([]FunctionCall, error) {
	ok, err := r.firstCandidate("function call not available")
	if err != nil || !ok {
		return nil, err
	}
	var calls []FunctionCall
	for _, p := range r.firstParts() {
		if p.FunctionCall != nil {
			calls = append(calls, *p.FunctionCall)
		}
	}
	return calls, nil
}

// InlineDataParts returns the parts of the first candidate that carry
// inline data, or nil when there are none. Errors match Text.
func (r *EnhancedResponse) InlineDataParts() ([]Part, error) {
	ok, err := r.firstCandidate("data not available")
	if err != nil || !ok {
		return nil, err
	}
	var parts []Part
	for _, p := range r.firstParts() {
		if p.InlineData != nil {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// firstCandidate applies the selection rules shared by all accessors. It
// returns true when candidate 0 exists and may be read. With no candidates
// it returns a response error if the prompt was blocked, and false
// otherwise.
func (r *EnhancedResponse) firstCandidate(what string) (bool, error) {
	if n := len(r.Candidates); n > 0 {
		if n > 1 {
			r.logger.Warn(fmt.Sprintf("This response had %d candidates. Returning from the first candidate only. "+
				"Access response.Candidates directly to use the other candidates.", n))
		}
		if r.Candidates[0].FinishReason.Blocked() {
			return false, r.responseError(what)
		}
		return true, nil
	}
	if r.PromptFeedback != nil {
		return false, r.responseError(what)
	}
	return false, nil
}

func (r *EnhancedResponse) firstParts() []Part {
	c := r.Candidates[0].Content
	if c == nil {
		return nil
	}
	return c.Parts
}

func (r *EnhancedResponse) joinText(keep func(Part) bool) string {
	var sb strings.Builder
	for _, p := range r.firstParts() {
		if p.Text != "" && keep(p) {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// responseError builds a fresh error on every call; the record it carries
// is a copy so callers cannot reach back into r.
func (r *EnhancedResponse) responseError(what string) error {
	record := r.Response
	return &Error{
		Code:     ErrorCodeResponseError,
		Message:  what + ": " + BlockErrorMessage(r.Response),
		Response: &record,
	}
}

// BlockErrorMessage describes why a response was blocked: the prompt block
// reason when there are no candidates, or the first candidate's finish
// reason when it is disqualifying. It returns "" for unblocked responses.
func BlockErrorMessage(r Response) string {
	var sb strings.Builder
	if len(r.Candidates) == 0 && r.PromptFeedback != nil {
		sb.WriteString("response was blocked")
		if reason := r.PromptFeedback.BlockReason; reason != "" {
			sb.WriteString(" due to " + string(reason))
		}
		if msg := r.PromptFeedback.BlockReasonMessage; msg != "" {
			sb.WriteString(": " + msg)
		}
		return sb.String()
	}
	if len(r.Candidates) > 0 {
		first := r.Candidates[0]
		if first.FinishReason.Blocked() {
			sb.WriteString("candidate was blocked due to " + string(first.FinishReason))
			if first.FinishMessage != "" {
				sb.WriteString(": " + first.FinishMessage)
			}
		}
	}
	return sb.String()
}
