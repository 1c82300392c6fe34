package genstream

import "fmt"

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if len(r.Contents) == 0 {
		return fmt.Errorf("contents must not be empty: %w", ErrValidation)
	}
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must be non-negative, got %d: %w", r.MaxOutputTokens, ErrValidation)
	}
	if r.CandidateCount < 0 {
		return fmt.Errorf("candidate_count must be non-negative, got %d: %w", r.CandidateCount, ErrValidation)
	}
	return nil
}

// ValidateResponse applies the strict part check the aggregator skips: every
// part of every candidate must carry non-empty text, a function call,
// inline data or a function response.
func ValidateResponse(r Response) error {
	for _, c := range r.Candidates {
		if c.Content == nil {
			continue
		}
		for i, p := range c.Content.Parts {
			if err := ValidatePart(p); err != nil {
				return fmt.Errorf("candidate %d part %d: %w", c.Index, i, err)
			}
		}
	}
	return nil
}

// ValidatePart reports an ErrInvalidContent error for a part with none of
// the recognized fields.
func ValidatePart(p Part) error {
	if p.hasData() {
		return nil
	}
	return &Error{
		Code: ErrorCodeInvalidContent,
		Message: "part should have at least one property, but there are none; " +
			"this is likely caused by a malformed response from the backend",
	}
}
