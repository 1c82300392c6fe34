package genstream

import (
	"maps"
	"slices"
)

// Aggregator folds the partial responses of one stream into a single
// response. The zero value is ready to use. An Aggregator is not safe for
// concurrent use.
//
// Merge rules:
//   - PromptFeedback and UsageMetadata are replaced by every record.
//   - Candidates are keyed by Index. FinishReason, FinishMessage,
//     SafetyRatings, CitationMetadata and GroundingMetadata are replaced by
//     every record that mentions the candidate; they are never unioned.
//   - URLContextMetadata is replaced only by a non-empty value, since the
//     backend sends it once, early in the stream.
//   - Content.Parts accumulate by append. A part carrying none of the
//     recognized fields is kept as an empty-text part.
type Aggregator struct {
	promptFeedback *PromptFeedback
	usage          *UsageMetadata
	modelVersion   string
	responseID     string
	candidates     map[int]*Candidate
}

// Add merges one record into the aggregate.
func (a *Aggregator) Add(r Response) {
	a.promptFeedback = r.PromptFeedback
	a.usage = r.UsageMetadata
	if r.ModelVersion != "" {
		a.modelVersion = r.ModelVersion
	}
	if r.ResponseID != "" {
		a.responseID = r.ResponseID
	}
	for _, c := range r.Candidates {
		a.addCandidate(c)
	}
}

func (a *Aggregator) addCandidate(c Candidate) {
	if a.candidates == nil {
		a.candidates = make(map[int]*Candidate)
	}
	slot, ok := a.candidates[c.Index]
	if !ok {
		slot = &Candidate{Index: c.Index}
		a.candidates[c.Index] = slot
	}

	slot.CitationMetadata = c.CitationMetadata
	slot.FinishReason = c.FinishReason
	slot.FinishMessage = c.FinishMessage
	slot.SafetyRatings = c.SafetyRatings
	slot.GroundingMetadata = c.GroundingMetadata
	if c.URLContextMetadata != nil && len(c.URLContextMetadata.URLMetadata) > 0 {
		slot.URLContextMetadata = c.URLContextMetadata
	}

	if c.Content == nil || c.Content.Parts == nil {
		return
	}
	if slot.Content == nil {
		role := c.Content.Role
		if role == "" {
			role = RoleUser
		}
		slot.Content = &Content{Role: role, Parts: []Part{}}
	}
	for _, p := range c.Content.Parts {
		if !p.hasData() {
			p = Part{ThoughtSignature: p.ThoughtSignature}
		}
		slot.Content.Parts = append(slot.Content.Parts, p)
	}
}

// Response returns a snapshot of the aggregate. Candidates are ordered by
// ascending index. Later calls to Add do not affect a returned snapshot.
func (a *Aggregator) Response() Response {
	r := Response{
		PromptFeedback: a.promptFeedback,
		UsageMetadata:  a.usage,
		ModelVersion:   a.modelVersion,
		ResponseID:     a.responseID,
	}
	if len(a.candidates) == 0 {
		return r
	}
	r.Candidates = make([]Candidate, 0, len(a.candidates))
	for _, i := range slices.Sorted(maps.Keys(a.candidates)) {
		c := *a.candidates[i]
		if c.Content != nil {
			c.Content = &Content{Role: c.Content.Role, Parts: slices.Clone(c.Content.Parts)}
		}
		r.Candidates = append(r.Candidates, c)
	}
	return r
}

// Aggregate folds responses in order.
func Aggregate(responses ...Response) Response {
	var a Aggregator
	for _, r := range responses {
		a.Add(r)
	}
	return a.Response()
}
