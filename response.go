// Package genstream turns the body of a streaming generate-content response
// into a live sequence of partial responses and one aggregated final
// response.
//
// The root package holds the domain types and the pure merge and accessor
// logic. Wire parsing lives in [github.com/fwojciec/genstream/sse], fan-out
// in [github.com/fwojciec/genstream/tee], and the assembled pipeline plus a
// thin HTTP client in [github.com/fwojciec/genstream/gemini].
package genstream

// Response is one decoded response record. The same shape carries a single
// streamed frame and the aggregate built from all frames of a stream.
// Records are treated as immutable once parsed.
type Response struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
	ResponseID     string          `json:"responseId,omitempty"`
}

// Candidate is one alternative generated response.
//
// The backend omits index when it is 0, so a missing index decodes to the
// zero value. That is the only default applied while parsing.
type Candidate struct {
	Index              int                 `json:"index,omitempty"`
	Content            *Content            `json:"content,omitempty"`
	FinishReason       FinishReason        `json:"finishReason,omitempty"`
	FinishMessage      string              `json:"finishMessage,omitempty"`
	SafetyRatings      []SafetyRating      `json:"safetyRatings,omitempty"`
	CitationMetadata   *CitationMetadata   `json:"citationMetadata,omitempty"`
	GroundingMetadata  *GroundingMetadata  `json:"groundingMetadata,omitempty"`
	URLContextMetadata *URLContextMetadata `json:"urlContextMetadata,omitempty"`
}

// Content is the role-tagged list of parts produced by a candidate.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a tagged union: exactly one of Text, FunctionCall, InlineData or
// FunctionResponse is expected to be set. Streaming responses only carry
// text and function calls.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	InlineData       *InlineData       `json:"inlineData,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`

	// Thought marks text that belongs to the model's thought summary
	// rather than to the answer.
	Thought          bool   `json:"thought,omitempty"`
	ThoughtSignature string `json:"thoughtSignature,omitempty"`
}

// hasData reports whether any of the recognized union fields is set.
func (p Part) hasData() bool {
	return p.Text != "" || p.FunctionCall != nil || p.InlineData != nil || p.FunctionResponse != nil
}

// FunctionCall is a model request to invoke a declared function.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse is the result of a function call sent back to the model.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// InlineData is base64-encoded binary content with its MIME type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// PromptFeedback reports why a prompt was refused before any candidate was
// produced.
type PromptFeedback struct {
	BlockReason        BlockReason    `json:"blockReason,omitempty"`
	BlockReasonMessage string         `json:"blockReasonMessage,omitempty"`
	SafetyRatings      []SafetyRating `json:"safetyRatings,omitempty"`
}

// SafetyRating is the rating of one harm category.
type SafetyRating struct {
	Category         string  `json:"category"`
	Probability      string  `json:"probability"`
	ProbabilityScore float64 `json:"probabilityScore,omitempty"`
	Severity         string  `json:"severity,omitempty"`
	SeverityScore    float64 `json:"severityScore,omitempty"`
	Blocked          bool    `json:"blocked,omitempty"`
}

// CitationMetadata lists the sources recited by a candidate.
type CitationMetadata struct {
	Citations []Citation `json:"citations"`
}

// Citation points at one recited source.
type Citation struct {
	StartIndex      int    `json:"startIndex,omitempty"`
	EndIndex        int    `json:"endIndex,omitempty"`
	URI             string `json:"uri,omitempty"`
	License         string `json:"license,omitempty"`
	Title           string `json:"title,omitempty"`
	PublicationDate *Date  `json:"publicationDate,omitempty"`
}

// Date is a calendar date without a time zone.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// GroundingMetadata describes search grounding used for a candidate.
type GroundingMetadata struct {
	WebSearchQueries  []string           `json:"webSearchQueries,omitempty"`
	SearchEntryPoint  *SearchEntryPoint  `json:"searchEntryPoint,omitempty"`
	GroundingChunks   []GroundingChunk   `json:"groundingChunks,omitempty"`
	GroundingSupports []GroundingSupport `json:"groundingSupports,omitempty"`
}

// SearchEntryPoint holds the rendered search suggestion snippet.
type SearchEntryPoint struct {
	RenderedContent string `json:"renderedContent,omitempty"`
}

// GroundingChunk is one retrieved source.
type GroundingChunk struct {
	Web *WebGroundingChunk `json:"web,omitempty"`
}

// WebGroundingChunk is a retrieved web page.
type WebGroundingChunk struct {
	URI    string `json:"uri,omitempty"`
	Title  string `json:"title,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// GroundingSupport ties a segment of the answer to grounding chunks.
type GroundingSupport struct {
	Segment               *Segment `json:"segment,omitempty"`
	GroundingChunkIndices []int    `json:"groundingChunkIndices,omitempty"`
}

// Segment addresses a byte range of one part's text.
type Segment struct {
	PartIndex  int    `json:"partIndex"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Text       string `json:"text"`
}

// URLContextMetadata lists URLs retrieved by the URL context tool.
type URLContextMetadata struct {
	URLMetadata []URLMetadata `json:"urlMetadata,omitempty"`
}

// URLMetadata is the retrieval status of one URL.
type URLMetadata struct {
	RetrievedURL       string `json:"retrievedUrl,omitempty"`
	URLRetrievalStatus string `json:"urlRetrievalStatus,omitempty"`
}

// UsageMetadata tracks token consumption reported by the backend.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	ThoughtsTokenCount   int `json:"thoughtsTokenCount,omitempty"`
	TotalTokenCount      int `json:"totalTokenCount"`
}
