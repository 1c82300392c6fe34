package genstream

import "encoding/json"

// Request carries model selection, conversation contents and generation
// parameters. The provider uses its own defaults when fields are zero/nil.
type Request struct {
	Model             string // model ID; empty = provider default
	SystemInstruction string
	Contents          []Content
	Tools             []Tool
	SafetySettings    []SafetySetting
	MaxOutputTokens   int      // 0 = provider default
	Temperature       *float64 // nil = provider default
	CandidateCount    int      // 0 = provider default
	IncludeThoughts   bool
}

// Tool declares a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON schema
}

// SafetySetting adjusts the blocking threshold of one harm category.
type SafetySetting struct {
	Category  string
	Threshold string
}
