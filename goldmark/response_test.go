package goldmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/goldmark"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func response(c genstream.Candidate) *genstream.EnhancedResponse {
	return genstream.Enhance(genstream.Response{Candidates: []genstream.Candidate{c}}, nil)
}

func TestRenderResponse(t *testing.T) {
	t.Parallel()

	theme := genstream.DefaultTheme()

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", goldmark.RenderResponse(nil, 80, theme))
	})

	t.Run("text as markdown", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content:      &genstream.Content{Parts: []genstream.Part{{Text: "# Title\n\n"}, {Text: "**body**"}}},
			FinishReason: genstream.FinishReasonStop,
		})
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "body")
		assert.NotContains(t, out, "**")
		assert.NotContains(t, out, "finish reason")
	})

	t.Run("thought summary before text", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content: &genstream.Content{Parts: []genstream.Part{
				{Text: "considering options", Thought: true},
				{Text: "final answer"},
			}},
		})
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		thought := strings.Index(out, "considering options")
		answer := strings.Index(out, "final answer")
		assert.GreaterOrEqual(t, thought, 0)
		assert.Greater(t, answer, thought)
	})

	t.Run("blocked response renders an error", func(t *testing.T) {
		t.Parallel()
		resp := genstream.Enhance(genstream.Response{PromptFeedback: &genstream.PromptFeedback{
			BlockReason:        genstream.BlockReasonSafety,
			BlockReasonMessage: "unsafe",
		}}, nil)
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.Equal(t, "✗ response was blocked due to SAFETY: unsafe", out)
	})

	t.Run("function calls", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content: &genstream.Content{Parts: []genstream.Part{
				{FunctionCall: &genstream.FunctionCall{Name: "read", Args: map[string]any{"path": "a.go"}}},
				{FunctionCall: &genstream.FunctionCall{Name: "list"}},
			}},
		})
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.Contains(t, out, `→ read({"path":"a.go"})`)
		assert.Contains(t, out, "→ list({})")
	})

	t.Run("long arguments are truncated to width", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content: &genstream.Content{Parts: []genstream.Part{
				{FunctionCall: &genstream.FunctionCall{Name: "write", Args: map[string]any{"text": strings.Repeat("日本語", 20)}}},
			}},
		})
		out := stripANSI(goldmark.RenderResponse(resp, 40, theme))
		assert.Contains(t, out, "…")
		assert.LessOrEqual(t, runewidth.StringWidth(out), 40)
	})

	t.Run("sources footer", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content: &genstream.Content{Parts: []genstream.Part{{Text: "answer"}}},
			CitationMetadata: &genstream.CitationMetadata{Citations: []genstream.Citation{
				{URI: "https://a.example", Title: "A"},
				{URI: "https://a.example"},
			}},
			GroundingMetadata: &genstream.GroundingMetadata{GroundingChunks: []genstream.GroundingChunk{
				{Web: &genstream.WebGroundingChunk{URI: "https://b.example"}},
			}},
		})
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.Contains(t, out, "Sources")
		assert.Contains(t, out, "[1] A (https://a.example)")
		assert.Contains(t, out, "[2] https://b.example")
		assert.NotContains(t, out, "[3]")
	})

	t.Run("notes unusual finish reason", func(t *testing.T) {
		t.Parallel()
		resp := response(genstream.Candidate{
			Content:      &genstream.Content{Parts: []genstream.Part{{Text: "cut"}}},
			FinishReason: genstream.FinishReasonMaxTokens,
		})
		out := stripANSI(goldmark.RenderResponse(resp, 80, theme))
		assert.Contains(t, out, "finish reason: MAX_TOKENS")
	})
}
