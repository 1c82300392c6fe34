package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/goldmark"
)

// runPrompt streams one prompt. Without rendering, text is written as it
// arrives; with rendering, the aggregated response is written once at the
// end.
func runPrompt(ctx context.Context, provider genstream.Provider, cfg config, prompt string, w io.Writer, logger genstream.Logger) error {
	req := genstream.Request{
		SystemInstruction: cfg.System,
		Contents: []genstream.Content{{
			Role:  genstream.RoleUser,
			Parts: []genstream.Part{{Text: prompt}},
		}},
		MaxOutputTokens: cfg.MaxTokens,
		Temperature:     cfg.Temperature,
	}

	s, err := provider.Stream(ctx, req)
	if err != nil {
		return err
	}
	defer s.Close()

	if !cfg.Render {
		wrote := false
		for resp, err := range genstream.All(s) {
			if err != nil {
				return err
			}
			text, err := resp.Text()
			if err != nil {
				// Reported once from the aggregate below.
				break
			}
			if text != "" {
				fmt.Fprint(w, text)
				wrote = true
			}
		}
		if wrote {
			fmt.Fprintln(w)
		}
	}

	final, err := s.Response()
	if err != nil {
		return err
	}
	logSummary(logger, final)

	if cfg.Render {
		fmt.Fprintln(w, goldmark.RenderResponse(final, cfg.Width, genstream.DefaultTheme()))
		return nil
	}
	if _, err := final.Text(); err != nil {
		return err
	}
	calls, _ := final.FunctionCalls()
	for _, c := range calls {
		fmt.Fprintf(w, "→ %s\n", c.Name)
	}
	return nil
}

func logSummary(logger genstream.Logger, r *genstream.EnhancedResponse) {
	reason := genstream.FinishReasonUnspecified
	if len(r.Candidates) > 0 && r.Candidates[0].FinishReason != "" {
		reason = r.Candidates[0].FinishReason
	}
	msg := fmt.Sprintf("finished: reason=%s", reason)
	if u := r.UsageMetadata; u != nil {
		msg += fmt.Sprintf(" prompt_tokens=%d output_tokens=%d total_tokens=%d",
			u.PromptTokenCount, u.CandidatesTokenCount, u.TotalTokenCount)
	}
	logger.Info(msg)
}
