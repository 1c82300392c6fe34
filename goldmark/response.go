package goldmark

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fwojciec/genstream"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RenderResponse renders the first candidate of resp: its thought summary,
// its text as markdown, its function calls and a sources footer built from
// citation and grounding metadata. A blocked response renders as a single
// error line.
func RenderResponse(resp *genstream.EnhancedResponse, width int, theme genstream.Theme) string {
	if resp == nil {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	p := newPrinter(theme)

	text, err := resp.Text()
	if err != nil {
		return p.errStyle.Render("✗ " + genstream.BlockErrorMessage(resp.Response))
	}

	var sections []string
	if thoughts, _ := resp.ThoughtSummary(); thoughts != "" {
		wrapped := wrap(p.thinking.Render(thoughts), max(width-2, minWrap))
		sections = append(sections, gutter(p.thinking.Render("┃")+" ", wrapped))
	}
	if text != "" {
		sections = append(sections, p.markdown([]byte(text), width))
	}
	if calls, _ := resp.FunctionCalls(); len(calls) > 0 {
		lines := make([]string, len(calls))
		for i, c := range calls {
			lines[i] = p.renderCall(c, width)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if footer := p.renderSources(resp.Response, width); footer != "" {
		sections = append(sections, footer)
	}
	if note := p.renderFinish(resp.Response); note != "" {
		sections = append(sections, note)
	}
	return strings.Join(sections, "\n\n")
}

// renderCall renders "→ name(args)" on one line, truncating the argument
// preview to fit width.
func (p *printer) renderCall(c genstream.FunctionCall, width int) string {
	head := "→ " + c.Name
	args := "{}"
	if len(c.Args) > 0 {
		if s, err := sonic.ConfigStd.MarshalToString(c.Args); err == nil {
			args = s
		}
	}
	room := width - runewidth.StringWidth(head) - 2
	return p.call.Render(head) + p.muted.Render("("+truncate(args, room)+")")
}

type source struct {
	title string
	uri   string
}

// renderSources lists citations then grounding web chunks of the first
// candidate, numbered in order and without duplicate URIs.
func (p *printer) renderSources(resp genstream.Response, width int) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	var sources []source
	seen := make(map[string]bool)
	add := func(title, uri string) {
		if uri == "" || seen[uri] {
			return
		}
		seen[uri] = true
		sources = append(sources, source{title: title, uri: uri})
	}
	if c.CitationMetadata != nil {
		for _, cit := range c.CitationMetadata.Citations {
			add(cit.Title, cit.URI)
		}
	}
	if c.GroundingMetadata != nil {
		for _, ch := range c.GroundingMetadata.GroundingChunks {
			if ch.Web != nil {
				add(ch.Web.Title, ch.Web.URI)
			}
		}
	}
	if len(sources) == 0 {
		return ""
	}

	lines := []string{p.heading.Render("Sources")}
	markerWidth := runewidth.StringWidth(fmt.Sprintf("[%d] ", len(sources)))
	for i, s := range sources {
		marker := runewidth.FillRight(fmt.Sprintf("[%d] ", i+1), markerWidth)
		entry := s.uri
		if s.title != "" {
			entry = s.title + " " + p.muted.Render("("+s.uri+")")
		}
		room := width - markerWidth
		if s.title != "" && runewidth.StringWidth(s.title) > room {
			entry = truncate(s.title, room)
		}
		lines = append(lines, p.muted.Render(marker)+entry)
	}
	return strings.Join(lines, "\n")
}

// renderFinish notes a finish reason other than a normal stop.
func (p *printer) renderFinish(resp genstream.Response) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	switch reason := resp.Candidates[0].FinishReason; reason {
	case "", genstream.FinishReasonStop:
		return ""
	default:
		return p.muted.Render("finish reason: " + string(reason))
	}
}

// truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut. Grapheme clusters are never split.
func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String() + "…"
}
