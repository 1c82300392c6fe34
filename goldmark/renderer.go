package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/genstream"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// minWrap is the narrowest column a nested block is wrapped to.
const minWrap = 10

// Model output is GitHub-flavored: tables, strikethrough, task lists and bare
// URLs all show up in practice.
var gfm parser.Parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// printer turns a markdown AST into styled terminal text. Every block method
// returns its rendering without a trailing newline; blocks are joined by a
// blank line.
type printer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	strike    lipgloss.Style
	underline lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	errStyle  lipgloss.Style
	call      lipgloss.Style
	thinking  lipgloss.Style
}

func newPrinter(theme genstream.Theme) *printer {
	return &printer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		strike:    lipgloss.NewStyle().Strikethrough(true),
		underline: lipgloss.NewStyle().Underline(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		errStyle:  lipgloss.NewStyle().Foreground(ansiColor(theme.Error)).Bold(true),
		call:      lipgloss.NewStyle().Foreground(ansiColor(theme.Call)).Bold(true),
		thinking:  lipgloss.NewStyle().Foreground(ansiColor(theme.Thinking)).Italic(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (p *printer) markdown(src []byte, width int) string {
	doc := gfm.Parse(text.NewReader(src))
	return strings.Join(p.blocks(doc, src, width), "\n\n")
}

func (p *printer) blocks(parent ast.Node, src []byte, width int) []string {
	var out []string
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if b := p.block(c, src, width); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (p *printer) block(node ast.Node, src []byte, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(p.inline(n, src), width)
	case *ast.Heading:
		return wrap(p.heading.Render(p.inline(n, src)), width)
	case *ast.FencedCodeBlock:
		code := p.code(n.Lines(), src)
		if lang := string(n.Language(src)); lang != "" {
			return p.muted.Render(lang) + "\n" + code
		}
		return code
	case *ast.CodeBlock:
		return p.code(n.Lines(), src)
	case *ast.List:
		return p.list(n, src, width, "")
	case *ast.ThematicBreak:
		return p.muted.Render(strings.Repeat("─", min(width, 40)))
	case *ast.HTMLBlock:
		return strings.TrimRight(segmentsText(n.Lines(), src), "\n")
	case *ast.Blockquote:
		inner := strings.Join(p.blocks(n, src, max(width-2, minWrap)), "\n\n")
		return gutter(p.muted.Render("│")+" ", inner)
	case *east.Table:
		return p.table(n, src)
	default:
		return strings.Join(p.blocks(n, src, width), "\n\n")
	}
}

// code renders code lines verbatim behind a gutter. Code is never reflowed.
func (p *printer) code(lines *text.Segments, src []byte) string {
	return gutter(p.muted.Render("│")+" ", strings.TrimRight(segmentsText(lines, src), "\n"))
}

// list renders l with indent in front of every marker. Continuation lines
// and nested lists line up with the item text, measured in terminal cells.
func (p *printer) list(l *ast.List, src []byte, width int, indent string) string {
	var items []string
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		prefix := indent + marker
		pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
		inner := max(width-runewidth.StringWidth(prefix), minWrap)

		var parts []string
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				parts = append(parts, p.list(sub, src, width, pad))
				continue
			}
			lead := pad
			if len(parts) == 0 {
				lead = prefix
			}
			parts = append(parts, hang(p.block(ic, src, inner), lead, pad))
		}
		items = append(items, strings.Join(parts, "\n"))
	}
	return strings.Join(items, "\n")
}

func (p *printer) table(t *east.Table, src []byte) string {
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, p.inline(c, src))
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(t.Alignments))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	sep := p.muted.Render(" │ ")
	var lines []string
	for r, row := range rows {
		cells := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = align(cell, widths[i], t.Alignments[i])
		}
		line := strings.TrimRight(strings.Join(cells, sep), " ")
		if r == 0 {
			line = p.bold.Render(line)
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			lines = append(lines, line, p.muted.Render(strings.Join(rule, "─┼─")))
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *printer) inline(node ast.Node, src []byte) string {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		p.writeInline(&sb, c, src)
	}
	return sb.String()
}

func (p *printer) writeInline(sb *strings.Builder, node ast.Node, src []byte) {
	switch n := node.(type) {
	case *ast.Text:
		sb.Write(n.Segment.Value(src))
		switch {
		case n.HardLineBreak():
			sb.WriteByte('\n')
		case n.SoftLineBreak():
			sb.WriteByte(' ')
		}
	case *ast.String:
		sb.Write(n.Value)
	case *ast.Emphasis:
		// ***x*** arrives as nested emphasis, so Level is 1 or 2.
		if n.Level == 1 {
			sb.WriteString(p.italic.Render(p.inline(n, src)))
		} else {
			sb.WriteString(p.bold.Render(p.inline(n, src)))
		}
	case *east.Strikethrough:
		sb.WriteString(p.strike.Render(p.inline(n, src)))
	case *ast.CodeSpan:
		sb.WriteString(p.bold.Render(p.inline(n, src)))
	case *ast.Link:
		p.writeLink(sb, p.inline(n, src), string(n.Destination))
	case *ast.Image:
		p.writeLink(sb, p.inline(n, src), string(n.Destination))
	case *ast.AutoLink:
		sb.WriteString(p.underline.Render(string(n.URL(src))))
	case *east.TaskCheckBox:
		if n.IsChecked {
			sb.WriteString("[x] ")
		} else {
			sb.WriteString("[ ] ")
		}
	case *ast.RawHTML:
		sb.WriteString(segmentsText(n.Segments, src))
	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			p.writeInline(sb, c, src)
		}
	}
}

// writeLink underlines the label and appends the destination unless the
// label already shows it.
func (p *printer) writeLink(sb *strings.Builder, label, dest string) {
	if label == "" || label == dest {
		sb.WriteString(p.underline.Render(dest))
		return
	}
	sb.WriteString(p.underline.Render(label))
	sb.WriteString(" ")
	sb.WriteString(p.muted.Render("(" + dest + ")"))
}

func segmentsText(segs *text.Segments, src []byte) string {
	var sb strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// gutter prefixes every line of s.
func gutter(prefix, s string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// hang puts first in front of the first line of s and rest in front of the
// others.
func hang(s, first, rest string) string {
	return first + strings.ReplaceAll(s, "\n", "\n"+rest)
}

func align(cell string, width int, a east.Alignment) string {
	gap := width - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	switch a {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}
