// Package markdown renders a parsed HTML document as Markdown.
package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter adapts Convert to the driven.Converter port.
type Converter struct{}

// New creates a new Markdown converter.
func New() *Converter {
	return &Converter{}
}

// Format returns the output format this converter produces.
func (c *Converter) Format() domain.OutputFormat {
	return domain.FormatMarkdown
}

// Convert renders nodes as Markdown. The base URL is unused: links
// degrade to their visible text.
func (c *Converter) Convert(nodes []domain.Node, _ string) string {
	return Convert(nodes)
}

type listKind struct {
	ordered bool
	next    int
}

// convContext is the mutable state threaded through one conversion.
type convContext struct {
	indent      int
	lists       []*listKind
	inCodeBlock bool
	inTable     bool
}

// Convert renders nodes as Markdown, trimmed of surrounding whitespace.
func Convert(nodes []domain.Node) string {
	ctx := &convContext{}
	return strings.TrimSpace(ctx.children(nodes))
}

func (ctx *convContext) children(nodes []domain.Node) string {
	var b strings.Builder
	for i := range nodes {
		b.WriteString(ctx.node(&nodes[i]))
	}
	return b.String()
}

func (ctx *convContext) node(n *domain.Node) string {
	if n.IsText() {
		return ctx.text(n.Data)
	}

	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Tag[1] - '0')
		return strings.Repeat("#", level) + " " + strings.TrimSpace(ctx.children(n.Children)) + "\n\n"
	case "p":
		content := strings.TrimSpace(ctx.children(n.Children))
		if content == "" {
			return ""
		}
		return content + "\n\n"
	case "br":
		return "  \n"
	case "hr":
		return "---\n\n"
	case "strong", "b":
		return "**" + ctx.children(n.Children) + "**"
	case "em", "i":
		return "*" + ctx.children(n.Children) + "*"
	case "del", "s", "strike":
		return "~~" + ctx.children(n.Children) + "~~"
	case "code":
		if ctx.inCodeBlock {
			return ctx.children(n.Children)
		}
		return "`" + ctx.children(n.Children) + "`"
	case "pre":
		saved := ctx.inCodeBlock
		ctx.inCodeBlock = true
		content := ctx.children(n.Children)
		ctx.inCodeBlock = saved
		return "```\n" + strings.TrimRightFunc(content, unicode.IsSpace) + "\n```\n\n"
	case "img", "script", "style", "head", "noscript":
		return ""
	case "ul":
		return ctx.list(n.Children, false)
	case "ol":
		return ctx.list(n.Children, true)
	case "li":
		return ctx.listItem(n.Children)
	case "blockquote":
		return ctx.blockquote(n.Children)
	case "table":
		return ctx.table(n.Children)
	default:
		// a, tr, td, th, div, span and unknown tags are transparent.
		return ctx.children(n.Children)
	}
}

func (ctx *convContext) text(s string) string {
	switch {
	case ctx.inCodeBlock:
		return s
	case ctx.inTable:
		return strings.ReplaceAll(s, "|", `\|`)
	default:
		// One non-overlapping pass: runs of three or more spaces survive.
		return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "  ", " ")
	}
}

func (ctx *convContext) list(items []domain.Node, ordered bool) string {
	kind := &listKind{ordered: ordered, next: 1}
	ctx.lists = append(ctx.lists, kind)
	ctx.indent++

	content := ctx.children(items)

	ctx.indent--
	ctx.lists = ctx.lists[:len(ctx.lists)-1]
	return content + "\n"
}

func (ctx *convContext) listItem(children []domain.Node) string {
	indent := ""
	if ctx.indent > 1 {
		indent = strings.Repeat("  ", ctx.indent-1)
	}

	marker := "- "
	if len(ctx.lists) > 0 {
		if kind := ctx.lists[len(ctx.lists)-1]; kind.ordered {
			marker = strconv.Itoa(kind.next) + ". "
			kind.next++
		}
	}

	content := strings.TrimSpace(ctx.children(children))
	return indent + marker + content + "\n"
}

func (ctx *convContext) blockquote(children []domain.Node) string {
	content := ctx.children(children)
	quoted := lines(content)
	for i, line := range quoted {
		quoted[i] = "> " + line
	}
	return strings.Join(quoted, "\n") + "\n\n"
}

func (ctx *convContext) table(children []domain.Node) string {
	saved := ctx.inTable
	ctx.inTable = true

	var rows [][]string
	for i := range children {
		row := &children[i]
		if !row.IsElement() || row.Tag != "tr" {
			continue
		}
		var cells []string
		for j := range row.Children {
			cell := &row.Children[j]
			if cell.IsElement() && (cell.Tag == "td" || cell.Tag == "th") {
				cells = append(cells, strings.TrimSpace(ctx.children(cell.Children)))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	ctx.inTable = saved

	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	var b strings.Builder
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// lines splits s on newlines, dropping the empty piece after a trailing
// newline and any carriage return ending a line.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
