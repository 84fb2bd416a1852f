// Package urls lists the navigable links of a parsed HTML document as
// Markdown image-style entries with absolute URLs.
package urls

import (
	"strings"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter adapts Extract to the driven.Converter port.
type Converter struct{}

// New creates a new link extractor.
func New() *Converter {
	return &Converter{}
}

// Format returns the output format this converter produces.
func (c *Converter) Format() domain.OutputFormat {
	return domain.FormatURLs
}

// Convert lists the links in nodes, resolved against baseURL.
func (c *Converter) Convert(nodes []domain.Node, baseURL string) string {
	return Extract(nodes, baseURL)
}

// allowedLinkRels are the <link rel> tokens worth listing.
var allowedLinkRels = map[string]bool{
	"canonical": true,
	"alternate": true,
	"prev":      true,
	"next":      true,
	"amphtml":   true,
}

type collector struct {
	base    *Base
	seen    map[string]bool
	entries []string
}

// Extract returns one "![description](absoluteURL)" line per distinct link
// in document order. Links come from a[href], area[href], form[action],
// iframe[src] and link[href] with an allowed rel. An unparseable baseURL
// leaves relative links unresolved.
func Extract(nodes []domain.Node, baseURL string) string {
	c := &collector{seen: make(map[string]bool)}
	if base, ok := ParseBase(baseURL); ok {
		c.base = &base
	}
	for i := range nodes {
		c.visit(&nodes[i])
	}
	return strings.Join(c.entries, "\n")
}

func (c *collector) visit(n *domain.Node) {
	if !n.IsElement() {
		return
	}

	switch n.Tag {
	case "a":
		if href, ok := n.Attr("href"); ok {
			c.add(anchorDescription(n.Children, href), href)
		}
	case "area":
		if href, ok := n.Attr("href"); ok {
			c.add("area href", href)
		}
	case "form":
		if action, ok := n.Attr("action"); ok {
			c.add("form action", action)
		}
	case "iframe":
		if src, ok := n.Attr("src"); ok {
			c.add("iframe src", src)
		}
	case "link":
		rel, ok := n.Attr("rel")
		if ok && relAllowed(rel) {
			if href, ok := n.Attr("href"); ok {
				c.add("link rel="+strings.TrimSpace(rel), href)
			}
		}
	}

	for i := range n.Children {
		c.visit(&n.Children[i])
	}
}

func (c *collector) add(description, href string) {
	absolute, ok := Resolve(href, c.base)
	if !ok || c.seen[absolute] {
		return
	}
	c.seen[absolute] = true
	c.entries = append(c.entries, "!["+description+"]("+absolute+")")
}

func relAllowed(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if allowedLinkRels[token] {
			return true
		}
	}
	return false
}

// anchorDescription is the whitespace-collapsed visible text of an anchor,
// or the trimmed href when the anchor has no text.
func anchorDescription(children []domain.Node, href string) string {
	parts := make([]string, 0, len(children))
	for i := range children {
		parts = append(parts, visibleText(&children[i]))
	}
	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if text == "" {
		return strings.TrimSpace(href)
	}
	return text
}

func visibleText(n *domain.Node) string {
	if n.IsText() {
		return n.Data
	}
	parts := make([]string, 0, len(n.Children))
	for i := range n.Children {
		parts = append(parts, visibleText(&n.Children[i]))
	}
	return strings.Join(parts, " ")
}
