package htmlparse

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

// voidElements never have children and close as soon as their start tag ends.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements have their content skipped up to the matching close tag.
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// IsVoidElement reports whether tag never has children.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// IsRawTextElement reports whether the content of tag is skipped verbatim.
func IsRawTextElement(tag string) bool {
	return rawTextElements[tag]
}

type state int

const (
	stateText state = iota
	stateTagOpen
	stateTagName
	stateCloseTagName
	stateAttrName
	stateAttrValueStart
	stateAttrValueQuoted
	stateAttrValueUnquoted
	stateSelfClosing
	stateComment
)

// frame is an element whose start tag has been seen but which is not closed yet.
type frame struct {
	tag      string
	attrs    []domain.Attr
	children []domain.Node
}

func (f *frame) node() domain.Node {
	return domain.Element(f.tag, f.attrs, f.children...)
}

// parser is a single-use character state machine. It is not safe for
// concurrent use; Parse creates a fresh one per call.
type parser struct {
	input []rune
	pos   int
	state state
	quote rune
	stack []*frame
	root  []domain.Node
}

// Parse builds a document tree from html and returns the top-level nodes.
//
// Parsing never fails. Unknown constructs are skipped, unmatched close tags
// are ignored and elements still open at end of input are closed.
func Parse(html string) []domain.Node {
	p := &parser{
		input: []rune(html),
		state: stateText,
	}
	return p.run()
}

func (p *parser) run() []domain.Node {
	for p.pos < len(p.input) {
		p.step()
	}
	for len(p.stack) > 0 {
		p.popAndAttach()
	}
	return p.root
}

func (p *parser) step() {
	switch p.state {
	case stateText:
		p.text()
	case stateTagOpen:
		p.tagOpen()
	case stateTagName:
		p.tagName()
	case stateCloseTagName:
		p.closeTagName()
	case stateAttrName:
		p.attrName()
	case stateAttrValueStart:
		p.attrValueStart()
	case stateAttrValueQuoted:
		p.attrValueQuoted()
	case stateAttrValueUnquoted:
		p.attrValueUnquoted()
	case stateSelfClosing:
		p.selfClosing()
	case stateComment:
		p.comment()
	}
}

func (p *parser) text() {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != '<' {
		p.pos++
	}

	if start < p.pos {
		decoded := DecodeEntities(string(p.input[start:p.pos]))
		if strings.TrimSpace(decoded) != "" {
			p.attach(domain.Text(decoded))
		}
	}

	if p.pos < len(p.input) {
		p.pos++
		p.state = stateTagOpen
	}
}

func (p *parser) tagOpen() {
	if p.hasPrefix("!--") {
		p.pos += 3
		p.state = stateComment
		return
	}

	switch p.input[p.pos] {
	case '/':
		p.pos++
		p.state = stateCloseTagName
	case '!', '?':
		// Doctype or processing instruction.
		p.skipPast('>')
		p.state = stateText
	default:
		p.state = stateTagName
	}
}

func (p *parser) tagName() {
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if unicode.IsSpace(ch) || ch == '>' || ch == '/' {
			break
		}
		p.pos++
	}

	tag := strings.ToLower(string(p.input[start:p.pos]))
	p.stack = append(p.stack, &frame{tag: tag})

	p.skipSpace()
	if p.pos >= len(p.input) {
		return
	}
	switch p.input[p.pos] {
	case '>':
		p.pos++
		p.startTagDone()
	case '/':
		p.pos++
		p.state = stateSelfClosing
	default:
		p.state = stateAttrName
	}
}

func (p *parser) closeTagName() {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != '>' {
		p.pos++
	}
	tag := strings.ToLower(strings.TrimSpace(string(p.input[start:p.pos])))
	if p.pos < len(p.input) {
		p.pos++
	}
	p.closeTag(tag)
	p.state = stateText
}

func (p *parser) attrName() {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return
	}

	switch p.input[p.pos] {
	case '>':
		p.pos++
		p.startTagDone()
		return
	case '/':
		p.pos++
		p.state = stateSelfClosing
		return
	}

	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == '=' || unicode.IsSpace(ch) || ch == '>' || ch == '/' {
			break
		}
		p.pos++
	}
	name := strings.ToLower(string(p.input[start:p.pos]))
	if top := p.top(); top != nil {
		top.attrs = append(top.attrs, domain.Attr{Name: name})
	}

	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == '=' {
		p.pos++
		p.state = stateAttrValueStart
		return
	}
	p.state = stateAttrName
}

func (p *parser) attrValueStart() {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return
	}
	ch := p.input[p.pos]
	if ch == '"' || ch == '\'' {
		p.pos++
		p.quote = ch
		p.state = stateAttrValueQuoted
		return
	}
	p.state = stateAttrValueUnquoted
}

func (p *parser) attrValueQuoted() {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != p.quote {
		p.pos++
	}
	p.setAttrValue(string(p.input[start:p.pos]))
	if p.pos < len(p.input) {
		p.pos++
	}
	p.state = stateAttrName
}

func (p *parser) attrValueUnquoted() {
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if unicode.IsSpace(ch) || ch == '>' || ch == '/' {
			break
		}
		p.pos++
	}
	p.setAttrValue(string(p.input[start:p.pos]))
	p.state = stateAttrName
}

func (p *parser) setAttrValue(raw string) {
	top := p.top()
	if top == nil || len(top.attrs) == 0 {
		return
	}
	top.attrs[len(top.attrs)-1].Value = DecodeEntities(raw)
}

func (p *parser) selfClosing() {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == '>' {
		p.pos++
	}
	if len(p.stack) > 0 {
		p.popAndAttach()
	}
	p.state = stateText
}

func (p *parser) comment() {
	for p.pos < len(p.input) {
		if p.hasPrefix("-->") {
			p.pos += 3
			break
		}
		p.pos++
	}
	p.state = stateText
}

// startTagDone runs when '>' ends the start tag of the frame on top of the stack.
func (p *parser) startTagDone() {
	p.state = stateText
	top := p.top()
	if top == nil {
		return
	}
	switch {
	case IsVoidElement(top.tag):
		p.popAndAttach()
	case IsRawTextElement(top.tag):
		p.skipRawText(top.tag)
		p.popAndAttach()
	}
}

// closeTag pops every frame down to and including the nearest one named tag.
// Unmatched close tags are ignored.
func (p *parser) closeTag(tag string) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].tag != tag {
			continue
		}
		for len(p.stack) > i {
			p.popAndAttach()
		}
		return
	}
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) popAndAttach() {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.attach(f.node())
}

// attach appends n to the innermost open element, or to the root.
func (p *parser) attach(n domain.Node) {
	if top := p.top(); top != nil {
		top.children = append(top.children, n)
		return
	}
	p.root = append(p.root, n)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipPast(target rune) {
	for p.pos < len(p.input) && p.input[p.pos] != target {
		p.pos++
	}
	if p.pos < len(p.input) {
		p.pos++
	}
}

// skipRawText advances past the first case-insensitive "</tag>".
// Without one, the rest of the input is consumed.
func (p *parser) skipRawText(tag string) {
	closer := []rune("</" + tag + ">")
	for p.pos < len(p.input) {
		if p.pos+len(closer) <= len(p.input) && equalFoldRunes(p.input[p.pos:p.pos+len(closer)], closer) {
			p.pos += len(closer)
			return
		}
		p.pos++
	}
}

func (p *parser) hasPrefix(lit string) bool {
	i := p.pos
	for _, r := range lit {
		if i >= len(p.input) || p.input[i] != r {
			return false
		}
		i++
	}
	return true
}

func equalFoldRunes(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}
