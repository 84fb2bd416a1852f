// Package htmlparse turns arbitrary, possibly malformed HTML into a
// document tree of domain.Node values.
//
// The parser is a single-pass character state machine with browser-style
// recovery for unbalanced markup: it never fails and never backtracks
// beyond fixed literal matches such as "<!--" and "</script>".
//
// Character references are decoded in text and attribute values by
// DecodeEntities, which handles numeric references and a small fixed table
// of named ones.
package htmlparse
