package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "two words", input: "hello world", expected: 2},
		{name: "cjk then latin", input: "你好world", expected: 3},
		{name: "punctuation separates", input: "100% done", expected: 2},
		{name: "only punctuation", input: "... --- !!!", expected: 0},
		{name: "apostrophe splits", input: "don't", expected: 2},
		{name: "hyphen splits", input: "well-known", expected: 2},
		{name: "digits and letters one run", input: "abc123def", expected: 1},
		{name: "latin accents", input: "café naïve", expected: 2},
		{name: "cyrillic", input: "привет мир", expected: 2},
		{name: "hiragana", input: "ありがとう", expected: 5},
		{name: "katakana", input: "カタカナ", expected: 4},
		{name: "hangul syllables", input: "안녕", expected: 2},
		{name: "cjk resets run", input: "ab中cd", expected: 3},
		{name: "extension b ideograph", input: "\U00020000x", expected: 2},
		{name: "compatibility ideograph", input: "豈", expected: 1},
		{name: "whitespace variety", input: "a\tb\nc d", expected: 4},
		{name: "combining mark ends run", input: "e\u0301x", expected: 2},
		{name: "emoji separates", input: "go🚀go", expected: 2},
		{name: "superscript digit is number", input: "x²", expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CountWords(tc.input))
		})
	}
}
