package text

import (
	"strings"
	"unicode"
)

var urlPrefixes = [][]rune{
	[]rune("http://"),
	[]rune("https://"),
	[]rune("www."),
}

// StripURLs removes tokens starting with http://, https:// or www. unless
// the preceding character is an ASCII letter, digit or '.'. A token ends at
// whitespace or at one of ) ] } > " ' <, which is kept.
func StripURLs(s string) string {
	chars := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(chars); {
		if isURLStart(chars, i) {
			i = skipURL(chars, i)
			continue
		}
		b.WriteRune(chars[i])
		i++
	}
	return b.String()
}

func isURLStart(chars []rune, i int) bool {
	if i > 0 {
		prev := chars[i-1]
		if isASCIIAlnum(prev) || prev == '.' {
			return false
		}
	}
	for _, prefix := range urlPrefixes {
		if hasPrefixAt(chars, i, prefix) {
			return true
		}
	}
	return false
}

func skipURL(chars []rune, i int) int {
	for i < len(chars) {
		ch := chars[i]
		if unicode.IsSpace(ch) || strings.ContainsRune(`)]}>"'<`, ch) {
			break
		}
		i++
	}
	return i
}

func hasPrefixAt(chars []rune, i int, prefix []rune) bool {
	if i+len(prefix) > len(chars) {
		return false
	}
	for j, r := range prefix {
		if chars[i+j] != r {
			return false
		}
	}
	return true
}

func isASCIIAlnum(r rune) bool {
	return r < 0x80 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
}

// NormalizeWhitespace collapses runs of non-newline whitespace to one space
// and runs of newlines to one newline. Spaces directly after a newline are
// dropped. The result is trimmed.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	lastNewline := false
	for _, ch := range s {
		switch {
		case ch == '\n':
			if b.Len() > 0 && !lastNewline {
				b.WriteByte('\n')
			}
			lastNewline = true
			lastSpace = false
		case unicode.IsSpace(ch):
			if !lastSpace && !lastNewline {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(ch)
			lastSpace = false
			lastNewline = false
		}
	}
	return strings.TrimSpace(b.String())
}
