package htmlparse

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxEntityLen is the number of candidate characters collected after '&'
// before the candidate is abandoned.
const maxEntityLen = 10

var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   "\"",
	"apos":   "'",
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"euro":   "€",
	"pound":  "£",
	"yen":    "¥",
	"times":  "×",
	"divide": "÷",
	"minus":  "−",
	"plusmn": "±",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
}

// DecodeEntities replaces character references in text.
//
// Numeric (&#65; &#x41;) and a fixed set of named references are decoded.
// Anything unresolvable is kept literally, so the function never fails.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '&' {
			b.WriteRune(runes[i])
			continue
		}

		start := i + 1
		j := start
		terminated := false
		aborted := false
		for ; j < len(runes); j++ {
			ch := runes[j]
			if ch == ';' {
				terminated = true
				break
			}
			if ch == '&' || j-start > maxEntityLen {
				aborted = true
				break
			}
		}

		name := string(runes[start:j])
		switch {
		case terminated:
			if decoded, ok := decodeEntity(name); ok {
				b.WriteString(decoded)
			} else {
				b.WriteString("&" + name + ";")
			}
			i = j
		case aborted:
			// The triggering character is emitted literally, not rescanned.
			b.WriteString("&" + name)
			b.WriteRune(runes[j])
			i = j
		default:
			b.WriteString("&" + name)
			i = len(runes)
		}
	}

	return b.String()
}

func decodeEntity(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, "#"); ok {
		return decodeNumeric(rest)
	}
	v, ok := namedEntities[name]
	return v, ok
}

func decodeNumeric(digits string) (string, bool) {
	if digits == "" {
		return "", false
	}

	base := 10
	if digits[0] == 'x' || digits[0] == 'X' {
		base = 16
		digits = digits[1:]
	}
	// One leading plus sign is allowed; ParseUint alone rejects it.
	digits = strings.TrimPrefix(digits, "+")
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return "", false
	}

	cp, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return "", false
	}
	r := rune(cp)
	if !utf8.ValidRune(r) {
		return "", false
	}
	return string(r), true
}
