// Package budget counts words and enforces the per-batch word budget.
package budget

import "unicode"

// cjkLike holds the scripts whose characters each count as a word on their
// own: CJK ideographs (with extensions and compatibility forms), Hiragana,
// Katakana and Hangul.
var cjkLike = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1100, Hi: 0x11ff, Stride: 1},
		{Lo: 0x3040, Hi: 0x309f, Stride: 1},
		{Lo: 0x30a0, Hi: 0x30ff, Stride: 1},
		{Lo: 0x3130, Hi: 0x318f, Stride: 1},
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
		{Lo: 0xac00, Hi: 0xd7af, Stride: 1},
		{Lo: 0xf900, Hi: 0xfaff, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2a6df, Stride: 1},
		{Lo: 0x2a700, Hi: 0x2b73f, Stride: 1},
		{Lo: 0x2b740, Hi: 0x2b81f, Stride: 1},
		{Lo: 0x2b820, Hi: 0x2ceaf, Stride: 1},
		{Lo: 0x2f800, Hi: 0x2fa1f, Stride: 1},
	},
}

// CountWords counts runs of letters and digits as one word each, and every
// CJK-like character as a word by itself. Everything else separates words.
func CountWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(cjkLike, r):
			count++
			inWord = false
		case isAlphanumeric(r):
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}
