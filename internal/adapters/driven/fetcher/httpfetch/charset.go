package httpfetch

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// minDetectConfidence is the chardet confidence below which an
// undeclared body keeps the windows-1252 fallback.
const minDetectConfidence = 50

// prescanBytes is how far into the body a <meta> charset is honoured.
const prescanBytes = 1024

// decode converts body to UTF-8 using the Content-Type charset, a BOM
// or a meta declaration, in that order. With none of them, a body that is
// valid UTF-8 is kept as is and anything else is guessed from the bytes.
func decode(body []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && metaCharset(body) == "" {
		if utf8.Valid(body) {
			enc, name = encoding.Nop, "utf-8"
		} else if guess, guessName, ok := detectEncoding(body); ok {
			enc, name = guess, guessName
		}
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// detectEncoding asks chardet for the most likely charset of body and
// maps it to a WHATWG encoding.
func detectEncoding(body []byte) (encoding.Encoding, string, bool) {
	result, err := chardet.NewTextDetector().DetectBest(body)
	if err != nil || result.Confidence < minDetectConfidence {
		return nil, "", false
	}
	// chardet spells some labels with a hyphen WHATWG omits (GB-18030).
	for _, label := range []string{result.Charset, strings.ReplaceAll(result.Charset, "-", "")} {
		if enc, name := charset.Lookup(label); enc != nil {
			return enc, name, true
		}
	}
	return nil, "", false
}

// metaCharset returns the canonical name of the encoding declared by the
// first <meta charset> or <meta http-equiv="content-type"> within the
// prescan window, or "" when there is no known declaration.
func metaCharset(body []byte) string {
	if len(body) > prescanBytes {
		body = body[:prescanBytes]
	}

	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, hasAttr := z.TagName()
			if string(tag) != "meta" || !hasAttr {
				continue
			}

			var label, httpEquiv, content string
			for more := true; more; {
				var key, val []byte
				key, val, more = z.TagAttr()
				switch string(key) {
				case "charset":
					label = strings.TrimSpace(string(val))
				case "http-equiv":
					httpEquiv = strings.ToLower(strings.TrimSpace(string(val)))
				case "content":
					content = string(val)
				}
			}
			if label == "" && httpEquiv == "content-type" {
				label = contentCharset(content)
			}
			if label == "" {
				continue
			}
			if enc, name := charset.Lookup(label); enc != nil {
				return name
			}
		}
	}
}

// contentCharset extracts the charset parameter from a meta content value
// such as "text/html; charset=utf-8".
func contentCharset(content string) string {
	i := strings.Index(strings.ToLower(content), "charset")
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(content[i+len("charset"):], " \t\n\f\r")
	rest, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return ""
	}
	rest = strings.TrimLeft(rest, " \t\n\f\r")
	if rest == "" {
		return ""
	}

	if q := rest[0]; q == '"' || q == '\'' {
		rest = rest[1:]
		if j := strings.IndexByte(rest, q); j >= 0 {
			return rest[:j]
		}
		return ""
	}
	if j := strings.IndexAny(rest, "; \t\n\f\r"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
