package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestFetcher_UTF8AfterLongASCIIHead(t *testing.T) {
	page := "<html><head>" + strings.Repeat("<!-- padding -->", 80) + "</head><body><p>café 你好</p></body></html>"
	require.Greater(t, strings.Index(page, "café"), prescanBytes)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	body, err := New(testSettings()).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, body, "<p>café 你好</p>")
	assert.Equal(t, page, body)
}

func TestDecode_MetaCharsetWins(t *testing.T) {
	text := "<p>Привет, мир! Это проверка кодировки страницы.</p>"

	tests := []struct {
		name string
		head string
	}{
		{name: "meta charset", head: `<meta charset="koi8-r">`},
		{name: "http-equiv", head: `<meta http-equiv="Content-Type" content="text/html; charset=KOI8-R">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := "<html><head>" + tt.head + "</head><body>" + text + "</body></html>"
			encoded, err := charmap.KOI8R.NewEncoder().String(page)
			require.NoError(t, err)

			decoded, err := decode([]byte(encoded), "text/html")

			require.NoError(t, err)
			assert.Equal(t, page, decoded)
		})
	}
}

func TestDecode_MetaLatin1OverValidUTF8Bytes(t *testing.T) {
	// "Ã©" in windows-1252 is the UTF-8 encoding of "é"; the declaration
	// still decides.
	body := []byte(`<meta charset="iso-8859-1"><p>caf` + "\xc3\xa9" + `</p>`)

	decoded, err := decode(body, "text/html")

	require.NoError(t, err)
	assert.Equal(t, `<meta charset="iso-8859-1"><p>cafÃ©</p>`, decoded)
}

func TestDecode_HeaderCharsetWins(t *testing.T) {
	body := []byte(`<meta charset="koi8-r"><p>caf` + "\xe9" + `</p>`)

	decoded, err := decode(body, "text/html; charset=iso-8859-1")

	require.NoError(t, err)
	assert.Equal(t, `<meta charset="koi8-r"><p>café</p>`, decoded)
}

func TestMetaCharset(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "charset attribute", body: `<meta charset="utf-8">`, expected: "utf-8"},
		{name: "unquoted and upper case", body: `<META CHARSET=KOI8-R>`, expected: "koi8-r"},
		{name: "latin1 alias", body: `<meta charset="iso-8859-1">`, expected: "windows-1252"},
		{name: "http-equiv", body: `<meta http-equiv="content-type" content="text/html; charset=shift_jis">`, expected: "shift_jis"},
		{name: "self closing", body: `<meta charset="utf-8" />`, expected: "utf-8"},
		{name: "first declaration wins", body: `<meta charset="koi8-r"><meta charset="utf-8">`, expected: "koi8-r"},
		{name: "unknown label ignored", body: `<meta charset="x-bogus"><meta charset="utf-8">`, expected: "utf-8"},
		{name: "content without http-equiv ignored", body: `<meta content="text/html; charset=koi8-r">`, expected: ""},
		{name: "no meta", body: `<html><head><title>t</title></head></html>`, expected: ""},
		{name: "meta in comment ignored", body: `<!-- <meta charset="koi8-r"> -->`, expected: ""},
		{name: "beyond prescan window", body: strings.Repeat(" ", prescanBytes) + `<meta charset="koi8-r">`, expected: ""},
		{name: "empty", body: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metaCharset([]byte(tt.body)))
		})
	}
}

func TestContentCharset(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{content: "text/html; charset=utf-8", expected: "utf-8"},
		{content: "text/html;charset = 'koi8-r'", expected: "koi8-r"},
		{content: `text/html; CHARSET="big5"; x=y`, expected: "big5"},
		{content: "text/html; charset=gbk extra", expected: "gbk"},
		{content: "text/html", expected: ""},
		{content: "text/html; charset", expected: ""},
		{content: `text/html; charset="unterminated`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.expected, contentCharset(tt.content))
		})
	}
}
