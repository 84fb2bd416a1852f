package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Base
	}{
		{name: "file path", input: "https://a.com/b/c", expected: Base{Scheme: "https", Host: "a.com", Dir: "/b/"}},
		{name: "directory path", input: "https://a.com/b/c/", expected: Base{Scheme: "https", Host: "a.com", Dir: "/b/c/"}},
		{name: "no path", input: "http://a.com", expected: Base{Scheme: "http", Host: "a.com", Dir: "/"}},
		{name: "query only", input: "http://a.com?x=1", expected: Base{Scheme: "http", Host: "a.com", Dir: "/"}},
		{name: "port", input: "http://a.com:8080/x", expected: Base{Scheme: "http", Host: "a.com", Port: "8080", Dir: "/"}},
		{name: "non numeric port is host", input: "http://a.com:abc/", expected: Base{Scheme: "http", Host: "a.com:abc", Dir: "/"}},
		{name: "empty port is host", input: "http://a.com:/", expected: Base{Scheme: "http", Host: "a.com:", Dir: "/"}},
		{name: "userinfo stripped", input: "https://user:pw@a.com/p/q", expected: Base{Scheme: "https", Host: "a.com", Dir: "/p/"}},
		{name: "query and fragment ignored", input: "https://a.com/x/y?q=/z#f", expected: Base{Scheme: "https", Host: "a.com", Dir: "/x/"}},
		{name: "surrounding space", input: "  https://a.com/  ", expected: Base{Scheme: "https", Host: "a.com", Dir: "/"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base, ok := ParseBase(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.expected, base)
		})
	}
}

func TestParseBase_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"a.com/path",
		"://a.com",
		"https:///path",
		"https://user@/x",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := ParseBase(input)
			assert.False(t, ok)
		})
	}
}

func TestBase_Origin(t *testing.T) {
	assert.Equal(t, "https://a.com", Base{Scheme: "https", Host: "a.com"}.Origin())
	assert.Equal(t, "http://a.com:81", Base{Scheme: "http", Host: "a.com", Port: "81"}.Origin())
}

func TestResolve(t *testing.T) {
	base, ok := ParseBase("https://a.com/b/c")
	require.True(t, ok)

	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{name: "parent", href: "../d", expected: "https://a.com/d"},
		{name: "root relative", href: "/x", expected: "https://a.com/x"},
		{name: "absolute unchanged", href: "http://other.com", expected: "http://other.com"},
		{name: "absolute mixed case scheme unchanged", href: "HTTPS://Other.com/A", expected: "HTTPS://Other.com/A"},
		{name: "protocol relative", href: "//cdn.com/x.js", expected: "https://cdn.com/x.js"},
		{name: "sibling", href: "d", expected: "https://a.com/b/d"},
		{name: "dot segment", href: "./d/./e", expected: "https://a.com/b/d/e"},
		{name: "too many parents", href: "../../../d", expected: "https://a.com/d"},
		{name: "trailing slash kept", href: "d/", expected: "https://a.com/b/d/"},
		{name: "parent to root", href: "..", expected: "https://a.com/"},
		{name: "query kept", href: "d?x=../y", expected: "https://a.com/b/d?x=../y"},
		{name: "fragment kept", href: "../d#top", expected: "https://a.com/d#top"},
		{name: "query only", href: "?page=2", expected: "https://a.com/b/?page=2"},
		{name: "trimmed", href: "  /x  ", expected: "https://a.com/x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Resolve(tc.href, &base)
			require.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestResolve_Discarded(t *testing.T) {
	base, _ := ParseBase("https://a.com/")

	for _, href := range []string{
		"",
		"   ",
		"#frag",
		"javascript:void(0)",
		"JavaScript:alert(1)",
		"data:text/plain,x",
		"mailto:a@b.com",
		"tel:+100",
	} {
		t.Run(href, func(t *testing.T) {
			_, ok := Resolve(href, &base)
			assert.False(t, ok)
		})
	}
}

func TestResolve_WithoutBase(t *testing.T) {
	tests := []struct {
		href     string
		expected string
	}{
		{href: "../d", expected: "../d"},
		{href: " /x ", expected: "/x"},
		{href: "//cdn.com/x", expected: "//cdn.com/x"},
		{href: "https://a.com", expected: "https://a.com"},
	}

	for _, tc := range tests {
		t.Run(tc.href, func(t *testing.T) {
			got, ok := Resolve(tc.href, nil)
			require.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestResolve_PortPreserved(t *testing.T) {
	base, ok := ParseBase("http://localhost:3000/docs/index.html")
	require.True(t, ok)

	got, ok := Resolve("api.html", &base)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3000/docs/api.html", got)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "/", expected: "/"},
		{input: "", expected: "/"},
		{input: "/a/b/../c", expected: "/a/c"},
		{input: "/a/./b/", expected: "/a/b/"},
		{input: "/a//b", expected: "/a/b"},
		{input: "/..", expected: "/"},
		{input: "/a/../", expected: "/"},
		{input: "a/b", expected: "a/b"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizePath(tc.input))
		})
	}
}
