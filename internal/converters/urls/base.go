package urls

import (
	"strings"
)

// Base is a parsed base URL used to resolve relative links.
type Base struct {
	Scheme string
	Host   string
	Port   string // empty when the authority has no numeric port
	Dir    string // path up to and including its last '/'
}

// Origin returns scheme://host[:port].
func (b Base) Origin() string {
	return b.Scheme + "://" + b.hostPort()
}

func (b Base) hostPort() string {
	if b.Port == "" {
		return b.Host
	}
	return b.Host + ":" + b.Port
}

// ParseBase parses scheme://[userinfo@]host[:port][path][?query][#fragment].
// It reports false when raw has no "://", an empty scheme or an empty host.
func ParseBase(raw string) (Base, bool) {
	trimmed := strings.TrimSpace(raw)
	schemeEnd := strings.Index(trimmed, "://")
	if schemeEnd < 0 {
		return Base{}, false
	}
	scheme := strings.TrimSpace(trimmed[:schemeEnd])
	if scheme == "" {
		return Base{}, false
	}

	rest := trimmed[schemeEnd+3:]
	authorityEnd := len(rest)
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authorityEnd = i
	}
	authority := rest[:authorityEnd]
	if authority == "" {
		return Base{}, false
	}
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		authority = authority[at+1:]
	}

	host, port := splitHostPort(authority)
	if host == "" {
		return Base{}, false
	}

	path := rest[authorityEnd:]
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}

	dir := "/"
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		dir = path[:i+1]
	}

	return Base{Scheme: scheme, Host: host, Port: port, Dir: dir}, true
}

// splitHostPort treats a non-empty all-digit segment after the last ':' as
// the port. Anything else leaves the whole authority as the host.
func splitHostPort(authority string) (host, port string) {
	colon := strings.LastIndexByte(authority, ':')
	if colon < 0 {
		return authority, ""
	}
	host, port = authority[:colon], authority[colon+1:]
	if host == "" || port == "" || !allDigits(port) {
		return authority, ""
	}
	return host, port
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var discardedSchemes = []string{"javascript:", "data:", "mailto:", "tel:"}

// Resolve turns href into an absolute URL against base, which may be nil.
// It reports false for empty hrefs, fragment-only hrefs and non-navigable
// schemes. Without a base, relative hrefs are returned trimmed but unresolved.
func Resolve(href string, base *Base) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	lower := strings.ToLower(href)
	for _, scheme := range discardedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return href, true
	}

	if strings.HasPrefix(href, "//") {
		if base == nil {
			return href, true
		}
		return base.Scheme + ":" + href, true
	}
	if base == nil {
		return href, true
	}
	if strings.HasPrefix(href, "/") {
		return base.Origin() + href, true
	}

	path, suffix := href, ""
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		path, suffix = href[:i], href[i:]
	}
	return base.Origin() + normalizePath(base.Dir+path) + suffix, true
}

// normalizePath resolves "." and ".." segments. A leading slash is kept, and
// a trailing slash is kept unless the result is the bare root.
func normalizePath(path string) string {
	leading := strings.HasPrefix(path, "/")
	trailing := len(path) > 1 && strings.HasSuffix(path, "/")

	var stack []string
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, segment)
		}
	}

	var b strings.Builder
	if leading {
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(stack, "/"))
	normalized := b.String()
	if normalized == "" {
		normalized = "/"
	}
	if trailing && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized
}
