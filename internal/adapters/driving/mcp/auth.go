package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

const bearerPrefix = "Bearer "

// bearerAuth rejects requests whose Authorization header does not carry
// the current token. With no token configured every request passes.
func bearerAuth(token TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := ""
			if token != nil {
				want = token()
			}
			if want == "" || authorized(r.Header.Get("Authorization"), want) {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn("rejected unauthenticated request from %s", r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", `Bearer realm="cleanfetch"`)
			http.Error(w, domain.ErrUnauthorized.Error(), http.StatusUnauthorized)
		})
	}
}

func authorized(header, want string) bool {
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	got := strings.TrimPrefix(header, bearerPrefix)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// requestLogger logs each request at debug level once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s -> %d in %s", r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Millisecond))
	})
}
