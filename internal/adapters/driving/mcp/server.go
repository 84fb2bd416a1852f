package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Endpoint is the HTTP path the MCP handler is mounted on.
const Endpoint = "/mcp"

const instructions = "Fetch MCP server with tools: fetch_markdown, fetch_txt, fetch_urls, fetch_html. " +
	"Markdown and text results share a 128000 word budget per call."

// shutdownTimeout bounds how long in-flight requests may finish after
// the context is cancelled.
const shutdownTimeout = 10 * time.Second

// TokenSource returns the bearer token required on HTTP requests.
// An empty token disables auth. It is consulted on every request so a
// rotated token takes effect immediately.
type TokenSource func() string

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return func() string { return token }
}

// Server is the MCP server for cleanfetch.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "cleanfetch",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP routes: the streamable MCP handler behind
// bearer auth on Endpoint, and an open /healthz check.
func (s *Server) Handler(token TokenSource) http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(token))
		r.Handle(Endpoint, handler)
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string, token TokenSource) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, token)
}

// Serve accepts HTTP connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, token TokenSource) error {
	httpServer := &http.Server{
		Handler:           s.Handler(token),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(logger.Writer(logger.LevelWarn), "", 0),
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	authState := "disabled"
	if token != nil && token() != "" {
		authState = "enabled"
	}
	logger.Info("MCP server listening on http://%s%s (auth %s)", ln.Addr(), Endpoint, authState)

	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
