// Package http exposes the upload, query, and crawl-streaming surface over
// HTTP and websockets.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/minjae-dev/campcrawl"
)

// ShutdownTimeout is the time given for in-flight requests to finish on
// Close.
const ShutdownTimeout = 1 * time.Second

// Server wires the application services to an HTTP listener.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address for the server's listener, e.g. ":8000".
	Addr string

	// Directory holding the batch output files served under /static/.
	StaticDir string

	Extractor       campcrawl.Extractor
	CampaignService campcrawl.CampaignService
	BatchWriter     campcrawl.BatchWriter
	CrawlService    campcrawl.CrawlService

	Logger *slog.Logger
}

// NewServer creates a Server with its routes configured. The caller assigns
// the service fields and then calls Open.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		router: chi.NewRouter(),
		Logger: slog.Default(),
	}

	// The client is served from a different origin; mirror its permissive
	// cross-origin policy.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	s.router.Use(s.logRequests)

	s.router.Post("/api/upload-html", s.handleUploadHTML)
	s.router.Get("/api/campaigns", s.handleCampaignList)
	s.router.Get("/ws/crawl", s.handleCrawl)
	s.router.Get("/static/*", s.handleStatic)

	s.server.Handler = s.router
	return s
}

// Open begins listening on the bind address. The port may be left to the
// OS by using ":0"; Port reports the bound port.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the base URL of the running server. Useful in tests.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port())
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))).ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
		)
	})
}
