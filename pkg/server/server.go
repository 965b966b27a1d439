package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbc-construction/site/pkg/live"
	"github.com/kbc-construction/site/pkg/middleware"
	"github.com/kbc-construction/site/pkg/page"
	"github.com/kbc-construction/site/pkg/render"
	"github.com/kbc-construction/site/pkg/site"
	"github.com/kbc-construction/site/pkg/ui"
)

// Server serves the server-rendered page, its live endpoint and the public
// assets.
type Server struct {
	config   Config
	content  *site.Content
	renderer *render.Renderer
	hub      *live.Hub
	router   chi.Router
	logger   *slog.Logger

	registry *prometheus.Registry
	metrics  *middleware.Metrics
	tracer   trace.TracerProvider

	// livePage is computed once. Region ids depend only on the content, so
	// every request's Mount yields the same specs.
	livePage live.Page

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry sets the Prometheus registry served on /metrics.
// Default: a fresh registry with Go and process collectors.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithTracerProvider sets the tracer provider used when tracing is on.
// Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// New creates a server for content.
func New(config Config, content *site.Content, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config:   config,
		content:  content,
		renderer: render.NewRenderer(render.RendererConfig{Pretty: config.DevMode}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "server")

	if config.Metrics {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	}

	m := ui.NewMount()
	page.Page(content, m)
	s.livePage = live.Page{Regions: m.Regions(), Slides: len(content.Hero.Slides)}

	liveCfg := config.Live
	if liveCfg.Logger == nil {
		liveCfg.Logger = s.logger
	}
	if liveCfg.Recorder == nil && s.metrics != nil {
		liveCfg.Recorder = s.metrics
	}
	s.hub = live.NewHub(liveCfg, func() live.Page { return s.livePage })

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	if s.config.Tracing {
		opts := []middleware.OTelOption{}
		if s.tracer != nil {
			opts = append(opts, middleware.WithTracerProvider(s.tracer))
		}
		r.Use(middleware.OpenTelemetry(opts...))
	}
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	r.Use(middleware.RequestLogger(s.logger))

	r.Get("/", s.servePage)
	r.Get(LivePath, s.hub.ServeHTTP)
	r.Method(http.MethodGet, live.ClientPath, http.HandlerFunc(s.serveClient))
	r.Method(http.MethodHead, live.ClientPath, http.HandlerFunc(s.serveClient))
	r.Get("/healthz", s.serveHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	if s.config.PublicDir != "" {
		static := staticHandler(s.config.PublicDir)
		r.Handle("/images/*", static)
		r.Handle("/videos/*", static)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the live session hub.
func (s *Server) Hub() *live.Hub {
	return s.hub
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// servePage renders the page with a fresh Mount so region ids match the
// specs the live hub hands to sessions.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	doc := LiveDocument(s.content, ui.NewMount())

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, doc); err != nil {
		s.logger.Error("render failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// LiveDocument is the page document wired to the live endpoint: the
// endpoint meta tag plus the deferred client script.
func LiveDocument(c *site.Content, m *ui.Mount) render.PageData {
	doc := page.Document(c, m)
	doc.Meta = append(doc.Meta, render.MetaTag{Name: live.EndpointMeta, Content: LivePath})
	doc.Scripts = append(doc.Scripts, render.ScriptTag{Src: live.ClientPath, Defer: true})
	return doc
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Sessions: s.hub.Count()})
}

// Run starts the server and blocks until an interrupt or SIGTERM, then
// shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.ListenAndServe(ctx)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every live session, then shuts the HTTP server down
// within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are invisible to http.Server.Shutdown.
	s.hub.CloseAll()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
