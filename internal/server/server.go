// Package server exposes project inspection over HTTP.
//
// Every endpoint takes an .xptv document as the request body:
//
//	GET  /healthz                 liveness and build version
//	POST /v1/projects/inspect     JSON summary of the project
//	POST /v1/projects/validate    204, or 422 with the first problem found
//	POST /v1/projects/graph       reference graph as DOT (?format=svg for SVG)
//
// Document errors map to 422, unreadable requests to 400 and everything else
// to 500. Error bodies are JSON objects with "code" and "error" fields.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/xptv/pkg/buildinfo"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter/etree"
	"github.com/matzehuels/xptv/pkg/observability"
	"github.com/matzehuels/xptv/pkg/project"
	"github.com/matzehuels/xptv/pkg/render/nodelink"
)

// Options configures a Server.
type Options struct {
	Logger       *log.Logger
	Registry     *project.Registry
	Strict       bool
	MaxBodyBytes int64
	ReadTimeout  time.Duration
}

// Server routes inspection requests.
type Server struct {
	router  chi.Router
	logger  *log.Logger
	opts    Options
	maxBody int64
}

// New returns a server with its routes mounted. Zero options fall back to a
// discarding logger, the default registry and a 16 MiB body limit.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Registry == nil {
		opts.Registry = project.DefaultRegistry()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 16 << 20
	}

	s := &Server{
		router:  chi.NewRouter(),
		logger:  opts.Logger,
		opts:    opts,
		maxBody: opts.MaxBodyBytes,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1/projects", func(r chi.Router) {
		r.Post("/inspect", s.handleInspect)
		r.Post("/validate", s.handleValidate)
		r.Post("/graph", s.handleGraph)
	})
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := buildinfo.Fields()
	body["status"] = "ok"
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	p := project.New(r.URL.Query().Get("name"))
	if err := s.formatter().Read(s.body(w, r), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project.Summarize(p))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := etree.Parse(s.body(w, r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := etree.ReferenceGraph(doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.formatter().Decode(doc, project.New("")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	detailed, _ := strconv.ParseBool(q.Get("detailed"))

	doc, err := etree.Parse(s.body(w, r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := etree.ReferenceGraph(doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed, EdgeLabels: true})

	switch q.Get("format") {
	case "", "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = io.WriteString(w, dot)
	case "svg":
		svg, err := nodelink.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, xerrors.Wrap(xerrors.ErrCodeInternal, err, "render graph"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	default:
		s.writeError(w, r, xerrors.New(xerrors.ErrCodeInvalidInput, "unsupported format %q", q.Get("format")))
	}
}

func (s *Server) formatter() *etree.Formatter {
	return etree.New(
		etree.WithRegistry(s.opts.Registry),
		etree.WithLogger(s.logger),
		etree.WithStrict(s.opts.Strict),
	)
}

func (s *Server) body(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, s.maxBody)
}

type errorBody struct {
	Code  xerrors.Code `json:"code"`
	Error string       `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := xerrors.GetCode(err)
	if code == "" {
		code = xerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Error: err.Error()})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case xerrors.IsDocumentError(err):
		return http.StatusUnprocessableEntity
	}
	switch xerrors.GetCode(err) {
	case xerrors.ErrCodeInvalidInput, xerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case xerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
