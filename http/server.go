package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/amzcrawl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ShutdownTimeout is how long ListenAndServe waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// DefaultHistoryLimit caps history responses when no limit is given.
const DefaultHistoryLimit = 100

// Server exposes search, product lookup and price history as a JSON API.
//
// Snapshots and Metrics are optional; their routes are only mounted when set.
type Server struct {
	Locales   *amzcrawl.Locales
	Search    amzcrawl.SearchService
	Products  amzcrawl.ProductService
	Snapshots amzcrawl.SnapshotService
	Metrics   http.Handler

	// AllowedOrigins lists CORS origins. Defaults to any localhost port.
	AllowedOrigins []string

	Logger *slog.Logger
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Get("/search", s.handleSearch)
		r.Get("/products/{asin}", s.handleProduct)
		if s.Snapshots != nil {
			r.Get("/products/{asin}/history", s.handleHistory)
		}
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger().Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.Locales.All())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		s.respondError(w, r, amzcrawl.Errorf(amzcrawl.EINVALID, "query parameter q is required"))
		return
	}
	region, err := s.region(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	page := 1
	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			s.respondError(w, r, amzcrawl.Errorf(amzcrawl.EINVALID, "page must be a positive integer"))
			return
		}
	}

	results, err := s.Search.SearchPage(r.Context(), region, query, page)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	region, err := s.region(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	p, err := s.Products.FindProduct(r.Context(), region, chi.URLParam(r, "asin"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	asin, err := amzcrawl.ValidateASIN(chi.URLParam(r, "asin"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filter := amzcrawl.SnapshotFilter{ASIN: &asin, Limit: DefaultHistoryLimit}
	q := r.URL.Query()
	if v := q.Get("region"); v != "" {
		region, err := s.Locales.Parse(v)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		filter.Region = &region.Code
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, r, amzcrawl.Errorf(amzcrawl.EINVALID, "limit must be a positive integer"))
			return
		}
		filter.Limit = n
	}

	snaps, err := s.Snapshots.FindSnapshots(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if snaps == nil {
		snaps = []*amzcrawl.Snapshot{}
	}
	s.respondJSON(w, http.StatusOK, snaps)
}

// region resolves the region query parameter, falling back to the default.
func (s *Server) region(r *http.Request) (amzcrawl.Region, error) {
	v := r.URL.Query().Get("region")
	if v == "" {
		return s.Locales.Default(), nil
	}
	return s.Locales.Parse(v)
}

// ErrorStatus maps an application error code to an HTTP status.
func ErrorStatus(err error) int {
	switch amzcrawl.ErrorCode(err) {
	case amzcrawl.EINVALID:
		return http.StatusBadRequest
	case amzcrawl.ENOTFOUND:
		return http.StatusNotFound
	case amzcrawl.EBLOCKED:
		return http.StatusBadGateway
	case amzcrawl.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case amzcrawl.EMISSINGFIELD:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger().Error("request failed", "path", r.URL.Path, "error", err)
	}
	s.respondJSON(w, status, map[string]string{"error": amzcrawl.ErrorMessage(err)})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger().Error("failed to encode response", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}
