// Package server exposes the SQLite galaxy store over the starfield HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/session"
	"github.com/papapumpkin/starfield/internal/sqlstore"
)

// Options tunes a Server.
type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
	Logger      *zap.Logger
	Metrics     *Metrics
}

// Server serves one SQLite store to many users.
type Server struct {
	db       *sqlstore.Store
	verifier session.Verifier
	opts     Options
	log      *zap.Logger
	metrics  *Metrics
	validate *validator.Validate
}

// New returns a server over db authenticating bearer tokens with v.
func New(db *sqlstore.Store, v session.Verifier, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{
		db:       db,
		verifier: v,
		opts:     opts,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.metrics.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if s.opts.Timeout > 0 {
		r.Use(middleware.Timeout(s.opts.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/public/profile/{userID}", s.publicProfile)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", s.listIdeas)
				r.Post("/", s.createIdea)
				r.Get("/{id}", s.getIdea)
				r.Put("/{id}", s.updateIdea)
				r.Delete("/{id}", s.deleteIdea)
				r.Get("/{id}/related", s.related)
			})
			r.Route("/constellations", func(r chi.Router) {
				r.Get("/", s.listConstellations)
				r.Post("/", s.createConstellation)
				r.Delete("/{id}", s.deleteConstellation)
			})
			r.Get("/discover", s.discover)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

type ctxKey struct{}

// authenticate resolves the bearer token to a user id.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		userID, err := s.verifier.Verify(token)
		if err != nil {
			s.log.Debug("rejected token", zap.Error(err))
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func (s *Server) userStore(r *http.Request) *sqlstore.UserStore {
	userID, _ := r.Context().Value(ctxKey{}).(string)
	return s.db.ForUser(userID)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
