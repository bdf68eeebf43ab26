package server

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// Server serves the movie collection over HTTP
type Server struct {
	store   *Store
	log     zerolog.Logger
	limiter *rate.Limiter
}

// Option configures a Server
type Option func(*Server)

// WithRateLimit limits requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a server over store
func New(store *Store, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		store: store,
		log:   log.With().Str("module", "server").Logger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(s.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(s.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthz", s.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/movies", s.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", s.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/movies/:id", s.showMovieHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", s.replaceMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", s.deleteMovieHandler)

	return s.recoverPanic(s.logRequests(s.rateLimit(otelhttp.NewHandler(router, "movies"))))
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		s.log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
