package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ehr/visitreview/internal/config"
	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
	"github.com/ehr/visitreview/internal/domain/review"
	"github.com/ehr/visitreview/internal/fixtures"
	"github.com/ehr/visitreview/internal/platform/db"
	"github.com/ehr/visitreview/internal/platform/middleware"
	"github.com/ehr/visitreview/internal/platform/websocket"
)

const sweepInterval = time.Minute

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// loadCatalog returns the fixture set and, for the postgres source, the pool
// it was read from. The caller closes the pool.
func loadCatalog(ctx context.Context, cfg *config.Config) (*fixtures.Set, *pgxpool.Pool, error) {
	if !cfg.UsesPostgres() {
		set, err := fixtures.StaticSource{}.Load(ctx)
		return set, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	set, err := fixtures.LoadPG(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return set, pool, nil
}

// app holds everything a running server needs.
type app struct {
	echo     *echo.Echo
	sessions *review.Service
	hub      *websocket.Hub
}

// newApp wires the HTTP surface. pool may be nil when fixtures are static.
func newApp(cfg *config.Config, logger zerolog.Logger, set *fixtures.Set, pool db.Pinger) *app {
	hub := websocket.NewHub(logger)
	sessions := review.NewService(set, hubEmitters(hub, logger), cfg.SessionIdleTimeout, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders(cfg.TLSEnabled))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"sessions": sessions.Len(),
			"clients":  hub.ClientCount(),
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	websocket.NewHandler(hub, cfg.CORSOrigins).RegisterRoutes(e.Group(""))

	api := e.Group("/api/v1")
	api.Use(middleware.BodyLimit("1M"))
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           10 * time.Minute,
	}))

	review.NewHandler(sessions).RegisterRoutes(api)
	chart.NewHandler(set).RegisterRoutes(api)
	artifact.NewHandler(set).RegisterRoutes(api)

	return &app{echo: e, sessions: sessions, hub: hub}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg)

	set, pool, err := loadCatalog(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("source", cfg.FixtureSource).Msg("failed to load fixtures")
		return err
	}
	var pinger db.Pinger
	if pool != nil {
		defer pool.Close()
		pinger = pool
	}
	for _, p := range fixtures.Check(set) {
		logger.Warn().Str("problem", p.String()).Msg("fixture check")
	}
	logger.Info().
		Str("source", cfg.FixtureSource).
		Int("patients", len(set.PatientList)).
		Int("visits", len(set.VisitList)).
		Msg("fixtures loaded")

	a := newApp(cfg, logger, set, pinger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.sessions.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Bool("tls", cfg.TLSEnabled).Msg("starting server")
		var err error
		if cfg.TLSEnabled {
			err = a.echo.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = a.echo.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
