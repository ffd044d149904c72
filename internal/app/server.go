package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/api"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/config"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/database"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/gemini"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/notify"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/store"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/vector"
)

// Server wires the gateway together: HTTP routes, the notification registry
// and dispatcher, upstream clients and the in-memory stores.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
	Registry   *notify.Registry
	DB         *sql.DB
}

func NewServer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	reg := notify.NewRegistry()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := notify.NewMetrics(promReg)

	dispatcher := notify.NewDispatcher(reg, log.Named("notify"), metrics)

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, log.Named("gemini"))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	// The relational store is optional in development; the current modules
	// keep their state in memory and only future ones will query it.
	var db *sql.DB
	connString, err := cfg.Database.ConnString()
	if err != nil {
		return nil, err
	}
	if connString != "" {
		db, err = database.Open(ctx, connString)
		if err != nil {
			return nil, err
		}
		log.Info("database connected")
	} else if cfg.Environment == "production" {
		return nil, fmt.Errorf("database is not configured")
	} else {
		log.Warn("database not configured, continuing without it")
	}

	h := &api.Handlers{
		Log:            log,
		AllowedOrigins: cfg.CORSOrigins,
		Environment:    cfg.Environment,
		Registry:       reg,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Gemini:         geminiClient,
		Vector:         vector.NewClient(cfg.VectorDBURL, cfg.VectorDBAPIKey),
		Settings:       store.NewSettings(),
		Files:          store.NewFiles(),
		Desktop:        store.NewDesktop(),
	}

	mux := api.SetupRoutes(h, promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: mux,
		},
		log:      log,
		Registry: reg,
		DB:       db,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down with a bounded grace
// period.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.DB != nil {
		defer s.DB.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
