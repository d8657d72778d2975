package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	httpx "github.com/yungbote/ideascore-backend/internal/http"
	"github.com/yungbote/ideascore-backend/internal/observability"
	"github.com/yungbote/ideascore-backend/internal/platform/db"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	otelShutdown func(context.Context) error
}

type Options struct {
	// Migrate runs AutoMigrate before wiring.
	Migrate bool
	// WithHTTP builds the gin router. CLI commands that only need services skip it.
	WithHTTP bool
}

func New(ctx context.Context, cfg Config, opts Options) (*App, error) {
	log, err := logger.NewWithOptions(logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Redact: true})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:      cfg.Otel.Enabled,
		ServiceName:  cfg.Otel.ServiceName,
		Environment:  cfg.Otel.Environment,
		Endpoint:     cfg.Otel.Endpoint,
		Insecure:     cfg.Otel.Insecure,
		SamplerRatio: cfg.Otel.SamplerRatio,
	})

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	conn, err := db.Open(log, cfg.DatabaseOptions())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if opts.Migrate {
		if err := db.AutoMigrate(log, conn); err != nil {
			log.Sync()
			return nil, err
		}
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(conn, log)
	serviceset := wireServices(conn, log, cfg, metrics, clients, reposet)

	a := &App{
		Log:          log,
		DB:           conn,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}
	if opts.WithHTTP {
		if !strings.EqualFold(cfg.Log.Mode, "development") {
			gin.SetMode(gin.ReleaseMode)
		}
		handlerset := wireHandlers(conn, log, serviceset)
		a.Router = wireRouter(log, cfg, metrics, handlerset)
	}
	return a, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized for http")
	}
	a.Log.Info("Serving HTTP", "addr", a.Cfg.HTTP.Addr)
	srv := &httpx.Server{Engine: a.Router}
	return srv.Run(ctx, a.Cfg.HTTP.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
