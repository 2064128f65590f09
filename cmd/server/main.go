package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadership-dashboard/internal/config"
	"leadership-dashboard/internal/handler"
	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/migrations"
	"leadership-dashboard/internal/observability"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	sdk "github.com/matrixorigin/moi-go-sdk"
)

//go:embed dist/*
var staticFS embed.FS

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("dotenv load failed", "err", err)
	}
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Env, cfg.Sentry.Release)
	if err != nil {
		logger.Warn("sentry init failed", "err", err)
	}
	defer flush()

	sqlDB, err := cfg.OpenSQLDB()
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(sqlDB); err != nil {
			logger.Error("migrate failed", "err", err)
			os.Exit(1)
		}
	}
	db, err := config.OpenGorm(sqlDB)
	if err != nil {
		logger.Error("gorm open failed", "err", err)
		os.Exit(1)
	}

	svc := service.New(db, cfg.Progress)
	if cfg.CatalogEnabled() {
		raw, err := cfg.NewRawClient()
		if err != nil {
			logger.Warn("sdk client init failed, catalog sync disabled", "err", err)
		} else {
			svc.SetCatalogSync(service.NewCatalogSync(raw, service.CatalogTables{
				Database:     sdk.DatabaseID(cfg.MOI.DatabaseID),
				DailyEntries: sdk.TableID(cfg.MOI.DailyEntriesTable),
				Users:        sdk.TableID(cfg.MOI.UsersTable),
			}))
			logger.Info("catalog sync enabled", "database", cfg.MOI.DatabaseID)
		}
	}

	distFS, _ := fs.Sub(staticFS, "dist")
	r := handler.NewRouter(handler.Deps{
		DB:           db,
		Services:     svc,
		JWT:          middleware.NewJWT(cfg.Auth),
		ExposeErrors: cfg.Server.ExposeErrors,
		CORSOrigins:  cfg.Server.CORSOrigins,
		BodyLimitMB:  cfg.Server.BodyLimitMB,
		Static:       distFS,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
