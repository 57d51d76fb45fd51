package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/db"
	"github.com/padraicbc/heatwave/handlers"
	applog "github.com/padraicbc/heatwave/logger"
	"github.com/padraicbc/heatwave/metrics"
	mw "github.com/padraicbc/heatwave/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// Connects lazily; the server starts even when the database is down.
	pool := db.NewPool(cfg, logger)
	m := metrics.New()
	h := handlers.New(pool, cfg, logger, m)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	mw.Setup(e, cfg, logger, m)
	h.Register(e)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	s := &http.Server{
		Addr:         cfg.Port,
		Handler:      e,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		var err error
		if len(cfg.TLSDomains) == 0 {
			logger.Info("starting server",
				zap.String("addr", cfg.Port),
				zap.String("environment", cfg.Environment),
				zap.String("driver", cfg.Driver),
			)
			err = s.ListenAndServe()
		} else {
			autoTLS := &autocert.Manager{
				Prompt:     autocert.AcceptTOS,
				Cache:      autocert.DirCache(".cache"),
				HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
			}
			s.Addr = ":443"
			s.TLSConfig = autoTLS.TLSConfig()
			logger.Info("starting tls server", zap.Strings("domains", cfg.TLSDomains))
			err = s.ListenAndServeTLS("", "")
		}
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := pool.Close(); err != nil {
		logger.Error("closing database pool", zap.Error(err))
	}
	logger.Info("server stopped")
}
