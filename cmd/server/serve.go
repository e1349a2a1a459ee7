package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"heartsupport/internal/db"
	"heartsupport/internal/router"
	"heartsupport/internal/services"
	"heartsupport/internal/store"
	"heartsupport/internal/utils"
)

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	verifier := utils.NewBcryptVerifier(cfg.BcryptCost)
	initDB := initializer(gdb, cfg, verifier)
	if _, err := initDB(ctx); err != nil {
		return err
	}

	templatesDir := cfg.TemplatesDir
	if templatesDir != "" {
		if _, err := os.Stat(templatesDir); err != nil {
			logger.Warn("templates directory not found, HTML pages disabled", "dir", templatesDir)
			templatesDir = ""
		}
	}

	engine, err := router.New(router.Options{
		SessionSecret: cfg.SessionSecret,
		TemplatesDir:  templatesDir,
		Logger:        logger,
		Services:      services.New(store.New(gdb), verifier),
		Init:          initDB,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HeartSupport server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
