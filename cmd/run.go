package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wanderergaurav/Varuna-marine/api"
	"github.com/wanderergaurav/Varuna-marine/config"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and blocks until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config) error {
	log.WithField("environment", cfg.Environment).Info("Starting compliance ledger...")

	app, err := Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(app.Services, app.Metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down compliance ledger...")

		// Give in-flight requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error shutting down HTTP server")
		}
		app.Close(shutdownCtx)
		return nil
	})

	err = g.Wait()
	log.Info("Shutdown completed")
	return err
}
