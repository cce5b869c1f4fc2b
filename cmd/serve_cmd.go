package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photofolio-home/pkg/config"
	"photofolio-home/pkg/handlers"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the homepage, its live slideshow and the view API via HTTP.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Serve(ctx, cfg, log)
		},
	}
}

// Serve runs the web server until ctx is cancelled, then drains connections
// and unmounts every view
func Serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	svc, err := newService(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	pages, err := handlers.LoadSectionPages(cfg.ViewsDir)
	if err != nil {
		return err
	}

	reporter, err := svc.StartStatsReporter(cfg.StatsSchedule)
	if err != nil {
		return err
	}
	defer reporter.Stop()

	h := handlers.New(svc, pages, handlers.Options{
		Logger:    log,
		PublicDir: cfg.PublicDir,
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		log.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("catalog", cfg.CatalogSource()),
			zap.Int("slides", svc.Catalog().Len()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
