package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	server "github.com/mauv0809/squad-scheduler/internal/http"
	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		log.SetFormatter(log.JSONFormatter)

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			log.Info("Closing storage")
			a.Close()
		}()

		s := server.NewServer(a.scheduler, a.metrics, metrics.NewMetricsHandler())

		startupDuration := time.Since(startTime)
		a.metrics.SetStartupTime(startupDuration.Seconds())
		log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           s,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info("Server started", "port", cfg.Port)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-shutdown:
			log.Info("Shutdown signal received", "signal", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Server shutdown failed", "error", err)
			} else {
				log.Info("Server gracefully stopped")
			}
		}

		log.Info("Server process shutting down")
		return nil
	},
}
