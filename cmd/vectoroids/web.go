package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/web"
)

const (
	defaultWebHost = "0.0.0.0"
	defaultWebPort = "8080"
)

var (
	flagWebAddr    string
	flagOrigins    []string
	flagInputRate  float64
	flagInputBurst int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser server",
	Long: `Serve the game to browsers. Every websocket plays its own game.

Endpoints:
  /              - game page
  /ws            - game websocket (msgpack)
  /sounds/{name} - WAV clips
  /metrics       - Prometheus metrics
  /healthz       - liveness

Defaults come from WEB_HOST and WEB_PORT when set.`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	addr := net.JoinHostPort(config.GetEnv("WEB_HOST", defaultWebHost), config.GetEnv("WEB_PORT", defaultWebPort))
	webCmd.Flags().StringVar(&flagWebAddr, "addr", addr, "HTTP listen address (host:port)")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Extra allowed origin, repeatable")
	webCmd.Flags().Float64Var(&flagInputRate, "input-rate", 60, "Messages per second accepted from each player")
	webCmd.Flags().IntVar(&flagInputBurst, "input-burst", 120, "Message burst accepted from each player")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	srv, err := web.New(web.Config{
		Settings:       &settings,
		Logger:         logger,
		AllowedOrigins: flagOrigins,
		InputRate:      rate.Limit(flagInputRate),
		InputBurst:     flagInputBurst,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              flagWebAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting web server", "addr", "http://"+flagWebAddr)
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
