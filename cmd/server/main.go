package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lotusfa/ipa-api/internal/app"
)

func main() {
	cfg := app.LoadConfigFromEnv()

	logger := log.New(os.Stdout, "ipa-api ", log.LstdFlags)

	if cfg.SentryDSN != "" {
		env := os.Getenv("ENVIRONMENT")
		if env == "" {
			env = "development"
		}
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			ServerName:  "ipa-api",
			Environment: env,
		}); err != nil {
			logger.Printf("sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := run(cfg, logger); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		logger.Fatalf("server: %v", err)
	}
}

func run(cfg app.Config, logger *log.Logger) error {
	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("serving dictionaries on %s (data dir %s)", cfg.HTTPAddr, cfg.DataDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
