package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mkhusainov/checksplit/internal/config"
	"github.com/mkhusainov/checksplit/internal/ingest"
	"github.com/mkhusainov/checksplit/internal/ledger"
	"github.com/mkhusainov/checksplit/internal/server"
	"github.com/mkhusainov/checksplit/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	bill := ledger.New()
	ingestClient := ingest.NewHTTPClient(cfg.Ingest.URL, cfg.Ingest.Timeout)
	router := server.NewRouter(server.NewHandler(bill, ingestClient))

	// h2c allows HTTP/2 without TLS for clients that want it; HTTP/1.1
	// requests pass through untouched.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h2cHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server crashed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
