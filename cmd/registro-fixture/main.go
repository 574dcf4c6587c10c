package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vfpar/registro/internal/fixture"
	"github.com/vfpar/registro/internal/source"
	"github.com/vfpar/registro/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8787", "listen address")
	dataPath := flag.String("data", "companies.json", "collection file (.json, .yaml or .yml)")
	delay := flag.Duration("delay", 0, "artificial latency before each collection response")
	rpm := flag.Int("rpm", 0, "requests per minute per client (default 120)")
	debug := flag.Bool("debug", false, "log every request")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tel, err := telemetry.Setup(ctx, telemetry.Options{Debug: *debug, Stderr: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "registro-fixture: %v\n", err)
		return 1
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()
	logger := tel.Logger

	src, err := source.NewFile(*dataPath)
	if err != nil {
		logger.Error("open data", slog.Any("error", err))
		return 1
	}
	if _, err := src.Fetch(ctx); err != nil {
		logger.Error("read data", slog.Any("error", err))
		return 1
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           fixture.NewRouter(src, logger, fixture.Options{RequestsPerMinute: *rpm, Delay: *delay}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving fixture", slog.String("addr", *addr), slog.String("data", *dataPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("fixture server", slog.Any("error", err))
		return 1
	}
	return 0
}
