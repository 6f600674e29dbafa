package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cheesechase/config"
	"cheesechase/logging"
	"cheesechase/program"
	"cheesechase/server"
	"cheesechase/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to yaml config (empty uses defaults)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logger := logging.Setup(cfg.Log.Level)

	var lib program.Library = program.EmptyLibrary
	if cfg.Eval.LibraryPath != "" {
		loaded, err := program.LoadLibrary(cfg.Eval.LibraryPath)
		if err != nil {
			log.Fatalf("Failed to load program library: %v", err)
		}
		lib = loaded
	}

	rewards := cfg.SimRewards()
	srv := server.New(server.Options{
		MaxBatchSize: cfg.Server.MaxBatchSize,
		Batch: sim.BatchOptions{
			Workers: cfg.Eval.Workers,
			Library: lib,
			Rewards: &rewards,
		},
		Logger: logger,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutCtx)
	}()

	slog.Info("evaluation server listening", "addr", cfg.Server.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("evaluation server stopped")
}
