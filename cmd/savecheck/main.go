package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/zelda/internal/config"
	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/savegame"
	"github.com/udisondev/zelda/internal/status"
	"github.com/udisondev/zelda/internal/storage"
	"github.com/udisondev/zelda/internal/telemetry"
)

const ConfigPath = "config/zelda.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ZELDA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			slog.Error("flushing traces", "err", err)
		}
	}()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	mgr, err := savegame.NewManager(store, status.NewRegistry(), status.Services{Rand: rng.New(cfg.Seed)})
	if err != nil {
		return err
	}

	slots, err := mgr.Slots(ctx)
	if err != nil {
		return err
	}
	slog.Info("verifying saves", "driver", cfg.Storage.Driver, "slots", len(slots), "workers", cfg.VerifyWorkers)

	results, err := verifyAll(ctx, mgr, slots, cfg.VerifyWorkers)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			slog.Error("slot broken", "slot", r.Slot.Slot, "size", r.Slot.Size, "updated", r.Slot.UpdatedAt, "err", r.Err)
			continue
		}
		slog.Info("slot ok", "slot", r.Slot.Slot, "size", r.Slot.Size, "elapsed", r.Elapsed)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d slots failed verification", failed, len(results))
	}
	slog.Info("all saves verified", "slots", len(results))
	return nil
}
