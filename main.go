package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mike-logic/scavenged/cliparse"
	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/metrics"
	"github.com/mike-logic/scavenged/netctl"
	"github.com/mike-logic/scavenged/router"
	"github.com/mike-logic/scavenged/store"
)

// Build is the firmware marker compared against the stored one at boot.
// Overridden at link time: -ldflags "-X main.Build=v1.4.0".
var Build = "dev"

func main() {
	// Local .env for development; absence is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	s, err := store.New(cfg.DataDir)
	if err != nil {
		slog.Error("failed to prepare data directory", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	// Bring the device up: load or bootstrap config, reconcile the firmware
	// marker, raise the access point for the persisted mode.
	dev := device.New(s, netctl.LogController{}, netctl.LogRedirector{}, Build, cfg.PortalIP)
	if err := dev.Boot(); err != nil {
		slog.Error("device boot failed", "error", err)
		os.Exit(1)
	}
	slog.Info("device ready", "mode", dev.Mode(), "build", Build)

	eng := game.New(s)
	if err := eng.Load(); err != nil {
		slog.Error("game state load failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	m.CatalogSize.Set(float64(len(eng.Catalog())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restarting := make(chan struct{})
	restart := func() {
		// A factory reset wants a clean reboot; the supervisor (systemd or
		// similar) brings the process back up.
		close(restarting)
	}

	mux := router.NewRouter(dev, eng, m, cfg, restart)

	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-restarting:
			slog.Warn("restart requested, shutting down")
		}
		return server.Close()
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
