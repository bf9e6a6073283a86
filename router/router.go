// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mike-logic/scavenged/cliparse"
	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/handlers"
	"github.com/mike-logic/scavenged/metrics"
	"github.com/mike-logic/scavenged/middleware"
)

func NewRouter(dev *device.Device, eng *game.Game, m *metrics.Metrics, cfg cliparse.Config, restart func()) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(dev, eng, m, restart)
	playerHandler := handlers.NewPlayerHandler(eng, m)
	portalHandler := handlers.NewPortalHandler(dev, cfg.WebDir)

	// Health check and metrics
	mux.HandleFunc("GET /health", portalHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Operator console (HTTP Basic guarded)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(dev, h))
	}
	mux.HandleFunc("GET /api/admin/status", admin(adminHandler.Status))
	mux.HandleFunc("POST /api/admin/setup", admin(adminHandler.Setup))
	mux.HandleFunc("POST /api/admin/game_ssid", admin(adminHandler.GameSSID))
	mux.HandleFunc("GET /api/admin/checkpoints", admin(adminHandler.ListCheckpoints))
	mux.HandleFunc("POST /api/admin/checkpoints", admin(adminHandler.SaveCheckpoints))
	mux.HandleFunc("POST /api/admin/mode", admin(adminHandler.SetMode))
	mux.HandleFunc("POST /api/admin/factory_reset", admin(adminHandler.FactoryReset))

	// Team operations (public)
	mux.HandleFunc("POST /api/register", middleware.WithLogging(playerHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.WithLogging(playerHandler.Login))
	mux.HandleFunc("GET /api/items", middleware.WithLogging(playerHandler.Items))
	mux.HandleFunc("POST /api/team/items", middleware.WithLogging(playerHandler.TeamItems))
	mux.HandleFunc("POST /api/team/submit_code", middleware.WithLogging(playerHandler.SubmitCode))
	mux.HandleFunc("POST /api/team/scan_qr", middleware.WithLogging(playerHandler.SubmitCode))
	mux.HandleFunc("GET /api/leaderboard", middleware.WithLogging(playerHandler.Leaderboard))

	// Portal pages
	mux.HandleFunc("GET /{$}", portalHandler.Root)
	mux.HandleFunc("GET /app", portalHandler.Page("app.html", handlers.PlaceholderApp))
	mux.HandleFunc("GET /admin", admin(portalHandler.Page("admin.html", handlers.PlaceholderAdmin)))
	mux.HandleFunc("GET /captive", portalHandler.Page("captive.html", handlers.PlaceholderCaptive))

	// Captive-portal connectivity probes. Every OS has its own URL; all of
	// them get bounced to the landing page for the current mode.
	mux.HandleFunc("GET /generate_204", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /gen_204", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /hotspot-detect.html", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /library/test/success.html", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /ncsi.txt", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /connecttest.txt", portalHandler.CaptiveProbe)
	mux.HandleFunc("GET /fwlink/", portalHandler.CaptiveProbe)

	// Unknown paths also land on the portal; a kiosk has no 404 page.
	mux.HandleFunc("/", portalHandler.CaptiveProbe)

	return mux
}
