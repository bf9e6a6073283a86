// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/metrics"
	"github.com/mike-logic/scavenged/middleware"
	"github.com/mike-logic/scavenged/models"
)

type AdminHandler struct {
	dev     *device.Device
	eng     *game.Game
	m       *metrics.Metrics
	restart func()
}

// NewAdminHandler wires the operator endpoints. restart is invoked after a
// factory reset response has been written; pass nil to skip restarting.
func NewAdminHandler(dev *device.Device, eng *game.Game, m *metrics.Metrics, restart func()) *AdminHandler {
	return &AdminHandler{dev: dev, eng: eng, m: m, restart: restart}
}

// Status handles GET /api/admin/status
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Mode:          h.dev.Mode(),
		FWVersion:     h.dev.Build(),
		StoredVersion: h.dev.StoredVersion(),
		GameSSID:      h.dev.GameSSID(),
	})
}

// Setup handles POST /api/admin/setup
func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req models.SetupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	if err := h.dev.SetAdminSecret(req.Pass); err != nil {
		switch {
		case errors.Is(err, device.ErrWeakSecret):
			middleware.ErrorResponse(w, http.StatusBadRequest, "weak_pass")
		case errors.Is(err, device.ErrAlreadyConfigured):
			middleware.ErrorResponse(w, http.StatusConflict, "already_configured")
		default:
			slog.Error("failed to persist admin secret", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		}
		return
	}

	slog.Info("admin secret configured")
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// GameSSID handles POST /api/admin/game_ssid
func (h *AdminHandler) GameSSID(w http.ResponseWriter, r *http.Request) {
	var req models.GameSSIDRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	ssid, err := h.dev.SetGameSSID(req.SSID)
	if err != nil {
		if errors.Is(err, device.ErrEmptySSID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "empty_ssid")
			return
		}
		slog.Error("failed to persist game SSID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GameSSIDResponse{OK: true, GameSSID: ssid})
}

// ListCheckpoints handles GET /api/admin/checkpoints
func (h *AdminHandler) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CatalogResponse{Items: h.eng.Catalog()})
}

// SaveCheckpoints handles POST /api/admin/checkpoints
func (h *AdminHandler) SaveCheckpoints(w http.ResponseWriter, r *http.Request) {
	var req models.SaveCatalogRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	count, err := h.eng.ReplaceCatalog(req.Items)
	if err != nil {
		slog.Error("failed to persist catalog", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		return
	}

	slog.Info("catalog replaced", "count", count)
	h.m.CatalogSize.Set(float64(count))

	middleware.JSONResponse(w, http.StatusOK, models.SaveCatalogResponse{OK: true, Count: count})
}

// SetMode handles POST /api/admin/mode
func (h *AdminHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req models.ModeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	if err := h.dev.SwitchMode(req.Mode); err != nil {
		if errors.Is(err, device.ErrBadMode) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "bad_fields")
			return
		}
		slog.Error("failed to switch mode", "mode", req.Mode, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		return
	}

	slog.Info("mode switched", "mode", req.Mode)
	h.m.ModeTransitions.Inc()

	middleware.JSONResponse(w, http.StatusOK, models.ModeResponse{OK: true, Mode: h.dev.Mode()})
}

// FactoryReset handles POST /api/admin/factory_reset
func (h *AdminHandler) FactoryReset(w http.ResponseWriter, r *http.Request) {
	var req models.FactoryResetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	if err := h.dev.FactoryReset(req.WipeAll); err != nil {
		slog.Error("factory reset failed", "wipe_all", req.WipeAll, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		return
	}
	if req.WipeAll {
		h.eng.Clear()
	}

	slog.Warn("factory reset", "wipe_all", req.WipeAll)
	middleware.JSONResponse(w, http.StatusOK, models.FactoryResetResponse{OK: true, WipeAll: req.WipeAll})

	// Restart only after the response is on the wire.
	if h.restart != nil {
		go h.restart()
	}
}
