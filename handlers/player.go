// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/metrics"
	"github.com/mike-logic/scavenged/middleware"
	"github.com/mike-logic/scavenged/models"
)

type PlayerHandler struct {
	eng *game.Game
	m   *metrics.Metrics
}

func NewPlayerHandler(eng *game.Game, m *metrics.Metrics) *PlayerHandler {
	return &PlayerHandler{eng: eng, m: m}
}

// Register handles POST /api/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	teamID, err := h.eng.Register(req.TeamName, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrBadFields):
			middleware.ErrorResponse(w, http.StatusBadRequest, "bad_fields")
		case errors.Is(err, game.ErrNameTaken):
			middleware.ErrorResponse(w, http.StatusConflict, "exists")
		default:
			slog.Error("failed to persist team", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		}
		return
	}

	slog.Info("team registered", "team_id", teamID)
	h.m.TeamsRegistered.Inc()

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{OK: true, TeamID: teamID})
}

// Login handles POST /api/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	teamID, err := h.eng.Login(req.TeamName, req.Pin)
	if err != nil {
		// Wrong name and wrong PIN are indistinguishable on purpose.
		middleware.ErrorResponse(w, http.StatusForbidden, "auth")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{OK: true, TeamID: teamID})
}

// Items handles GET /api/items
func (h *PlayerHandler) Items(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ItemsResponse{Items: h.eng.ItemsPublic()})
}

// TeamItems handles POST /api/team/items
func (h *PlayerHandler) TeamItems(w http.ResponseWriter, r *http.Request) {
	var req models.TeamItemsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	items, err := h.eng.TeamItems(req.TeamID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "team_not_found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TeamItemsResponse{Items: items})
}

// SubmitCode handles POST /api/team/submit_code and its legacy alias
// POST /api/team/scan_qr.
func (h *PlayerHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitCodeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json")
		return
	}

	res, err := h.eng.SubmitCodeword(req.TeamID, req.Token)
	if err != nil {
		slog.Error("failed to persist submission", "team_id", req.TeamID, "error", err)
		h.m.Submissions.WithLabelValues("storage").Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "storage")
		return
	}

	switch res.Outcome {
	case game.Malformed:
		h.m.Submissions.WithLabelValues("malformed").Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "empty_token")
	case game.TeamNotFound:
		h.m.Submissions.WithLabelValues("team_not_found").Inc()
		middleware.ErrorResponse(w, http.StatusNotFound, "team_not_found")
	case game.NoMatch:
		h.m.Submissions.WithLabelValues("no_match").Inc()
		middleware.ErrorResponse(w, http.StatusNotFound, "no_match")
	case game.Duplicate:
		h.m.Submissions.WithLabelValues("duplicate").Inc()
		middleware.JSONResponse(w, http.StatusOK, models.DuplicateResponse{
			OK:        true,
			Duplicate: true,
			Points:    res.Total,
		})
	default:
		slog.Info("checkpoint found", "team_id", req.TeamID, "checkpoint_id", res.CheckpointID, "awarded", res.Awarded)
		h.m.Submissions.WithLabelValues("awarded").Inc()
		middleware.JSONResponse(w, http.StatusOK, models.SubmitCodeResponse{
			OK:           true,
			Awarded:      res.Awarded,
			Total:        res.Total,
			CheckpointID: res.CheckpointID,
		})
	}
}

// Leaderboard handles GET /api/leaderboard
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		Teams: h.eng.Leaderboard(models.LeaderboardSize),
	})
}
