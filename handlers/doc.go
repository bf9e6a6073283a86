// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the kiosk API.

# Handler Types

Each handler is a struct with its collaborators injected:

  - AdminHandler: Operator console (status, setup, SSID, catalog, mode, reset)
  - PlayerHandler: Team lifecycle and codeword submission
  - PortalHandler: Portal pages, captive-portal probes, health

Handlers are created via constructor functions:

	adminHandler := handlers.NewAdminHandler(dev, eng, m, restart)

# Operator Flow

Admin endpoints sit behind HTTP Basic auth (middleware.RequireAdmin). While
no admin secret exists the guard waves requests through so first-time setup
can happen at all:

	POST /api/admin/setup        → Setup (first-time secret)
	POST /api/admin/game_ssid    → GameSSID
	GET  /api/admin/checkpoints  → ListCheckpoints
	POST /api/admin/checkpoints  → SaveCheckpoints (wholesale replace)
	POST /api/admin/mode         → SetMode
	POST /api/admin/factory_reset → FactoryReset

# Player Flow

Teams register once and then submit codewords found at checkpoints:

	POST /api/register          → Register (returns team_id)
	POST /api/login             → Login
	POST /api/team/submit_code  → SubmitCode
	GET  /api/leaderboard       → Leaderboard

/api/team/scan_qr is a legacy alias for submit_code kept for older client
pages; both routes share one implementation.

# Error Envelope

Failures are {"error": "<token>"} with a stable machine token (bad_json,
weak_pass, exists, no_match, storage, ...) so client pages can switch on
them without parsing prose.
*/
package handlers
