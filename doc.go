// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the scavenged kiosk server.

Scavenged is a self-contained scavenger-hunt kiosk: it runs its own access
point, captive portal, team roster, checkpoint catalog, and scoreboard, all
persisted as JSON documents so a power cut loses nothing.

# Starting the Server

Everything has a default, so a bare start works:

	go run .

Or with flags:

	go run . -p 8080 -data /var/lib/scavenged -web ./web

# Configuration

Optional settings (flag / env):

  - PORT (-p): Server port (default: 8080)
  - DATA_DIR (-data): JSON document directory (default: data)
  - WEB_DIR (-web): Static portal pages (default: web)
  - PORTAL_IP (-portal-ip): Captive portal address (default: 192.168.4.1)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - device: Mode state machine, config document, network orchestration
  - game: Checkpoint catalog, team roster, codeword scoring
  - store: Crash-safe JSON document persistence
  - netctl: Access point and captive redirector interfaces
  - handlers: HTTP request handlers (admin, player, portal)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, auth guard, JSON helpers
  - metrics: Prometheus instruments
  - models: Documents and request/response types
  - auth: Secret hashing and constant-time comparison
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
