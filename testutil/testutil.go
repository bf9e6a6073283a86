// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/models"
	"github.com/mike-logic/scavenged/netctl"
	"github.com/mike-logic/scavenged/store"
)

// SetupKiosk creates a booted device and an empty scoring engine backed by a
// throwaway data directory. The network layer is the logging no-op and the
// mode-switch settle delay is zeroed so tests run instantly.
func SetupKiosk(t *testing.T) (*device.Device, *game.Game) {
	t.Helper()

	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	d := device.New(s, netctl.LogController{}, netctl.LogRedirector{}, "test-build", "192.168.4.1")
	d.SetSettle(0)
	if err := d.Boot(); err != nil {
		t.Fatalf("Failed to boot device: %v", err)
	}

	g := game.New(s)
	if err := g.Load(); err != nil {
		t.Fatalf("Failed to load game state: %v", err)
	}

	return d, g
}

// ConfigureAdmin performs first-time setup with the given secret.
func ConfigureAdmin(t *testing.T, d *device.Device, secret string) {
	t.Helper()
	if err := d.SetAdminSecret(secret); err != nil {
		t.Fatalf("Failed to set admin secret: %v", err)
	}
}

// SaveCatalog replaces the checkpoint catalog and fails the test on error.
func SaveCatalog(t *testing.T, g *game.Game, items []models.CheckpointInput) int {
	t.Helper()
	n, err := g.ReplaceCatalog(items)
	if err != nil {
		t.Fatalf("Failed to save catalog: %v", err)
	}
	return n
}

// RegisterTeam registers a team and returns its ID.
func RegisterTeam(t *testing.T, g *game.Game, name, pin string) string {
	t.Helper()
	id, err := g.Register(name, pin)
	if err != nil {
		t.Fatalf("Failed to register team %q: %v", name, err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorToken checks that the response body is the standard error
// envelope carrying the expected token.
func AssertErrorToken(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != expected {
		t.Errorf("Expected error token %q, got %q", expected, resp.Error)
	}
}
