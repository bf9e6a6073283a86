// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/models"
	"github.com/mike-logic/scavenged/netctl"
	"github.com/mike-logic/scavenged/store"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected wrapped handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got %q", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, models.OKResponse{OK: true})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var resp models.OKResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !resp.OK {
		t.Error("Expected ok true")
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "no_match")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Error != "no_match" {
		t.Errorf("Expected token no_match, got %q", resp.Error)
	}
}

func TestParseJSONBody(t *testing.T) {
	body := bytes.NewReader([]byte(`{"mode":"game"}`))
	req := httptest.NewRequest("POST", "/test", body)

	var parsed models.ModeRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed.Mode != "game" {
		t.Errorf("Expected mode game, got %q", parsed.Mode)
	}

	req = httptest.NewRequest("POST", "/test", strings.NewReader("not json"))
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func newTestDevice(t *testing.T) *device.Device {
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
	return d
}

func TestRequireAdmin_BootstrapPassthrough(t *testing.T) {
	d := newTestDevice(t)

	called := false
	guarded := RequireAdmin(d, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// No secret configured yet: request without credentials passes
	w := httptest.NewRecorder()
	guarded(w, httptest.NewRequest("POST", "/api/admin/setup", nil))

	if !called {
		t.Error("Expected passthrough while unconfigured")
	}
}

func TestRequireAdmin_Challenge(t *testing.T) {
	d := newTestDevice(t)
	if err := d.SetAdminSecret("abc123"); err != nil {
		t.Fatal(err)
	}

	guarded := RequireAdmin(d, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run without credentials")
	})

	w := httptest.NewRecorder()
	guarded(w, httptest.NewRequest("GET", "/api/admin/status", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if ch := w.Header().Get("WWW-Authenticate"); !strings.Contains(ch, "Basic") {
		t.Errorf("Expected Basic challenge, got %q", ch)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "auth" {
		t.Errorf("Expected token auth, got %q", resp.Error)
	}
}

func TestRequireAdmin_CorrectAndWrongPassword(t *testing.T) {
	d := newTestDevice(t)
	if err := d.SetAdminSecret("abc123"); err != nil {
		t.Fatal(err)
	}

	called := false
	guarded := RequireAdmin(d, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// The username half of Basic auth is ignored
	req := httptest.NewRequest("GET", "/api/admin/status", nil)
	req.SetBasicAuth("whoever", "abc123")
	guarded(httptest.NewRecorder(), req)
	if !called {
		t.Error("Expected handler to run with the right password")
	}

	called = false
	req = httptest.NewRequest("GET", "/api/admin/status", nil)
	req.SetBasicAuth("admin", "wrong-pass")
	w := httptest.NewRecorder()
	guarded(w, req)
	if called {
		t.Error("Handler ran with the wrong password")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}
