// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/mike-logic/scavenged/device"
)

// PortalHandler serves the static portal pages and the captive-portal
// plumbing. Pages live in webDir; when a page file is missing a minimal
// placeholder is served so the kiosk still works without assets.
type PortalHandler struct {
	dev    *device.Device
	webDir string
}

func NewPortalHandler(dev *device.Device, webDir string) *PortalHandler {
	return &PortalHandler{dev: dev, webDir: webDir}
}

// Root handles GET /{$} and sends the visitor to the page for the current mode.
func (h *PortalHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.dev.RootPath(), http.StatusFound)
}

// Page returns a handler serving one named portal page.
func (h *PortalHandler) Page(name, placeholder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(h.webDir, name)
		if _, err := os.Stat(path); err != nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(placeholder))
			return
		}
		http.ServeFile(w, r, path)
	}
}

// CaptiveProbe answers OS connectivity checks with a redirect to the
// landing page, which makes phones pop their sign-in sheet.
func (h *PortalHandler) CaptiveProbe(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.dev.LandingPath(), http.StatusFound)
}

// Health handles GET /health
func (h *PortalHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// Placeholder markup served when the web directory has no page files.
const (
	PlaceholderAdmin   = "<!doctype html><title>Scavenger Admin</title><h1>Organizer console</h1>"
	PlaceholderApp     = "<!doctype html><title>Scavenger Hunt</title><h1>Team console</h1>"
	PlaceholderCaptive = "<!doctype html><title>Scavenger Hunt</title><p>Join the hunt at this kiosk.</p>"
)
