// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/models"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next(w, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// RequireAdmin gates operator endpoints behind HTTP Basic auth. While no
// admin secret is configured the request passes through (first-time setup);
// afterwards a missing or wrong password gets a 401 with a WWW-Authenticate
// challenge so browsers show a credential prompt.
func RequireAdmin(d *device.Device, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pass, supplied := r.BasicAuth()
		if !d.Authenticate(pass, supplied) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Scavenger Admin"`)
			ErrorResponse(w, http.StatusUnauthorized, "auth")
			return
		}
		next(w, r)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error envelope carrying a stable error token.
func ErrorResponse(w http.ResponseWriter, statusCode int, token string) {
	JSONResponse(w, statusCode, models.ErrorResponse{Error: token})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
