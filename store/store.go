// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Document names. Each is one JSON file under the data directory.
const (
	DocConfig      = "config.json"
	DocCheckpoints = "checkpoints.json"
	DocTeams       = "teams.json"
)

// Store persists whole documents crash-safely. Every Save is a full
// overwrite of that document; there is no partial merge.
type Store struct {
	dir string
}

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(doc string) string {
	return filepath.Join(s.dir, doc)
}

// Save writes v as JSON to the named document. The write goes to a temporary
// file first, is verified and synced, and only then renamed over the final
// path. A power loss before the rename leaves the previous version intact; a
// loss during the rename leaves at worst a missing file, which Load treats
// as absent rather than corrupt.
func (s *Store) Save(doc string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", doc, err)
	}

	final := s.path(doc)
	tmp := final + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", tmp, err)
	}
	n, err := f.Write(data)
	if err == nil && n != len(data) {
		err = fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", doc, err)
	}

	// Two-step replace: drop the old file, then move the verified temp
	// into place.
	os.Remove(final)
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", doc, err)
	}
	return nil
}

// Load reads the named document into v. A missing or unparsable document is
// reported as absent (false, nil), never as a fatal error; callers supply
// defaults instead.
func (s *Store) Load(doc string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(doc))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("document unreadable, treating as absent", "doc", doc, "error", err)
		}
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("document unparsable, treating as absent", "doc", doc, "error", err)
		return false, nil
	}
	return true, nil
}

// Remove deletes the named document if it exists.
func (s *Store) Remove(doc string) error {
	err := os.Remove(s.path(doc))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", doc, err)
	}
	return nil
}

// Wipe deletes every known document. Used only by the destructive
// factory-reset path.
func (s *Store) Wipe() error {
	for _, doc := range []string{DocConfig, DocCheckpoints, DocTeams} {
		if err := s.Remove(doc); err != nil {
			return err
		}
		os.Remove(s.path(doc) + ".tmp")
	}
	return nil
}
