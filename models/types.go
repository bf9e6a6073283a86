// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"

	"github.com/google/uuid"
)

// Device modes
const (
	ModeSetup = "setup"
	ModeGame  = "game"
)

// Hard limits on operator- and player-supplied input
const (
	TokenMaxLen       = 64
	NameMaxLen        = 40
	PinMinLen         = 4
	PinMaxLen         = 6
	LeaderboardSize   = 20
	GameSSIDMaxLen    = 31
	AdminSecretMinLen = 6
)

// Wireless defaults used when no configuration document exists yet
const (
	DefaultSetupSSID = "SCAVENGER-SETUP"
	DefaultSetupPass = "organizer123"
	DefaultGameSSID  = "SCAVENGER"
)

// Config is the device configuration document. It is a process-wide
// singleton: loaded at boot, mutated by admin actions, persisted on every
// mutation. GamePass is always empty: the game network is open, and stale
// values from older builds are discarded on load and on save.
type Config struct {
	AdminHash string `json:"admin_hash"`
	SetupSSID string `json:"setup_ssid"`
	SetupPass string `json:"setup_pass"`
	GameSSID  string `json:"game_ssid"`
	GamePass  string `json:"game_pass"`
	Mode      string `json:"mode"`
	FWVersion string `json:"fw_version"`
}

// DefaultConfig returns the bootstrap configuration for a device that has
// never been configured: no admin secret, setup mode, default SSIDs.
func DefaultConfig(fwVersion string) Config {
	return Config{
		SetupSSID: DefaultSetupSSID,
		SetupPass: DefaultSetupPass,
		GameSSID:  DefaultGameSSID,
		Mode:      ModeSetup,
		FWVersion: fwVersion,
	}
}

// Checkpoint is one physical scoring item: a named location with a secret
// codeword and an award value.
type Checkpoint struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TokenText string `json:"token_text"`
	Points    int    `json:"points"`
}

// Team is one participant group. Found holds checkpoint ids; Points is
// always recomputed from Found against the live catalog, never trusted from
// storage.
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	PinHash   string   `json:"pin_hash"`
	Points    int      `json:"points"`
	CreatedAt int64    `json:"created_at"`
	Found     []string `json:"found"`
}

// NewTeamID returns a fresh server-assigned team identifier.
func NewTeamID() string {
	return "T-" + uuid.NewString()[:8]
}

// NewCheckpointID returns a fresh server-assigned checkpoint identifier.
func NewCheckpointID() string {
	return "C-" + uuid.NewString()[:8]
}

// Request types

type SetupRequest struct {
	Pass string `json:"pass"`
}

type GameSSIDRequest struct {
	SSID string `json:"ssid"`
}

type ModeRequest struct {
	Mode string `json:"mode"`
}

type FactoryResetRequest struct {
	WipeAll bool `json:"wipe_all"`
}

// CheckpointInput is one row of a wholesale catalog save. A blank ID means
// the server synthesizes one.
type CheckpointInput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TokenText string `json:"token_text"`
	Points    int    `json:"points"`
}

type SaveCatalogRequest struct {
	Items []CheckpointInput `json:"items"`
}

type RegisterRequest struct {
	TeamName string `json:"team_name"`
	Pin      string `json:"pin"`
}

type LoginRequest struct {
	TeamName string `json:"team_name"`
	Pin      string `json:"pin"`
}

type TeamItemsRequest struct {
	TeamID string `json:"team_id"`
}

type SubmitCodeRequest struct {
	TeamID string `json:"team_id"`
	Token  string `json:"token"`
}

// Response types

type StatusResponse struct {
	Mode          string `json:"mode"`
	FWVersion     string `json:"fw_version"`
	StoredVersion string `json:"stored_version"`
	GameSSID      string `json:"game_ssid"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type GameSSIDResponse struct {
	OK       bool   `json:"ok"`
	GameSSID string `json:"game_ssid"`
}

type ModeResponse struct {
	OK   bool   `json:"ok"`
	Mode string `json:"mode"`
}

type FactoryResetResponse struct {
	OK      bool `json:"ok"`
	WipeAll bool `json:"wipe_all"`
}

type SaveCatalogResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type CatalogResponse struct {
	Items []Checkpoint `json:"items"`
}

type AuthResponse struct {
	OK     bool   `json:"ok"`
	TeamID string `json:"team_id"`
}

// PublicItem is a catalog entry with the codeword withheld.
type PublicItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type ItemsResponse struct {
	Items []PublicItem `json:"items"`
}

// TeamItem is a catalog entry annotated with one team's found status.
type TeamItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Found  bool   `json:"found"`
}

type TeamItemsResponse struct {
	Items []TeamItem `json:"items"`
}

type SubmitCodeResponse struct {
	OK           bool   `json:"ok"`
	Awarded      int    `json:"awarded"`
	Total        int    `json:"total"`
	CheckpointID string `json:"checkpoint_id"`
}

// DuplicateResponse is returned for idempotent resubmissions: no award, the
// team's total reported unchanged.
type DuplicateResponse struct {
	OK        bool `json:"ok"`
	Duplicate bool `json:"duplicate"`
	Points    int  `json:"points"`
}

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Found  int    `json:"found"`
}

type LeaderboardResponse struct {
	Teams []LeaderboardEntry `json:"teams"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}

// SanitizeName strips markup-special and control characters from an
// operator- or player-supplied display name, caps it at NameMaxLen, and
// trims surrounding whitespace.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= NameMaxLen {
			break
		}
		switch r {
		case '<', '>', '"', '\'', '&':
			continue
		}
		if r < 32 {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// SaneToken reports whether s is an acceptable codeword: 1..TokenMaxLen
// characters from a conservative printable set.
func SaneToken(s string) bool {
	if len(s) < 1 || len(s) > TokenMaxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_' || c == '/' || c == ' '
		if !ok {
			return false
		}
	}
	return true
}
