// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mike-logic/scavenged/auth"
	"github.com/mike-logic/scavenged/models"
	"github.com/mike-logic/scavenged/netctl"
	"github.com/mike-logic/scavenged/store"
)

// Sentinel errors surfaced to handlers, which translate them to wire tokens.
var (
	ErrAlreadyConfigured = errors.New("admin secret already configured")
	ErrWeakSecret        = errors.New("admin secret too short")
	ErrEmptySSID         = errors.New("empty game ssid")
	ErrBadMode           = errors.New("unknown mode")
)

// Wireless channel and client limits for the two access-point profiles.
const (
	apChannel       = 6
	setupMaxClients = 8
	gameMaxClients  = 12
)

// DefaultSettle is the pause between tearing the radio down and bringing it
// back up; the underlying hardware cannot switch configurations atomically.
const DefaultSettle = 100 * time.Millisecond

// Device owns the configuration document and the SETUP/GAME mode state
// machine. All mutation happens under one mutex, and every mutation is
// persisted before the method returns.
type Device struct {
	mu       sync.Mutex
	cfg      models.Config
	store    *store.Store
	network  netctl.Controller
	redirect netctl.Redirector
	build    string // firmware marker of the running binary
	addr     string // redirect target handed to the redirector
	settle   time.Duration
}

// New wires a Device. build identifies the running firmware; addr is the
// address the captive-portal redirector points clients at.
func New(s *store.Store, network netctl.Controller, redirect netctl.Redirector, build, addr string) *Device {
	return &Device{
		store:    s,
		network:  network,
		redirect: redirect,
		build:    build,
		addr:     addr,
		settle:   DefaultSettle,
	}
}

// SetSettle overrides the radio settling delay. Tests pass zero.
func (d *Device) SetSettle(settle time.Duration) {
	d.settle = settle
}

// Boot loads (or bootstraps) the configuration, reconciles the firmware
// marker, enforces the no-secret⇒setup invariant, and brings up the network
// for the resulting mode. Call once at process start.
func (d *Device) Boot() error {
	d.mu.Lock()

	loaded, err := d.store.Load(store.DocConfig, &d.cfg)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if !loaded {
		// Never configured (or corrupt, which is the same thing): bootstrap
		// defaults and persist them immediately.
		d.cfg = models.DefaultConfig(d.build)
		if err := d.persistLocked(); err != nil {
			d.mu.Unlock()
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}
	} else {
		d.normalizeLocked()
		if err := d.reconcileVersionLocked(); err != nil {
			d.mu.Unlock()
			return err
		}
	}

	// No admin secret means the device is not operator-controlled yet; it
	// must come up in setup mode no matter what was persisted.
	if d.cfg.AdminHash == "" && d.cfg.Mode != models.ModeSetup {
		d.cfg.Mode = models.ModeSetup
		if err := d.persistLocked(); err != nil {
			d.mu.Unlock()
			return err
		}
	}

	mode := d.cfg.Mode
	profile := d.profileLocked(mode)
	d.mu.Unlock()

	slog.Info("device boot", "mode", mode, "fw_version", d.build)
	if err := d.network.BringUp(profile); err != nil {
		return fmt.Errorf("failed to bring up %s network: %w", mode, err)
	}
	if err := d.redirect.Start(d.addr); err != nil {
		return fmt.Errorf("failed to start redirector: %w", err)
	}
	return nil
}

// normalizeLocked discards values that must never be honored from storage.
func (d *Device) normalizeLocked() {
	// The game network is unconditionally open; older builds persisted a
	// passphrase here.
	d.cfg.GamePass = ""
	if d.cfg.SetupSSID == "" {
		d.cfg.SetupSSID = models.DefaultSetupSSID
	}
	if d.cfg.SetupPass == "" {
		d.cfg.SetupPass = models.DefaultSetupPass
	}
	if d.cfg.GameSSID == "" {
		d.cfg.GameSSID = models.DefaultGameSSID
	}
	if d.cfg.Mode != models.ModeGame {
		d.cfg.Mode = models.ModeSetup
	}
}

// reconcileVersionLocked applies the fixed upgrade policy: when the stored
// firmware marker differs from the running one, operator control must be
// re-established: the admin hash is cleared and the device returns to setup
// mode. The catalog and roster are preserved.
func (d *Device) reconcileVersionLocked() error {
	if d.cfg.FWVersion == d.build {
		return nil
	}
	slog.Info("firmware marker changed",
		"stored", d.cfg.FWVersion,
		"running", d.build,
	)
	d.cfg.AdminHash = ""
	d.cfg.Mode = models.ModeSetup
	d.cfg.FWVersion = d.build
	return d.persistLocked()
}

// persistLocked saves the configuration document, retrying once on failure.
// Callers must hold d.mu.
func (d *Device) persistLocked() error {
	cfg := d.cfg
	cfg.GamePass = "" // never persisted, even if set in memory somehow
	if err := d.store.Save(store.DocConfig, cfg); err != nil {
		slog.Warn("config save failed, retrying", "error", err)
		return d.store.Save(store.DocConfig, cfg)
	}
	return nil
}

func (d *Device) profileLocked(mode string) netctl.Profile {
	if mode == models.ModeGame {
		return netctl.Profile{
			SSID:       d.cfg.GameSSID,
			Channel:    apChannel,
			MaxClients: gameMaxClients,
		}
	}
	return netctl.Profile{
		SSID:       d.cfg.SetupSSID,
		Pass:       d.cfg.SetupPass,
		Channel:    apChannel,
		MaxClients: setupMaxClients,
	}
}

// Mode returns the current device mode.
func (d *Device) Mode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Mode
}

// GameSSID returns the configured game network name.
func (d *Device) GameSSID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.GameSSID
}

// StoredVersion returns the firmware marker from the configuration document.
func (d *Device) StoredVersion() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.FWVersion
}

// Build returns the firmware marker of the running binary.
func (d *Device) Build() string {
	return d.build
}

// HasAdminSecret reports whether an operator secret has been set.
func (d *Device) HasAdminSecret() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.AdminHash != ""
}

// Authenticate checks a presented operator password. While no secret is
// configured the device is in its bootstrap state and every request is
// granted; afterwards the password's digest must match under SecureEqual.
func (d *Device) Authenticate(pass string, supplied bool) bool {
	d.mu.Lock()
	hash := d.cfg.AdminHash
	d.mu.Unlock()
	if hash == "" {
		return true
	}
	if !supplied {
		return false
	}
	return auth.SecureEqual(auth.HashSecret(pass), hash)
}

// SetAdminSecret sets the one-time operator secret. It fails once a secret
// exists (use FactoryReset to clear it) and rejects secrets shorter than the
// minimum length.
func (d *Device) SetAdminSecret(pass string) error {
	if len(pass) < models.AdminSecretMinLen {
		return ErrWeakSecret
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.AdminHash != "" {
		return ErrAlreadyConfigured
	}
	d.cfg.AdminHash = auth.HashSecret(pass)
	return d.persistLocked()
}

// SetGameSSID updates the broadcast name for the game network. The new name
// takes effect on the next switch into game mode.
func (d *Device) SetGameSSID(ssid string) (string, error) {
	ssid = strings.TrimSpace(ssid)
	if len(ssid) > models.GameSSIDMaxLen {
		// Cap at the byte limit without splitting a rune
		cut := models.GameSSIDMaxLen
		for cut > 0 && !utf8.RuneStart(ssid[cut]) {
			cut--
		}
		ssid = ssid[:cut]
	}
	if ssid == "" {
		return "", ErrEmptySSID
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.GameSSID = ssid
	if err := d.persistLocked(); err != nil {
		return "", err
	}
	return ssid, nil
}

// SwitchMode moves the state machine to mode. The new mode is persisted
// BEFORE the radio is touched, so a crash mid-transition resumes in the mode
// the device was heading toward. The radio then gets a teardown, a settling
// pause, and a bring-up; finally the redirector is restarted so newly
// associated clients are steered to the right landing page.
func (d *Device) SwitchMode(mode string) error {
	if mode != models.ModeSetup && mode != models.ModeGame {
		return ErrBadMode
	}
	d.mu.Lock()
	d.cfg.Mode = mode
	if err := d.persistLocked(); err != nil {
		d.mu.Unlock()
		return err
	}
	profile := d.profileLocked(mode)
	settle := d.settle
	d.mu.Unlock()

	slog.Info("mode transition", "mode", mode, "ssid", profile.SSID, "open", profile.Open())

	d.redirect.Stop()
	if err := d.network.TearDown(); err != nil {
		return fmt.Errorf("failed to tear down network: %w", err)
	}
	time.Sleep(settle)
	if err := d.network.BringUp(profile); err != nil {
		return fmt.Errorf("failed to bring up %s network: %w", mode, err)
	}
	if err := d.redirect.Start(d.addr); err != nil {
		return fmt.Errorf("failed to restart redirector: %w", err)
	}
	return nil
}

// LandingPath resolves the redirect target for captive-portal probes and
// unknown paths. It must be consulted per request since the mode can change
// while the device is running.
func (d *Device) LandingPath() string {
	if d.Mode() == models.ModeSetup {
		return "/admin"
	}
	return "/captive"
}

// RootPath resolves the target for the bare "/" route.
func (d *Device) RootPath() string {
	if d.Mode() == models.ModeSetup {
		return "/admin"
	}
	return "/app"
}

// FactoryReset clears operator control. With wipeAll the catalog and roster
// documents are deleted too and the configuration returns to bootstrap
// defaults; otherwise only the admin secret is cleared and the device is
// forced back to setup mode. The caller is responsible for restarting the
// process afterwards.
func (d *Device) FactoryReset(wipeAll bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if wipeAll {
		if err := d.store.Wipe(); err != nil {
			return err
		}
		d.cfg = models.DefaultConfig(d.build)
		return d.persistLocked()
	}
	d.cfg.AdminHash = ""
	d.cfg.Mode = models.ModeSetup
	return d.persistLocked()
}
