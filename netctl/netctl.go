// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package netctl

import "log/slog"

// Profile describes one broadcast network. An empty Pass means an open
// network.
type Profile struct {
	SSID       string
	Pass       string
	Channel    int
	MaxClients int
}

// Open reports whether the profile broadcasts without a passphrase.
func (p Profile) Open() bool {
	return p.Pass == ""
}

// Controller drives the wireless radio. The radio cannot switch
// configurations atomically; callers tear down, wait, then bring up.
type Controller interface {
	BringUp(p Profile) error
	TearDown() error
}

// Redirector is the captive-portal DNS responder that answers every query with
// the device address. It is restarted on each mode transition so newly
// associated clients land on the right page.
type Redirector interface {
	Start(target string) error
	Stop()
}

// LogController satisfies Controller by logging intent. Used on hosts where
// the radio is managed externally (development machines, or kiosks whose AP
// is configured by the OS image).
type LogController struct{}

func (LogController) BringUp(p Profile) error {
	if p.Open() {
		slog.Info("network up", "ssid", p.SSID, "open", true, "channel", p.Channel, "max_clients", p.MaxClients)
	} else {
		slog.Info("network up", "ssid", p.SSID, "open", false, "channel", p.Channel, "max_clients", p.MaxClients)
	}
	return nil
}

func (LogController) TearDown() error {
	slog.Info("network down")
	return nil
}

// LogRedirector satisfies Redirector by logging intent.
type LogRedirector struct{}

func (LogRedirector) Start(target string) error {
	slog.Info("redirector started", "target", target)
	return nil
}

func (LogRedirector) Stop() {
	slog.Info("redirector stopped")
}
