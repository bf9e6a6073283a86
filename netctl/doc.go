// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package netctl defines the wireless-network and captive-portal DNS
// collaborators as interfaces. The core never touches the radio directly;
// the device package drives these on boot and on mode transitions. The
// bundled Log implementations make development hosts usable without a
// managed radio.
package netctl
