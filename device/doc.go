// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package device owns the configuration document and the mode state machine.

# Modes

The device is always in exactly one of two modes:

  - setup: passphrase-protected organizer network; landing page is /admin
  - game: open player network; landing page is the captive portal

Transitions persist the new mode before reconfiguring the radio, so a crash
mid-transition resumes in the mode the operator asked for.

# Boot invariants

Boot enforces two rules regardless of what was persisted:

  - a missing or corrupt configuration bootstraps defaults (setup mode, no
    secret) and persists them
  - no admin secret ⇒ setup mode

# Firmware reconcile

When the stored firmware marker differs from the running build, the admin
secret is cleared and the device returns to setup mode, then the new marker
is persisted. Upgrading the firmware therefore always forces the operator to
re-establish control instead of silently inheriting a stale secret. The
checkpoint catalog and team roster survive upgrades.
*/
package device
