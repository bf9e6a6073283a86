// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models contains the domain types, wire-level request/response
records, and input sanitizers shared across the kiosk.

# Documents

Three durable documents make up all device state:

  - Config: singleton device configuration (credentials, SSIDs, mode)
  - []Checkpoint: the scoring-item catalog
  - []Team: the team roster

Each round-trips losslessly through the store as JSON.

# Limits

The functional limits (codeword and name lengths, PIN bounds, leaderboard
page size) are fixed constants so printed codeword sheets and laminated
instructions stay valid across releases.

# Sanitizers

SanitizeName and SaneToken are the only two places untrusted display text
and codewords are policed. Handlers validate at the boundary and pass only
sanitized values inward.
*/
package models
