// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the hashing and comparison primitives behind every
secret check on the device.

# Hashing

Secrets are stored only as deterministic SHA-256 hex digests:

	hash := auth.HashSecret(pin)

The device has no secure element, so the digest is the strongest at-rest
protection available; determinism is required because the stored operator
hash must be comparable against the hash of each presented password.

# Comparison

Every secret comparison (operator password, team PIN, codeword) goes
through SecureEqual, which runs in time independent of where the inputs
first diverge and of which input is shorter:

	if auth.SecureEqual(auth.HashSecret(pin), team.PinHash) { ... }

Never compare secrets with ==.
*/
package auth
