// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game implements the scoring engine: the checkpoint catalog, the team
roster, codeword matching, and the leaderboard.

# Matching policy

Codeword matching is a deliberate two-pass rule, not a scan accident:

 1. exact match (constant-time comparison), catalog order breaking ties
 2. case-insensitive match, catalog order breaking ties

An exact match anywhere in the catalog therefore always beats a
case-insensitive one. Operators who care about precedence should avoid
near-duplicate codewords differing only in case.

# Points invariant

A team's points always equal the sum of catalog point values over its found
checkpoint ids, restricted to checkpoints still in the catalog. Points are
recomputed on every award, every catalog replacement, and every leaderboard
read; the stored number is a cache for display, never an input.
*/
package game
