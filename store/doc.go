// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides crash-safe persistence for the device's three JSON
documents: configuration, checkpoint catalog, and team roster.

The kiosk loses power without warning, so every save follows the same
discipline: write the full document to a temporary file, verify the byte
count, fsync, remove the old file, rename into place. The previous version
survives any crash before the rename; a crash during the rename leaves a
missing file, which the next Load reports as absent so callers fall back to
defaults. Partial or corrupt content is never served.

Documents are owned exclusively by this process. Saves are full overwrites;
readers and writers coordinate above this package.
*/
package store
