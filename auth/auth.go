// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSecret returns the lowercase hex SHA-256 digest of a secret. The same
// digest form is used for the operator secret and for team PINs, so stored
// hashes are comparable with SecureEqual without decoding.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// SecureEqual compares two strings in time that depends only on the longer
// length, never on where the first difference occurs. Unlike
// subtle.ConstantTimeCompare it also hides length mismatches: both strings
// are walked to the longer length, with the shorter padded by zero bytes.
func SecureEqual(a, b string) bool {
	la, lb := len(a), len(b)
	l := la
	if lb > l {
		l = lb
	}
	var diff byte
	for i := 0; i < l; i++ {
		var ca, cb byte
		if i < la {
			ca = a[i]
		}
		if i < lb {
			cb = b[i]
		}
		diff |= ca ^ cb
	}
	return diff == 0 && la == lb
}
