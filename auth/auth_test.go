// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestHashSecret(t *testing.T) {
	h := HashSecret("abc123")
	if len(h) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(h))
	}
	if h != strings.ToLower(h) {
		t.Errorf("digest not lowercase: %s", h)
	}
	if h != HashSecret("abc123") {
		t.Error("digest not deterministic")
	}
	// Known vector for sha256("abc123")
	want := "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090"
	if h != want {
		t.Errorf("HashSecret(abc123) = %s, want %s", h, want)
	}
}

func TestHashSecretDistinct(t *testing.T) {
	seen := map[string]string{}
	for _, s := range []string{"", "a", "A", "abc123", "abc124", "4242", "42420"} {
		h := HashSecret(s)
		if prev, ok := seen[h]; ok {
			t.Errorf("collision: %q and %q both hash to %s", prev, s, h)
		}
		seen[h] = s
	}
}

func TestSecureEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"both empty", "", "", true},
		{"equal", "LEAF-42", "LEAF-42", true},
		{"case differs", "LEAF-42", "leaf-42", false},
		{"first byte differs", "XEAF-42", "LEAF-42", false},
		{"last byte differs", "LEAF-41", "LEAF-42", false},
		{"prefix", "LEAF", "LEAF-42", false},
		{"a empty", "", "x", false},
		{"b empty", "x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecureEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("SecureEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Symmetry
			if got := SecureEqual(tt.b, tt.a); got != tt.want {
				t.Errorf("SecureEqual(%q, %q) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSecureEqualOnDigests(t *testing.T) {
	// Digests of distinct secrets never compare equal, regardless of input
	// lengths.
	secrets := []string{"", "a", "organizer123", "4242", "424242", "LEAF-42"}
	for i, s1 := range secrets {
		for j, s2 := range secrets {
			got := SecureEqual(HashSecret(s1), HashSecret(s2))
			if want := i == j; got != want {
				t.Errorf("digest compare %q vs %q = %v, want %v", s1, s2, got, want)
			}
		}
	}
}
