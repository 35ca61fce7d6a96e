// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestGeneratePollToken(t *testing.T) {
	token, err := GeneratePollToken()
	if err != nil {
		t.Fatalf("GeneratePollToken failed: %v", err)
	}

	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	// 8 random bytes in base62 encode to at most 11 characters
	if len(token) > 11 {
		t.Errorf("Expected token of at most 11 chars, got %d (%q)", len(token), token)
	}

	for _, c := range token {
		if !strings.ContainsRune(base62Chars, c) {
			t.Errorf("Token %q contains non-base62 character %q", token, c)
		}
	}
}

func TestGeneratePollTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := GeneratePollToken()
		if err != nil {
			t.Fatalf("GeneratePollToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("Duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "test-salt")

	if len(hash) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(hash))
	}

	// Deterministic for same input
	if HashIP("192.168.1.1", "test-salt") != hash {
		t.Error("Expected identical hash for identical input")
	}

	// Different IP produces different hash
	if HashIP("192.168.1.2", "test-salt") == hash {
		t.Error("Expected different hash for different IP")
	}

	// Different salt produces different hash
	if HashIP("192.168.1.1", "other-salt") == hash {
		t.Error("Expected different hash for different salt")
	}
}

func TestHashIPNeverExposesInput(t *testing.T) {
	ip := "203.0.113.42"
	hash := HashIP(ip, "test-salt")
	if strings.Contains(hash, "203") && strings.Contains(hash, "113") {
		// Hex output can coincidentally contain digits; only fail on the
		// full address appearing verbatim.
		if strings.Contains(hash, ip) {
			t.Errorf("Hash %q leaks the raw address", hash)
		}
	}
}
