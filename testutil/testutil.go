// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/store/memstore"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseType:      "memory",
		IPHashSalt:        "test-ip-salt",
		ShareBaseURL:      "http://localhost:3318",
		VoteCooldown:      60 * time.Second,
		KeepAliveInterval: 30 * time.Second,
	}
}

// NewTestStore returns a fresh in-memory ledger
func NewTestStore(t *testing.T) *memstore.Store {
	t.Helper()
	return memstore.New()
}

// CreateTestPoll seeds a poll and returns it
func CreateTestPoll(t *testing.T, st store.Store, question string, options ...string) models.Poll {
	t.Helper()

	pollID, err := auth.GeneratePollToken()
	if err != nil {
		t.Fatalf("Failed to generate poll token: %v", err)
	}

	poll := models.Poll{
		ID:        pollID,
		Question:  question,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.CreatePoll(context.Background(), poll); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CastTestVote appends a vote directly to the ledger, bypassing admission.
// createdAt lets tests seed votes inside or outside the cooldown window.
func CastTestVote(t *testing.T, st store.Store, pollID string, option int, fingerprint, originHash string, createdAt time.Time) models.Vote {
	t.Helper()

	vote := models.Vote{
		ID:          uuid.NewString(),
		PollID:      pollID,
		OptionIndex: option,
		Fingerprint: fingerprint,
		OriginHash:  originHash,
		UserAgent:   "test-agent",
		CreatedAt:   createdAt,
	}
	if err := st.AppendVote(context.Background(), vote, 0); err != nil {
		t.Fatalf("Failed to append test vote: %v", err)
	}
	return vote
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
