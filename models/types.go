// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// IdentityUnavailable is the sentinel value the fingerprinting collaborator
// sends when it could not derive a stable identity for the client. Votes
// carrying it are rejected the same as votes with no fingerprint at all.
const IdentityUnavailable = "unavailable"

// Poll option count bounds, enforced at creation
const (
	MinOptions = 2
	MaxOptions = 10
)

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// option is a 0-based index into the poll's option list
type SubmitVoteRequest struct {
	Option int `json:"option"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	ShareURL string `json:"share_url"`
}

type PollResponse struct {
	Poll       Poll     `json:"poll"`
	CreatedAgo string   `json:"created_ago"`
	Results    Snapshot `json:"results"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}

// Vote is immutable once appended. Fingerprint, origin hash and user agent
// are server-side only and never exposed in JSON.
type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	OptionIndex int       `json:"option_index"`
	Fingerprint string    `json:"-"`
	OriginHash  string    `json:"-"`
	UserAgent   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is the derived per-option tally for a poll at a point in time.
// Counts and Percentages are ordered like the poll's option list. Total
// reflects every vote record in the ledger, including any whose stored index
// fell outside the current option list.
type Snapshot struct {
	PollID      string `json:"poll_id"`
	Counts      []int  `json:"counts"`
	Percentages []int  `json:"percentages"`
	Total       int    `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
