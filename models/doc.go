// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options
  - SubmitVoteRequest: option (0-based index)

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id, share_url
  - PollResponse: poll, created_ago, results
  - Snapshot: poll_id, counts, percentages, total
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: question plus an ordered, immutable list of option labels
  - Vote: a single accepted vote; append-only, never updated or deleted
  - Snapshot: derived per-option counts and total, recomputed on demand

# Identity

Voters are recognized by an opaque fingerprint string supplied by the client
(X-Voter-Fingerprint header). The server never verifies it; it only enforces
at-most-one-vote per (poll, fingerprint). IdentityUnavailable marks a client
whose fingerprinting failed and is never accepted as an identity.
*/
package models
