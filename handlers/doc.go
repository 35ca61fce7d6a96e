// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP boundary.

  - PollHandler: poll creation and retrieval
  - VoteHandler: vote submission; maps each rejection cause to its own
    status (404 / 400 / 409 / 429) and fans accepted votes out through the
    broadcast engine
  - StreamHandler: per-poll Server-Sent Events stream

Handlers own all transport concerns: JSON codecs, status mapping, origin
derivation and hashing, and the SSE wire format. Admission, aggregation,
and fan-out live in the voting and live packages.
*/
package handlers
