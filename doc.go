// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is an anonymous live-polling service: create a poll, share the
link, vote once per browser fingerprint, and watch results update across
every open viewer the moment a vote lands.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	DATABASE_URL=livepoll.db IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t sqlite -d livepoll.db --ip-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (unless -t memory)
  - IP_HASH_SALT (--ip-salt): secret for origin hashing

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, or memory (default: sqlite)
  - VOTE_COOLDOWN (--cooldown): per-origin cooldown window (default: 60s)
  - KEEPALIVE_INTERVAL (--keepalive): stream idle marker period (default: 30s)
  - SHARE_BASE_URL (--share-base): base for shareable poll links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, votes, live stream)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client-IP extraction
  - models: Request/response and domain types
  - voting: Vote admission control and result aggregation
  - live: Subscription registry and broadcast engine
  - store: Vote ledger interface (sqlstore, memstore)
  - auth: Token generation and origin hashing
  - db: Schema creation
  - cliparse: Configuration parsing

Broadcasts only reach subscribers held by this process; the live.Broadcaster
interface is the seam for a future distributed pub/sub layer.

See package documentation for each component.
*/
package main
