// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the vote ledger interface.

The voting core never touches the database directly; everything goes through
Store. Two implementations exist:

  - store/sqlstore: database/sql backed (PostgreSQL or SQLite)
  - store/memstore: in-memory, for tests and the -t memory dev mode

The ledger is the single source of truth for abuse suppression: the
admission pre-checks are check-then-act, so AppendVote re-runs both the
duplicate-fingerprint and origin-cooldown checks serialized with the append.
A concurrent duplicate slipping past the pre-check surfaces as
ErrDuplicateVote, a concurrent same-origin vote as ErrOriginCooldown.
*/
package store
