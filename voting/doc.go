// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements vote admission control and result aggregation.

# Admission

[Service.SubmitVote] runs the checks in a fixed order, each with its own
rejection error:

 1. resolve the poll (ErrPollNotFound)
 2. bounds-check the option index (ErrInvalidOption)
 3. validate the identity fingerprint (ErrMissingIdentity)
 4. reject repeat identities (ErrDuplicateIdentity)
 5. enforce the per-origin cooldown (ErrRateLimited)

Only then is the vote appended and the snapshot recomputed. The check in
step 4 races concurrent submissions; the ledger's uniqueness constraint is
the backstop, and its violation is surfaced as ErrDuplicateIdentity too.

# Aggregation

[Service.Snapshot] recomputes counts from the ledger every time. Snapshots
are never cached across broadcast cycles; a stale snapshot would misreport
live vote state.

The service does not broadcast. The boundary layer invokes the broadcast
engine with the snapshot returned from a successful submission.
*/
package voting
