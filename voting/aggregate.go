// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"math"

	"github.com/danielhkuo/livepoll/models"
)

// buildSnapshot turns raw per-index tallies into an ordered snapshot.
//
// Stored indexes outside the poll's current option list are excluded from
// the per-option counts but still contribute to the total: options must
// never shrink after creation, but the total has to reflect ledger truth
// even if that invariant is ever relaxed.
func buildSnapshot(poll models.Poll, raw map[int]int) models.Snapshot {
	counts := make([]int, len(poll.Options))
	total := 0
	for idx, n := range raw {
		total += n
		if idx >= 0 && idx < len(counts) {
			counts[idx] = n
		}
	}

	// Percentages are display values; with zero votes every percentage is
	// defined as zero, never NaN.
	percentages := make([]int, len(counts))
	if total > 0 {
		for i, n := range counts {
			percentages[i] = int(math.Round(100 * float64(n) / float64(total)))
		}
	}

	return models.Snapshot{
		PollID:      poll.ID,
		Counts:      counts,
		Percentages: percentages,
		Total:       total,
	}
}
