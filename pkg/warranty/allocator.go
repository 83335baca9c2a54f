package warranty

import (
	"fmt"
	"strings"
)

const (
	CodePrefix   = "WR"
	SerialPrefix = "SN"

	// codeAllocateAttempts bounds the retry loop around the (store_id, code)
	// unique index; createAttempts bounds the enclosing create operation.
	codeAllocateAttempts = 5
	createAttempts       = 3
)

// FormatCode renders a zero-padded-3 sequential code. Sequences past 999 keep
// growing in width rather than wrapping.
func FormatCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// NextCode produces the candidate following the highest numeric suffix already
// claimed by the store. The caller must hold the insert inside a transaction
// and retry on a (store_id, code) unique violation: the max suffix is read
// without a row lock, so concurrent requests can race to the same candidate.
func NextCode(prefix string, maxSuffix int) string {
	return FormatCode(prefix, maxSuffix+1)
}

// AssignSerials resolves the serials of one creation batch. Explicit non-empty
// serials are kept unless already used earlier in the batch; empty or
// colliding entries get the next unused SN sequence value, scanning upward
// from a running counter. Uniqueness against previously persisted items is
// left to the (warranty_id, serial) unique index.
func AssignSerials(serials []string) []string {
	used := make(map[string]bool, len(serials))
	out := make([]string, len(serials))

	// reserve explicit serials first so generated values never shadow one
	// appearing later in the batch
	for i, s := range serials {
		s = strings.TrimSpace(s)
		if s != "" && !used[s] {
			out[i] = s
			used[s] = true
		}
	}

	next := 1
	for i := range out {
		if out[i] != "" {
			continue
		}
		for {
			candidate := FormatCode(SerialPrefix, next)
			next++
			if !used[candidate] {
				out[i] = candidate
				used[candidate] = true
				break
			}
		}
	}
	return out
}
