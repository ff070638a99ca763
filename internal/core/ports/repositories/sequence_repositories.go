package repositories

import "context"

// SequenceRepository hands out monotonic per-scope counters.
type SequenceRepository interface {
	// NextValue atomically increments the counter of scope and returns the new value.
	// The first call for a scope returns 1.
	NextValue(ctx context.Context, scope string) (int64, error)
}
