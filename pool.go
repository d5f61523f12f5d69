package bookfmt

import "runtime"

// Worker pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps workers; a book has a few dozen chapters and
	// conversion is CPU-bound.
	MaxPoolSize = 16
)

// ResolvePoolSize determines the batch worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	return min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
}
