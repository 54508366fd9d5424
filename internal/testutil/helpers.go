package testutil

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Ms is shorthand for a duration in milliseconds.
func Ms(n int64) time.Duration {
	return time.Duration(n) * time.Millisecond
}
