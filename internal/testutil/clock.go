// Package testutil provides deterministic clocks and guid sources for tests.
package testutil

import (
	"fmt"
	"time"
)

// FixedClock reports the same instant forever. Implements store.Clock.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// StepClock starts at T and advances by Step on every reading, so writes
// that should move a timestamp visibly do. Not safe for concurrent use;
// the store is single-writer anyway.
type StepClock struct {
	T    time.Time
	Step time.Duration
}

// Now returns the current instant and advances the clock.
func (c *StepClock) Now() time.Time {
	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}

// SeqGUIDs hands out deterministic 36-character guids, counting up from
// one. Implements store.GUIDSource.
type SeqGUIDs struct {
	n int
}

// NewGUID returns the next guid in the sequence.
func (g *SeqGUIDs) NewGUID() string {
	g.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.n)
}
