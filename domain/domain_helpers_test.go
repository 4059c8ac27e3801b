package domain

import (
	"time"

	"github.com/google/uuid"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type sequentialIDs struct {
	next byte
}

func (g *sequentialIDs) NewID() uuid.UUID {
	g.next++
	var id uuid.UUID
	id[15] = g.next
	return id
}

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestFactory() (Factory, *fixedClock) {
	clock := &fixedClock{now: t0}
	return NewFactory(clock, &sequentialIDs{}), clock
}
