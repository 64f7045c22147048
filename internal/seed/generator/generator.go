// Package generator produces batches of synthetic events clustered around
// a fixed center.
package generator

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/worldbuilder"
)

// Generator builds event batches from an explicit random source and clock.
type Generator struct {
	rng *rand.Rand
	wb  *worldbuilder.WorldBuilder
	now func() time.Time
}

// New creates a Generator. A nil clock defaults to time.Now.
func New(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rng: rng,
		wb:  worldbuilder.New(rng),
		now: now,
	}
}

// Events returns count events in generation order. Negative counts yield an
// empty batch.
func (g *Generator) Events(count int) []event.Event {
	if count < 0 {
		count = 0
	}
	base := event.StartOfHour(g.now())
	events := make([]event.Event, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, g.next(base))
	}
	return events
}

func (g *Generator) next(base time.Time) event.Event {
	title := g.wb.Title(g.wb.Topic())
	days := g.rng.Intn(event.MaxDayOffset + 1)
	hours := g.randomRange(event.MinHourOffset, event.MaxHourOffset)
	description := g.wb.Description()
	lat := g.wb.Coordinate(event.CenterLat)
	lng := g.wb.Coordinate(event.CenterLng)

	// Ids come from the same source so a fixed seed replays the whole batch.
	id := uuid.Must(uuid.NewRandomFromReader(g.rng))

	return event.Event{
		ID:          id.String(),
		Title:       title,
		StartsAt:    base.Add(event.Offset(days, hours)),
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
	}
}

// randomRange returns a random number in [min, max].
func (g *Generator) randomRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + g.rng.Intn(max-min+1)
}
