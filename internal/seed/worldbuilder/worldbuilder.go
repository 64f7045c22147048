// Package worldbuilder provides neighborhood-event flavored content for
// seeding the events table.
package worldbuilder

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/eventseed/internal/seed/event"
)

// WorldBuilder samples event content from fixed vocabularies.
type WorldBuilder struct {
	rng *rand.Rand
}

// New creates a WorldBuilder with the given random source.
func New(rng *rand.Rand) *WorldBuilder {
	return &WorldBuilder{rng: rng}
}

// Topic picks an event topic like "Tech Meetup".
func (w *WorldBuilder) Topic() string {
	return eventTopics[w.rng.Intn(len(eventTopics))]
}

// Title formats a topic with a numeric suffix in [1, event.MaxTitleSuffix].
func (w *WorldBuilder) Title(topic string) string {
	return fmt.Sprintf("%s #%d", topic, 1+w.rng.Intn(event.MaxTitleSuffix))
}

// Description picks an event description.
func (w *WorldBuilder) Description() string {
	return eventDescriptions[w.rng.Intn(len(eventDescriptions))]
}

// Coordinate returns center plus uniform jitter in [-event.Jitter, event.Jitter].
func (w *WorldBuilder) Coordinate(center float64) float64 {
	return center + (w.rng.Float64()*2-1)*event.Jitter
}
