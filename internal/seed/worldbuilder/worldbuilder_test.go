package worldbuilder

import (
	"math/rand"
	"regexp"
	"slices"
	"strconv"
	"testing"

	"github.com/louisbranch/eventseed/internal/seed/event"
)

func TestVocabularySizes(t *testing.T) {
	if got := len(Topics()); got != 10 {
		t.Fatalf("topics = %d, want 10", got)
	}
	if got := len(Descriptions()); got != 10 {
		t.Fatalf("descriptions = %d, want 10", got)
	}
}

func TestTopicsReturnsCopy(t *testing.T) {
	topics := Topics()
	topics[0] = "mutated"
	if Topics()[0] == "mutated" {
		t.Fatal("expected Topics to return a copy")
	}
}

func TestTitleFormat(t *testing.T) {
	wb := New(rand.New(rand.NewSource(7)))
	pattern := regexp.MustCompile(`^(.+) #(\d+)$`)
	topics := Topics()

	for i := 0; i < 500; i++ {
		title := wb.Title(wb.Topic())
		m := pattern.FindStringSubmatch(title)
		if m == nil {
			t.Fatalf("title %q does not match pattern", title)
		}
		if !slices.Contains(topics, m[1]) {
			t.Fatalf("title %q uses unknown topic %q", title, m[1])
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			t.Fatalf("parse suffix of %q: %v", title, err)
		}
		if n < 1 || n > event.MaxTitleSuffix {
			t.Fatalf("suffix %d out of range [1, %d]", n, event.MaxTitleSuffix)
		}
	}
}

func TestDescriptionFromVocabulary(t *testing.T) {
	wb := New(rand.New(rand.NewSource(11)))
	descriptions := Descriptions()
	for i := 0; i < 100; i++ {
		if d := wb.Description(); !slices.Contains(descriptions, d) {
			t.Fatalf("unexpected description %q", d)
		}
	}
}

func TestCoordinateStaysWithinJitter(t *testing.T) {
	wb := New(rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		lat := wb.Coordinate(event.CenterLat)
		if lat < event.CenterLat-event.Jitter || lat > event.CenterLat+event.Jitter {
			t.Fatalf("latitude %f outside jitter box", lat)
		}
	}
}
