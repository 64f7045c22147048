// Package event defines the synthetic event record written by the seeder and
// the fixed bounds every generated record must satisfy.
package event

import "time"

// Table is the destination table for seeded events.
const Table = "events"

// DefaultCount is the number of events written by one seeding run.
const DefaultCount = 24

// Geographic center of the generated cluster (San Antonio, TX).
const (
	CenterLat = 29.4241
	CenterLng = -98.4936
)

// Jitter is the maximum offset, in degrees, applied to each coordinate axis.
// 0.045 degrees is roughly 5 km of latitude.
const Jitter = 0.045

// Offsets applied to the hour-truncated clock when scheduling an event.
const (
	MaxDayOffset   = 30
	MinHourOffset  = 1
	MaxHourOffset  = 12
	MaxTitleSuffix = 25
)

// Event is one synthetic geospatial event row.
type Event struct {
	ID          string
	Title       string
	StartsAt    time.Time
	Description string
	Latitude    float64
	Longitude   float64
}

// StartOfHour returns t with minutes, seconds and nanoseconds cleared in t's
// own location.
func StartOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// Offset converts a day/hour schedule offset into an absolute duration. Days
// are fixed 24h spans so DST transitions never push an event out of range.
func Offset(days, hours int) time.Duration {
	return time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour
}

// StartsAtRange returns the closed interval a generated StartsAt may fall in
// for the given clock reading.
func StartsAtRange(now time.Time) (time.Time, time.Time) {
	base := StartOfHour(now)
	return base, base.Add(Offset(MaxDayOffset, MaxHourOffset))
}

// WithinBounds reports whether the event coordinates fall inside the jitter
// box around the center.
func (e Event) WithinBounds() bool {
	return e.Latitude >= CenterLat-Jitter && e.Latitude <= CenterLat+Jitter &&
		e.Longitude >= CenterLng-Jitter && e.Longitude <= CenterLng+Jitter
}

// StartsWithin reports whether StartsAt falls inside StartsAtRange(now).
func (e Event) StartsWithin(now time.Time) bool {
	earliest, latest := StartsAtRange(now)
	return !e.StartsAt.Before(earliest) && !e.StartsAt.After(latest)
}

// WallClock returns the wall-clock reading of t in its own location with the
// zone dropped (relabelled as UTC). starts_at columns are zone-less, so this
// is the value written for a local schedule.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FromWallClock interprets a zone-less wall-clock reading as a time in loc.
func FromWallClock(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
