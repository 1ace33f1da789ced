package models

import (
	"fmt"
	"strings"
	"time"
)

// OccurrenceKey identifies one scheduled instance of an event.
type OccurrenceKey struct {
	EventID int       `json:"Event_ID"`
	Start   time.Time `json:"EventDateTimeStart"`
}

func (k OccurrenceKey) String() string {
	return fmt.Sprintf("%d@%s", k.EventID, k.Start.UTC().Format(time.RFC3339))
}

type EventOccurrence struct {
	OccurrenceKey
	Capacity        int        `json:"capacity"`
	Deadline        *time.Time `json:"registration_deadline"`
	Location        string     `json:"location"`
	RegisteredCount int        `json:"registered_count"`
}

// DeadlinePassed reports whether registration is closed at now. An occurrence
// without a deadline never closes.
func (o *EventOccurrence) DeadlinePassed(now time.Time) bool {
	return o.Deadline != nil && now.After(*o.Deadline)
}

func (o *EventOccurrence) IsFull() bool {
	return o.RegisteredCount >= o.Capacity
}

func (o *EventOccurrence) Remaining() int {
	if o.IsFull() {
		return 0
	}
	return o.Capacity - o.RegisteredCount
}

var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTime accepts RFC 3339 and the zone-less layouts HTML forms and SQL
// clients produce. Zone-less values are taken as UTC. The result is
// normalised with NormalizeTime.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeTime(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}

// NormalizeTime converts t to UTC at microsecond precision, the resolution
// PostgreSQL keeps for timestamps, so keys compare equal on every backend.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
