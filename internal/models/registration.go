package models

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusTBD       Status = "tbd"
	StatusAttended  Status = "attended"
	StatusNoShow    Status = "no-show"
	StatusCancelled Status = "cancelled"
)

// Active reports whether a registration in this status holds a seat.
func (s Status) Active() bool {
	return s != StatusCancelled
}

func (s Status) Valid() bool {
	switch s {
	case StatusTBD, StatusAttended, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

type Action string

const (
	ActionAttended Action = "attended"
	ActionAbsent   Action = "absent"
	ActionCancel   Action = "cancel"
)

// Target returns the status an action moves a registration into.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionAttended:
		return StatusAttended, true
	case ActionAbsent:
		return StatusNoShow, true
	case ActionCancel:
		return StatusCancelled, true
	}
	return "", false
}

type RegistrationKey struct {
	ParticipantID int       `json:"Participant_ID"`
	EventID       int       `json:"Event_ID"`
	Start         time.Time `json:"EventDateTimeStart"`
}

func (k RegistrationKey) Occurrence() OccurrenceKey {
	return OccurrenceKey{EventID: k.EventID, Start: k.Start}
}

type Registration struct {
	RegistrationKey
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Registration) Attended() bool {
	return r.Status == StatusAttended
}

// MarshalJSON adds the derived "attended" flag older clients still read.
func (r Registration) MarshalJSON() ([]byte, error) {
	type plain Registration

	return json.Marshal(struct {
		plain
		Attended bool `json:"attended"`
	}{
		plain:    plain(r),
		Attended: r.Attended(),
	})
}
