package model

import "time"

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "Scheduled"
	MeetingCompleted MeetingStatus = "Completed"
	MeetingCancelled MeetingStatus = "Cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingScheduled, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// Meeting is a calendar entry with one of the owner's clients.
// ClientID is a plain reference; it is resolved at read time.
type Meeting struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	OwnerID   string        `json:"userId"`
	ClientID  string        `json:"clientId"`
	DateTime  time.Time     `json:"dateTime"`
	Location  string        `json:"location"`
	Notes     string        `json:"notes"`
	Status    MeetingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
