package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/service"
)

// dateTimeLayouts are accepted for meeting dates. Values without a zone are UTC.
// The frontend's datetime-local inputs send the minute-precision form.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DateTime is a meeting timestamp that tolerates the frontend's input formats.
type DateTime struct {
	time.Time
}

// UnmarshalJSON parses any of dateTimeLayouts.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("dateTime must be a string: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("dateTime %q is not a recognised date", raw)
}

// MeetingRequest represents the body of meeting create and update requests.
type MeetingRequest struct {
	Title    *string   `json:"title"`
	ClientID *string   `json:"clientId"`
	DateTime *DateTime `json:"dateTime"`
	Location *string   `json:"location"`
	Notes    *string   `json:"notes"`
	Status   *string   `json:"status"`
}

// ToInput converts the request to creation input.
func (r MeetingRequest) ToInput() service.MeetingInput {
	input := service.MeetingInput{
		Title:    deref(r.Title),
		ClientID: deref(r.ClientID),
		Location: deref(r.Location),
		Notes:    deref(r.Notes),
		Status:   model.MeetingStatus(deref(r.Status)),
	}
	if r.DateTime != nil {
		input.DateTime = r.DateTime.Time
	}
	return input
}

// ToPatch converts the request to a partial update.
func (r MeetingRequest) ToPatch() service.MeetingPatch {
	patch := service.MeetingPatch{
		Title:    r.Title,
		ClientID: r.ClientID,
		Location: r.Location,
		Notes:    r.Notes,
	}
	if r.DateTime != nil {
		t := r.DateTime.Time
		patch.DateTime = &t
	}
	if r.Status != nil {
		s := model.MeetingStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}
