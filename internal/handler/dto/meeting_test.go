package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/model"
)

func TestDateTime_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 utc", `"2025-01-01T10:00:00Z"`, want, false},
		{"rfc3339 offset", `"2025-01-01T12:00:00+02:00"`, want, false},
		{"fractional seconds", `"2025-01-01T10:00:00.000Z"`, want, false},
		{"datetime-local", `"2025-01-01T10:00"`, want, false},
		{"no zone with seconds", `"2025-01-01T10:00:00"`, want, false},
		{"date only", `"2025-01-01"`, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"next tuesday"`, time.Time{}, true},
		{"number", `1735725600`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d DateTime
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %v, want %v", d.Time, tt.want)
		})
	}
}

func TestMeetingRequest_ToPatchKeepsAbsentFieldsNil(t *testing.T) {
	t.Parallel()

	var req MeetingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Completed","userId":"spoofed"}`), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, model.MeetingCompleted, *patch.Status)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.ClientID)
	assert.Nil(t, patch.DateTime)
}

func TestClientRequest_ToPatchKeepsAbsentFieldsNil(t *testing.T) {
	t.Parallel()

	var req ClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"999"}`), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.Phone)
	assert.Equal(t, "999", *patch.Phone)
	assert.Nil(t, patch.FullName)
	assert.Nil(t, patch.Email)
	assert.Nil(t, patch.Company)
}
