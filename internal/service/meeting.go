package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clientbook/clientbook/internal/metrics"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/repository"
)

// MeetingService handles owner-scoped meeting management.
type MeetingService struct {
	meetings MeetingStore
	clients  ClientStore
	metrics  metrics.Recorder
}

// NewMeetingService creates a new MeetingService. clients resolves meeting references.
func NewMeetingService(meetings MeetingStore, clients ClientStore, recorder metrics.Recorder) *MeetingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MeetingService{meetings: meetings, clients: clients, metrics: recorder}
}

// MeetingInput defines input for scheduling a meeting.
type MeetingInput struct {
	Title    string
	ClientID string
	DateTime time.Time
	Location string
	Notes    string
	Status   model.MeetingStatus
}

// MeetingPatch defines a partial meeting update. Nil fields keep stored values.
type MeetingPatch struct {
	Title    *string
	ClientID *string
	DateTime *time.Time
	Location *string
	Notes    *string
	Status   *model.MeetingStatus
}

// ClientSummary is the client projection embedded in meeting responses.
type ClientSummary struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

// MeetingView is a meeting joined with its client's display fields.
// Client is nil when the referenced client no longer exists.
//
// In JSON, clientId carries the client object when it resolves and the
// bare id otherwise, matching what the web client reads.
type MeetingView struct {
	*model.Meeting
	Client *ClientSummary `json:"-"`
}

// MarshalJSON renders the meeting with clientId populated.
func (v MeetingView) MarshalJSON() ([]byte, error) {
	if v.Meeting == nil {
		return []byte("null"), nil
	}

	out := struct {
		model.Meeting
		ClientID any `json:"clientId"`
	}{Meeting: *v.Meeting, ClientID: v.Meeting.ClientID}
	if v.Client != nil {
		out.ClientID = v.Client
	}
	return json.Marshal(out)
}

// Create schedules a meeting owned by ownerID with one of the owner's clients.
func (s *MeetingService) Create(ctx context.Context, ownerID string, input MeetingInput) (*MeetingView, error) {
	status := input.Status
	if status == "" {
		status = model.MeetingScheduled
	}

	m := &model.Meeting{
		ID:        generateULID(),
		Title:     strings.TrimSpace(input.Title),
		OwnerID:   ownerID,
		ClientID:  strings.TrimSpace(input.ClientID),
		DateTime:  input.DateTime.UTC(),
		Location:  input.Location,
		Notes:     input.Notes,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := validateMeeting(m); err != nil {
		return nil, err
	}

	client, err := s.ownedClient(ctx, ownerID, m.ClientID)
	if err != nil {
		return nil, err
	}

	if err := s.meetings.CreateMeeting(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.metrics.IncMeetingCreated()
	return &MeetingView{Meeting: m, Client: summarize(client)}, nil
}

// List returns the owner's meetings in ascending date order with client details.
func (s *MeetingService) List(ctx context.Context, ownerID string) ([]*MeetingView, error) {
	meetings, err := s.meetings.ListMeetings(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	clients, err := s.clients.ListClients(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return JoinMeetingClients(meetings, clients), nil
}

// Get returns one of the owner's meetings with client details.
func (s *MeetingService) Get(ctx context.Context, ownerID, id string) (*MeetingView, error) {
	m, err := s.meetings.GetMeeting(ctx, ownerID, id)
	if err != nil {
		return nil, mapMeetingErr(err, "get")
	}
	return s.view(ctx, m)
}

// Update merges patch into the stored meeting.
func (s *MeetingService) Update(ctx context.Context, ownerID, id string, patch MeetingPatch) (*MeetingView, error) {
	m, err := s.meetings.GetMeeting(ctx, ownerID, id)
	if err != nil {
		return nil, mapMeetingErr(err, "get")
	}

	if patch.Title != nil {
		m.Title = strings.TrimSpace(*patch.Title)
	}
	clientChanged := false
	if patch.ClientID != nil {
		next := strings.TrimSpace(*patch.ClientID)
		clientChanged = next != m.ClientID
		m.ClientID = next
	}
	if patch.DateTime != nil {
		m.DateTime = patch.DateTime.UTC()
	}
	applyString(&m.Location, patch.Location, false)
	applyString(&m.Notes, patch.Notes, false)
	if patch.Status != nil {
		m.Status = *patch.Status
	}

	if err := validateMeeting(m); err != nil {
		return nil, err
	}
	if clientChanged {
		if _, err := s.ownedClient(ctx, ownerID, m.ClientID); err != nil {
			return nil, err
		}
	}

	if err := s.meetings.UpdateMeeting(ctx, m); err != nil {
		return nil, mapMeetingErr(err, "update")
	}

	s.metrics.IncMeetingUpdated()
	return s.view(ctx, m)
}

// Delete removes one of the owner's meetings.
func (s *MeetingService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.meetings.DeleteMeeting(ctx, ownerID, id); err != nil {
		return mapMeetingErr(err, "delete")
	}
	s.metrics.IncMeetingDeleted()
	return nil
}

// JoinMeetingClients attaches client summaries to meetings, preserving meeting order.
func JoinMeetingClients(meetings []*model.Meeting, clients []*model.Client) []*MeetingView {
	byID := make(map[string]*model.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	views := make([]*MeetingView, 0, len(meetings))
	for _, m := range meetings {
		views = append(views, &MeetingView{Meeting: m, Client: summarize(byID[m.ClientID])})
	}
	return views
}

func (s *MeetingService) view(ctx context.Context, m *model.Meeting) (*MeetingView, error) {
	client, err := s.clients.GetClient(ctx, m.OwnerID, m.ClientID)
	if err != nil && !errors.Is(err, repository.ErrClientNotFound) {
		return nil, fmt.Errorf("failed to get meeting client: %w", err)
	}
	return &MeetingView{Meeting: m, Client: summarize(client)}, nil
}

// ownedClient resolves a client reference. A missing or foreign client is a validation failure.
func (s *MeetingService) ownedClient(ctx context.Context, ownerID, clientID string) (*model.Client, error) {
	client, err := s.clients.GetClient(ctx, ownerID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, invalid("clientId", "does not reference one of your clients")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func summarize(c *model.Client) *ClientSummary {
	if c == nil {
		return nil
	}
	return &ClientSummary{
		ID:       c.ID,
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Company:  c.Company,
	}
}

func validateMeeting(m *model.Meeting) error {
	if m.Title == "" {
		return invalid("title", "is required")
	}
	if m.ClientID == "" {
		return invalid("clientId", "is required")
	}
	if m.DateTime.IsZero() {
		return invalid("dateTime", "is required")
	}
	if !m.Status.IsValid() {
		return invalid("status", "must be one of Scheduled, Completed, Cancelled")
	}
	return nil
}

func mapMeetingErr(err error, op string) error {
	if errors.Is(err, repository.ErrMeetingNotFound) {
		return ErrMeetingNotFound
	}
	return fmt.Errorf("failed to %s meeting: %w", op, err)
}
