package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clientbook/clientbook/internal/model"
)

// ErrMeetingNotFound is returned when no meeting matches both id and owner.
var ErrMeetingNotFound = errors.New("meeting not found")

const meetingColumns = `id, owner_id, client_id, title, date_time, location, notes, status, created_at`

// CreateMeeting inserts a new meeting.
func (r *Repository) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	query := `
		INSERT INTO meetings (id, owner_id, client_id, title, date_time, location, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.OwnerID,
		m.ClientID,
		m.Title,
		m.DateTime,
		m.Location,
		m.Notes,
		string(m.Status),
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}

	return nil
}

// ListMeetings returns the owner's meetings in calendar order.
func (r *Repository) ListMeetings(ctx context.Context, ownerID string) ([]*model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE owner_id = $1
		ORDER BY date_time ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]*model.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}

	return meetings, nil
}

// GetMeeting retrieves a meeting by id, scoped to its owner.
func (r *Repository) GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1 AND owner_id = $2`

	m, err := scanMeeting(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	return m, nil
}

// UpdateMeeting writes all mutable meeting fields, filtered by id and owner.
func (r *Repository) UpdateMeeting(ctx context.Context, m *model.Meeting) error {
	query := `
		UPDATE meetings
		SET client_id = $3, title = $4, date_time = $5, location = $6, notes = $7, status = $8
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		m.ID,
		m.OwnerID,
		m.ClientID,
		m.Title,
		m.DateTime,
		m.Location,
		m.Notes,
		string(m.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

// DeleteMeeting removes a meeting owned by ownerID.
func (r *Repository) DeleteMeeting(ctx context.Context, ownerID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	var (
		m      model.Meeting
		status string
	)
	err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.ClientID,
		&m.Title,
		&m.DateTime,
		&m.Location,
		&m.Notes,
		&status,
		&m.CreatedAt,
	)
	m.Status = model.MeetingStatus(status)
	return &m, err
}
