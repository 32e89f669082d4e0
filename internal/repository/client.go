package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clientbook/clientbook/internal/model"
)

// ErrClientNotFound is returned when no client matches both id and owner.
var ErrClientNotFound = errors.New("client not found")

const clientColumns = `id, owner_id, full_name, email, phone, company, address, notes, created_at`

// CreateClient inserts a new client.
func (r *Repository) CreateClient(ctx context.Context, c *model.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, full_name, email, phone, company, address, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.OwnerID,
		c.FullName,
		c.Email,
		c.Phone,
		c.Company,
		c.Address,
		c.Notes,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// ListClients returns the owner's clients, newest first.
func (r *Repository) ListClients(ctx context.Context, ownerID string) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// GetClient retrieves a client by id, scoped to its owner.
func (r *Repository) GetClient(ctx context.Context, ownerID, id string) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND owner_id = $2`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return c, nil
}

// UpdateClient writes all mutable client fields. The owner is part of the filter
// and is never changed.
func (r *Repository) UpdateClient(ctx context.Context, c *model.Client) error {
	query := `
		UPDATE clients
		SET full_name = $3, email = $4, phone = $5, company = $6, address = $7, notes = $8
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID,
		c.OwnerID,
		c.FullName,
		c.Email,
		c.Phone,
		c.Company,
		c.Address,
		c.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// DeleteClient removes a client owned by ownerID.
func (r *Repository) DeleteClient(ctx context.Context, ownerID, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Address,
		&c.Notes,
		&c.CreatedAt,
	)
	return &c, err
}
