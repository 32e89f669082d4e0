package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clientbook/clientbook/internal/metrics"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/repository"
)

// ClientService handles owner-scoped client management.
type ClientService struct {
	clients ClientStore
	metrics metrics.Recorder
}

// NewClientService creates a new ClientService.
func NewClientService(clients ClientStore, recorder metrics.Recorder) *ClientService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ClientService{clients: clients, metrics: recorder}
}

// ClientInput defines input for creating a client.
type ClientInput struct {
	FullName string
	Email    string
	Phone    string
	Company  string
	Address  string
	Notes    string
}

// ClientPatch defines a partial client update. Nil fields keep stored values.
type ClientPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
	Notes    *string
}

// Create stores a new client owned by ownerID.
func (s *ClientService) Create(ctx context.Context, ownerID string, input ClientInput) (*model.Client, error) {
	c := &model.Client{
		ID:        generateULID(),
		OwnerID:   ownerID,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Company:   input.Company,
		Address:   input.Address,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}

	if err := s.clients.CreateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.metrics.IncClientCreated()
	return c, nil
}

// List returns the owner's clients, newest first.
func (s *ClientService) List(ctx context.Context, ownerID string) ([]*model.Client, error) {
	clients, err := s.clients.ListClients(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Get returns one of the owner's clients.
func (s *ClientService) Get(ctx context.Context, ownerID, id string) (*model.Client, error) {
	c, err := s.clients.GetClient(ctx, ownerID, id)
	if err != nil {
		return nil, mapClientErr(err, "get")
	}
	return c, nil
}

// Update merges patch into the stored client.
func (s *ClientService) Update(ctx context.Context, ownerID, id string, patch ClientPatch) (*model.Client, error) {
	c, err := s.clients.GetClient(ctx, ownerID, id)
	if err != nil {
		return nil, mapClientErr(err, "get")
	}

	applyString(&c.FullName, patch.FullName, true)
	applyString(&c.Email, patch.Email, true)
	applyString(&c.Phone, patch.Phone, true)
	applyString(&c.Company, patch.Company, false)
	applyString(&c.Address, patch.Address, false)
	applyString(&c.Notes, patch.Notes, false)

	if err := validateClient(c); err != nil {
		return nil, err
	}

	if err := s.clients.UpdateClient(ctx, c); err != nil {
		return nil, mapClientErr(err, "update")
	}

	s.metrics.IncClientUpdated()
	return c, nil
}

// Delete removes one of the owner's clients. Meetings referencing it are kept.
func (s *ClientService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.clients.DeleteClient(ctx, ownerID, id); err != nil {
		return mapClientErr(err, "delete")
	}
	s.metrics.IncClientDeleted()
	return nil
}

func validateClient(c *model.Client) error {
	if c.FullName == "" {
		return invalid("fullName", "is required")
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.Phone == "" {
		return invalid("phone", "is required")
	}
	return nil
}

func mapClientErr(err error, op string) error {
	if errors.Is(err, repository.ErrClientNotFound) {
		return ErrClientNotFound
	}
	return fmt.Errorf("failed to %s client: %w", op, err)
}

// applyString copies src into dst when set. Required fields are trimmed.
func applyString(dst *string, src *string, trim bool) {
	if src == nil {
		return
	}
	if trim {
		*dst = strings.TrimSpace(*src)
		return
	}
	*dst = *src
}
