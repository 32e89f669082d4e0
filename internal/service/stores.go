package service

import (
	"context"

	"github.com/clientbook/clientbook/internal/model"
)

// UserStore persists user accounts. *repository.Repository implements it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// ClientStore persists clients. Every lookup is scoped by owner.
type ClientStore interface {
	CreateClient(ctx context.Context, c *model.Client) error
	ListClients(ctx context.Context, ownerID string) ([]*model.Client, error)
	GetClient(ctx context.Context, ownerID, id string) (*model.Client, error)
	UpdateClient(ctx context.Context, c *model.Client) error
	DeleteClient(ctx context.Context, ownerID, id string) error
}

// MeetingStore persists meetings. Every lookup is scoped by owner.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, m *model.Meeting) error
	ListMeetings(ctx context.Context, ownerID string) ([]*model.Meeting, error)
	GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error)
	UpdateMeeting(ctx context.Context, m *model.Meeting) error
	DeleteMeeting(ctx context.Context, ownerID, id string) error
}

// ProfileCache is a read-through cache of user profiles.
// GetProfile returns nil, nil on a miss. AddProfile writes only when no
// entry exists; SetProfile always overwrites.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	AddProfile(ctx context.Context, user *model.User) error
	SetProfile(ctx context.Context, user *model.User) error
	DeleteProfile(ctx context.Context, userID string) error
}
