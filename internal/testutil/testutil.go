// Package testutil holds helpers shared by tests: environment gating,
// database locking, in-memory stores and data factories.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clientbook/clientbook/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Uint64

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// UniqueEmail generates a unique, well-formed email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, seq.Add(1))
}

// NewTestUser creates a test user with sensible defaults.
// The password hash is a placeholder; use the auth service to register real accounts.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	return &model.User{
		ID:           UniqueID("user"),
		FullName:     "Test User",
		Email:        UniqueEmail("user"),
		PasswordHash: "not-a-real-hash",
		Phone:        "555-0100",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestClient creates a test client owned by ownerID.
func NewTestClient(t testing.TB, ownerID string) *model.Client {
	t.Helper()
	return &model.Client{
		ID:        UniqueID("client"),
		OwnerID:   ownerID,
		FullName:  "Ada Lovelace",
		Email:     "ada@x.com",
		Phone:     "123",
		Company:   "Acme",
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestMeeting creates a scheduled test meeting between ownerID and clientID.
func NewTestMeeting(t testing.TB, ownerID, clientID string, at time.Time) *model.Meeting {
	t.Helper()
	return &model.Meeting{
		ID:        UniqueID("meeting"),
		Title:     "Sync",
		OwnerID:   ownerID,
		ClientID:  clientID,
		DateTime:  at.UTC(),
		Status:    model.MeetingScheduled,
		CreatedAt: time.Now().UTC(),
	}
}
