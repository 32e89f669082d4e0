package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/testutil"
)

func TestSeed_CreatesDemoData(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	out, err := seed(ctx, store, "demo@example.com", "demo123", now)
	require.NoError(t, err)
	assert.Equal(t, len(demoClients), out.Clients)
	assert.Equal(t, len(demoClients), out.Meetings)

	user, err := store.GetUserByEmail(ctx, "demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, demoName, user.FullName)
	assert.Equal(t, demoPhone, user.Phone)

	ok, err := auth.VerifyPassword("demo123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	meetings, err := store.ListMeetings(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, meetings, len(demoMeetings))
	assert.Equal(t, "Product Demo", meetings[0].Title, "earliest meeting first")
	assert.True(t, meetings[0].DateTime.Equal(now.Add(24*time.Hour)))

	clients, err := store.ListClients(ctx, user.ID)
	require.NoError(t, err)
	owned := make(map[string]bool, len(clients))
	for _, c := range clients {
		owned[c.ID] = true
	}
	for _, m := range meetings {
		assert.True(t, owned[m.ClientID], "meeting %q references a demo client", m.Title)
	}
}

func TestSeed_RerunReplacesOnlyDemoData(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	now := time.Now().UTC()

	other := testutil.NewTestUser(t)
	require.NoError(t, store.CreateUser(ctx, other))
	require.NoError(t, store.CreateClient(ctx, testutil.NewTestClient(t, other.ID)))

	first, err := seed(ctx, store, "demo@example.com", "demo123", now)
	require.NoError(t, err)

	second, err := seed(ctx, store, "demo@example.com", "another1", now)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)

	clients, err := store.ListClients(ctx, second.UserID)
	require.NoError(t, err)
	assert.Len(t, clients, len(demoClients))

	meetings, err := store.ListMeetings(ctx, second.UserID)
	require.NoError(t, err)
	assert.Len(t, meetings, len(demoMeetings))

	user, err := store.GetUserByID(ctx, second.UserID)
	require.NoError(t, err)
	ok, err := auth.VerifyPassword("another1", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	otherClients, err := store.ListClients(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherClients, 1)
}
