package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/metrics"
	"github.com/clientbook/clientbook/internal/service"
	"github.com/clientbook/clientbook/internal/testutil"
)

func strPtr(s string) *string { return &s }

func adaInput() service.ClientInput {
	return service.ClientInput{FullName: "Ada", Email: "ada@x.com", Phone: "123", Company: "Acme"}
}

func TestClientService_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewClientService(testutil.NewMemoryStore(), nil)

	created, err := svc.Create(ctx, "user-u", adaInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, "user-u", created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "ada@x.com", got.Email)
	assert.Equal(t, "123", got.Phone)
	assert.Equal(t, "Acme", got.Company)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "user-u", got.OwnerID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestClientService_OwnerStampedByServer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	svc := service.NewClientService(store, nil)

	// ClientInput has no owner field; the only owner is the caller argument.
	created, err := svc.Create(ctx, "caller", adaInput())
	require.NoError(t, err)
	assert.Equal(t, "caller", created.OwnerID)

	_, err = svc.Get(ctx, "someone-else", created.ID)
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestClientService_CrossOwnerIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewClientService(testutil.NewMemoryStore(), nil)

	owned, err := svc.Create(ctx, "user-a", adaInput())
	require.NoError(t, err)

	operations := map[string]func(id string) error{
		"get": func(id string) error {
			_, err := svc.Get(ctx, "user-b", id)
			return err
		},
		"update": func(id string) error {
			_, err := svc.Update(ctx, "user-b", id, service.ClientPatch{Phone: strPtr("999")})
			return err
		},
		"delete": func(id string) error {
			return svc.Delete(ctx, "user-b", id)
		},
	}

	for name, op := range operations {
		foreign := op(owned.ID)
		missing := op("does-not-exist")

		require.ErrorIs(t, foreign, service.ErrClientNotFound, name)
		require.ErrorIs(t, missing, service.ErrClientNotFound, name)
		assert.Equal(t, missing.Error(), foreign.Error(), "%s must not reveal existence", name)
	}

	still, err := svc.Get(ctx, "user-a", owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "123", still.Phone)
}

func TestClientService_PartialUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewClientService(testutil.NewMemoryStore(), nil)

	created, err := svc.Create(ctx, "user-u", adaInput())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-u", created.ID, service.ClientPatch{Phone: strPtr("999")})
	require.NoError(t, err)
	assert.Equal(t, "999", updated.Phone)

	got, err := svc.Get(ctx, "user-u", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "999", got.Phone)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "ada@x.com", got.Email)
	assert.Equal(t, "Acme", got.Company)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestClientService_UpdateCannotClearRequired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewClientService(testutil.NewMemoryStore(), nil)

	created, err := svc.Create(ctx, "user-u", adaInput())
	require.NoError(t, err)

	for _, patch := range []service.ClientPatch{
		{FullName: strPtr("")},
		{Email: strPtr("  ")},
		{Phone: strPtr("")},
	} {
		_, err := svc.Update(ctx, "user-u", created.ID, patch)
		assert.ErrorIs(t, err, service.ErrValidation)
	}

	_, err = svc.Update(ctx, "user-u", created.ID, service.ClientPatch{Company: strPtr("")})
	assert.NoError(t, err, "optional fields may be cleared")
}

func TestClientService_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input service.ClientInput
		field string
	}{
		{"missing name", service.ClientInput{Email: "a@x.com", Phone: "1"}, "fullName"},
		{"missing email", service.ClientInput{FullName: "A", Phone: "1"}, "email"},
		{"bad email", service.ClientInput{FullName: "A", Email: "a@", Phone: "1"}, "email"},
		{"missing phone", service.ClientInput{FullName: "A", Email: "a@x.com"}, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := service.NewClientService(testutil.NewMemoryStore(), nil)

			_, err := svc.Create(context.Background(), "user-u", tt.input)
			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestClientService_ListNewestFirstAndScoped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	svc := service.NewClientService(store, nil)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		c := testutil.NewTestClient(t, "user-u")
		c.FullName = name
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.CreateClient(ctx, c))
	}
	require.NoError(t, store.CreateClient(ctx, testutil.NewTestClient(t, "user-v")))

	list, err := svc.List(ctx, "user-u")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].FullName)
	assert.Equal(t, "middle", list[1].FullName)
	assert.Equal(t, "oldest", list[2].FullName)

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClientService_DeleteAndMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := metrics.NewInMemory()
	svc := service.NewClientService(testutil.NewMemoryStore(), rec)

	created, err := svc.Create(ctx, "user-u", adaInput())
	require.NoError(t, err)
	_, err = svc.Update(ctx, "user-u", created.ID, service.ClientPatch{Notes: strPtr("vip")})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "user-u", created.ID))

	_, err = svc.Get(ctx, "user-u", created.ID)
	assert.ErrorIs(t, err, service.ErrClientNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-u", created.ID), service.ErrClientNotFound)

	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.ClientsCreated)
	assert.Equal(t, uint64(1), snap.ClientsUpdated)
	assert.Equal(t, uint64(1), snap.ClientsDeleted)
}

func TestClientService_StoreFailureIsWrapped(t *testing.T) {
	t.Parallel()
	store := testutil.NewMemoryStore()
	boom := errors.New("connection reset")
	store.Err = boom
	svc := service.NewClientService(store, nil)

	_, err := svc.List(context.Background(), "user-u")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrClientNotFound)
}
