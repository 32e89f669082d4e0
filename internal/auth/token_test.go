package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenManager(t *testing.T) {
	t.Parallel()

	_, err := auth.NewTokenManager("", 0, "clientbook")
	require.ErrorIs(t, err, auth.ErrWeakSecret)

	m, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultTokenTTL, m.TTL())
	assert.Equal(t, 7*24*time.Hour, m.TTL())
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	m, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)

	token, expiresAt, err := m.Issue("user-1", "ada@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(auth.DefaultTokenTTL), expiresAt, 2*time.Second)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "ada@x.com", id.Email)
}

func TestTokenManager_IndependentTokens(t *testing.T) {
	t.Parallel()

	m, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)

	t1, _, err := m.Issue("user-1", "ada@x.com")
	require.NoError(t, err)
	t2, _, err := m.Issue("user-1", "ada@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	_, err = m.Verify(t1)
	assert.NoError(t, err)
	_, err = m.Verify(t2)
	assert.NoError(t, err)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	base, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)

	token, expiresAt, err := base.WithClock(fixedClock(issuedAt)).Issue("user-1", "ada@x.com")
	require.NoError(t, err)
	require.True(t, issuedAt.Add(7*24*time.Hour).Equal(expiresAt), "expiry should be issuance plus seven days")

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issuance", issuedAt, nil},
		{"one day later", issuedAt.Add(24 * time.Hour), nil},
		{"one second before expiry", expiresAt.Add(-time.Second), nil},
		{"exactly at expiry", expiresAt, auth.ErrTokenExpired},
		{"after expiry", expiresAt.Add(time.Second), auth.ErrTokenExpired},
		{"long after expiry", expiresAt.Add(30 * 24 * time.Hour), auth.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := base.WithClock(fixedClock(tt.at)).Verify(token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenManager_SubSecondIssuance(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 900_000_000, time.UTC)
	base, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)

	token, expiresAt, err := base.WithClock(fixedClock(issuedAt)).Issue("user-1", "ada@x.com")
	require.NoError(t, err)

	whole := issuedAt.Truncate(time.Second)
	assert.True(t, whole.Add(auth.DefaultTokenTTL).Equal(expiresAt), "expiresAt %v", expiresAt)

	var claims auth.Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(fixedClock(issuedAt)))
	require.NoError(t, err)
	assert.True(t, claims.IssuedAt.Time.Equal(whole))
	assert.True(t, claims.ExpiresAt.Time.Equal(expiresAt))
	assert.Equal(t, auth.DefaultTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	_, err = ulid.Parse(claims.ID)
	assert.NoError(t, err, "jti should be a ULID")

	_, err = base.WithClock(fixedClock(expiresAt.Add(-time.Nanosecond))).Verify(token)
	require.NoError(t, err)
	_, err = base.WithClock(fixedClock(expiresAt)).Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	t.Parallel()

	m, err := auth.NewTokenManager(testSecret, 0, "clientbook")
	require.NoError(t, err)
	other, err := auth.NewTokenManager("ffffffffffffffffffffffffffffffff", 0, "clientbook")
	require.NoError(t, err)
	otherIssuer, err := auth.NewTokenManager(testSecret, 0, "someone-else")
	require.NoError(t, err)

	token, _, err := m.Issue("user-1", "ada@x.com")
	require.NoError(t, err)

	foreign, _, err := other.Issue("user-1", "ada@x.com")
	require.NoError(t, err)

	wrongIssuer, _, err := otherIssuer.Issue("user-1", "ada@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "clientbook",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"tampered sig": tampered,
		"other secret": foreign,
		"other issuer": wrongIssuer,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(raw)
			require.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, auth.IdentityFromContext(ctx))
	assert.Empty(t, auth.UserIDFromContext(ctx))

	ctx = auth.ContextWithIdentity(ctx, &model.Identity{UserID: "user-1", Email: "ada@x.com"})
	require.NotNil(t, auth.IdentityFromContext(ctx))
	assert.Equal(t, "user-1", auth.UserIDFromContext(ctx))
}
