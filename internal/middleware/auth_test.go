package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/model"
)

type stubVerifier struct {
	token    string
	identity *model.Identity
}

func (s stubVerifier) VerifyToken(token string) (*model.Identity, error) {
	if token != s.token {
		return nil, errors.New("bad token")
	}
	return s.identity, nil
}

const unauthorizedBody = `{"error":"Invalid or missing token","code":"UNAUTHORIZED"}` + "\n"

func TestAuth(t *testing.T) {
	t.Parallel()

	identity := &model.Identity{UserID: "user-1", Email: "ada@x.com"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid token", "Bearer good-token", http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer good-token", http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, ""},
		{"scheme only", "Bearer", http.StatusUnauthorized, ""},
		{"empty token", "Bearer   ", http.StatusUnauthorized, ""},
		{"raw token without scheme", "good-token", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer forged-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seenUser string
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				seenUser = auth.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := Auth(AuthConfig{
				Logger:   slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
				Verifier: stubVerifier{token: "good-token", identity: identity},
			})

			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if reached {
					t.Error("handler must not run for unauthenticated requests")
				}
				if rec.Body.String() != unauthorizedBody {
					t.Errorf("body = %q, want %q", rec.Body.String(), unauthorizedBody)
				}
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				return
			}
			if seenUser != tt.wantUser {
				t.Errorf("user in context = %q, want %q", seenUser, tt.wantUser)
			}
		})
	}
}
