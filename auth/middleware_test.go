package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/product-catalog-go/config"
)

func protectedHandler(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := UserIDFromContext(r.Context()); ok {
			*seen = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	svc := NewService(&fakeUserRepository{}, config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour})

	subject := primitive.NewObjectID().Hex()
	token, err := svc.IssueToken(subject)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc123", wantStatus: http.StatusUnauthorized},
		{name: "malformed token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequireAuth(svc)(protectedHandler(&seen))

			req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, subject, seen, "handler should see the token subject")
			} else {
				assert.Empty(t, seen, "handler must not run without valid auth")
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := NewService(&fakeUserRepository{}, config.AuthConfig{JWTSecret: "test-secret", TokenDuration: -time.Minute})
	token, err := expired.IssueToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	var seen string
	handler := RequireAuth(expired)(protectedHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, seen)
}
