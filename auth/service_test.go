package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/config"
)

// fakeUserRepository is an in-memory UserRepository enforcing the same
// uniqueness the mongo indexes do.
type fakeUserRepository struct {
	mu    sync.Mutex
	users []*User
}

func (f *fakeUserRepository) Insert(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func testConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
}

func newTestService() (*Service, *fakeUserRepository) {
	repo := &fakeUserRepository{}
	return NewService(repo, testConfig()), repo
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "Alice@X.com",
		Password: "pw",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email, "emails are stored lowercase")
	assert.NotEqual(t, "pw", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))
	assert.Len(t, repo.users, 1)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode(), "duplicate registration is reported as 400")
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@x.com", resp.User.Email)

	// The issued token verifies back to the same subject.
	userID, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)

	_, errWrong := svc.Login(ctx, LoginRequest{Email: "alice@x.com", Password: "wrong"})
	require.Error(t, errWrong)
	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "bob@x.com", Password: "pw"})
	require.Error(t, errUnknown)

	assert.True(t, apperror.IsBadRequest(errWrong))
	assert.True(t, apperror.IsBadRequest(errUnknown))
	assert.Equal(t, errWrong.Error(), errUnknown.Error(), "wrong password and unknown email must be indistinguishable")
}

func TestVerifyToken_Failures(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-token"},
		{name: "empty", token: ""},
		{
			name: "wrong secret",
			token: func() string {
				other := NewService(&fakeUserRepository{}, config.AuthConfig{JWTSecret: "other-secret", TokenDuration: time.Hour})
				tok, err := other.IssueToken(primitive.NewObjectID().Hex())
				require.NoError(t, err)
				return tok
			}(),
		},
		{
			name: "expired",
			token: func() string {
				expired := NewService(&fakeUserRepository{}, config.AuthConfig{JWTSecret: "test-secret", TokenDuration: -time.Minute})
				tok, err := expired.IssueToken(primitive.NewObjectID().Hex())
				require.NoError(t, err)
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyToken(tt.token)
			require.Error(t, err)
			assert.True(t, apperror.IsAuthError(err), "all token failures collapse into the same auth error")
		})
	}
}

func TestStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw"})
	require.NoError(t, err)

	resp, err := svc.Status(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, resp.IsAuthenticated)
	assert.Equal(t, "alice", resp.User.Username)

	_, err = svc.Status(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Status(ctx, "not-an-id")
	assert.True(t, apperror.IsNotFound(err))
}
