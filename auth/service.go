// Package auth implements the credential service: password hashing and
// verification, bearer token issuance and validation, and the HTTP surface
// for registration, login and auth status.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/config"
)

// Claims is the JWT payload: the subject's user id plus registered claims.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Service provides authentication operations.
type Service struct {
	users UserRepository
	cfg   config.AuthConfig
}

// NewService creates an auth service over the given user repository.
func NewService(users UserRepository, cfg config.AuthConfig) *Service {
	return &Service{users: users, cfg: cfg}
}

// Register creates a new user with a bcrypt password hash.
// Duplicate username or email is reported as a conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashed),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.NewConflictError("user already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// Login authenticates a user by email and password and issues a bearer token.
// An unknown email and a wrong password produce the same response, so the
// caller learns nothing about which part failed.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewBadRequestError("invalid credentials", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError("invalid credentials", nil)
	}

	token, err := s.IssueToken(user.ID.Hex())
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &LoginResponse{Token: token, User: user.Info()}, nil
}

// Status resolves the authenticated subject back to a user record.
func (s *Service) Status(ctx context.Context, userID string) (*StatusResponse, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	return &StatusResponse{IsAuthenticated: true, User: user.Info()}, nil
}

// IssueToken signs a token for the given subject, valid for the configured
// duration (1 hour by default).
func (s *Service) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns its subject user id.
// Every failure mode (bad signature, malformed, expired, missing subject)
// collapses into the same generic unauthorized error so validation internals
// are not leaked to the caller.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", apperror.NewAuthError("invalid or expired token", err)
	}
	return claims.ID, nil
}
