package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satvicplanner/satvic-planner-go/internal/crypto"
	"github.com/satvicplanner/satvic-planner-go/internal/model"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
)

const minPasswordLength = 6

// AuthService handles authentication business logic.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return model.AuthResponse{}, invalid("Missing required fields: name, email, password")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return model.AuthResponse{}, invalid("Invalid email format")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return model.AuthResponse{}, invalid("Password must be at least 6 characters long")
	}

	// Advisory only; the unique index decides races.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	creds, err := crypto.HashCredentials(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Password:     creds.Password,
		PasswordHash: creds.PasswordHash,
		Profile:      model.EmptyProfile(),
		CreatedAt:    timeNow(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID.Hex())
	return s.issue(user)
}

// Login authenticates a user and returns an auth token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, invalid("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	// Accounts may carry either or both credential fields.
	if !crypto.VerifyCredential(req.Password, user.Password) &&
		!crypto.VerifyCredential(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	now := timeNow()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "recording last login failed", "user_id", user.ID.Hex(), "error", err)
	} else {
		user.LastLogin = &now
	}

	return s.issue(user)
}

// Verify returns the user a valid token was issued for.
func (s *AuthService) Verify(ctx context.Context, userID primitive.ObjectID) (model.User, error) {
	return loadUser(ctx, s.users, userID)
}

func (s *AuthService) issue(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, User: user.Public()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loadUser(ctx context.Context, users UserStore, id primitive.ObjectID) (model.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user.Public(), nil
}
