package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/config"
	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/types"
)

// accountStore is what UserService needs: accounts plus the profile created with them.
type accountStore interface {
	UserStore
	CreateProfile(ctx context.Context, p *db.Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
}

// UserService provides business logic for user authentication operations
type UserService struct {
	db             accountStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store accountStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             store,
		passwordConfig: passwordConfig,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a password and its profile
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.db.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, passwordHash); err != nil {
		s.cleanup(ctx, userID)
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	profile := &db.Profile{
		ID:          userID,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Skills:      db.StringArray{},
		Role:        req.Role,
	}
	if err := s.db.CreateProfile(ctx, profile); err != nil {
		s.cleanup(ctx, userID)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	// Convert and return (password hash excluded)
	return convertDBUserToTypesUser(dbUser, profile.Role), nil
}

// cleanup removes a half-created account.
func (s *UserService) cleanup(ctx context.Context, userID uuid.UUID) {
	if err := s.db.DeleteUser(ctx, userID); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("Failed to remove partially registered user")
	}
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Always return the same error whether the user is missing or the password is wrong
	if dbUser == nil || !dbUser.PasswordSet {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	profile, err := s.db.GetProfile(ctx, dbUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("user %s has no profile", dbUser.ID)
	}

	logging.Ctx(ctx).Debug().Str("user_id", dbUser.ID.String()).Msg("User logged in")
	return convertDBUserToTypesUser(dbUser, profile.Role), nil
}
