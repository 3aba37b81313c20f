// Package services contains the portal backend business logic
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolhub/portal/internal/auth"
	"github.com/schoolhub/portal/internal/models"
	"github.com/schoolhub/portal/internal/repositories"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method GetByEmail retrieves a user with the stored password hash by email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*repositories.UserRecord, error)
	// Method GetSchools retrieves the schools a user is affiliated with, current school first.
	//
	// "userID" parameter is used to retrieve the schools of a user.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetSchools(ctx context.Context, userID int64) ([]models.School, error)
}

// TokenIssuer is the interface that wraps token generation for login
type TokenIssuer interface {
	// Method GenerateTokens generates access and refresh tokens for a user.
	//
	// "userID" and "role" parameters are embedded into the access token payload.
	//
	// If some error occurs during generation, the error will be returned together with empty strings.
	GenerateTokens(userID int64, role models.Role) (string, string, error)
}

// authService implements the login flow
type authService struct {
	userRepo    UserRepository
	tokenIssuer TokenIssuer
	logger      *zap.Logger
}

var _ TokenIssuer = (*auth.TokenGenerator)(nil)

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenIssuer TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// Login validates the credentials and returns the login payload with tokens,
// the user's role, permissions and school affiliations
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	rec, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the account exists
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := comparePassword(rec.PasswordHash, req.Password); err != nil {
		s.logger.Warn("password mismatch", zap.String("email", email))
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, refreshToken, err := s.tokenIssuer.GenerateTokens(rec.ID, rec.Role)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	schools, err := s.userRepo.GetSchools(ctx, rec.ID)
	if err != nil {
		s.logger.Error("failed to load user schools", zap.Error(err), zap.Int64("user_id", rec.ID))
		return nil, fmt.Errorf("failed to load user schools: %w", err)
	}

	resp := &models.LoginResponse{
		Success:          true,
		Message:          "login successful",
		Token:            accessToken,
		RefreshToken:     refreshToken,
		ID:               rec.ID,
		UserID:           rec.UserID,
		Email:            rec.Email,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		Role:             rec.Role,
		Permissions:      rec.Role.DefaultPermissions(),
		AvailableSchools: schools,
	}
	if len(schools) > 0 {
		current := schools[0]
		resp.CurrentSchool = &current
	}

	return resp, nil
}
