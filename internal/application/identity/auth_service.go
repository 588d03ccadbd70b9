package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/identity"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for unknown emails, wrong passwords
// and deactivated accounts alike, so login failures leak nothing.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles admin authentication
type AuthService struct {
	userRepo identity.Repository
	tokens   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.Repository, tokens *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// GetProfile returns the admin user behind a validated token
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
