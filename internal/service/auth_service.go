package service

import (
	"context"
	"errors"

	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/repository"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/bcrypt"
	jwtPkg "github.com/jointoit/events-api/pkg/jwt"
	"gorm.io/gorm"
)

// Authentication failure codes sent in the "code" field of 401 responses.
const (
	CodeNoActiveAccount = "no_active_account"
	CodeTokenNotValid   = "token_not_valid"
	CodeUserNotFound    = "user_not_found"
	CodeUserInactive    = "user_inactive"
)

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *jwtPkg.Manager
}

func NewAuthService(userRepo *repository.UserRepository, tokens *jwtPkg.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func errNoActiveAccount(cause error) error {
	return apperror.AuthenticationFailed(
		"No active account found with the given credentials", CodeNoActiveAccount, cause)
}

// ObtainPair checks credentials and issues a refresh/access pair.
func (s *AuthService) ObtainPair(ctx context.Context, req models.TokenObtainRequest) (*jwtPkg.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, *req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoActiveAccount(err)
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.PasswordHash, *req.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatch) {
			return nil, errNoActiveAccount(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errNoActiveAccount(nil)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, req models.TokenRefreshRequest) (*models.TokenRefreshResponse, error) {
	claims, err := s.tokens.ValidateTokenType(*req.Refresh, jwtPkg.TokenTypeRefresh)
	if err != nil {
		return nil, tokenError(err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoActiveAccount(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errNoActiveAccount(nil)
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenRefreshResponse{Access: access}, nil
}

// Verify accepts any unexpired token signed by this server.
func (s *AuthService) Verify(_ context.Context, req models.TokenVerifyRequest) error {
	if _, err := s.tokens.ValidateToken(*req.Token); err != nil {
		return tokenError(err)
	}
	return nil
}

// Authenticate resolves a bearer access token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, access string) (*models.User, error) {
	claims, err := s.tokens.ValidateTokenType(access, jwtPkg.TokenTypeAccess)
	if err != nil {
		return nil, apperror.AuthenticationFailed(
			"Given token not valid for any token type", CodeTokenNotValid, err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.AuthenticationFailed("User not found", CodeUserNotFound, err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.AuthenticationFailed("User is inactive", CodeUserInactive, nil)
	}
	return user, nil
}

func tokenError(err error) error {
	if errors.Is(err, jwtPkg.ErrWrongType) {
		return apperror.AuthenticationFailed("Token has wrong type", CodeTokenNotValid, err)
	}
	return apperror.AuthenticationFailed("Token is invalid or expired", CodeTokenNotValid, err)
}
