package service

import (
	"context"
	"errors"

	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/repository"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/bcrypt"
	"gorm.io/gorm"
)

const (
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "user with this email address already exists."
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser stores a new account from a validated request.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := s.checkUnique(ctx, *req.Username, *req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.HashPassword(*req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     *req.Username,
		Email:        *req.Email,
		FirstName:    *req.FirstName,
		LastName:     *req.LastName,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent signup; report which field clashed.
			if uerr := s.checkUnique(ctx, user.Username, user.Email); uerr != nil {
				return nil, uerr
			}
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, username, email string) error {
	fields := apperror.FieldErrors{}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		fields["username"] = msgUsernameTaken
	}

	exists, err = s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		fields["email"] = msgEmailTaken
	}

	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}
