package repository

import (
	"context"
	"fmt"

	"github.com/jointoit/events-api/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts the registration. A second registration for the same
// user and event fails with gorm.ErrDuplicatedKey.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.EventRegistration) error {
	err := r.db.WithContext(ctx).Omit("User", "Event").Create(registration).Error
	if err != nil {
		return fmt.Errorf("failed to register user %d for event %d: %w",
			registration.UserID, registration.EventID, translate(err))
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}

func (r *RegistrationRepository) CountForEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
