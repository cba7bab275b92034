package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jointoit/events-api/internal/models"
	"gorm.io/gorm"
)

const searchClause = "(LOWER(events.title) LIKE ? ESCAPE '\\'" +
	" OR LOWER(events.location) LIKE ? ESCAPE '\\'" +
	" OR events.organizer_id IN (SELECT users.id FROM users WHERE LOWER(users.username) LIKE ? ESCAPE '\\'))"

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Organizer").First(&event, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find event %d: %w", id, err)
	}
	return &event, nil
}

// List returns events matching filter ordered by date, then id.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	q := r.db.WithContext(ctx).Model(&models.Event{}).Preload("Organizer")

	for _, term := range filter.SearchTerms {
		pattern := likePattern(term)
		q = q.Where(searchClause, pattern, pattern, pattern)
	}
	if filter.StartDate != nil {
		q = q.Where("events.date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		q = q.Where("events.date <= ?", filter.EndDate.UTC())
	}
	if filter.OrganizerID != nil {
		q = q.Where("events.organizer_id = ?", *filter.OrganizerID)
	}
	if filter.ParticipantID != nil {
		q = q.Where("events.id IN (SELECT event_registrations.event_id FROM event_registrations WHERE event_registrations.user_id = ?)", *filter.ParticipantID)
	}

	events := []models.Event{}
	if err := q.Order("events.date ASC").Order("events.id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	err := r.db.WithContext(ctx).
		Model(event).
		Select("title", "description", "date", "location", "updated_at").
		Updates(event).Error
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", event.ID, err)
	}
	return nil
}

// Delete removes the event and its registrations in one transaction.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
			return fmt.Errorf("failed to delete registrations of event %d: %w", id, err)
		}
		result := tx.Delete(&models.Event{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete event %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("failed to delete event %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Count(&count).Error
	return count, err
}

// likePattern lowercases term, escapes LIKE wildcards and wraps it for a
// substring match.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
