package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jointoit/events-api/internal/metrics"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/permission"
	"github.com/jointoit/events-api/internal/repository"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/email"
	"github.com/jointoit/events-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notifyTimeout = 10 * time.Second

var errAlreadyRegistered = apperror.Validation("You are already registered for this event.")

// RegistrationNotifier delivers the confirmation sent after a registration.
type RegistrationNotifier interface {
	SendRegistrationConfirmation(ctx context.Context, reg email.Registration) error
}

type EventService struct {
	eventRepo        *repository.EventRepository
	registrationRepo *repository.RegistrationRepository
	notifier         RegistrationNotifier
	logger           *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	registrationRepo *repository.RegistrationRepository,
	notifier RegistrationNotifier,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		logger:           logger.With(zap.String("component", "event_service")),
	}
}

// ListEvents applies query for viewer, which is nil for anonymous callers.
// Asking an anonymous listing for "my" events yields nothing.
func (s *EventService) ListEvents(ctx context.Context, viewer *models.User, query models.EventQuery) ([]models.Event, error) {
	if viewer == nil && (query.OrganizedByMe || query.ParticipatedByMe) {
		return []models.Event{}, nil
	}

	filter := models.EventFilter{
		SearchTerms: SearchTerms(query.Search),
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
	}
	if query.OrganizedByMe {
		filter.OrganizerID = &viewer.ID
	}
	if query.ParticipatedByMe {
		filter.ParticipantID = &viewer.ID
	}

	return s.eventRepo.List(ctx, filter)
}

func (s *EventService) CreateEvent(ctx context.Context, organizer *models.User, req models.EventRequest) (*models.Event, error) {
	event := &models.Event{OrganizerID: &organizer.ID}
	partial := req.Partial()
	if err := partial.Apply(event); err != nil {
		return nil, apperror.Validation(apperror.FieldErrors{"date": utils.DateTimeFormatMessage})
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	created.Organizer = organizer
	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Event")
		}
		return nil, err
	}
	return event, nil
}

// GetOwnedEvent loads the event and checks that user organizes it.
func (s *EventService) GetOwnedEvent(ctx context.Context, user *models.User, id uint) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.IsOrganizer(user, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent applies the fields present in req. The organizer is never
// changed.
func (s *EventService) UpdateEvent(ctx context.Context, event *models.Event, req models.PartialEventRequest) (*models.Event, error) {
	if err := req.Apply(event); err != nil {
		return nil, apperror.Validation(apperror.FieldErrors{"date": utils.DateTimeFormatMessage})
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, event *models.Event) error {
	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Event")
		}
		return err
	}
	return nil
}

// Register signs user up for the event and sends a confirmation in the
// background.
func (s *EventService) Register(ctx context.Context, user *models.User, eventID uint) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := permission.IsNotOrganizer(user, event); err != nil {
		return err
	}

	exists, err := s.registrationRepo.Exists(ctx, user.ID, event.ID)
	if err != nil {
		return err
	}
	if exists {
		return errAlreadyRegistered
	}

	err = s.registrationRepo.Create(ctx, &models.EventRegistration{UserID: user.ID, EventID: event.ID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errAlreadyRegistered
		}
		return err
	}
	metrics.RegistrationsTotal.Inc()

	go s.notify(user, event)
	return nil
}

func (s *EventService) notify(user *models.User, event *models.Event) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.SendRegistrationConfirmation(ctx, email.Registration{
		Email:    user.Email,
		Username: user.Username,
		Title:    event.Title,
		Location: event.Location,
		Date:     event.Date,
	})
	if err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("failed to send registration email",
			zap.Uint("user_id", user.ID),
			zap.Uint("event_id", event.ID),
			zap.Error(err))
		return
	}
	metrics.EmailsTotal.WithLabelValues("sent").Inc()
}

// SearchTerms splits a search string on whitespace and commas.
func SearchTerms(search string) []string {
	return strings.FieldsFunc(search, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
