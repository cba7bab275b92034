package models

import (
	"time"

	"github.com/jointoit/events-api/pkg/utils"
)

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	OrganizerID *uint     `json:"organizer_id" gorm:"index"`
	Organizer   *User     `json:"-" gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOrganizedBy reports whether userID owns the event.
func (e *Event) IsOrganizedBy(userID uint) bool {
	return e.OrganizerID != nil && *e.OrganizerID == userID
}

// EventRegistration records that a user attends an event. The pair is unique.
type EventRegistration struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_user_event"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_registration_user_event;index"`
	Event     Event     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRequest is the body of create, update and partial update. Required
// rules are only enforced for create and full update.
type EventRequest struct {
	Title       *string `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description" validate:"required,notblank"`
	Date        *string `json:"date" validate:"required,datetime_iso"`
	Location    *string `json:"location" validate:"required,notblank,max=255"`
}

// PartialEventRequest has the same fields with every rule optional.
type PartialEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Date        *string `json:"date" validate:"omitempty,datetime_iso"`
	Location    *string `json:"location" validate:"omitempty,notblank,max=255"`
}

func (r *EventRequest) Normalize() {
	trim(r.Title, r.Description, r.Date, r.Location)
}

func (r *PartialEventRequest) Normalize() {
	trim(r.Title, r.Description, r.Date, r.Location)
}

// Partial converts a validated full request so both paths share Apply.
func (r *EventRequest) Partial() PartialEventRequest {
	return PartialEventRequest{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
	}
}

// Apply copies the fields present in r onto e. The request must have been
// validated.
func (r *PartialEventRequest) Apply(e *Event) error {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Location != nil {
		e.Location = *r.Location
	}
	if r.Date != nil {
		date, err := utils.ParseDateTime(deref(r.Date))
		if err != nil {
			return err
		}
		e.Date = date
	}
	return nil
}

// EventQuery holds the list filters taken from the query string.
type EventQuery struct {
	Search           string
	StartDate        *time.Time
	EndDate          *time.Time
	OrganizedByMe    bool
	ParticipatedByMe bool
}

// EventFilter is what the repository applies. Viewer scoping has already
// been resolved to ids.
type EventFilter struct {
	SearchTerms   []string
	StartDate     *time.Time
	EndDate       *time.Time
	OrganizerID   *uint
	ParticipantID *uint
}

type EventResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Organizer   *string `json:"organizer"`
}

func NewEventResponse(e *Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        utils.FormatDateTime(e.Date),
		Location:    e.Location,
	}
	if e.Organizer != nil {
		name := e.Organizer.String()
		resp.Organizer = &name
	}
	return resp
}

func NewEventResponses(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}
