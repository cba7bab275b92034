// Package permission holds the object-level checks that gate event actions.
package permission

import (
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/apperror"
)

// IsOrganizer allows the event's organizer only. Used for update and delete.
func IsOrganizer(user *models.User, event *models.Event) error {
	if user == nil || !event.IsOrganizedBy(user.ID) {
		return apperror.PermissionDenied()
	}
	return nil
}

// IsNotOrganizer forbids the organizer from registering for their own event.
func IsNotOrganizer(user *models.User, event *models.Event) error {
	if user == nil || event.IsOrganizedBy(user.ID) {
		return apperror.PermissionDenied()
	}
	return nil
}
