// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/bcrypt"
	"github.com/jointoit/events-api/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	// Fixtures hash at the lowest cost.
	bcrypt.Cost = bcrypt.MinCost
}

// Password is the plain-text password of every fixture user.
const Password = "s3cret-pass"

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		URL:    ":memory:",
		Silent: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts an active user whose password is Password.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.HashPassword(Password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateEvent inserts an event organized by organizer at date.
func CreateEvent(t *testing.T, db *gorm.DB, organizer *models.User, title string, date time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		Title:       title,
		Description: title + " description",
		Date:        date.UTC(),
		Location:    "Main Hall",
		OrganizerID: &organizer.ID,
	}
	require.NoError(t, db.Create(event).Error)
	event.Organizer = organizer
	return event
}

// Register records user as a participant of event.
func Register(t *testing.T, db *gorm.DB, user *models.User, event *models.Event) {
	t.Helper()
	require.NoError(t, db.Omit("User", "Event").Create(&models.EventRegistration{
		UserID:  user.ID,
		EventID: event.ID,
	}).Error)
}
