package models

import (
	"strings"
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName    string    `json:"first_name" gorm:"size:150;not null"`
	LastName     string    `json:"last_name" gorm:"size:150;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	IsActive     bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) String() string {
	return u.Username
}

// CreateUserRequest is the signup body. Pointers tell a missing field apart
// from a blank one.
type CreateUserRequest struct {
	Username  *string `json:"username" validate:"required,notblank,max=150,username"`
	FirstName *string `json:"first_name" validate:"required,notblank,max=150"`
	LastName  *string `json:"last_name" validate:"required,notblank,max=150"`
	Email     *string `json:"email" validate:"required,notblank,max=254,email"`
	Password  *string `json:"password" validate:"required,notblank,password_len"`
}

// Normalize trims surrounding whitespace from every field but the password.
func (r *CreateUserRequest) Normalize() {
	trim(r.Username, r.FirstName, r.LastName, r.Email)
}

type UserResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
