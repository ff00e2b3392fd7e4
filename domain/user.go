package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the top-level identity aggregate. The password field holds the
// bcrypt hash and never serializes.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a user with a generated identifier
func NewUser(name, email, hashedPassword, avatar string) *User {
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC(),
	}
}
