package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityRecord is one entry of the per-user activity log.
type ActivityRecord struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
