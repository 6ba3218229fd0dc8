package repository

import (
	"context"

	"legalscan/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by email address.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ActivityRepository records and lists user actions.
type ActivityRepository interface {
	// Insert appends one activity record.
	Insert(ctx context.Context, rec *model.ActivityRecord) error

	// ListRecent returns the latest records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.ActivityRecord, error)
}
