package postgres

import (
	"context"
	"database/sql"

	"legalscan/internal/model"
	"legalscan/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Insert appends one activity record.
func (r *ActivityPostgres) Insert(ctx context.Context, rec *model.ActivityRecord) error {
	const q = `
		INSERT INTO activity (id, user_email, action, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, rec.ID, rec.UserEmail, rec.Action, rec.CreatedAt)
	return err
}

// ListRecent returns the latest records, newest first.
func (r *ActivityPostgres) ListRecent(ctx context.Context, limit int) ([]model.ActivityRecord, error) {
	const q = `
		SELECT id, user_email, action, created_at
		FROM activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ActivityRecord, 0)
	for rows.Next() {
		var rec model.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.UserEmail, &rec.Action, &rec.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
