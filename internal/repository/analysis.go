package repository

import (
	"context"

	"legalscan/internal/model"
)

// AnalysisRepository defines data access for analysis results.
type AnalysisRepository interface {
	// Create inserts a new analysis row and returns the stored row.
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)

	// FindByDocumentID returns the most recent analysis of a document.
	FindByDocumentID(ctx context.Context, documentID string) (*model.Analysis, error)

	// ListByOwner returns one owner's analyses, newest first.
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Analysis], error)

	// CountByRisk returns the number of analyses per risk level for one owner.
	CountByRisk(ctx context.Context, ownerID string) (map[string]int, error)

	// DeleteByOwner removes all of one owner's analyses and returns the number deleted.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
