package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"legalscan/internal/model"
	"legalscan/internal/repository"
)

// AnalysisPostgres is a PostgreSQL implementation of repository.AnalysisRepository.
// Clause findings are stored as JSONB.
type AnalysisPostgres struct {
	db *sql.DB
}

// NewAnalysisPostgres creates a new AnalysisPostgres repository.
func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

const analysisColumns = `id, owner_id, document_id, filename, document_type, risk_level,
		risk_comment, summary, entities, clauses, word_count, char_count, sentence_count, source, created_at`

// Create inserts a new analysis row and returns the stored record.
func (r *AnalysisPostgres) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	clauses, err := json.Marshal(a.Clauses)
	if err != nil {
		return nil, fmt.Errorf("marshal clauses: %w", err)
	}

	const q = `
		INSERT INTO analyses (id, owner_id, document_id, filename, document_type, risk_level,
			risk_comment, summary, entities, clauses, word_count, char_count, sentence_count, source, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + analysisColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.OwnerID,
		a.DocumentID,
		a.Filename,
		a.DocumentType,
		a.RiskLevel,
		a.RiskComment,
		a.Summary,
		a.Entities,
		clauses,
		a.WordCount,
		a.CharCount,
		a.SentCount,
		a.Source,
		a.CreatedAt,
	)
	return scanAnalysis(row)
}

// FindByDocumentID returns the latest analysis of a document.
func (r *AnalysisPostgres) FindByDocumentID(ctx context.Context, documentID string) (*model.Analysis, error) {
	const q = `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, documentID))
}

// ListByOwner returns one owner's analyses, newest first, with a total count.
func (r *AnalysisPostgres) ListByOwner(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Analysis], error) {
	const qCount = `SELECT COUNT(*) FROM analyses WHERE owner_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, ownerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, ownerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Analysis]{Items: items, Total: total}, nil
}

// CountByRisk aggregates one owner's analyses per risk level.
func (r *AnalysisPostgres) CountByRisk(ctx context.Context, ownerID string) (map[string]int, error) {
	const q = `
		SELECT risk_level, COUNT(*)
		FROM analyses
		WHERE owner_id = $1
		GROUP BY risk_level
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		counts[level] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// DeleteByOwner clears one owner's entire history.
func (r *AnalysisPostgres) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	const q = `DELETE FROM analyses WHERE owner_id = $1`
	res, err := r.db.ExecContext(ctx, q, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*model.Analysis, error) {
	a, err := scanAnalysisRow(row)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanAnalysisRow(row rowScanner) (*model.Analysis, error) {
	var (
		a       model.Analysis
		docID   sql.NullString
		clauses []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&docID,
		&a.Filename,
		&a.DocumentType,
		&a.RiskLevel,
		&a.RiskComment,
		&a.Summary,
		&a.Entities,
		&clauses,
		&a.WordCount,
		&a.CharCount,
		&a.SentCount,
		&a.Source,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.DocumentID = docID.String
	if len(clauses) > 0 {
		if err := json.Unmarshal(clauses, &a.Clauses); err != nil {
			return nil, fmt.Errorf("unmarshal clauses: %w", err)
		}
	}
	return &a, nil
}
