package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"legalscan/internal/analyzer"
	"legalscan/internal/extract"
	"legalscan/internal/model"
	"legalscan/internal/repository"
	"legalscan/internal/storage"
)

// ErrSameDocument is returned when a comparison references one document twice.
var ErrSameDocument = errors.New("cannot compare a document with itself")

// CompareService diffs two stored documents and reports their similarity.
type CompareService interface {
	Compare(ctx context.Context, actor Actor, documentID1, documentID2 string) (*model.Comparison, error)
}

type compareService struct {
	docs      repository.DocumentRepository
	store     storage.Storage
	extractor extract.Extractor
	activity  repository.ActivityRepository
}

// NewCompareService constructs a new CompareService.
func NewCompareService(docs repository.DocumentRepository, store storage.Storage, extractor extract.Extractor, activity repository.ActivityRepository) CompareService {
	return &compareService{docs: docs, store: store, extractor: extractor, activity: activity}
}

func (s *compareService) Compare(ctx context.Context, actor Actor, documentID1, documentID2 string) (*model.Comparison, error) {
	if documentID1 == "" || documentID2 == "" || actor.ID == "" {
		return nil, ErrIDRequired
	}
	if documentID1 == documentID2 {
		return nil, ErrSameDocument
	}

	text1, name1, err := s.extractText(ctx, actor, documentID1)
	if err != nil {
		return nil, err
	}
	text2, name2, err := s.extractText(ctx, actor, documentID2)
	if err != nil {
		return nil, err
	}

	similarity, diffs := analyzer.Compare(text1, text2)

	recordActivity(ctx, s.activity, actor, fmt.Sprintf("Compared files: %s vs %s", name1, name2))
	return &model.Comparison{
		DocumentID1: documentID1,
		DocumentID2: documentID2,
		Similarity:  similarity,
		Diffs:       diffs,
	}, nil
}

// extractText loads an owned document from storage and extracts its text.
func (s *compareService) extractText(ctx context.Context, actor Actor, documentID string) (text, filename string, err error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	if doc.OwnerID != actor.ID {
		return "", "", ErrForbidden
	}

	obj, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return "", "", fmt.Errorf("fetch document content: %w", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", "", fmt.Errorf("read document content: %w", err)
	}

	res, err := s.extractor.Extract(ctx, data, doc.Filename, doc.ContentType)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			return "", "", ErrUnreadable
		}
		return "", "", err
	}
	return res.Text, doc.Filename, nil
}
