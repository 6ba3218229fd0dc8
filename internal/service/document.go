package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"legalscan/internal/model"
	"legalscan/internal/repository"
	"legalscan/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrForbidden  = errors.New("document belongs to another user")
	ErrReaderNil  = errors.New("reader is nil")
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling uploaded legal documents.
// All operations are scoped to the requesting actor.
type DocumentService interface {
	// Upload uploads the content to object storage, saves metadata to DB, and rolls back storage if DB save fails.
	// - originalFilename is kept for display; the stored object key is UUID + original extension.
	Upload(ctx context.Context, actor Actor, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns the actor's documents using limit/offset and a total count.
	List(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID if it belongs to the actor.
	Get(ctx context.Context, actor Actor, id string) (*model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, actor Actor, id string) error

	// DownloadURL returns a time-limited pre-signed URL for the document content.
	DownloadURL(ctx context.Context, actor Actor, id string, expiry time.Duration) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	activity repository.ActivityRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, activity repository.ActivityRepository) DocumentService {
	return &documentService{store: store, repo: repo, activity: activity}
}

func (s *documentService) Upload(ctx context.Context, actor Actor, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if actor.ID == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	// Object key is UUID + extension, namespaced per owner
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("legal", actor.ID, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	recordActivity(ctx, s.activity, actor, "Uploaded file: "+originalFilename)
	return stored, nil
}

// List returns the actor's paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, actor Actor, limit, offset int) (*DocumentListResult, error) {
	if actor.ID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByOwner(ctx, actor.ID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID, enforcing ownership.
func (s *documentService) Get(ctx context.Context, actor Actor, id string) (*model.Document, error) {
	if id == "" || actor.ID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.OwnerID != actor.ID {
		return nil, ErrForbidden
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, actor Actor, id string) error {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// DownloadURL returns a pre-signed URL for the document content.
func (s *documentService) DownloadURL(ctx context.Context, actor Actor, id string, expiry time.Duration) (string, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, expiry)
}

// recordActivity appends an activity entry; the log is best-effort and never fails the operation.
func recordActivity(ctx context.Context, activity repository.ActivityRepository, actor Actor, action string) {
	if activity == nil {
		return
	}
	_ = activity.Insert(ctx, &model.ActivityRecord{
		ID:        uuid.New().String(),
		UserEmail: actor.Email,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	})
}
