package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"legalscan/internal/ai"
	"legalscan/internal/analyzer"
	"legalscan/internal/extract"
	"legalscan/internal/model"
	"legalscan/internal/repository"
	"legalscan/internal/storage"
)

var (
	ErrUnreadable = errors.New("document contains no readable text")
	ErrNoAnalysis = errors.New("no analysis found for document")
	ErrTextEmpty  = errors.New("text is empty")
)

// HistoryResult is the service-level DTO for paginated analyses.
type HistoryResult struct {
	Items []model.Analysis `json:"data"`
	Total int              `json:"total"`
}

// RiskOverview aggregates the actor's analyses by risk level.
type RiskOverview struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// AnalysisService runs the legal text analysis pipeline and manages its results.
type AnalysisService interface {
	// Analyze fetches a stored document, extracts its text (OCR fallback for
	// scanned PDFs) and runs the full analysis, persisting the result.
	Analyze(ctx context.Context, actor Actor, documentID string) (*model.Analysis, error)

	// AnalyzeText analyzes pasted plain text without a stored document.
	AnalyzeText(ctx context.Context, actor Actor, text string) (*model.Analysis, error)

	// GetByDocument returns the most recent analysis for a document.
	GetByDocument(ctx context.Context, actor Actor, documentID string) (*model.Analysis, error)

	// History returns the actor's analyses, newest first.
	History(ctx context.Context, actor Actor, limit, offset int) (*HistoryResult, error)

	// RiskOverview aggregates the actor's analyses by risk level.
	RiskOverview(ctx context.Context, actor Actor) (*RiskOverview, error)

	// ClearHistory deletes all of the actor's analyses and returns how many were removed.
	ClearHistory(ctx context.Context, actor Actor) (int64, error)
}

type analysisService struct {
	docs      repository.DocumentRepository
	analyses  repository.AnalysisRepository
	activity  repository.ActivityRepository
	store     storage.Storage
	extractor extract.Extractor
	ai        ai.Summarizer // nil means heuristic summaries only
	sentences int
}

// NewAnalysisService constructs a new AnalysisService. summarizer may be nil,
// in which case summaries come from the sentence heuristic.
func NewAnalysisService(
	docs repository.DocumentRepository,
	analyses repository.AnalysisRepository,
	activity repository.ActivityRepository,
	store storage.Storage,
	extractor extract.Extractor,
	summarizer ai.Summarizer,
	summarySentences int,
) AnalysisService {
	if summarySentences <= 0 {
		summarySentences = 4
	}
	return &analysisService{
		docs:      docs,
		analyses:  analyses,
		activity:  activity,
		store:     store,
		extractor: extractor,
		ai:        summarizer,
		sentences: summarySentences,
	}
}

func (s *analysisService) Analyze(ctx context.Context, actor Actor, documentID string) (*model.Analysis, error) {
	if documentID == "" || actor.ID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.OwnerID != actor.ID {
		return nil, ErrForbidden
	}

	obj, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("fetch document content: %w", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read document content: %w", err)
	}

	res, err := s.extractor.Extract(ctx, data, doc.Filename, doc.ContentType)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			return nil, ErrUnreadable
		}
		return nil, err
	}

	analysis := s.run(ctx, res.Text)
	analysis.OwnerID = actor.ID
	analysis.DocumentID = doc.ID
	analysis.Filename = doc.Filename
	analysis.Source = res.Source

	stored, err := s.analyses.Create(ctx, analysis)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.activity, actor, "Analyzed file: "+doc.Filename)
	return stored, nil
}

func (s *analysisService) AnalyzeText(ctx context.Context, actor Actor, text string) (*model.Analysis, error) {
	if actor.ID == "" {
		return nil, ErrIDRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextEmpty
	}
	if utf8.RuneCountInString(text) < extract.MinReadableRunes {
		return nil, ErrUnreadable
	}

	analysis := s.run(ctx, text)
	analysis.OwnerID = actor.ID
	analysis.Filename = "manual text"
	analysis.Source = model.SourceManual

	stored, err := s.analyses.Create(ctx, analysis)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.activity, actor, "Analyzed manual text")
	return stored, nil
}

// run executes the analysis pipeline over extracted text.
func (s *analysisService) run(ctx context.Context, text string) *model.Analysis {
	clauses := analyzer.DetectClauses(text)
	level, comment := analyzer.AssessRisk(clauses)

	summary := s.summarize(ctx, text)

	return &model.Analysis{
		ID:           uuid.New().String(),
		DocumentType: analyzer.DetectDocumentType(text),
		RiskLevel:    level,
		RiskComment:  comment,
		Summary:      summary,
		Entities:     analyzer.ExtractEntities(text),
		Clauses:      clauses,
		WordCount:    len(strings.Fields(text)),
		CharCount:    utf8.RuneCountInString(text),
		SentCount:    len(analyzer.SplitSentences(text)),
		CreatedAt:    time.Now().UTC(),
	}
}

// summarize prefers the AI summarizer and falls back to the sentence heuristic
// on any failure, so analysis never depends on an external model being up.
func (s *analysisService) summarize(ctx context.Context, text string) string {
	if s.ai != nil {
		if summary, err := s.ai.Summarize(ctx, text); err == nil && strings.TrimSpace(summary) != "" {
			return summary
		}
	}
	return analyzer.Summarize(text, s.sentences)
}

func (s *analysisService) GetByDocument(ctx context.Context, actor Actor, documentID string) (*model.Analysis, error) {
	if documentID == "" || actor.ID == "" {
		return nil, ErrIDRequired
	}
	analysis, err := s.analyses.FindByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoAnalysis
		}
		return nil, err
	}
	if analysis.OwnerID != actor.ID {
		return nil, ErrForbidden
	}
	return analysis, nil
}

func (s *analysisService) History(ctx context.Context, actor Actor, limit, offset int) (*HistoryResult, error) {
	if actor.ID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.analyses.ListByOwner(ctx, actor.ID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Items: res.Items, Total: res.Total}, nil
}

func (s *analysisService) RiskOverview(ctx context.Context, actor Actor) (*RiskOverview, error) {
	if actor.ID == "" {
		return nil, ErrIDRequired
	}
	counts, err := s.analyses.CountByRisk(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	overview := &RiskOverview{Counts: map[string]int{
		model.RiskLow:     0,
		model.RiskMedium:  0,
		model.RiskHigh:    0,
		model.RiskUnknown: 0,
	}}
	for level, n := range counts {
		overview.Counts[level] = n
		overview.Total += n
	}
	return overview, nil
}

func (s *analysisService) ClearHistory(ctx context.Context, actor Actor) (int64, error) {
	if actor.ID == "" {
		return 0, ErrIDRequired
	}
	deleted, err := s.analyses.DeleteByOwner(ctx, actor.ID)
	if err != nil {
		return 0, err
	}
	recordActivity(ctx, s.activity, actor, "Cleared history")
	return deleted, nil
}
