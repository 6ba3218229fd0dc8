package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalscan/internal/extract"
	"legalscan/internal/model"
	"legalscan/internal/repository"
	repoMocks "legalscan/internal/repository/mocks"
	"legalscan/internal/storage"
	storeMocks "legalscan/internal/storage/mocks"
)

// stubExtractor returns a fixed extraction result.
type stubExtractor struct {
	res *extract.Result
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte, filename, contentType string) (*extract.Result, error) {
	return s.res, s.err
}

// stubSummarizer returns a fixed summary.
type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.err
}

const contractText = "The receiving party shall keep all confidential information secret. " +
	"This agreement shall be governed by the laws of the state."

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{
		ID:          "doc-1",
		OwnerID:     "owner-1",
		Filename:    "nda.pdf",
		StoragePath: "legal/owner-1/uuid.pdf",
		ContentType: "application/pdf",
	}

	t.Run("happy path", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mAnalyses := new(repoMocks.MockAnalysisRepository)
		mActivity := new(repoMocks.MockActivityRepository)
		mStore := new(storeMocks.MockStorage)
		ext := &stubExtractor{res: &extract.Result{Text: contractText, PageCount: 1, Source: model.SourceEmbedded}}

		mDocs.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mStore.On("Get", ctx, doc.StoragePath).
			Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{Key: doc.StoragePath}, nil)

		var created *model.Analysis
		mAnalyses.On("Create", ctx, mock.MatchedBy(func(a *model.Analysis) bool {
			created = a
			return a.OwnerID == "owner-1" && a.DocumentID == "doc-1" && a.Source == model.SourceEmbedded
		})).Return(func(ctx context.Context, a *model.Analysis) *model.Analysis { return a }, nil)
		mActivity.On("Insert", ctx, mock.MatchedBy(func(rec *model.ActivityRecord) bool {
			return rec.Action == "Analyzed file: nda.pdf"
		})).Return(nil)

		svc := NewAnalysisService(mDocs, mAnalyses, mActivity, mStore, ext, nil, 4)
		analysis, err := svc.Analyze(ctx, testActor, "doc-1")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "nda.pdf", analysis.Filename)
		// Two of the tracked clauses are present, so the ratio lands in the high band
		assert.Equal(t, model.RiskHigh, analysis.RiskLevel)
		assert.Len(t, analysis.Clauses, 10)
		assert.Greater(t, analysis.WordCount, 0)
		assert.NotEmpty(t, analysis.Summary)
		mDocs.AssertExpectations(t)
		mAnalyses.AssertExpectations(t)
		mActivity.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("document not found", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewAnalysisService(mDocs, nil, nil, nil, nil, nil, 4)
		_, err := svc.Analyze(ctx, testActor, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ownership enforced", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "someone-else"}, nil)

		svc := NewAnalysisService(mDocs, nil, nil, nil, nil, nil, 4)
		_, err := svc.Analyze(ctx, testActor, "doc-1")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("scanned PDF with no text maps to unreadable", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		ext := &stubExtractor{err: extract.ErrNoText}

		mDocs.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mStore.On("Get", ctx, doc.StoragePath).
			Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{}, nil)

		svc := NewAnalysisService(mDocs, nil, nil, mStore, ext, nil, 4)
		_, err := svc.Analyze(ctx, testActor, "doc-1")
		assert.ErrorIs(t, err, ErrUnreadable)
	})

	t.Run("storage error", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)

		mDocs.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mStore.On("Get", ctx, doc.StoragePath).
			Return(nil, storage.ObjectInfo{}, errors.New("minio down"))

		svc := NewAnalysisService(mDocs, nil, nil, mStore, &stubExtractor{}, nil, 4)
		_, err := svc.Analyze(ctx, testActor, "doc-1")
		assert.ErrorContains(t, err, "fetch document content")
	})
}

func TestAnalysisService_Analyze_AISummary(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "doc-1", OwnerID: "owner-1", Filename: "nda.pdf", StoragePath: "k"}

	tests := []struct {
		name        string
		summarizer  *stubSummarizer
		wantSummary string
	}{
		{
			name:        "ai summary preferred",
			summarizer:  &stubSummarizer{summary: "An NDA between two parties."},
			wantSummary: "An NDA between two parties.",
		},
		{
			name:       "ai failure falls back to heuristic",
			summarizer: &stubSummarizer{err: errors.New("model unavailable")},
		},
		{
			name:       "blank ai output falls back to heuristic",
			summarizer: &stubSummarizer{summary: "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			mAnalyses := new(repoMocks.MockAnalysisRepository)
			mStore := new(storeMocks.MockStorage)
			ext := &stubExtractor{res: &extract.Result{Text: contractText, Source: model.SourceEmbedded}}

			mDocs.On("FindByID", ctx, "doc-1").Return(doc, nil)
			mStore.On("Get", ctx, "k").
				Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{}, nil)
			mAnalyses.On("Create", ctx, mock.Anything).
				Return(func(ctx context.Context, a *model.Analysis) *model.Analysis { return a }, nil)

			svc := NewAnalysisService(mDocs, mAnalyses, nil, mStore, ext, tt.summarizer, 4)
			analysis, err := svc.Analyze(ctx, testActor, "doc-1")

			require.NoError(t, err)
			if tt.wantSummary != "" {
				assert.Equal(t, tt.wantSummary, analysis.Summary)
			} else {
				assert.NotEmpty(t, analysis.Summary)
				assert.NotEqual(t, "  ", analysis.Summary)
			}
		})
	}
}

func TestAnalysisService_AnalyzeText(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		text       string
		setupMocks func(mAnalyses *repoMocks.MockAnalysisRepository, mActivity *repoMocks.MockActivityRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			text: contractText,
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository, mActivity *repoMocks.MockActivityRepository) {
				mAnalyses.On("Create", ctx, mock.MatchedBy(func(a *model.Analysis) bool {
					return a.Source == model.SourceManual && a.Filename == "manual text" && a.DocumentID == ""
				})).Return(func(ctx context.Context, a *model.Analysis) *model.Analysis { return a }, nil)
				mActivity.On("Insert", ctx, mock.MatchedBy(func(rec *model.ActivityRecord) bool {
					return rec.Action == "Analyzed manual text"
				})).Return(nil)
			},
		},
		{
			name:       "empty text",
			text:       "   ",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository, mActivity *repoMocks.MockActivityRepository) {},
			wantErr:    ErrTextEmpty,
		},
		{
			name:       "too short to analyze",
			text:       "hello world",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository, mActivity *repoMocks.MockActivityRepository) {},
			wantErr:    ErrUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAnalyses := new(repoMocks.MockAnalysisRepository)
			mActivity := new(repoMocks.MockActivityRepository)
			svc := NewAnalysisService(nil, mAnalyses, mActivity, nil, nil, nil, 4)

			tt.setupMocks(mAnalyses, mActivity)

			analysis, err := svc.AnalyzeText(ctx, testActor, tt.text)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, analysis)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, analysis)
				assert.Equal(t, model.SourceManual, analysis.Source)
			}
			mAnalyses.AssertExpectations(t)
			mActivity.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_GetByDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		documentID string
		setupMocks func(mAnalyses *repoMocks.MockAnalysisRepository)
		wantErr    error
	}{
		{
			name:       "happy path",
			documentID: "doc-1",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository) {
				mAnalyses.On("FindByDocumentID", ctx, "doc-1").
					Return(&model.Analysis{ID: "a1", OwnerID: "owner-1", DocumentID: "doc-1"}, nil)
			},
		},
		{
			name:       "no analysis yet",
			documentID: "doc-2",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository) {
				mAnalyses.On("FindByDocumentID", ctx, "doc-2").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNoAnalysis,
		},
		{
			name:       "ownership enforced",
			documentID: "doc-3",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository) {
				mAnalyses.On("FindByDocumentID", ctx, "doc-3").
					Return(&model.Analysis{ID: "a3", OwnerID: "someone-else"}, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:       "validation - empty id",
			documentID: "",
			setupMocks: func(mAnalyses *repoMocks.MockAnalysisRepository) {},
			wantErr:    ErrIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAnalyses := new(repoMocks.MockAnalysisRepository)
			svc := NewAnalysisService(nil, mAnalyses, nil, nil, nil, nil, 4)

			tt.setupMocks(mAnalyses)

			analysis, err := svc.GetByDocument(ctx, testActor, tt.documentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, analysis)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, analysis)
			}
			mAnalyses.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_History(t *testing.T) {
	ctx := context.Background()

	mAnalyses := new(repoMocks.MockAnalysisRepository)
	mAnalyses.On("ListByOwner", ctx, "owner-1", repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Analysis]{
			Items: []model.Analysis{{ID: "a2"}, {ID: "a1"}},
			Total: 2,
		}, nil)

	svc := NewAnalysisService(nil, mAnalyses, nil, nil, nil, nil, 4)
	res, err := svc.History(ctx, testActor, 0, -3)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "a2", res.Items[0].ID)
	mAnalyses.AssertExpectations(t)
}

func TestAnalysisService_RiskOverview(t *testing.T) {
	ctx := context.Background()

	mAnalyses := new(repoMocks.MockAnalysisRepository)
	mAnalyses.On("CountByRisk", ctx, "owner-1").
		Return(map[string]int{model.RiskHigh: 3, model.RiskLow: 1}, nil)

	svc := NewAnalysisService(nil, mAnalyses, nil, nil, nil, nil, 4)
	overview, err := svc.RiskOverview(ctx, testActor)

	require.NoError(t, err)
	assert.Equal(t, 4, overview.Total)
	assert.Equal(t, 3, overview.Counts[model.RiskHigh])
	assert.Equal(t, 1, overview.Counts[model.RiskLow])
	// Levels with no analyses are still present with zero counts
	assert.Equal(t, 0, overview.Counts[model.RiskMedium])
	assert.Equal(t, 0, overview.Counts[model.RiskUnknown])
	mAnalyses.AssertExpectations(t)
}

func TestAnalysisService_ClearHistory(t *testing.T) {
	ctx := context.Background()

	mAnalyses := new(repoMocks.MockAnalysisRepository)
	mActivity := new(repoMocks.MockActivityRepository)
	mAnalyses.On("DeleteByOwner", ctx, "owner-1").Return(int64(5), nil)
	mActivity.On("Insert", ctx, mock.MatchedBy(func(rec *model.ActivityRecord) bool {
		return rec.Action == "Cleared history"
	})).Return(nil)

	svc := NewAnalysisService(nil, mAnalyses, mActivity, nil, nil, nil, 4)
	deleted, err := svc.ClearHistory(ctx, testActor)

	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	mAnalyses.AssertExpectations(t)
	mActivity.AssertExpectations(t)
}
