package model

import "time"

// Risk levels assigned by clause-coverage scoring.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

// Text sources recorded on an analysis.
const (
	SourceEmbedded = "embedded"
	SourceOCR      = "ocr"
	SourceManual   = "manual"
)

// ClauseFinding records whether a clause type was detected and the supporting excerpt.
type ClauseFinding struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Analysis is the result of running the legal analyzer over one document's text.
// DocumentID is empty for analyses of pasted text.
type Analysis struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	DocumentID   string          `json:"document_id,omitempty"`
	Filename     string          `json:"filename"`
	DocumentType string          `json:"document_type"`
	RiskLevel    string          `json:"risk_level"`
	RiskComment  string          `json:"risk_comment"`
	Summary      string          `json:"summary"`
	Entities     string          `json:"entities"`
	Clauses      []ClauseFinding `json:"clauses"`
	WordCount    int             `json:"word_count"`
	CharCount    int             `json:"char_count"`
	SentCount    int             `json:"sentence_count"`
	Source       string          `json:"source"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DiffChunk is one hunk of a two-version comparison.
type DiffChunk struct {
	Op   string `json:"op"` // insert, delete
	Text string `json:"text"`
}

// Comparison holds the similarity verdict for two document versions.
type Comparison struct {
	DocumentID1 string      `json:"document_id_1"`
	DocumentID2 string      `json:"document_id_2"`
	Similarity  float64     `json:"similarity"` // percent, two decimals
	Diffs       []DiffChunk `json:"diffs"`
}
