package analyzer

// Package analyzer contains the pure legal-text analysis logic: document type
// detection, clause detection, summarization, entity heuristics, risk scoring
// and version comparison. Functions here are deterministic and side-effect free;
// all I/O (extraction, persistence, AI calls) lives in other layers.

import "strings"

func normalize(text string) string {
	return strings.ToLower(text)
}
