package analyzer

import (
	"math"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"legalscan/internal/model"
)

// Compare measures how similar two document versions are, as a percentage
// rounded to two decimals, together with the changed hunks. Either side being
// empty yields zero similarity and no diffs.
func Compare(text1, text2 string) (float64, []model.DiffChunk) {
	if text1 == "" || text2 == "" {
		return 0, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(text1, text2, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	longer := utf8.RuneCountInString(text1)
	if n := utf8.RuneCountInString(text2); n > longer {
		longer = n
	}
	distance := dmp.DiffLevenshtein(diffs)

	ratio := 1 - float64(distance)/float64(longer)
	if ratio < 0 {
		ratio = 0
	}
	similarity := math.Round(ratio*100*100) / 100

	var chunks []model.DiffChunk
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunks = append(chunks, model.DiffChunk{Op: "insert", Text: d.Text})
		case diffmatchpatch.DiffDelete:
			chunks = append(chunks, model.DiffChunk{Op: "delete", Text: d.Text})
		}
	}
	return similarity, chunks
}
