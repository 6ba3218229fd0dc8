package analyzer

import (
	"regexp"
	"strings"
	"sync"

	"legalscan/internal/model"
)

type clauseType struct {
	name     string
	keywords []string
}

// clauseTypes is ordered: findings are always emitted in this sequence so the
// risk ratio and serialized output stay stable across runs.
var clauseTypes = []clauseType{
	{"Confidentiality", []string{"confidential", "non-disclosure", "privacy", "proprietary"}},
	{"Termination", []string{"terminate", "termination", "expiry", "expire", "cancel"}},
	{"Payment", []string{"payment", "fee", "compensation", "remuneration", "invoice"}},
	{"Liability", []string{"liability", "liable", "damages", "responsible"}},
	{"Dispute Resolution", []string{"dispute", "arbitration", "mediation", "jurisdiction"}},
	{"Governing Law", []string{"governing law", "laws of", "jurisdiction"}},
	{"Intellectual Property", []string{"intellectual property", "copyright", "patent", "trademark", "ownership"}},
	{"Non-Compete", []string{"non-compete", "restrict", "competition", "restrictive covenant"}},
	{"Indemnity", []string{"indemnify", "indemnity", "hold harmless"}},
	{"Force Majeure", []string{"force majeure", "unforeseeable", "beyond control", "act of god"}},
}

var (
	excerptOnce sync.Once
	excerptRes  map[string]*regexp.Regexp
)

// excerptPattern matches up to 300 characters of surrounding sentence context
// on each side of the keyword, without crossing a period.
func excerptPattern(keyword string) *regexp.Regexp {
	excerptOnce.Do(func() {
		excerptRes = make(map[string]*regexp.Regexp)
		for _, ct := range clauseTypes {
			for _, kw := range ct.keywords {
				excerptRes[kw] = regexp.MustCompile(`(?is)[^.]{0,300}\b` + regexp.QuoteMeta(kw) + `\b[^.]{0,300}`)
			}
		}
	})
	return excerptRes[keyword]
}

// DetectClauses scans the text for each known clause type and returns a
// finding per type, in fixed order. The first keyword that matches supplies
// the excerpt, with line breaks collapsed to spaces.
func DetectClauses(text string) []model.ClauseFinding {
	findings := make([]model.ClauseFinding, 0, len(clauseTypes))
	for _, ct := range clauseTypes {
		f := model.ClauseFinding{Name: ct.name}
		for _, kw := range ct.keywords {
			if m := excerptPattern(kw).FindString(text); m != "" {
				f.Found = true
				f.Excerpt = strings.Join(strings.Fields(m), " ")
				break
			}
		}
		findings = append(findings, f)
	}
	return findings
}
