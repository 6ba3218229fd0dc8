package analyzer

import "strings"

// Document type labels returned by DetectDocumentType.
const (
	TypeCourtJudgment = "Court Judgment / Order"
	TypeGeneral       = "General Legal Document"
	TypeShortUnknown  = "Short Text / Unknown"
)

// judgmentSignals override category scoring: any hit classifies the text as a
// court judgment rather than a contract.
var judgmentSignals = []string{
	"hon'ble", "hon’ble", "judgment", "judgement", "order", "judgment of",
	"court", "petitioner", "respondent", "appellant", "civil appeal",
	"scc", "supreme court", "high court", "bench",
}

type typeCategory struct {
	label    string
	keywords []string
}

var typeCategories = []typeCategory{
	{"Employment Contract", []string{"employee", "employer", "salary", "joining", "resignation", "notice period", "termination", "probation"}},
	{"Lease Agreement", []string{"lease", "tenant", "landlord", "rent", "premises", "let", "term of years", "security deposit"}},
	{"Non-Disclosure Agreement", []string{"non-disclosure", "confidential", "confidentiality", "nda", "proprietary information"}},
	{"Loan Agreement", []string{"loan", "borrower", "lender", "interest", "repayment", "installment", "security"}},
	{"Sales Agreement", []string{"seller", "buyer", "goods", "purchase", "delivery", "invoice", "sales agreement"}},
	{"Partnership Agreement", []string{"partnership", "partner", "capital contribution", "profit share", "partners"}},
	{"Service Agreement", []string{"services", "service provider", "scope of work", "deliverables", "service agreement", "statement of work"}},
	{"Franchise Agreement", []string{"franchise", "franchisor", "franchisee", "royalty"}},
}

// DetectDocumentType classifies a legal text. Court-judgment signals win
// outright; otherwise each contract category is scored by keyword hits
// (multi-word phrases weigh 3, single words 1) and the best category is
// returned when confidence is sufficient.
func DetectDocumentType(text string) string {
	t := normalize(text)

	for _, sig := range judgmentSignals {
		if strings.Contains(t, sig) {
			return TypeCourtJudgment
		}
	}

	topLabel := ""
	topScore := 0
	for _, cat := range typeCategories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(t, kw) {
				if strings.Contains(kw, " ") {
					score += 3
				} else {
					score++
				}
			}
		}
		if score > topScore {
			topScore = score
			topLabel = cat.label
		}
	}

	if topScore >= 3 {
		return topLabel
	}
	if topScore > 0 && len(t) > 300 {
		return topLabel
	}

	if len(t) < 200 {
		return TypeShortUnknown
	}
	return TypeGeneral
}
