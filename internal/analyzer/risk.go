package analyzer

import "legalscan/internal/model"

// AssessRisk grades clause coverage. Thresholds: at least 80% of known clause
// types present is Low, 50% is Medium, anything less High. Empty input is
// Unknown because no judgment can be made.
func AssessRisk(findings []model.ClauseFinding) (level, comment string) {
	if len(findings) == 0 {
		return model.RiskUnknown, "No clause information available."
	}

	present := 0
	for _, f := range findings {
		if f.Found {
			present++
		}
	}
	ratio := float64(present) / float64(len(findings))

	switch {
	case ratio >= 0.8:
		return model.RiskLow, "Most key clauses are present; minor legal review recommended."
	case ratio >= 0.5:
		return model.RiskMedium, "Some important clauses are missing or incomplete; review recommended."
	default:
		return model.RiskHigh, "Multiple critical clauses missing; significant legal risk detected."
	}
}
