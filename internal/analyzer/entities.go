package analyzer

import (
	"regexp"
	"strings"
)

// NoEntitiesFound is returned when none of the heuristics matched.
const NoEntitiesFound = "No named entities found."

var (
	orgRe    = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&.,\s]{0,60}\b(?:Ltd|LLP|Pvt|Pvt\.|Limited|Inc|Corporation|Company|Bank)\b`)
	personRe = regexp.MustCompile(`\b[A-Z][a-z]{2,}\s[A-Z][a-z]{2,}\b`)
	dateRe   = regexp.MustCompile(`\b\d{1,2}\s(?:January|February|March|April|May|June|July|August|September|October|November|December)\s\d{4}\b`)
	monthRe  = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s\d{4}\b`)
	actRe    = regexp.MustCompile(`\b[A-Z][A-Za-z\s]{2,} Act(?: \d{4})?\b`)
)

// ExtractEntities applies regex heuristics for organizations, people, dates
// and statute names, returning a single summary line. Matches are deduplicated
// in order of appearance and capped per category.
func ExtractEntities(text string) string {
	if strings.TrimSpace(text) == "" {
		return "No text"
	}

	orgs := uniqueMatches(orgRe, text, 6)
	people := uniqueMatches(personRe, text, 8)
	dates := uniqueMatches(dateRe, text, 6)
	acts := uniqueMatches(actRe, text, 6)

	var parts []string
	if len(orgs) > 0 {
		parts = append(parts, "Organizations: "+strings.Join(orgs, ", "))
	}
	if len(people) > 0 {
		parts = append(parts, "People: "+strings.Join(people, ", "))
	}
	if len(dates) > 0 {
		parts = append(parts, "Dates: "+strings.Join(dates, ", "))
	} else if months := uniqueMatches(monthRe, text, 6); len(months) > 0 {
		parts = append(parts, "Dates: "+strings.Join(months, ", "))
	}
	if len(acts) > 0 {
		parts = append(parts, "Acts: "+strings.Join(acts, ", "))
	}

	if len(parts) == 0 {
		return NoEntitiesFound
	}
	return strings.Join(parts, " | ")
}

func uniqueMatches(re *regexp.Regexp, text string, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) >= limit {
			break
		}
	}
	return out
}
