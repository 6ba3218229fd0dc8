package analyzer

import "strings"

const minSummarySentenceLen = 30

// NoContentSummary is returned when the input has no readable text.
const NoContentSummary = "No readable content found."

// Summarize picks the first n substantive sentences (longer than 30 chars),
// falling back to the first n sentences when none qualify. Texts with at most
// n sentences are returned whole.
func Summarize(text string, n int) string {
	if strings.TrimSpace(text) == "" {
		return NoContentSummary
	}
	if n <= 0 {
		n = 1
	}

	sents := SplitSentences(text)
	if len(sents) <= n {
		return strings.TrimSpace(strings.Join(sents, " "))
	}

	chosen := make([]string, 0, n)
	for _, s := range sents {
		s = strings.TrimSpace(s)
		if len(s) > minSummarySentenceLen {
			chosen = append(chosen, s)
		}
		if len(chosen) >= n {
			break
		}
	}
	if len(chosen) == 0 {
		chosen = sents[:n]
	}
	return strings.TrimSpace(strings.Join(chosen, " "))
}

// SplitSentences splits text at sentence enders (. ! ?) followed by
// whitespace, keeping the terminator with the sentence.
func SplitSentences(text string) []string {
	var (
		sents []string
		start int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			// consume trailing run of enders, then require whitespace to split
			j := i
			for j+1 < len(runes) && (runes[j+1] == '.' || runes[j+1] == '!' || runes[j+1] == '?') {
				j++
			}
			if j+1 >= len(runes) {
				sents = append(sents, string(runes[start:]))
				return sents
			}
			if runes[j+1] == ' ' || runes[j+1] == '\t' || runes[j+1] == '\n' || runes[j+1] == '\r' {
				sents = append(sents, string(runes[start:j+1]))
				k := j + 1
				for k < len(runes) && (runes[k] == ' ' || runes[k] == '\t' || runes[k] == '\n' || runes[k] == '\r') {
					k++
				}
				start = k
				i = k - 1
			} else {
				i = j
			}
		}
	}
	if start < len(runes) {
		sents = append(sents, string(runes[start:]))
	}
	return sents
}
