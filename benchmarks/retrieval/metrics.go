// ABOUTME: Deterministic retrieval and answer quality metrics
// ABOUTME: Scores precision against expected documents and faithfulness against ground truth strings

package retrieval

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes scores for benchmark queries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// ScoreRetrieval compares retrieved filenames against the ground truth.
// The score is the fraction of expected documents found, zeroed when a
// forbidden document appears in the result set.
func (m *MetricsCalculator) ScoreRetrieval(retrieved, expected, forbidden []string) (float64, string) {
	retrievedSet := make(map[string]bool, len(retrieved))
	for _, name := range retrieved {
		retrievedSet[name] = true
	}

	for _, name := range forbidden {
		if retrievedSet[name] {
			return 0.0, fmt.Sprintf("forbidden document retrieved: %s", name)
		}
	}

	if len(expected) == 0 {
		return 1.0, "no expected documents specified"
	}

	found := 0
	var missing []string
	for _, name := range expected {
		if retrievedSet[name] {
			found++
		} else {
			missing = append(missing, name)
		}
	}

	score := float64(found) / float64(len(expected))
	if len(missing) > 0 {
		return score, fmt.Sprintf("missing expected documents: %s", strings.Join(missing, ", "))
	}
	return score, "all expected documents retrieved"
}

// ScoreAnswer checks a generated answer against expected and forbidden
// substrings, case-insensitively. Perfect faithfulness requires every
// expected string present and no forbidden string.
func (m *MetricsCalculator) ScoreAnswer(answer string, expected, forbidden []string) (float64, string) {
	answerUpper := strings.ToUpper(answer)

	var forbiddenFound []string
	for _, f := range forbidden {
		if strings.Contains(answerUpper, strings.ToUpper(f)) {
			forbiddenFound = append(forbiddenFound, f)
		}
	}
	if len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf("forbidden content in answer: %s", strings.Join(forbiddenFound, ", "))
	}

	if len(expected) == 0 {
		return 1.0, "no expected answer content specified"
	}

	found := 0
	var missing []string
	for _, e := range expected {
		if strings.Contains(answerUpper, strings.ToUpper(e)) {
			found++
		} else {
			missing = append(missing, e)
		}
	}

	score := float64(found) / float64(len(expected))
	if len(missing) > 0 {
		return score, fmt.Sprintf("missing expected content: %s", strings.Join(missing, ", "))
	}
	return score, "answer matches ground truth"
}
