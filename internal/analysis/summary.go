package analysis

import (
	"fmt"
	"strings"

	"github.com/prlens/pkg/models"
)

// Summarize renders a one-line human-readable summary of a finding list.
// Severity clauses are emitted in rank order critical, high, medium, low,
// and buckets with a zero count are omitted entirely. The function is pure:
// equal inputs always yield equal output.
func Summarize(issues []models.CodeIssue) string {
	if len(issues) == 0 {
		return "No significant issues were found. Great work!"
	}

	counts := make(map[models.Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d issues found in total.", len(issues))
	for _, sev := range models.SeveritiesDescending {
		if n := counts[sev]; n > 0 {
			fmt.Fprintf(&b, " %s: %d.", sev, n)
		}
	}
	return b.String()
}
