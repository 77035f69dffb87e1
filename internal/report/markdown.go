// Package report renders an analysis report as a pull-request comment.
package report

import (
	"fmt"
	"strings"

	"github.com/prlens/pkg/models"
)

var typeDisplayNames = map[models.IssueType]string{
	models.IssueTypeBug:          "🐛 Bug",
	models.IssueTypeSecurity:     "🔒 Security",
	models.IssueTypePerformance:  "⚡ Performance",
	models.IssueTypeStyle:        "🎨 Style",
	models.IssueTypeBestPractice: "✨ Best practice",
}

var severityDisplayNames = map[models.Severity]string{
	models.SeverityCritical: "🔴 Critical",
	models.SeverityHigh:     "🟠 High",
	models.SeverityMedium:   "🟡 Medium",
	models.SeverityLow:      "🟢 Low",
}

// TypeDisplayName returns the display label for an issue type, falling back
// to the raw value for anything unknown.
func TypeDisplayName(t models.IssueType) string {
	if name, ok := typeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// SeverityDisplayName returns the display label for a severity, falling back
// to the raw value for anything unknown.
func SeverityDisplayName(s models.Severity) string {
	if name, ok := severityDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// RenderComment renders the report as a markdown comment, grouping findings
// per file in report order.
func RenderComment(r *models.AnalysisReport) string {
	var b strings.Builder

	b.WriteString("## Automated Code Review\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n")

	for _, file := range r.AffectedFiles() {
		fmt.Fprintf(&b, "\n### `%s`\n\n", file)
		for _, issue := range r.IssuesForFile(file) {
			location := ""
			if issue.Line > 0 {
				location = fmt.Sprintf(" (line %d)", issue.Line)
			}
			fmt.Fprintf(&b, "- **%s · %s**%s: %s\n  - Recommendation: %s\n",
				SeverityDisplayName(issue.Severity),
				TypeDisplayName(issue.Type),
				location,
				issue.Description,
				issue.Recommendation,
			)
		}
	}

	return b.String()
}
