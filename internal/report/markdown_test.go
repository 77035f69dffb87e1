package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prlens/pkg/models"
)

func TestRenderCommentCleanReport(t *testing.T) {
	r := &models.AnalysisReport{
		Summary: "No significant issues were found. Great work!",
	}

	out := RenderComment(r)

	assert.Contains(t, out, "## Automated Code Review")
	assert.Contains(t, out, "No significant issues were found")
	assert.NotContains(t, out, "###", "no per-file sections without findings")
}

func TestRenderCommentGroupsByFile(t *testing.T) {
	r := &models.AnalysisReport{
		Summary: "3 issues found in total. critical: 1. low: 2.",
		Issues: []models.CodeIssue{
			{Type: models.IssueTypeSecurity, Severity: models.SeverityCritical, File: "auth.go", Line: 12, Description: "token logged", Recommendation: "redact"},
			{Type: models.IssueTypeStyle, Severity: models.SeverityLow, File: "main.go", Description: "long func", Recommendation: "split"},
			{Type: models.IssueTypeBug, Severity: models.SeverityLow, File: "auth.go", Description: "nil deref", Recommendation: "guard"},
		},
	}

	out := RenderComment(r)

	assert.Contains(t, out, "### `auth.go`")
	assert.Contains(t, out, "### `main.go`")
	assert.Contains(t, out, "(line 12)")
	assert.Contains(t, out, "🔴 Critical")
	assert.Contains(t, out, "🔒 Security")
	assert.Contains(t, out, "Recommendation: redact")

	// auth.go is seen first in the issue list, so its section comes first.
	assert.Less(t, strings.Index(out, "auth.go"), strings.Index(out, "main.go"))
}

func TestDisplayNameFallbacks(t *testing.T) {
	assert.Equal(t, "🐛 Bug", TypeDisplayName(models.IssueTypeBug))
	assert.Equal(t, "mystery", TypeDisplayName(models.IssueType("mystery")))
	assert.Equal(t, "🟡 Medium", SeverityDisplayName(models.SeverityMedium))
	assert.Equal(t, "urgent", SeverityDisplayName(models.Severity("urgent")))
}
