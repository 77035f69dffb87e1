package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prlens/pkg/models"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, "No significant issues were found. Great work!", Summarize(nil))
	assert.Equal(t, Summarize(nil), Summarize([]models.CodeIssue{}))
}

func TestSummarizeCriticalAndLow(t *testing.T) {
	issues := []models.CodeIssue{
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityLow},
		{Severity: models.SeverityLow},
	}

	summary := Summarize(issues)

	assert.Contains(t, summary, "3 issues found in total")
	assert.Contains(t, summary, "critical: 1")
	assert.Contains(t, summary, "low: 2")
	assert.NotContains(t, summary, "high")
	assert.NotContains(t, summary, "medium")
}

func TestSummarizeClauseOrder(t *testing.T) {
	issues := []models.CodeIssue{
		{Severity: models.SeverityLow},
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityMedium},
		{Severity: models.SeverityCritical},
	}

	summary := Summarize(issues)

	critical := strings.Index(summary, "critical:")
	high := strings.Index(summary, "high:")
	medium := strings.Index(summary, "medium:")
	low := strings.Index(summary, "low:")

	assert.True(t, critical < high, "critical before high")
	assert.True(t, high < medium, "high before medium")
	assert.True(t, medium < low, "medium before low")
}

func TestSummarizeIsDeterministic(t *testing.T) {
	issues := []models.CodeIssue{
		{Severity: models.SeverityMedium},
		{Severity: models.SeverityCritical},
	}

	assert.Equal(t, Summarize(issues), Summarize(issues))
}
