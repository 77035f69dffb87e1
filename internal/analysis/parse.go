package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"

	"github.com/prlens/pkg/models"
)

// engineResponse is the shape the engine is asked to produce. The whole
// response is untrusted text: anything that fails to decode into this shape
// degrades to zero findings for the file, never to a run failure.
type engineResponse struct {
	Issues  []rawIssue `json:"issues"`
	Summary string     `json:"summary"`
}

type rawIssue struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Line           int    `json:"line"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ParseFindings decodes the engine's raw text response into a normalized
// finding list for one file. Field-level defaults are applied per issue; the
// filename is always the coordinator's, never the engine's.
func ParseFindings(raw, filename string) ([]models.CodeIssue, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, errors.New("no JSON found in engine response")
	}

	var resp engineResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(jsonStr)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to parse engine response: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse engine response after repair: %w", err)
		}
		log.Debug().Str("filename", filename).Msg("Engine response repaired before parsing")
	}

	if resp.Issues == nil {
		return nil, errors.New("engine response has no issues array")
	}

	issues := make([]models.CodeIssue, 0, len(resp.Issues))
	for _, ri := range resp.Issues {
		issues = append(issues, normalizeIssue(ri, filename))
	}
	return issues, nil
}

func normalizeIssue(ri rawIssue, filename string) models.CodeIssue {
	issue := models.CodeIssue{
		Type:           models.IssueType(ri.Type),
		Severity:       models.Severity(ri.Severity),
		File:           filename,
		Line:           ri.Line,
		Description:    ri.Description,
		Recommendation: ri.Recommendation,
	}
	if issue.Type == "" {
		issue.Type = models.IssueTypeStyle
	}
	if issue.Severity == "" {
		issue.Severity = models.SeverityLow
	}
	if issue.Description == "" {
		issue.Description = "No description"
	}
	if issue.Recommendation == "" {
		issue.Recommendation = "No recommendation"
	}
	return issue
}

// extractJSON pulls the JSON payload out of a mixed text response. Engines
// often wrap the object in a markdown fence or surround it with prose.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		return raw
	}

	if idx := strings.Index(raw, "```"); idx != -1 {
		rest := raw[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return ""
}
