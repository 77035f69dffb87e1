package models

import (
	"fmt"
	"time"
)

// IssueType classifies what kind of problem a finding describes.
type IssueType string

const (
	IssueTypeBug          IssueType = "bug"
	IssueTypeSecurity     IssueType = "security"
	IssueTypePerformance  IssueType = "performance"
	IssueTypeStyle        IssueType = "style"
	IssueTypeBestPractice IssueType = "best-practice"
)

// Severity is the impact level of a finding. The order is
// low < medium < high < critical and is used both for filtering and for
// summary clause ordering.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the position of the severity in the total order.
// Unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// SeveritiesDescending lists severities from most to least severe.
// Summary clauses are emitted in this order.
var SeveritiesDescending = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// CodeIssue is one finding reported for one file.
type CodeIssue struct {
	Type           IssueType `json:"type"`
	Severity       Severity  `json:"severity"`
	File           string    `json:"file"`
	Line           int       `json:"line,omitempty"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
}

// IsHighPriority reports whether the issue is high or critical severity.
func (i CodeIssue) IsHighPriority() bool {
	return i.Severity == SeverityCritical || i.Severity == SeverityHigh
}

// Location renders "file:line", or just the file when no line is known.
func (i CodeIssue) Location() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d", i.File, i.Line)
	}
	return i.File
}

// FileStatus is the change status of a file within a pull request.
type FileStatus string

const (
	FileStatusAdded     FileStatus = "added"
	FileStatusModified  FileStatus = "modified"
	FileStatusRemoved   FileStatus = "removed"
	FileStatusRenamed   FileStatus = "renamed"
	FileStatusCopied    FileStatus = "copied"
	FileStatusChanged   FileStatus = "changed"
	FileStatusUnchanged FileStatus = "unchanged"
)

// ChangedFile is one entry in a pull request's changed-file list.
type ChangedFile struct {
	Filename    string     `json:"filename"`
	Status      FileStatus `json:"status"`
	Additions   int        `json:"additions"`
	Deletions   int        `json:"deletions"`
	Changes     int        `json:"changes"`
	Patch       string     `json:"patch,omitempty"`
	ContentsURL string     `json:"contents_url"`
	SHA         string     `json:"sha"`
}

// LearningResource is a supplementary reading suggestion attached to a
// report. The field is carried for forward compatibility; nothing populates
// it yet.
type LearningResource struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
	Language    string   `json:"language,omitempty"`
	Tags        []string `json:"tags"`
}

// AnalysisReport is the immutable result of one coordinator run over one
// pull request.
type AnalysisReport struct {
	ID            string             `json:"id"`
	Repository    string             `json:"repository"`
	PullRequestID string             `json:"pullRequestId"`
	Issues        []CodeIssue        `json:"issues"`
	Suggestions   []LearningResource `json:"suggestions"`
	Summary       string             `json:"summary"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// TotalIssues returns the number of findings in the report.
func (r *AnalysisReport) TotalIssues() int {
	return len(r.Issues)
}

// IssuesBySeverity returns the findings with the given severity,
// preserving report order.
func (r *AnalysisReport) IssuesBySeverity(sev Severity) []CodeIssue {
	var out []CodeIssue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// IssuesByType groups the findings by issue type, preserving report order
// within each group.
func (r *AnalysisReport) IssuesByType() map[IssueType][]CodeIssue {
	groups := make(map[IssueType][]CodeIssue)
	for _, issue := range r.Issues {
		groups[issue.Type] = append(groups[issue.Type], issue)
	}
	return groups
}

// CountsBySeverity returns the number of findings per severity bucket.
// Buckets with no findings are absent from the map.
func (r *AnalysisReport) CountsBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, issue := range r.Issues {
		counts[issue.Severity]++
	}
	return counts
}

// AffectedFiles returns the distinct filenames with at least one finding,
// in first-seen order.
func (r *AnalysisReport) AffectedFiles() []string {
	seen := make(map[string]bool)
	var files []string
	for _, issue := range r.Issues {
		if !seen[issue.File] {
			seen[issue.File] = true
			files = append(files, issue.File)
		}
	}
	return files
}

// HasCriticalIssues reports whether any finding is critical.
func (r *AnalysisReport) HasCriticalIssues() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// IssuesForFile returns the findings attributed to one file, in report order.
func (r *AnalysisReport) IssuesForFile(filename string) []CodeIssue {
	var out []CodeIssue
	for _, issue := range r.Issues {
		if issue.File == filename {
			out = append(out, issue)
		}
	}
	return out
}
