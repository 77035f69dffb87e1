// Package analysis implements the per-pull-request review coordinator: it
// walks the changed-file list, runs the engine on each reviewable file and
// assembles the findings into a single report. One bad file never sinks the
// whole run.
package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prlens/pkg/models"
)

// HostClient is the source-hosting surface the coordinator consumes.
type HostClient interface {
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]models.ChangedFile, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// Engine produces raw review output for one file's content.
type Engine interface {
	AnalyzeCode(ctx context.Context, code, filename string) (string, error)
}

// Request identifies one pull request to analyze. The shape is shared by the
// synchronous API path and the queue-consumer path.
type Request struct {
	Repository        string `json:"repository"`
	PullRequestNumber int    `json:"pullRequestNumber"`
	Owner             string `json:"owner"`
	Repo              string `json:"repo"`
}

// Validate reports whether all required fields are present.
func (r Request) Validate() error {
	if r.Repository == "" || r.PullRequestNumber == 0 || r.Owner == "" || r.Repo == "" {
		return fmt.Errorf("missing required fields")
	}
	return nil
}

// reviewableExtensions is the recognized set of code file suffixes. The
// match is a case-sensitive suffix test, not language detection.
var reviewableExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".vue", ".py", ".java", ".go", ".rs"}

func isReviewable(filename string) bool {
	for _, ext := range reviewableExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// Service coordinates one analysis run per call. A Service holds no mutable
// state, so concurrent runs for different pull requests are fully isolated.
type Service struct {
	host   HostClient
	engine Engine
}

// NewService creates an analysis coordinator.
func NewService(host HostClient, engine Engine) *Service {
	return &Service{host: host, engine: engine}
}

// Analyze performs one full run over the pull request's changed files.
// Only a failure to list the files at all is fatal; every per-file error is
// logged and absorbed, and that file contributes zero findings.
func (s *Service) Analyze(ctx context.Context, req Request) (*models.AnalysisReport, error) {
	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("repository", req.Repository).
		Int("pr_number", req.PullRequestNumber).
		Logger()

	logger.Info().Msg("Starting code analysis")

	files, err := s.host.ListChangedFiles(ctx, req.Owner, req.Repo, req.PullRequestNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	logger.Info().Int("file_count", len(files)).Msg("Analyzing changed files")

	var issues []models.CodeIssue
	for _, file := range files {
		if file.Status == models.FileStatusRemoved {
			logger.Debug().Str("filename", file.Filename).Msg("Skipping removed file")
			continue
		}
		if !isReviewable(file.Filename) {
			logger.Debug().Str("filename", file.Filename).Msg("Skipping non-code file")
			continue
		}

		fileIssues, err := s.analyzeFile(ctx, logger, req, file.Filename)
		if err != nil {
			logger.Warn().Err(err).Str("filename", file.Filename).Msg("Failed to analyze file")
			continue
		}
		issues = append(issues, fileIssues...)
	}

	now := time.Now()
	report := &models.AnalysisReport{
		ID:            fmt.Sprintf("%s-%d-%d", req.Repository, req.PullRequestNumber, now.UnixMilli()),
		Repository:    req.Repository,
		PullRequestID: strconv.Itoa(req.PullRequestNumber),
		Issues:        issues,
		Suggestions:   []models.LearningResource{},
		Summary:       Summarize(issues),
		CreatedAt:     now,
	}

	logger.Info().Int("issue_count", len(issues)).Msg("Code analysis completed")
	return report, nil
}

// analyzeFile fetches one file's content, runs the engine over it and parses
// the response. A parse failure is downgraded to zero findings here; fetch
// and engine failures are returned for the caller to absorb.
func (s *Service) analyzeFile(ctx context.Context, logger zerolog.Logger, req Request, filename string) ([]models.CodeIssue, error) {
	content, err := s.host.GetFileContent(ctx, req.Owner, req.Repo, filename, "")
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}

	raw, err := s.engine.AnalyzeCode(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	fileIssues, err := ParseFindings(raw, filename)
	if err != nil {
		logger.Warn().Err(err).Str("filename", filename).Msg("Invalid analysis result format")
		return nil, nil
	}
	return fileIssues, nil
}
