// Package hosting is the source-hosting collaborator: listing a pull
// request's changed files, fetching file contents and posting comments.
package hosting

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog/log"

	"github.com/prlens/pkg/models"
)

// Client wraps the GitHub REST API.
type Client struct {
	gh *github.Client
}

// NewClient creates a GitHub client. An empty token yields an unauthenticated
// client, which is enough for public repositories.
func NewClient(token string) *Client {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &Client{gh: c}
}

// ListChangedFiles returns the pull request's changed files in API order,
// following pagination to the end so the caller sees the complete scope.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]models.ChangedFile, error) {
	log.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Int("pr_number", number).
		Msg("Fetching PR files")

	opts := &github.ListOptions{PerPage: 100}
	var out []models.ChangedFile
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch PR files: %w", err)
		}
		for _, f := range files {
			out = append(out, models.ChangedFile{
				Filename:    f.GetFilename(),
				Status:      models.FileStatus(f.GetStatus()),
				Additions:   f.GetAdditions(),
				Deletions:   f.GetDeletions(),
				Changes:     f.GetChanges(),
				Patch:       f.GetPatch(),
				ContentsURL: f.GetContentsURL(),
				SHA:         f.GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Info().
		Int("file_count", len(out)).
		Str("owner", owner).
		Str("repo", repo).
		Int("pr_number", number).
		Msg("Retrieved PR files")
	return out, nil
}

// GetFileContent fetches one file's decoded content, optionally at a ref.
// Directory and content-less responses are rejected.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	fileContent, dirContent, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch file content: %w", err)
	}
	if fileContent == nil || dirContent != nil {
		return "", fmt.Errorf("%s is not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}

	log.Debug().
		Str("path", path).
		Int("content_bytes", len(content)).
		Msg("Retrieved file content")
	return content, nil
}

// PostComment posts a general comment on the pull request.
func (c *Client) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}

	log.Info().
		Str("owner", owner).
		Str("repo", repo).
		Int("pr_number", number).
		Msg("Posted comment to PR")
	return nil
}
