package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlens/pkg/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return &Client{gh: gh}
}

func TestListChangedFilesFollowsPagination(t *testing.T) {
	var requestedPages []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octo/demo/pulls/7/files", r.URL.Path)
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)

		w.Header().Set("Content-Type", "application/json")
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
			fmt.Fprint(w, `[
				{"filename": "a.go", "status": "modified", "additions": 3, "deletions": 1, "changes": 4, "sha": "aaa"},
				{"filename": "b.py", "status": "added", "additions": 10, "deletions": 0, "changes": 10, "sha": "bbb"}
			]`)
			return
		}
		fmt.Fprint(w, `[{"filename": "c.rs", "status": "removed", "additions": 0, "deletions": 5, "changes": 5, "sha": "ccc"}]`)
	}))

	files, err := client.ListChangedFiles(context.Background(), "octo", "demo", 7)
	require.NoError(t, err)

	require.Len(t, files, 3, "all pages must be collected")
	assert.Len(t, requestedPages, 2)
	assert.Equal(t, models.ChangedFile{
		Filename:  "a.go",
		Status:    models.FileStatusModified,
		Additions: 3,
		Deletions: 1,
		Changes:   4,
		SHA:       "aaa",
	}, files[0])
	assert.Equal(t, "c.rs", files[2].Filename)
	assert.Equal(t, models.FileStatusRemoved, files[2].Status)
}

func TestListChangedFilesError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	files, err := client.ListChangedFiles(context.Background(), "octo", "demo", 7)
	assert.Nil(t, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch PR files")
}

func TestGetFileContentDecodes(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octo/demo/contents/main.go", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("ref"))

		w.Header().Set("Content-Type", "application/json")
		// "package main" in base64.
		fmt.Fprint(w, `{"type": "file", "name": "main.go", "path": "main.go", "content": "cGFja2FnZSBtYWlu", "encoding": "base64"}`)
	}))

	content, err := client.GetFileContent(context.Background(), "octo", "demo", "main.go", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "package main", content)
}

func TestGetFileContentRejectsDirectory(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"type": "file", "name": "a.go", "path": "pkg/a.go"}]`)
	}))

	content, err := client.GetFileContent(context.Background(), "octo", "demo", "pkg", "")
	assert.Empty(t, content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a file")
}

func TestPostComment(t *testing.T) {
	var posted string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/octo/demo/issues/7/comments", r.URL.Path)

		var payload struct {
			Body string `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		posted = payload.Body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	}))

	err := client.PostComment(context.Background(), "octo", "demo", 7, "## Automated Code Review")
	require.NoError(t, err)
	assert.Equal(t, "## Automated Code Review", posted)
}
