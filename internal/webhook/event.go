package webhook

import (
	"bytes"
	"encoding/json"
)

// ChangeEvent is the subset of a pull-request webhook payload the pipeline
// consumes. It is received once per delivery and never mutated.
type ChangeEvent struct {
	Action      string       `json:"action"`
	Number      int          `json:"number"`
	PullRequest *PullRequest `json:"pull_request"`
	Repository  *Repository  `json:"repository"`
}

// PullRequest carries the pull-request attributes present on the payload.
type PullRequest struct {
	Number    int    `json:"number"`
	State     string `json:"state"`
	Draft     bool   `json:"draft"`
	Head      Ref    `json:"head"`
	Base      Ref    `json:"base"`
	User      *User  `json:"user,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	DiffURL   string `json:"diff_url,omitempty"`
	PatchURL  string `json:"patch_url,omitempty"`
}

// Ref is one side of the pull request (head or base).
type Ref struct {
	SHA  string      `json:"sha"`
	Repo *Repository `json:"repo,omitempty"`
}

// User is the account that opened the pull request.
type User struct {
	Login string `json:"login"`
}

// Repository identifies where the pull request lives.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    Owner  `json:"owner"`
}

// Owner is the repository owner.
type Owner struct {
	Login string `json:"login"`
}

// ValidationError reports a malformed or incomplete webhook payload. It is
// surfaced to the caller as a client error and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ParseEvent decodes and validates a webhook payload body. All failures are
// returned as *ValidationError with a stable message.
func ParseEvent(body []byte) (*ChangeEvent, error) {
	var raw struct {
		Action      json.RawMessage `json:"action"`
		Number      json.RawMessage `json:"number"`
		PullRequest json.RawMessage `json:"pull_request"`
		Repository  json.RawMessage `json:"repository"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{Reason: "Invalid webhook payload"}
	}

	var ev ChangeEvent

	if missing(raw.Action) {
		return nil, &ValidationError{Reason: "Invalid action field"}
	}
	if err := json.Unmarshal(raw.Action, &ev.Action); err != nil {
		return nil, &ValidationError{Reason: "Invalid action field"}
	}

	if missing(raw.PullRequest) {
		return nil, &ValidationError{Reason: "Pull request data is required"}
	}
	if err := json.Unmarshal(raw.PullRequest, &ev.PullRequest); err != nil || ev.PullRequest == nil {
		return nil, &ValidationError{Reason: "Pull request data is required"}
	}

	if missing(raw.Repository) {
		return nil, &ValidationError{Reason: "Repository data is required"}
	}
	if err := json.Unmarshal(raw.Repository, &ev.Repository); err != nil || ev.Repository == nil {
		return nil, &ValidationError{Reason: "Repository data is required"}
	}

	if missing(raw.Number) {
		return nil, &ValidationError{Reason: "Invalid PR number"}
	}
	if err := json.Unmarshal(raw.Number, &ev.Number); err != nil {
		return nil, &ValidationError{Reason: "Invalid PR number"}
	}

	return &ev, nil
}

func missing(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
