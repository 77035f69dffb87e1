// Package dispatch hands eligible pull-request events to the asynchronous
// job queue. A queueing failure is absorbed here: the webhook response must
// stay 2xx, because the source platform would otherwise retry the whole
// delivery at the wrong granularity.
package dispatch

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Message is the unit of queued work: analyze one pull request. It is the
// queue wire form and doubles as the River job arguments.
type Message struct {
	Repository        string `json:"repository"`
	Owner             string `json:"owner"`
	Repo              string `json:"repo"`
	PullRequestNumber int    `json:"pullRequestNumber"`
	Action            string `json:"action"`
}

// Kind identifies the job type on the queue.
func (Message) Kind() string {
	return "pr_analyze"
}

// Enqueuer hands a message to the underlying queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message) error
}

// Outcome is what the webhook path reports back after attempting to queue
// an analysis.
type Outcome struct {
	Message        string `json:"message"`
	PRNumber       int    `json:"prNumber"`
	ShouldAnalyze  bool   `json:"shouldAnalyze"`
	AnalysisQueued bool   `json:"analysisQueued"`
}

// Dispatcher queues analysis work.
type Dispatcher struct {
	queue Enqueuer
}

// NewDispatcher creates a dispatcher over the given queue.
func NewDispatcher(queue Enqueuer) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch enqueues the message. On failure the error is logged and the
// outcome reports analysisQueued=false; the review intent (shouldAnalyze)
// stands either way and no error crosses this boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	if err := d.queue.Enqueue(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("repository", msg.Repository).
			Int("pr_number", msg.PullRequestNumber).
			Msg("Failed to queue analysis")
		return Outcome{
			Message:        "Analysis triggered but queueing failed",
			PRNumber:       msg.PullRequestNumber,
			ShouldAnalyze:  true,
			AnalysisQueued: false,
		}
	}

	log.Info().
		Str("repository", msg.Repository).
		Int("pr_number", msg.PullRequestNumber).
		Str("action", msg.Action).
		Msg("Analysis queued")
	return Outcome{
		Message:        "Analysis triggered",
		PRNumber:       msg.PullRequestNumber,
		ShouldAnalyze:  true,
		AnalysisQueued: true,
	}
}
