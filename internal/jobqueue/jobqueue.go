// Package jobqueue provides the River-based asynchronous path: the queue the
// dispatcher inserts into and the worker that consumes analysis jobs. A
// run-fatal coordinator error is returned to River so the job is redelivered;
// that retry contract lives at this boundary, not inside the coordinator.
package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/rs/zerolog/log"

	"github.com/prlens/internal/analysis"
	"github.com/prlens/internal/dispatch"
	"github.com/prlens/internal/report"
)

// CommentPoster posts the rendered report back to the pull request.
type CommentPoster interface {
	PostComment(ctx context.Context, owner, repo string, number int, body string) error
}

// AnalyzeWorker consumes analysis jobs from the queue.
type AnalyzeWorker struct {
	river.WorkerDefaults[dispatch.Message]
	service *analysis.Service
	poster  CommentPoster
	timeout time.Duration
}

// Timeout bounds one job's run.
func (w *AnalyzeWorker) Timeout(*river.Job[dispatch.Message]) time.Duration {
	return w.timeout
}

// Work runs one full analysis for the dequeued message. Returning an error
// makes River redeliver the whole message later, which is safe: a run has no
// externally visible side effects until it completes.
func (w *AnalyzeWorker) Work(ctx context.Context, job *river.Job[dispatch.Message]) error {
	args := job.Args

	result, err := w.service.Analyze(ctx, analysis.Request{
		Repository:        args.Repository,
		Owner:             args.Owner,
		Repo:              args.Repo,
		PullRequestNumber: args.PullRequestNumber,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("repository", args.Repository).
			Int("pr_number", args.PullRequestNumber).
			Int("attempt", job.Attempt).
			Msg("Analysis run failed")
		return fmt.Errorf("analyze %s#%d: %w", args.Repository, args.PullRequestNumber, err)
	}

	if w.poster != nil {
		body := report.RenderComment(result)
		if err := w.poster.PostComment(ctx, args.Owner, args.Repo, args.PullRequestNumber, body); err != nil {
			// The report was produced; re-running the whole analysis for a
			// failed comment would waste engine calls.
			log.Warn().
				Err(err).
				Str("repository", args.Repository).
				Int("pr_number", args.PullRequestNumber).
				Msg("Failed to post review comment")
		}
	}

	return nil
}

// JobQueue manages the River client and its worker pool. It implements
// dispatch.Enqueuer.
type JobQueue struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	config *QueueConfig
}

// New creates a job queue over the given Postgres database.
func New(ctx context.Context, databaseURL string, config *QueueConfig, service *analysis.Service, poster CommentPoster) (*JobQueue, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &AnalyzeWorker{
		service: service,
		poster:  poster,
		timeout: config.JobTimeout,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:  config.RiverQueueConfig(),
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &JobQueue{client: client, pool: pool, config: config}, nil
}

// Start starts the queue workers.
func (q *JobQueue) Start(ctx context.Context) error {
	return q.client.Start(ctx)
}

// Stop stops the queue workers and releases the pool.
func (q *JobQueue) Stop(ctx context.Context) error {
	err := q.client.Stop(ctx)
	q.pool.Close()
	return err
}

// Enqueue inserts one analysis job.
func (q *JobQueue) Enqueue(ctx context.Context, msg dispatch.Message) error {
	_, err := q.client.Insert(ctx, msg, &river.InsertOpts{
		MaxAttempts: q.config.MaxAttempts,
	})
	if err != nil {
		return fmt.Errorf("failed to queue analysis job: %w", err)
	}
	return nil
}
