package jobqueue

import (
	"time"

	"github.com/riverqueue/river"
)

// QueueConfig holds the tunable parameters for the analysis job queue.
type QueueConfig struct {
	// MaxWorkers bounds how many pull requests are analyzed concurrently.
	// Files within one run are always processed sequentially; this only
	// controls run-level parallelism.
	MaxWorkers int

	// MaxAttempts is how many deliveries a job gets before River discards
	// it. A run-fatal coordinator error consumes one attempt.
	MaxAttempts int

	// JobTimeout bounds one full analysis run, engine calls included.
	JobTimeout time.Duration
}

// DefaultQueueConfig returns settings suitable for a small deployment.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		MaxWorkers:  4,
		MaxAttempts: 5,
		JobTimeout:  10 * time.Minute,
	}
}

// RiverQueueConfig converts the config to River's queue configuration map.
func (c *QueueConfig) RiverQueueConfig() map[string]river.QueueConfig {
	return map[string]river.QueueConfig{
		river.QueueDefault: {
			MaxWorkers: c.MaxWorkers,
		},
	}
}
