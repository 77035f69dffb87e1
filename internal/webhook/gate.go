package webhook

import (
	"github.com/rs/zerolog/log"

	"github.com/prlens/internal/dispatch"
)

// Decision is the outcome of classifying one change event.
type Decision struct {
	Message       string `json:"message"`
	PRNumber      int    `json:"prNumber,omitempty"`
	Action        string `json:"action,omitempty"`
	ShouldAnalyze bool   `json:"shouldAnalyze"`

	// Dispatch is set only when ShouldAnalyze is true.
	Dispatch *dispatch.Message `json:"-"`
}

// Decide classifies a change event by its action verb. It is a pure function
// over a closed action space; it performs no I/O and cannot fail.
func Decide(ev *ChangeEvent) Decision {
	log.Info().
		Str("action", ev.Action).
		Int("pr_number", ev.PullRequest.Number).
		Str("repository", ev.Repository.FullName).
		Msg("Processing webhook event")

	switch ev.Action {
	case "opened", "synchronize", "reopened":
		log.Info().Msg("PR opened or updated, triggering analysis")
		return Decision{
			Message:       "Analysis triggered",
			PRNumber:      ev.PullRequest.Number,
			ShouldAnalyze: true,
			Dispatch: &dispatch.Message{
				Repository:        ev.Repository.FullName,
				Owner:             ev.Repository.Owner.Login,
				Repo:              ev.Repository.Name,
				PullRequestNumber: ev.PullRequest.Number,
				Action:            ev.Action,
			},
		}

	case "closed":
		log.Info().Msg("PR closed, skipping analysis")
		return Decision{
			Message:       "PR closed, no analysis needed",
			PRNumber:      ev.PullRequest.Number,
			ShouldAnalyze: false,
		}

	default:
		log.Info().Str("action", ev.Action).Msg("Unhandled webhook action")
		return Decision{
			Message:       "Action ignored",
			Action:        ev.Action,
			ShouldAnalyze: false,
		}
	}
}
