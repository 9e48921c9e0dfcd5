package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// Status classifies how a command run ended.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusRejected  Status = "rejected"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusTimedOut  Status = "timed_out"
)

// Outcome describes one command run.
type Outcome struct {
	Command   string
	Operation string
	Fields    map[string]any
	Started   time.Time
	Duration  time.Duration
	Status    Status
	Err       error
}

// Observer is notified after every run, including rejected messages.
type Observer[T command.Message] func(ctx context.Context, msg T, outcome Outcome)

// LogObserver logs outcomes on logger: successes at info, rejections at
// warn, everything else at error.
func LogObserver[T command.Message](logger interfaces.Logger) Observer[T] {
	logger = logging.Ensure(logger)
	return func(_ context.Context, _ T, outcome Outcome) {
		entry := logging.WithFields(logger, outcome.Fields)
		args := []any{"status", string(outcome.Status), "duration_ms", outcome.Duration.Milliseconds()}
		switch outcome.Status {
		case StatusSucceeded:
			entry.Info("command.completed", args...)
		case StatusRejected:
			entry.Warn("command.rejected", append(args, "error", outcome.Err)...)
		default:
			entry.Error("command.failed", append(args, "error", outcome.Err)...)
		}
	}
}
