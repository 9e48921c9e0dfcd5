package envcheckcmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-coursesite/internal/commands"
	"github.com/goliatone/go-coursesite/internal/envcheck"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// ErrCheckerRequired indicates the handler was wired without a checker.
var ErrCheckerRequired = errors.New("envcheck: checker is required")

// Checker runs the configured checks.
type Checker interface {
	Run(ctx context.Context) (*envcheck.Report, error)
}

// RunChecksHandler runs environment checks through the shared command handler.
type RunChecksHandler struct {
	inner *commands.Handler[RunChecksCommand]
}

// NewRunChecksHandler constructs a handler wired to checker. Failing checks
// are reported through the callback exit code, never as an error.
func NewRunChecksHandler(checker Checker, logger interfaces.Logger, opts ...commands.HandlerOption[RunChecksCommand]) *RunChecksHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RunChecksCommand) error {
		if checker == nil {
			return ErrCheckerRequired
		}
		report, err := checker.Run(ctx)
		if err != nil {
			return err
		}
		exitCode := report.ExitCode(msg.Strict, msg.StrictAll)
		if exitCode != 0 {
			baseLogger.Warn("envcheck.run.strict_failure",
				"missing_required", len(report.MissingRequired()),
				"missing_recommended", len(report.MissingRecommended()),
			)
		}
		if msg.ResultCallback != nil {
			heading := strings.TrimSpace(msg.Heading)
			if heading == "" {
				heading = envcheck.DefaultHeading
			}
			msg.ResultCallback(ResultEnvelope{Report: report, ExitCode: exitCode, Heading: heading})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunChecksCommand]{
		commands.WithLogger[RunChecksCommand](baseLogger),
		commands.WithOperation[RunChecksCommand]("envcheck.run"),
		commands.WithMessageFields(func(msg RunChecksCommand) map[string]any {
			return map[string]any{
				"strict":     msg.Strict,
				"strict_all": msg.StrictAll,
			}
		}),
		commands.WithObserver(commands.LogObserver[RunChecksCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RunChecksHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RunChecksCommand].
func (h *RunChecksHandler) Execute(ctx context.Context, msg RunChecksCommand) error {
	return h.inner.Execute(ctx, msg)
}
