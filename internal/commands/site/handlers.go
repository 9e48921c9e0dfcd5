package sitecmd

import (
	"context"

	"github.com/goliatone/go-coursesite/internal/commands"
	"github.com/goliatone/go-coursesite/internal/site"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// BuildSiteHandler runs site builds through the shared command handler.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided site service.
func NewBuildSiteHandler(service site.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return site.ErrLessonsRequired
		}
		result, err := service.Build(ctx, site.BuildOptions{
			DryRun:  msg.DryRun,
			Lessons: append([]string(nil), msg.Lessons...),
		})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(ResultEnvelope{
				Result: result,
				Metadata: map[string]any{
					"operation": "build",
					"dry_run":   msg.DryRun,
				},
			})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithUserErrors[BuildSiteCommand](site.ErrLessonNotFound),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Lessons) > 0 {
				fields["lessons"] = len(msg.Lessons)
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithObserver(commands.LogObserver[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
