package commands

import (
	"errors"
	"fmt"

	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
	"github.com/goliatone/go-coursesite/internal/di"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
}

// RegistrationResult captures the container handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterContainerCommands collects the command handlers exposed by the provided
// container and optionally registers them with registry/dispatcher integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 2),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if handler := container.BuildSiteHandler(); handler != nil {
		register(handler)
	}
	if handler := container.RunChecksHandler(); handler != nil {
		register(handler)
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure the container finished configuring")
	}
	return result, errs
}

// GlobalDispatcher subscribes handlers to the go-command process wide
// dispatcher, so hosts can run builds with dispatcher.Dispatch.
type GlobalDispatcher struct {
	RunnerOptions []runner.Option
}

// RegisterCommand implements CommandDispatcher for the known message types.
func (d GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[sitecmd.BuildSiteCommand]:
		return dispatcher.SubscribeCommand(h, d.RunnerOptions...), nil
	case command.Commander[envcheckcmd.RunChecksCommand]:
		return dispatcher.SubscribeCommand(h, d.RunnerOptions...), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
}
