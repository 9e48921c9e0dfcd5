package commands

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-coursesite/internal/adapters/storage"
	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
	"github.com/goliatone/go-coursesite/internal/di"
	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/internal/runtimeconfig"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

func newContainer(t *testing.T, memory *storage.MemoryProvider) *di.Container {
	t.Helper()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(),
		di.WithLoggerProvider(interfaces.LoggerProviderFunc(func(string) interfaces.Logger { return logging.NoOp() })),
		di.WithStorage(memory),
		di.WithLessonsFS(fstest.MapFS{
			"L01-demo/overview.md":   {Data: []byte("# Demo\n\nBody text.\n")},
			"L01-demo/assessment.md": {Data: []byte("# Quiz\n\nQuestion?\n")},
		}),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatch := &recordingDispatcher{}

	result, err := RegisterContainerCommands(newContainer(t, storage.NewMemory()), RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatch,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 2 {
		t.Fatalf("expected build and check handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}

	var hasBuild, hasChecks bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *sitecmd.BuildSiteHandler:
			hasBuild = true
		case *envcheckcmd.RunChecksHandler:
			hasChecks = true
		}
	}
	if !hasBuild || !hasChecks {
		t.Fatalf("unexpected handler set %#v", result.Handlers)
	}

	result.Unsubscribe()
	for _, sub := range dispatch.subscriptions {
		if !sub.unsubscribed {
			t.Fatalf("expected subscription for %T to be torn down", sub.handler)
		}
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	result, err := RegisterContainerCommands(newContainer(t, storage.NewMemory()), RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsJoinsRegistrarErrors(t *testing.T) {
	registry := &recordingRegistry{err: errors.New("registry closed")}

	result, err := RegisterContainerCommands(newContainer(t, storage.NewMemory()), RegistrationOptions{Registry: registry})
	if err == nil {
		t.Fatal("expected registry error")
	}
	if len(result.Handlers) != 2 {
		t.Fatalf("handlers should still be returned, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil || len(result.Handlers) != 0 {
		t.Fatalf("expected empty result, got %+v, %v", result, err)
	}
}

func TestGlobalDispatcherRunsBuild(t *testing.T) {
	memory := storage.NewMemory()
	result, err := RegisterContainerCommands(newContainer(t, memory), RegistrationOptions{
		Dispatcher: GlobalDispatcher{},
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	var lessons int
	err = dispatcher.Dispatch(context.Background(), sitecmd.BuildSiteCommand{
		ResultCallback: func(env sitecmd.ResultEnvelope) { lessons = env.Result.LessonCount() },
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if lessons != 1 {
		t.Fatalf("expected one lesson, got %d", lessons)
	}
	if _, ok := memory.File("lessons/L01-demo.html"); !ok {
		t.Fatalf("expected lesson page, have %v", memory.Paths())
	}
}

func TestGlobalDispatcherRejectsUnknownHandlers(t *testing.T) {
	if _, err := (GlobalDispatcher{}).RegisterCommand(struct{}{}); err == nil {
		t.Fatal("expected error for unsupported handler")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
