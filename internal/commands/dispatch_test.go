package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type rebuildMessage struct {
	Lesson string
}

func (rebuildMessage) Type() string { return "coursesite.test.rebuild" }

func (rebuildMessage) Validate() error { return nil }

func TestDispatchedHandlerRecoversOnRetry(t *testing.T) {
	var outcomes []Status
	attempts := 0
	handler := NewHandler(func(context.Context, rebuildMessage) error {
		attempts++
		if attempts < 2 {
			return errors.New("output directory busy")
		}
		return nil
	},
		WithTimeout[rebuildMessage](time.Second),
		WithObserver(func(_ context.Context, _ rebuildMessage, outcome Outcome) {
			outcomes = append(outcomes, outcome.Status)
		}),
	)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), rebuildMessage{Lesson: "L03-pwm"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected a single retry, got %d attempts", attempts)
	}
	if len(outcomes) != 2 || outcomes[0] != StatusFailed || outcomes[1] != StatusSucceeded {
		t.Fatalf("unexpected outcome sequence %v", outcomes)
	}
}
