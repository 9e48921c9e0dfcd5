package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type lessonMessage struct {
	Lesson string
}

func (lessonMessage) Type() string { return "coursesite.test.lesson" }

func (m lessonMessage) Validate() error {
	if m.Lesson == "invalid" {
		return errors.New("lesson name is invalid")
	}
	return nil
}

var errUnknownLesson = errors.New("unknown lesson")

func recordOutcomes(outcomes *[]Outcome) HandlerOption[lessonMessage] {
	return WithObserver(func(_ context.Context, _ lessonMessage, outcome Outcome) {
		*outcomes = append(*outcomes, outcome)
	})
}

func TestHandlerSucceeds(t *testing.T) {
	var outcomes []Outcome
	var seen string
	h := NewHandler(func(_ context.Context, msg lessonMessage) error {
		seen = msg.Lesson
		return nil
	}, recordOutcomes(&outcomes), WithOperation[lessonMessage]("lesson.render"))

	if err := h.Execute(context.Background(), lessonMessage{Lesson: "L01-demo"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if seen != "L01-demo" {
		t.Fatalf("expected message to reach the function, got %q", seen)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(outcomes))
	}
	got := outcomes[0]
	if got.Status != StatusSucceeded || got.Err != nil {
		t.Fatalf("unexpected outcome %+v", got)
	}
	if got.Command != "coursesite.test.lesson" || got.Operation != "lesson.render" {
		t.Fatalf("unexpected outcome identity %+v", got)
	}
}

func TestHandlerRejectsInvalidMessages(t *testing.T) {
	var outcomes []Outcome
	called := false
	h := NewHandler(func(context.Context, lessonMessage) error {
		called = true
		return nil
	}, recordOutcomes(&outcomes))

	err := h.Execute(context.Background(), lessonMessage{Lesson: "invalid"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("function must not run for an invalid message")
	}
	if len(outcomes) != 1 || outcomes[0].Status != StatusRejected {
		t.Fatalf("expected a rejected outcome, got %+v", outcomes)
	}
}

func TestHandlerClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   Status
		category goerrors.Category
	}{
		{name: "failure", err: errors.New("disk full"), status: StatusFailed, category: goerrors.CategoryCommand},
		{name: "user error", err: fmt.Errorf("select: %w", errUnknownLesson), status: StatusRejected, category: goerrors.CategoryValidation},
		{name: "cancelled", err: fmt.Errorf("site: render: %w", context.Canceled), status: StatusCancelled, category: goerrors.CategoryCommand},
		{name: "deadline", err: context.DeadlineExceeded, status: StatusTimedOut, category: goerrors.CategoryCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var outcomes []Outcome
			h := NewHandler(func(context.Context, lessonMessage) error {
				return tt.err
			}, recordOutcomes(&outcomes), WithUserErrors[lessonMessage](errUnknownLesson))

			err := h.Execute(context.Background(), lessonMessage{Lesson: "L01-demo"})
			if !goerrors.IsCategory(err, tt.category) {
				t.Fatalf("expected category %v, got %v", tt.category, err)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected source error to stay reachable, got %v", err)
			}
			if outcomes[0].Status != tt.status {
				t.Fatalf("expected status %s, got %s", tt.status, outcomes[0].Status)
			}
		})
	}
}

func TestHandlerSkipsFunctionForCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(context.Context, lessonMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, lessonMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("function must not run when the context is already cancelled")
	}
}

func TestHandlerAppliesTimeout(t *testing.T) {
	var outcomes []Outcome
	h := NewHandler(func(ctx context.Context, _ lessonMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[lessonMessage](10*time.Millisecond), recordOutcomes(&outcomes))

	err := h.Execute(context.Background(), lessonMessage{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if outcomes[0].Status != StatusTimedOut {
		t.Fatalf("expected timed_out status, got %s", outcomes[0].Status)
	}
}

func TestHandlerOutcomeCarriesFieldsAndDuration(t *testing.T) {
	var outcomes []Outcome
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewHandler(func(context.Context, lessonMessage) error {
		clock = clock.Add(1500 * time.Millisecond)
		return nil
	},
		WithClock[lessonMessage](func() time.Time { return clock }),
		WithMessageFields(func(msg lessonMessage) map[string]any {
			return map[string]any{"lesson": msg.Lesson}
		}),
		recordOutcomes(&outcomes),
	)

	if err := h.Execute(context.Background(), lessonMessage{Lesson: "L02-fade"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := outcomes[0]
	if got.Fields["lesson"] != "L02-fade" || got.Fields["command"] != "coursesite.test.lesson" {
		t.Fatalf("unexpected fields %#v", got.Fields)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s duration, got %s", got.Duration)
	}
}

func TestNewHandlerPanicsOnNilFunction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewHandler[lessonMessage](nil)
}
