package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// DefaultTimeout bounds a run when WithTimeout is not given.
const DefaultTimeout = 2 * time.Minute

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler adapts a command function to go-command's Commander, adding message
// validation, a run timeout, structured logging and go-errors categories.
type Handler[T command.Message] struct {
	run       command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	observer  Observer[T]
	userErrs  []error
	now       func() time.Time
}

// NewHandler wraps fn. It panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		run:     fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute implements command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := h.logFields(msg)
	logger := logging.WithFields(h.logger, fields)
	ctx = logging.ContextWithFields(ctx, fields)

	if err := command.ValidateMessage(msg); err != nil {
		h.report(ctx, msg, Outcome{Fields: fields, Started: h.now(), Status: StatusRejected, Err: err}, logger)
		return wrapOutcome(StatusRejected, err)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	started := h.now()
	var err error
	if err = ctx.Err(); err == nil {
		logger.Debug("command.started")
		err = h.run(ctx, msg)
		if err == nil {
			err = ctx.Err()
		}
	}

	status := classify(err, h.userErrs)
	h.report(ctx, msg, Outcome{
		Fields:   fields,
		Started:  started,
		Duration: h.now().Sub(started),
		Status:   status,
		Err:      err,
	}, logger)

	if status == StatusSucceeded {
		return nil
	}
	return wrapOutcome(status, err)
}

func (h *Handler[T]) logFields(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	return fields
}

func (h *Handler[T]) report(ctx context.Context, msg T, outcome Outcome, logger interfaces.Logger) {
	outcome.Command = command.GetMessageType(msg)
	outcome.Operation = h.operation
	if h.observer != nil {
		h.observer(ctx, msg, outcome)
		return
	}
	switch outcome.Status {
	case StatusSucceeded:
		logger.Info("command.completed")
	case StatusRejected:
		logger.Warn("command.rejected", "error", outcome.Err)
	default:
		logger.Error("command.failed", "status", string(outcome.Status), "error", outcome.Err)
	}
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables the timeout.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the logger used when no observer is installed.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation names the operation in logs and outcomes.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithObserver replaces outcome logging with fn.
func WithObserver[T command.Message](fn Observer[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.observer = fn
	}
}

// WithUserErrors marks execution errors matching any of errs as rejected
// input (validation category) instead of failed runs.
func WithUserErrors[T command.Message](errs ...error) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.userErrs = append(h.userErrs, errs...)
	}
}

// WithClock replaces time.Now for outcome timestamps.
func WithClock[T command.Message](now func() time.Time) HandlerOption[T] {
	return func(h *Handler[T]) {
		if now != nil {
			h.now = now
		}
	}
}
