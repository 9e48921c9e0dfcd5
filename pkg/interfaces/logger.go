package interfaces

import "context"

// LoggerProvider resolves a logger per dotted module name, for example
// "coursesite.site" or "coursesite.commands.envcheck".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// LoggerProviderFunc lets a plain function serve as a LoggerProvider.
type LoggerProviderFunc func(name string) Logger

// GetLogger calls f.
func (f LoggerProviderFunc) GetLogger(name string) Logger { return f(name) }

// Logger is the levelled logger used by the builder, the checker and both
// binaries. Its methods match go-logger's glog.Logger so that package can
// back it directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields
// onto every entry. WithFields returns a child and leaves the receiver as is.
type FieldsLogger interface {
	Logger
	WithFields(fields map[string]any) Logger
}
