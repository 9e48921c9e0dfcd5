package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// WithFields returns a child of logger carrying a copy of fields. Loggers
// that cannot hold fields come back unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// Ensure returns logger, or the no-op logger when logger is nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// WithLessonContext tags logger with the lesson being built. Blank values
// are left out.
func WithLessonContext(logger interfaces.Logger, name, dir, output string) interfaces.Logger {
	pairs := [][2]string{
		{"lesson", name},
		{"lesson_dir", dir},
		{"output_path", output},
	}
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		if value := strings.TrimSpace(pair[1]); value != "" {
			fields[pair[0]] = value
		}
	}
	return WithFields(logger, fields)
}
