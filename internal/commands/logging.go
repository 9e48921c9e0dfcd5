package commands

import (
	"strings"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// CommandLogger returns the logger for one command module, named
// coursesite.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = "core"
	}
	return logging.WithFields(logging.Commands.Child(module).Logger(provider), map[string]any{
		"command_module": module,
	})
}

// EnsureLogger returns logger, or the no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.Ensure(logger)
}
