// Package logging holds the module naming and field helpers shared by every
// coursesite component, independent of the backing logger.
package logging

import (
	"strings"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// Module names a logger. Names are dotted and rooted at "coursesite" so
// go-logger focus filters can target a subtree.
type Module string

const (
	Root     Module = "coursesite"
	Site     Module = "coursesite.site"
	Markdown Module = "coursesite.markdown"
	Checker  Module = "coursesite.envcheck"
	Commands Module = "coursesite.commands"
)

// Child appends a dotted segment. A blank segment returns m.
func (m Module) Child(segment string) Module {
	segment = strings.Trim(strings.TrimSpace(segment), ".")
	if segment == "" {
		return m
	}
	return Module(string(m) + "." + segment)
}

// Logger resolves m against provider and tags entries with a "module" field.
// A nil provider, or one that returns nil, yields the no-op logger.
func (m Module) Logger(provider interfaces.LoggerProvider) interfaces.Logger {
	if m == "" {
		m = Root
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(string(m))
	}
	return WithFields(Ensure(logger), map[string]any{"module": string(m)})
}
