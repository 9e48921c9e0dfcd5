package logging

import (
	"context"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return discard{}
}

type discard struct{}

var (
	_ interfaces.Logger       = discard{}
	_ interfaces.FieldsLogger = discard{}
)

func (discard) Trace(string, ...any) {}
func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (discard) Fatal(string, ...any) {}

func (d discard) WithFields(map[string]any) interfaces.Logger { return d }

func (d discard) WithContext(context.Context) interfaces.Logger { return d }
