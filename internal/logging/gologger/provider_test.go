package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "console", "JSON", " pretty "} {
		if _, err := NewProvider(Config{Format: format, Level: "debug"}); err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
	}
	if _, err := NewProvider(Config{Format: "syslog"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestProviderNamesModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "warn", Focus: []string{" coursesite.site ", ""}})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	for _, name := range []string{"", "coursesite.site"} {
		if p.GetLogger(name) == nil {
			t.Fatalf("expected logger for %q", name)
		}
	}

	var nilProvider *Provider
	nilProvider.GetLogger("coursesite.envcheck").Info("dropped")
}

func TestAdapterForwardsLevelsFieldsAndContext(t *testing.T) {
	inner := &fakeGlog{}
	logger := adapt(inner)

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")
	if got := len(inner.messages); got != 5 {
		t.Fatalf("expected 5 forwarded messages, got %d", got)
	}

	fields := map[string]any{"check": "python3"}
	logger.(interfaces.FieldsLogger).WithFields(fields)
	fields["check"] = "mutated"
	if inner.fields["check"] != "python3" {
		t.Fatalf("expected adapter to pass a copy of fields, got %v", inner.fields)
	}

	ctx := context.Background()
	logger.WithContext(ctx)
	if inner.ctx != ctx {
		t.Fatal("expected context to reach go-logger")
	}
}

func TestLevelAliases(t *testing.T) {
	if levels["warning"] != glog.Warn || levels["warn"] != glog.Warn {
		t.Fatalf("expected warn aliases to map to %q", glog.Warn)
	}
	if _, ok := levels["verbose"]; ok {
		t.Fatal("unexpected level alias")
	}
}

type fakeGlog struct {
	messages []string
	fields   map[string]any
	ctx      context.Context
}

var _ glog.FieldsLogger = (*fakeGlog)(nil)

func (f *fakeGlog) Trace(msg string, _ ...any) { f.messages = append(f.messages, msg) }
func (f *fakeGlog) Debug(msg string, _ ...any) { f.messages = append(f.messages, msg) }
func (f *fakeGlog) Info(msg string, _ ...any)  { f.messages = append(f.messages, msg) }
func (f *fakeGlog) Warn(msg string, _ ...any)  { f.messages = append(f.messages, msg) }
func (f *fakeGlog) Error(msg string, _ ...any) { f.messages = append(f.messages, msg) }
func (f *fakeGlog) Fatal(msg string, _ ...any) { f.messages = append(f.messages, msg) }

func (f *fakeGlog) WithContext(ctx context.Context) glog.Logger {
	f.ctx = ctx
	return f
}

func (f *fakeGlog) WithFields(fields map[string]any) glog.Logger {
	f.fields = fields
	return f
}
