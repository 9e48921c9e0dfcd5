package di_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-coursesite/internal/adapters/storage"
	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
	"github.com/goliatone/go-coursesite/internal/di"
	"github.com/goliatone/go-coursesite/internal/envcheck"
	"github.com/goliatone/go-coursesite/internal/runtimeconfig"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

type recordedEntry struct {
	logger string
	level  string
	msg    string
}

type recordingProvider struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{provider: p, name: name}
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	name     string
}

func (l *recordingLogger) record(level, msg string) {
	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	l.provider.entries = append(l.provider.entries, recordedEntry{logger: l.name, level: level, msg: msg})
}

func (l *recordingLogger) Trace(msg string, _ ...any) { l.record("trace", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.record("fatal", msg) }

func (l *recordingLogger) WithFields(map[string]any) interfaces.Logger { return l }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

type emptySystem struct{}

func (emptySystem) LookPath(string) (string, error) { return "", errors.New("not found") }
func (emptySystem) Getenv(string) string            { return "" }
func (emptySystem) Stat(string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}
func (emptySystem) HomeDir() (string, error) { return "/home/test", nil }

func lessonFS() fstest.MapFS {
	return fstest.MapFS{
		"L01-blink/overview.md":   {Data: []byte("# Blink\n\n- Wire the LED\n  - use GP15\n")},
		"L01-blink/assessment.md": {Data: []byte("# Quiz\n\nWhich pin?\n")},
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Extensions = []string{"emoji"}

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrMarkdownExtension) {
		t.Fatalf("expected ErrMarkdownExtension, got %v", err)
	}
}

func TestNewContainerDefaultsToFilesystemStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.OutputDir = t.TempDir()

	container, err := di.NewContainer(cfg, di.WithLoggerProvider(&recordingProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	provider, ok := container.StorageProvider().(*storage.FilesystemProvider)
	if !ok {
		t.Fatalf("expected filesystem provider, got %T", container.StorageProvider())
	}
	if provider.Root() != cfg.Site.OutputDir {
		t.Fatalf("expected root %s, got %s", cfg.Site.OutputDir, provider.Root())
	}
}

func TestNewContainerSelectsGoLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if got := container.LoggerProvider().GetLogger("coursesite.test"); got == nil {
		t.Fatalf("expected logger from go-logger provider")
	}
}

func TestBuildSiteHandlerRendersThroughContainer(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	memory := storage.NewMemory()
	logs := &recordingProvider{}

	container, err := di.NewContainer(cfg,
		di.WithLessonsFS(lessonFS()),
		di.WithStorage(memory),
		di.WithLoggerProvider(logs),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	var envelope sitecmd.ResultEnvelope
	err = container.BuildSiteHandler().Execute(context.Background(), sitecmd.BuildSiteCommand{
		ResultCallback: func(env sitecmd.ResultEnvelope) { envelope = env },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if envelope.Result == nil || envelope.Result.LessonCount() != 1 {
		t.Fatalf("expected one lesson in result, got %+v", envelope.Result)
	}

	page, ok := memory.File("lessons/L01-blink.html")
	if !ok {
		t.Fatalf("lesson page not written, have %v", memory.Paths())
	}
	html := string(page)
	if !strings.Contains(html, "<title>Blink</title>") {
		t.Fatalf("expected lesson title in page:\n%s", html)
	}
	if !strings.Contains(html, "<li>use GP15</li>") {
		t.Fatalf("expected nested list item in page:\n%s", html)
	}
	if logs.find("site.build.completed") == nil {
		t.Fatalf("expected site.build.completed log entry, got %#v", logs.entries)
	}
	if logs.find("container.configured") == nil {
		t.Fatalf("expected container.configured log entry")
	}
}

func TestRunChecksHandlerUsesCheckerOptions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg,
		di.WithStorage(storage.NewMemory()),
		di.WithLoggerProvider(&recordingProvider{}),
		di.WithCheckerOptions(envcheck.WithSystem(emptySystem{})),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	var envelope envcheckcmd.ResultEnvelope
	err = container.RunChecksHandler().Execute(context.Background(), envcheckcmd.RunChecksCommand{
		Strict:         true,
		ResultCallback: func(env envcheckcmd.ResultEnvelope) { envelope = env },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if envelope.Report == nil {
		t.Fatalf("expected report")
	}
	if envelope.ExitCode != 1 {
		t.Fatalf("expected strict exit code 1 with nothing installed, got %d", envelope.ExitCode)
	}
	found, total := envelope.Report.RequiredFound()
	if found != 0 || total == 0 {
		t.Fatalf("expected no required tools found, got %d/%d", found, total)
	}
}
