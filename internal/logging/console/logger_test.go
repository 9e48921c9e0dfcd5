package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/internal/logging/console"
)

func TestEntryLayoutIsSortedKeyValue(t *testing.T) {
	var out bytes.Buffer
	stamp := time.Date(2026, 10, 19, 8, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	debug := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &out,
		TimeFunc: func() time.Time { return stamp },
		MinLevel: &debug,
	})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"command": "coursesite.site.build"})
	logger := logging.Site.Logger(provider).WithContext(ctx)
	logger = logging.WithLessonContext(logger, "L02-fade", "", "lessons/L02-fade.html")

	logger.Debug("site.build.lesson_rendered", "title", "Fade an LED", "bytes", 2048)

	want := "2026-10-19T06:30:00Z DEBUG site.build.lesson_rendered" +
		" bytes=2048" +
		" command=coursesite.site.build" +
		" lesson=L02-fade" +
		" logger=coursesite.site" +
		" module=coursesite.site" +
		" output_path=lessons/L02-fade.html" +
		` title="Fade an LED"`
	if got := strings.TrimSpace(out.String()); got != want {
		t.Fatalf("entry mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestEntriesBelowMinimumLevelAreDropped(t *testing.T) {
	var out bytes.Buffer
	warn := console.LevelWarn
	logger := console.NewProvider(console.Options{Writer: &out, MinLevel: &warn}).GetLogger("coursesite.envcheck")

	logger.Info("envcheck.check.ok", "check", "python3")
	logger.Warn("envcheck.check.warn", "check", "mpremote")
	logger.Error("envcheck.check.error", "check", "picotool")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected warn and error lines only, got %q", lines)
	}
	if !strings.Contains(lines[0], " WARN ") || !strings.Contains(lines[1], " ERROR ") {
		t.Fatalf("unexpected levels %q", lines)
	}
}

func TestValueFormatting(t *testing.T) {
	var out bytes.Buffer
	logger := console.NewProvider(console.Options{Writer: &out}).GetLogger("fmt")

	logger.Error("site.build.failed",
		"error", errors.New("permission denied"),
		"elapsed", 1500*time.Millisecond,
		"dry_run", true,
		"ratio", 0.5,
		"empty", "",
		"missing", nil,
		7, "non-string key",
		"trailing",
	)

	got := out.String()
	for _, want := range []string{
		`error="permission denied"`,
		"elapsed=1.5s",
		"dry_run=true",
		"ratio=0.5",
		`empty=""`,
		"missing=null",
		`field_6="non-string key"`,
		"field_7=trailing",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
}

func TestParseLevelNames(t *testing.T) {
	for input, want := range map[string]console.Level{
		"TRACE":   console.LevelTrace,
		"debug":   console.LevelDebug,
		" ":       console.LevelInfo,
		"warning": console.LevelWarn,
		"Error":   console.LevelError,
		"fatal":   console.LevelFatal,
	} {
		if got, ok := console.ParseLevel(input); !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if level, ok := console.ParseLevel("chatty"); ok || level != console.LevelInfo {
		t.Fatalf("expected unknown level to fall back to info, got %v, %v", level, ok)
	}
	if console.Level(42).String() != "INFO" {
		t.Fatal("out of range levels print as INFO")
	}
}
