package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-coursesite/internal/markdown"
	"gopkg.in/yaml.v3"
)

var (
	ErrLessonsDirRequired      = errors.New("coursesite config: lessons directory is required")
	ErrOutputDirRequired       = errors.New("coursesite config: output directory is required")
	ErrOutputDirUnsafe         = errors.New("coursesite config: output directory cannot be cleaned safely")
	ErrOutputDirOverlapsInput  = errors.New("coursesite config: output directory overlaps lessons directory")
	ErrMarkdownExtension       = errors.New("coursesite config: markdown extension is invalid")
	ErrCodeIndentInvalid       = errors.New("coursesite config: markdown code indent must not be negative")
	ErrCheckerTimeoutInvalid   = errors.New("coursesite config: checker timeout must not be negative")
	ErrLoggingProviderRequired = errors.New("coursesite config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("coursesite config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("coursesite config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("coursesite config: logging format is invalid")
)

// Config aggregates runtime options for the site generator and the
// environment checker.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Checker  CheckerConfig  `yaml:"checker"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig captures behaviour for the static site build.
type SiteConfig struct {
	LessonsDir    string `yaml:"lessons_dir"`
	OutputDir     string `yaml:"output_dir"`
	Title         string `yaml:"title"`
	CleanBuild    bool   `yaml:"clean_build"`
	WriteManifest bool   `yaml:"write_manifest"`
	DryRun        bool   `yaml:"dry_run"`
}

// MarkdownConfig mirrors interfaces.ParseOptions and interfaces.NormalizeOptions.
type MarkdownConfig struct {
	Extensions          []string `yaml:"extensions"`
	HardWraps           bool     `yaml:"hard_wraps"`
	SafeMode            bool     `yaml:"safe_mode"`
	SkipListIndentation bool     `yaml:"skip_list_indentation"`
	SkipFencedCode      bool     `yaml:"skip_fenced_code"`
	CodeIndent          int      `yaml:"code_indent"`
}

// CheckerConfig captures toolchain check behaviour.
type CheckerConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Strict    bool          `yaml:"strict"`
	StrictAll bool          `yaml:"strict_all"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used by both command line tools.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			LessonsDir: "lessons",
			OutputDir:  "site",
			CleanBuild: true,
		},
		Markdown: MarkdownConfig{
			Extensions: append([]string(nil), markdown.DefaultExtensions...),
			CodeIndent: markdown.DefaultCodeIndent,
		},
		Checker: CheckerConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile reads a YAML document on top of DefaultConfig. Keys absent from
// the file keep their default value.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("coursesite config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("coursesite config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	lessons := strings.TrimSpace(cfg.Site.LessonsDir)
	if lessons == "" {
		return ErrLessonsDirRequired
	}
	output := strings.TrimSpace(cfg.Site.OutputDir)
	if output == "" {
		return ErrOutputDirRequired
	}
	if cfg.Site.CleanBuild && unsafeOutput(output) {
		return fmt.Errorf("%w: %s", ErrOutputDirUnsafe, output)
	}
	// Output may not sit inside lessons. With clean builds lessons may not sit
	// inside output either.
	if within(lessons, output) || (cfg.Site.CleanBuild && within(output, lessons)) {
		return fmt.Errorf("%w: %s", ErrOutputDirOverlapsInput, output)
	}

	if err := markdown.ValidateExtensions(cfg.Markdown.Extensions); err != nil {
		return fmt.Errorf("%w: %w", ErrMarkdownExtension, err)
	}
	if cfg.Markdown.CodeIndent < 0 {
		return fmt.Errorf("%w: %d", ErrCodeIndentInvalid, cfg.Markdown.CodeIndent)
	}
	if cfg.Checker.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrCheckerTimeoutInvalid, cfg.Checker.Timeout)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func unsafeOutput(dir string) bool {
	cleaned := filepath.Clean(dir)
	return cleaned == "." || filepath.Dir(cleaned) == cleaned
}

// within reports whether dir is parent itself or lies below it.
func within(parent, dir string) bool {
	absParent, errParent := filepath.Abs(parent)
	absDir, errDir := filepath.Abs(dir)
	if errParent != nil || errDir != nil {
		absParent, absDir = filepath.Clean(parent), filepath.Clean(dir)
	}
	rel, err := filepath.Rel(absParent, absDir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
