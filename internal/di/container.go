package di

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-coursesite/internal/adapters/storage"
	"github.com/goliatone/go-coursesite/internal/commands"
	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
	"github.com/goliatone/go-coursesite/internal/envcheck"
	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/internal/logging/console"
	"github.com/goliatone/go-coursesite/internal/logging/gologger"
	"github.com/goliatone/go-coursesite/internal/markdown"
	"github.com/goliatone/go-coursesite/internal/runtimeconfig"
	"github.com/goliatone/go-coursesite/internal/site"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
	artifacts "github.com/goliatone/go-coursesite/pkg/storage"
)

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	storage        interfaces.StorageProvider
	lessons        fs.FS
	parser         interfaces.MarkdownParser
	checkerOpts    []envcheck.Option

	markdownSvc *markdown.Service
	siteSvc     site.Service
	checker     *envcheck.Checker

	buildHandler  *sitecmd.BuildSiteHandler
	checksHandler *envcheckcmd.RunChecksHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithStorage overrides the filesystem provider rooted at the output directory.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		if sp != nil {
			c.storage = sp
		}
	}
}

// WithLessonsFS replaces the lessons directory with an arbitrary filesystem.
func WithLessonsFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.lessons = fsys
		}
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithCheckerOptions forwards options to the environment checker.
func WithCheckerOptions(opts ...envcheck.Option) Option {
	return func(c *Container) {
		c.checkerOpts = append(c.checkerOpts, opts...)
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if c.lessons == nil {
		c.lessons = os.DirFS(cfg.Site.LessonsDir)
	}

	c.configureMarkdown()
	c.configureSite()
	c.configureChecker()
	c.configureCommands()

	logging.Root.Logger(c.loggerProvider).Debug("container.configured",
		"lessons_dir", cfg.Site.LessonsDir,
		"output_dir", cfg.Site.OutputDir,
		"logging_provider", cfg.Logging.Provider,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.storage != nil {
		return nil
	}
	provider, err := storage.NewFilesystem(artifacts.Config{
		Name: "site",
		Root: c.Config.Site.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("configure storage: %w", err)
	}
	c.storage = provider
	return nil
}

func (c *Container) configureMarkdown() {
	mdCfg := c.Config.Markdown
	c.markdownSvc = markdown.NewService(markdown.Config{
		Parser: interfaces.ParseOptions{
			Extensions: append([]string(nil), mdCfg.Extensions...),
			HardWraps:  mdCfg.HardWraps,
			SafeMode:   mdCfg.SafeMode,
		},
		Normalize: interfaces.NormalizeOptions{
			SkipListIndentation: mdCfg.SkipListIndentation,
			SkipFencedCode:      mdCfg.SkipFencedCode,
			CodeIndent:          mdCfg.CodeIndent,
		},
	}, c.parser, logging.Markdown.Logger(c.loggerProvider))
}

func (c *Container) configureSite() {
	siteCfg := c.Config.Site
	c.siteSvc = site.NewService(site.Config{
		OutputDir:     siteCfg.OutputDir,
		Title:         siteCfg.Title,
		CleanBuild:    siteCfg.CleanBuild,
		WriteManifest: siteCfg.WriteManifest,
	}, site.Dependencies{
		Lessons:  c.lessons,
		Renderer: c.markdownSvc,
		Storage:  c.storage,
		Logger:   logging.Site.Logger(c.loggerProvider),
	})
}

func (c *Container) configureChecker() {
	opts := append([]envcheck.Option{
		envcheck.WithLogger(logging.Checker.Logger(c.loggerProvider)),
	}, c.checkerOpts...)
	c.checker = envcheck.NewChecker(envcheck.Config{
		Timeout: c.Config.Checker.Timeout,
	}, opts...)
}

func (c *Container) configureCommands() {
	c.buildHandler = sitecmd.NewBuildSiteHandler(c.siteSvc, commands.CommandLogger(c.loggerProvider, "site"))
	c.checksHandler = envcheckcmd.NewRunChecksHandler(c.checker, commands.CommandLogger(c.loggerProvider, "envcheck"))
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// StorageProvider returns the artifact sink used by site builds.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// MarkdownService returns the lesson renderer.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// SiteService returns the site builder.
func (c *Container) SiteService() site.Service {
	return c.siteSvc
}

// Checker returns the environment checker.
func (c *Container) Checker() *envcheck.Checker {
	return c.checker
}

// BuildSiteHandler returns the command handler wrapping SiteService.
func (c *Container) BuildSiteHandler() *sitecmd.BuildSiteHandler {
	return c.buildHandler
}

// RunChecksHandler returns the command handler wrapping Checker.
func (c *Container) RunChecksHandler() *envcheckcmd.RunChecksHandler {
	return c.checksHandler
}
