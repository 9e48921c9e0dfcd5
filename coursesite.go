// Package coursesite builds a static HTML course site from lesson folders and
// reports whether the Raspberry Pi Pico toolchain is installed.
package coursesite

import (
	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
	"github.com/goliatone/go-coursesite/internal/di"
	"github.com/goliatone/go-coursesite/internal/envcheck"
	"github.com/goliatone/go-coursesite/internal/markdown"
	"github.com/goliatone/go-coursesite/internal/site"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// SiteService exports the site builder contract.
type SiteService = site.Service

// BuildOptions exports per-build options.
type BuildOptions = site.BuildOptions

// BuildResult exports the build outcome.
type BuildResult = site.BuildResult

// MarkdownService exports the lesson renderer.
type MarkdownService = *markdown.Service

// EnvironmentChecker exports the toolchain checker.
type EnvironmentChecker = *envcheck.Checker

// EnvironmentReport exports the checker report.
type EnvironmentReport = envcheck.Report

// Module represents the top level course site runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a Module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Site returns the configured site builder.
func (m *Module) Site() SiteService {
	return m.container.SiteService()
}

// Markdown returns the lesson renderer.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Checker returns the environment checker.
func (m *Module) Checker() EnvironmentChecker {
	return m.container.Checker()
}

// LoggerProvider returns the logger provider selected by Config.Logging.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// BuildSiteHandler returns the command handler for site builds.
func (m *Module) BuildSiteHandler() *sitecmd.BuildSiteHandler {
	return m.container.BuildSiteHandler()
}

// RunChecksHandler returns the command handler for environment checks.
func (m *Module) RunChecksHandler() *envcheckcmd.RunChecksHandler {
	return m.container.RunChecksHandler()
}
