package envcheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// DefaultTimeout bounds every subprocess a Checker starts.
const DefaultTimeout = 5 * time.Second

const (
	pythonCommand = "python3"
	editorCommand = "code"
)

// packageProbe exits 1 when the module cannot be imported and otherwise
// prints the installed distribution version, if any.
const packageProbe = `import importlib.metadata, importlib.util, sys
if importlib.util.find_spec(sys.argv[1]) is None:
    sys.exit(1)
try:
    print(importlib.metadata.version(sys.argv[2]))
except importlib.metadata.PackageNotFoundError:
    pass
`

// Config controls a Checker.
type Config struct {
	Checks  Checks
	Timeout time.Duration
}

// Checker runs checks sequentially.
type Checker struct {
	checks  Checks
	timeout time.Duration
	runner  Runner
	system  System
	logger  interfaces.Logger
}

// Option customises a Checker.
type Option func(*Checker)

// WithRunner replaces the subprocess runner.
func WithRunner(runner Runner) Option {
	return func(c *Checker) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithSystem replaces the host environment.
func WithSystem(system System) Option {
	return func(c *Checker) {
		if system != nil {
			c.system = system
		}
	}
}

// WithLogger sets the logger used for per-check diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Checker) {
		c.logger = logging.Ensure(logger)
	}
}

// NewChecker returns a Checker. A zero Checks value selects DefaultChecks and
// a non-positive timeout selects DefaultTimeout.
func NewChecker(cfg Config, opts ...Option) *Checker {
	checks := cfg.Checks
	if checks.Count() == 0 {
		checks = DefaultChecks()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	checker := &Checker{
		checks:  checks,
		timeout: timeout,
		runner:  ExecRunner{},
		system:  HostSystem{},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(checker)
		}
	}
	return checker
}

// Run executes every check in declaration order: commands, packages, paths,
// then editor extensions. Individual failures are recorded in the report;
// only cancellation of ctx aborts the run.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Results: make([]Result, 0, c.checks.Count())}
	if path, err := c.system.LookPath(pythonCommand); err == nil {
		report.Interpreter = path
	}

	record := func(result Result) {
		report.Results = append(report.Results, result)
		c.logger.Debug("envcheck.check.completed",
			"label", result.Label,
			"kind", string(result.Kind),
			"status", string(result.Status),
			"required", result.Required,
		)
	}

	for _, check := range c.checks.Commands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record(c.checkCommand(ctx, check))
	}
	for _, check := range c.checks.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record(c.checkPackage(ctx, check, report.Interpreter))
	}
	for _, check := range c.checks.EnvPaths {
		record(c.checkEnvPath(check))
	}

	if len(c.checks.Extensions) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		installed, skipReason := c.listExtensions(ctx)
		for _, check := range c.checks.Extensions {
			record(checkExtension(check, installed, skipReason))
		}
	}

	found, total := report.RequiredFound()
	c.logger.Info("envcheck.run.completed",
		"checks", len(report.Results),
		"required_found", found,
		"required_total", total,
	)
	return report, nil
}

func (c *Checker) checkCommand(ctx context.Context, check CommandCheck) Result {
	result := Result{Label: check.Label, Kind: KindCommand, Required: check.Required}

	path, err := c.system.LookPath(check.Command)
	if err != nil || path == "" {
		result.Status = StatusMissing
		result.Details = "install needed"
		return result
	}

	args := check.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}
	out, err := c.run(ctx, check.Command, args...)
	if err != nil {
		result.Status = StatusError
		result.Details = fmt.Sprintf("%s | %s", path, c.describeFailure(check.Command, err))
		return result
	}
	version := firstLine(out.Stdout, out.Stderr)
	if out.ExitCode != 0 {
		result.Status = StatusError
		result.Details = fmt.Sprintf("%s | exit status %d", path, out.ExitCode)
		if version != "" {
			result.Details += ": " + version
		}
		return result
	}

	result.Status = StatusFound
	result.Details = path
	if version != "" {
		result.Details = path + " | " + version
	}
	return result
}

func (c *Checker) checkPackage(ctx context.Context, check PackageCheck, interpreter string) Result {
	result := Result{Label: check.Label, Kind: KindPackage, Required: check.Required}
	if interpreter == "" {
		result.Status = StatusSkipped
		result.Details = "`" + pythonCommand + "` not found in PATH"
		return result
	}

	out, err := c.run(ctx, interpreter, "-c", packageProbe, check.ImportName, check.Distribution)
	switch {
	case err != nil:
		result.Status = StatusError
		result.Details = c.describeFailure(pythonCommand, err)
	case out.ExitCode == 1:
		result.Status = StatusMissing
		result.Details = "install needed: python3 -m pip install " + check.Distribution
	case out.ExitCode != 0:
		result.Status = StatusError
		result.Details = fmt.Sprintf("exit status %d", out.ExitCode)
		if line := firstLine(out.Stderr, out.Stdout); line != "" {
			result.Details += ": " + line
		}
	default:
		result.Status = StatusFound
		result.Details = check.Distribution
		if version := firstLine(out.Stdout); version != "" {
			result.Details = check.Distribution + " " + version
		}
	}
	return result
}

func (c *Checker) checkEnvPath(check EnvPathCheck) Result {
	result := Result{Label: check.Label, Kind: KindEnvPath, Required: check.Required, Status: StatusMissing}

	value := strings.TrimSpace(c.system.Getenv(check.EnvVar))
	if value == "" {
		result.Details = check.EnvVar + " is not set"
		return result
	}

	root := c.expandHome(value)
	if _, err := c.system.Stat(root); err != nil {
		result.Details = fmt.Sprintf("%s points to missing path: %s", check.EnvVar, root)
		return result
	}
	if check.MustContain != "" {
		if _, err := c.system.Stat(filepath.Join(root, filepath.FromSlash(check.MustContain))); err != nil {
			result.Details = "path exists but missing " + check.MustContain
			return result
		}
	}

	result.Status = StatusFound
	result.Details = root
	return result
}

// listExtensions returns the lower-cased installed extension ids, or nil and
// the reason extension checks are skipped.
func (c *Checker) listExtensions(ctx context.Context) (map[string]struct{}, string) {
	if _, err := c.system.LookPath(editorCommand); err != nil {
		return nil, "`code` CLI not found in PATH"
	}

	out, err := c.run(ctx, editorCommand, "--list-extensions")
	if err != nil {
		return nil, "`code --list-extensions` failed: " + c.describeFailure(editorCommand, err)
	}
	if out.ExitCode != 0 {
		detail := firstLine(out.Stderr, out.Stdout)
		if detail == "" {
			detail = "failed to list extensions"
		}
		return nil, "`code --list-extensions` failed: " + detail
	}

	installed := map[string]struct{}{}
	for _, line := range strings.Split(out.Stdout, "\n") {
		if id := strings.ToLower(strings.TrimSpace(line)); id != "" {
			installed[id] = struct{}{}
		}
	}
	return installed, ""
}

func checkExtension(check ExtensionCheck, installed map[string]struct{}, skipReason string) Result {
	result := Result{Label: check.Label, Kind: KindExtension, Required: check.Required}
	switch {
	case installed == nil:
		result.Status = StatusSkipped
		result.Details = skipReason
	case hasKey(installed, strings.ToLower(check.ExtensionID)):
		result.Status = StatusFound
		result.Details = check.ExtensionID
	default:
		result.Status = StatusMissing
		result.Details = "install extension ID: " + check.ExtensionID
	}
	return result
}

func (c *Checker) run(ctx context.Context, name string, args ...string) (Output, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner.Run(runCtx, name, args...)
}

func (c *Checker) describeFailure(command string, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s timed out after %s", command, c.timeout)
	}
	return fmt.Sprintf("error running %s: %v", command, err)
}

func (c *Checker) expandHome(value string) string {
	if value != "~" && !strings.HasPrefix(value, "~/") {
		return value
	}
	home, err := c.system.HomeDir()
	if err != nil || home == "" {
		return value
	}
	return filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
}

// firstLine returns the first non-blank line of the first stream that has one.
func firstLine(streams ...string) string {
	for _, stream := range streams {
		for _, line := range strings.Split(stream, "\n") {
			if cleaned := strings.TrimSpace(line); cleaned != "" {
				return cleaned
			}
		}
	}
	return ""
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
