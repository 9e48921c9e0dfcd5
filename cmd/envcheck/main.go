package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-coursesite"
	envcheckcmd "github.com/goliatone/go-coursesite/internal/commands/envcheck"
	"github.com/goliatone/go-coursesite/internal/envcheck"
)

var Version = "dev"

type checksHandler interface {
	Execute(ctx context.Context, msg envcheckcmd.RunChecksCommand) error
}

type moduleResources struct {
	checks checksHandler
}

var moduleBuilder = buildModule

func buildModule(cfg coursesite.Config) (*moduleResources, error) {
	module, err := coursesite.New(cfg)
	if err != nil {
		return nil, err
	}
	return &moduleResources{checks: module.RunChecksHandler()}, nil
}

type checkFlags struct {
	configPath string
	strict     bool
	strictAll  bool
	timeout    time.Duration
	heading    string
	logLevel   string
}

// exitError carries a non-zero exit status that is not a failure of the tool itself.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	var exit exitError
	switch {
	case err == nil:
	case errors.As(err, &exit):
		os.Exit(exit.code)
	default:
		fmt.Fprintf(os.Stderr, "envcheck: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, stdout io.Writer) error {
	cmd := newRootCommand(stdout)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "envcheck",
		Short: "Check the Raspberry Pi Pico toolchain",
		Long: `Check the Raspberry Pi Pico toolchain.

Looks for the required build tools, the Python packages used by the lessons,
the PICO_SDK_PATH checkout and the recommended VS Code extensions, then prints
a status table.

Exit status is 1 when --strict is set and a required check is not FOUND, or
when --strict-all is set and any required or recommended check is MISSING or
ERROR.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runChecks(cmd.Context(), cfg, flags.heading, stdout)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit 1 when a required check is not found")
	cmd.Flags().BoolVar(&flags.strictAll, "strict-all", false, "exit 1 when any required or recommended check is missing")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", envcheck.DefaultTimeout, "timeout for each probed command")
	cmd.Flags().StringVar(&flags.heading, "heading", envcheck.DefaultHeading, "report heading")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	return cmd
}

func resolveConfig(cmd *cobra.Command, flags *checkFlags) (coursesite.Config, error) {
	cfg := coursesite.DefaultConfig()
	if path := strings.TrimSpace(flags.configPath); path != "" {
		loaded, err := coursesite.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("strict") {
		cfg.Checker.Strict = flags.strict
	}
	if changed("strict-all") {
		cfg.Checker.StrictAll = flags.strictAll
	}
	if changed("timeout") {
		cfg.Checker.Timeout = flags.timeout
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	return cfg, nil
}

func runChecks(ctx context.Context, cfg coursesite.Config, heading string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resources, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.checks == nil {
		return errors.New("check handler not configured")
	}

	var envelope envcheckcmd.ResultEnvelope
	msg := envcheckcmd.RunChecksCommand{
		Strict:    cfg.Checker.Strict,
		StrictAll: cfg.Checker.StrictAll,
		Heading:   heading,
		ResultCallback: func(env envcheckcmd.ResultEnvelope) {
			envelope = env
		},
	}
	if err := resources.checks.Execute(ctx, msg); err != nil {
		return fmt.Errorf("run checks: %w", err)
	}
	if envelope.Report == nil {
		return errors.New("check handler returned no report")
	}

	if err := envcheck.WriteReport(stdout, envelope.Heading, envelope.Report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if envelope.ExitCode != 0 {
		return exitError{code: envelope.ExitCode}
	}
	return nil
}
