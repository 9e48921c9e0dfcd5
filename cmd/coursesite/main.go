package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-coursesite"
	sitecmd "github.com/goliatone/go-coursesite/internal/commands/site"
)

var Version = "dev"

type buildHandler interface {
	Execute(ctx context.Context, msg sitecmd.BuildSiteCommand) error
}

type moduleResources struct {
	build buildHandler
}

var moduleBuilder = buildModule

func buildModule(cfg coursesite.Config) (*moduleResources, error) {
	module, err := coursesite.New(cfg)
	if err != nil {
		return nil, err
	}
	return &moduleResources{build: module.BuildSiteHandler()}, nil
}

type buildFlags struct {
	configPath string
	lessonsDir string
	outputDir  string
	title      string
	lessons    []string
	dryRun     bool
	manifest   bool
	noClean    bool
	logLevel   string
	logFormat  string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "coursesite: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cmd := newRootCommand(stdout)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "coursesite",
		Short: "Generate the static course site from lesson folders",
		Long: `Generate the static course site from lesson folders.

Every lessons/L<id>-<name>/ directory with both overview.md and assessment.md
becomes lessons/<name>.html under the output directory, alongside index.html,
syllabus.html and style.css.

Examples:
  coursesite
  coursesite --lessons course/lessons --out public
  coursesite --lesson L01-blink --dry-run`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runBuild(cmd.Context(), cfg, flags.lessons, stdout)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&flags.lessonsDir, "lessons", "lessons", "lessons directory")
	cmd.Flags().StringVar(&flags.outputDir, "out", "site", "output directory")
	cmd.Flags().StringVar(&flags.title, "title", "", "index page title")
	cmd.Flags().StringArrayVar(&flags.lessons, "lesson", nil, "only build the named lesson (repeatable)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "render pages without writing them")
	cmd.Flags().BoolVar(&flags.manifest, "manifest", false, "write manifest.json next to the pages")
	cmd.Flags().BoolVar(&flags.noClean, "no-clean", false, "keep existing files in the output directory")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "go-logger format (console, json, pretty); selects the go-logger provider")

	return cmd
}

// resolveConfig loads the optional config file and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, flags *buildFlags) (coursesite.Config, error) {
	cfg := coursesite.DefaultConfig()
	if path := strings.TrimSpace(flags.configPath); path != "" {
		loaded, err := coursesite.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("lessons") {
		cfg.Site.LessonsDir = flags.lessonsDir
	}
	if changed("out") {
		cfg.Site.OutputDir = flags.outputDir
	}
	if changed("title") {
		cfg.Site.Title = flags.title
	}
	if changed("dry-run") {
		cfg.Site.DryRun = flags.dryRun
	}
	if changed("manifest") {
		cfg.Site.WriteManifest = flags.manifest
	}
	if changed("no-clean") {
		cfg.Site.CleanBuild = !flags.noClean
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = flags.logFormat
	}
	return cfg, nil
}

func runBuild(ctx context.Context, cfg coursesite.Config, lessons []string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resources, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.build == nil {
		return errors.New("build handler not configured")
	}

	var summary string
	msg := sitecmd.BuildSiteCommand{
		Lessons: lessons,
		DryRun:  cfg.Site.DryRun,
		ResultCallback: func(env sitecmd.ResultEnvelope) {
			summary = env.Result.Summary()
		},
	}
	if err := resources.build.Execute(ctx, msg); err != nil {
		return fmt.Errorf("build site: %w", err)
	}

	if cfg.Site.DryRun {
		summary += " (dry run)"
	}
	fmt.Fprintln(stdout, summary)
	return nil
}
