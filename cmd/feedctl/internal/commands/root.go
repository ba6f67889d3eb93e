// Package commands implements the feedctl operator CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kalefullycode/roots-tech-news-sub000/cmd/feedctl/internal/output"
	"github.com/Kalefullycode/roots-tech-news-sub000/config"
	"github.com/Kalefullycode/roots-tech-news-sub000/di"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// Options controls how the CLI builds its dependencies. Tests swap Build
// for a container holding fakes.
type Options struct {
	Version    string
	Out        io.Writer
	Err        io.Writer
	LoadConfig func() (*config.Config, error)
	Build      func(ctx context.Context, cfg *config.Config) (*di.ApplicationComponents, error)
}

func DefaultOptions(version string) Options {
	return Options{
		Version:    version,
		Out:        os.Stdout,
		Err:        os.Stderr,
		LoadConfig: config.NewConfig,
		Build:      di.NewApplicationComponents,
	}
}

type app struct {
	opts      Options
	verbose   bool
	noColor   bool
	cfg       *config.Config
	container *di.ApplicationComponents
	printer   *output.Printer
}

func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "feedctl",
		Short: "RootsTechNews feed operations CLI",
		Long: `feedctl runs the feed aggregator from the command line using the same
configuration as the server.

Example usage:
  feedctl feeds                        # List registered feeds
  feedctl aggregate --category ai      # Build the AI view once
  feedctl check https://hnrss.org/frontpage`,
		Version:           opts.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newFeedsCommand(a),
		newAggregateCommand(a),
		newCheckCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := a.opts.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logger.InitLoggerWithOptions(a.opts.Err, level, "text")

	a.printer = output.NewPrinter(a.opts.Out, a.opts.Err, output.ResolveColors(!a.noColor))

	container, err := a.opts.Build(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("building components: %w", err)
	}
	a.container = container
	return nil
}

func (a *app) teardown() error {
	if a.container == nil {
		return nil
	}
	return a.container.Close()
}
