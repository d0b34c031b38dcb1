// tagsum - sum the integers of a nested document, skipping tagged objects
//
// Usage:
//
//	tagsum sum [--mode all|excluding|both] [--sentinel w] [file...]
//	tagsum tokens [file]
//	tagsum check [--config tagsum.yaml]
//	tagsum watch <file>
//	tagsum version
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Neumenon/tagsum/internal/config"
	"github.com/Neumenon/tagsum/tagsum"
)

const version = "0.1.0"

// app carries state shared by every subcommand.
type app struct {
	verbose bool
	cfgPath string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "tagsum",
		Short: "Sum the numbers of a nested document, skipping sentinel-tagged objects",
		Long: `tagsum scans a compact JSON-like document of objects, arrays, integers and
lowercase words and prints the sum of its integers.

In "excluding" mode any object holding the sentinel word (default "red") as a
direct entry contributes nothing, together with everything nested inside it.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.DefaultPath, "Path to configuration file")

	root.AddCommand(
		newSumCmd(a),
		newTokensCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.cfgPath, err)
	}
	a.cfg = cfg

	logger, err := buildLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func buildLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = lc.Format

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if lc.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

// evaluator builds a tagsum.Evaluator from config, letting flags win. A
// sentinel flag is held to the same rules as the configured one.
func (a *app) evaluator(sentinel string, lenient bool) (*tagsum.Evaluator, error) {
	if sentinel == "" {
		sentinel = a.cfg.Sentinel
	} else if err := config.ValidateWord(sentinel); err != nil {
		return nil, fmt.Errorf("--sentinel: %w", err)
	}
	return tagsum.NewEvaluator(tagsum.Options{
		Sentinel: sentinel,
		Lenient:  lenient || !a.cfg.Strict,
		Logger:   a.logger,
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tagsum %s\n", version)
			return nil
		},
	}
}
