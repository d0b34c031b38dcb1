package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Neumenon/tagsum/input"
	"github.com/Neumenon/tagsum/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		sentinel string
		lenient  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-print both sums whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runWatch(ctx, cmd, args[0], sentinel, lenient)
		},
	}

	cmd.Flags().StringVarP(&sentinel, "sentinel", "s", "", "Sentinel word (default from config)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Skip characters outside the scanner grammar")
	return cmd
}

func (a *app) runWatch(ctx context.Context, cmd *cobra.Command, path, sentinel string, lenient bool) error {
	ev, err := a.evaluator(sentinel, lenient)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	return watch.New(path, a.logger).Run(ctx, func(p string) error {
		text, err := input.LoadText(p)
		if err != nil {
			// The file may be mid-replace; the next event retries.
			a.logger.Warn("read failed", zap.String("path", p), zap.Error(err))
			return nil
		}
		res, err := ev.Both(text)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return nil
		}
		fmt.Fprintf(out, "all=%d excluding=%d\n", res.All, res.Excluding)
		return nil
	})
}
