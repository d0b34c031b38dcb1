package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/tagsum/input"
	"github.com/Neumenon/tagsum/tagsum"
)

type sumFlags struct {
	mode     string
	sentinel string
	lenient  bool
	json     bool
}

func newSumCmd(a *app) *cobra.Command {
	var f sumFlags

	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print the sum of every number, with and without sentinel objects",
		Long: `Sums the integers of each input.

Modes:
  all        every number counts
  excluding  objects holding the sentinel as a direct entry count as zero
  both       print both sums (default)

Files are evaluated concurrently; results are printed in argument order.
Use "-" or no argument for stdin.`,
		Example: `  echo '[1,{"c":"red","b":2},3]' | tagsum sum
  # Output: all=6 excluding=4

  tagsum sum --mode excluding --sentinel blue data/*.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSum(cmd.OutOrStdout(), f, args)
		},
	}

	cmd.Flags().StringVarP(&f.mode, "mode", "m", "both", "Aggregation mode: all, excluding, both")
	cmd.Flags().StringVarP(&f.sentinel, "sentinel", "s", "", "Sentinel word (default from config)")
	cmd.Flags().BoolVar(&f.lenient, "lenient", false, "Skip characters outside the scanner grammar")
	cmd.Flags().BoolVar(&f.json, "json", false, "Decode input as full JSON instead of scanning it")
	return cmd
}

func (a *app) runSum(w io.Writer, f sumFlags, args []string) error {
	var mode tagsum.Mode
	both := f.mode == "both"
	if !both {
		m, err := tagsum.ParseMode(f.mode)
		if err != nil {
			return err
		}
		mode = m
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	if err := checkSingleStdin(args); err != nil {
		return err
	}

	ev, err := a.evaluator(f.sentinel, f.lenient)
	if err != nil {
		return err
	}
	results := make([]tagsum.Result, len(args))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			res, err := a.sumFile(ev, path, f.json, both, mode)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		prefix := ""
		if len(args) > 1 {
			prefix = args[i] + ": "
		}
		switch {
		case both:
			fmt.Fprintf(w, "%sall=%d excluding=%d\n", prefix, res.All, res.Excluding)
		case mode == tagsum.ModeAll:
			fmt.Fprintf(w, "%s%d\n", prefix, res.All)
		default:
			fmt.Fprintf(w, "%s%d\n", prefix, res.Excluding)
		}
	}
	return nil
}

// checkSingleStdin rejects more than one "-" argument; stdin can only be read once.
func checkSingleStdin(args []string) error {
	n := 0
	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("stdin (-) given %d times; it can only be read once", n)
	}
	return nil
}

// sumFile loads one input and computes the requested sums. Only the fields
// for the requested modes are set; the unconditional sum alone never checks
// container balance.
func (a *app) sumFile(ev *tagsum.Evaluator, path string, asJSON, both bool, mode tagsum.Mode) (tagsum.Result, error) {
	text, err := input.LoadText(path)
	if err != nil {
		return tagsum.Result{}, err
	}
	a.logger.Debug("loaded input",
		zap.String("path", path),
		zap.Int("bytes", len(text)),
		zap.String("digest", input.ShortDigest(text)))

	if !asJSON {
		if both {
			return ev.Both(text)
		}
		n, err := ev.EvaluateScanner(ev.Scanner(text), mode)
		if err != nil {
			return tagsum.Result{}, err
		}
		if mode == tagsum.ModeAll {
			return tagsum.Result{All: n}, nil
		}
		return tagsum.Result{Excluding: n}, nil
	}

	var res tagsum.Result
	opts := tagsum.Options{Sentinel: ev.Sentinel()}
	if both || mode == tagsum.ModeAll {
		opts.Mode = tagsum.ModeAll
		if res.All, err = tagsum.SumJSON([]byte(text), opts); err != nil {
			return tagsum.Result{}, err
		}
	}
	if both || mode == tagsum.ModeExcluding {
		opts.Mode = tagsum.ModeExcluding
		if res.Excluding, err = tagsum.SumJSON([]byte(text), opts); err != nil {
			return tagsum.Result{}, err
		}
	}
	return res, nil
}
