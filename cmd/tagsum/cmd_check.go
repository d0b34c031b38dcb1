package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/tagsum/input"
	"github.com/Neumenon/tagsum/internal/config"
	"github.com/Neumenon/tagsum/tagsum"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configured inputs against their expected sums",
		Long: `Runs every entry of the "checks" list in the configuration file and
compares the computed sums with expect_all and expect_excluding.

Example tagsum.yaml:

  sentinel: red
  checks:
    - name: day12
      file: data/day12.txt
      expect_all: 119433
      expect_excluding: 68466`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.OutOrStdout())
		},
	}
}

type checkOutcome struct {
	result   tagsum.Result
	digest   string
	err      error
	failures []string
}

func (a *app) runCheck(w io.Writer) error {
	checks := a.cfg.Checks
	if len(checks) == 0 {
		return fmt.Errorf("no checks configured in %s", a.cfgPath)
	}

	outcomes := make([]checkOutcome, len(checks))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, chk := range checks {
		i, chk := i, chk
		g.Go(func() error {
			outcomes[i] = a.runOneCheck(chk)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, chk := range checks {
		o := outcomes[i]
		switch {
		case o.err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", chk.Name, o.err)
		case len(o.failures) > 0:
			failed++
			for _, msg := range o.failures {
				fmt.Fprintf(w, "FAIL %s: %s\n", chk.Name, msg)
			}
		default:
			fmt.Fprintf(w, "ok   %s all=%d excluding=%d (%s)\n", chk.Name, o.result.All, o.result.Excluding, o.digest)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func (a *app) runOneCheck(chk config.Check) checkOutcome {
	text, err := input.LoadText(chk.File)
	if err != nil {
		return checkOutcome{err: err}
	}

	ev, err := a.evaluator(a.cfg.SentinelFor(chk), false)
	if err != nil {
		return checkOutcome{err: err}
	}
	res, err := ev.Both(text)
	if err != nil {
		return checkOutcome{err: err}
	}

	o := checkOutcome{result: res, digest: input.ShortDigest(text)}
	if chk.ExpectAll != nil && *chk.ExpectAll != res.All {
		o.failures = append(o.failures, fmt.Sprintf("all: got %d, want %d", res.All, *chk.ExpectAll))
	}
	if chk.ExpectExcluding != nil && *chk.ExpectExcluding != res.Excluding {
		o.failures = append(o.failures, fmt.Sprintf("excluding: got %d, want %d", res.Excluding, *chk.ExpectExcluding))
	}

	a.logger.Debug("check finished",
		zap.String("name", chk.Name),
		zap.String("digest", o.digest),
		zap.Int64("all", res.All),
		zap.Int64("excluding", res.Excluding),
		zap.Int("failures", len(o.failures)))
	return o
}
