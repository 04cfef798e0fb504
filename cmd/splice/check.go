package main

import (
	"fmt"

	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/report"
	"github.com/signadot/splice/runner"
	"github.com/signadot/splice/store"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := parseArgs(cfg.Check, cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one plan", cli.ErrUsage)
	}
	style := report.NoDiff
	if cfg.Diff {
		style = report.UnifiedDiff
	}
	ctx, cancel := signalContext()
	defer cancel()

	r := runner.New(store.NewFS(), true)
	n := 0
	for _, arg := range args {
		p, err := cfg.openPlan(arg, cfg.Profile, cfg.Env)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "# %s\n", arg)
		}
		rep, runErr := r.Run(ctx, p)
		if err := cfg.writeReport(cc, rep, report.WithDiff(style), report.Quiet(true)); err != nil {
			return err
		}
		if runErr != nil {
			return fmt.Errorf("error checking %s: %w", arg, runErr)
		}
		n += pending(rep, cfg.Strict)
	}
	if n != 0 {
		fmt.Fprintf(cc.Out, "%d edits pending\n", n)
		return cli.ExitCodeErr(1)
	}
	return nil
}

// pending counts the edits of rep which would still apply, and with
// strict the ones whose marker was not found.
func pending(rep *runner.Report, strict bool) int {
	n := rep.Count(edit.Applied)
	if strict {
		n += rep.Count(edit.SkippedMarkerNotFound)
	}
	return n
}
