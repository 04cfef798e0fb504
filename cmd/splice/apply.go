package main

import (
	"fmt"

	"github.com/signadot/splice/report"
	"github.com/signadot/splice/runner"
	"github.com/signadot/splice/store"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := parseArgs(cfg.Apply, cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: apply requires at least one plan", cli.ErrUsage)
	}
	style, err := diffStyle(cfg.Diff, cfg.Inline)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	r := runner.New(store.NewFS(), cfg.DryRun)
	for _, arg := range args {
		p, err := cfg.openPlan(arg, cfg.Profile, cfg.Env)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "# %s\n", arg)
		}
		rep, runErr := r.Run(ctx, p)
		if err := cfg.writeReport(cc, rep, report.WithDiff(style), report.Quiet(cfg.Quiet)); err != nil {
			return err
		}
		if runErr != nil {
			return fmt.Errorf("error applying %s: %w", arg, runErr)
		}
	}
	return nil
}
