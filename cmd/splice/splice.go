package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/signadot/splice/plan"
	"github.com/signadot/splice/report"
	"github.com/signadot/splice/runner"

	"github.com/scott-cotton/cli"
)

// exitUsage is the exit code for bad invocations, distinct from the 1 of
// failed runs and of check finding pending edits.
const exitUsage = 2

func spliceMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := parseArgs(cfg.Main, cc, args)
	if err != nil {
		return usage(cc, cfg.Main, err)
	}
	if len(args) == 0 {
		return usage(cc, cfg.Main, fmt.Errorf("%w: %w", cli.ErrUsage, cli.ErrNoCommandProvided))
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return usage(cc, cfg.Main, fmt.Errorf("%w: %w: %q not found", cli.ErrUsage, cli.ErrNoSuchCommand, args[0]))
	}
	err = sub.Run(cc, args[1:])
	if exitCode(err) == exitUsage {
		return usage(cc, sub, err)
	}
	return err
}

func usage(cc *cli.Context, cmd *cli.Command, err error) error {
	cmd.Usage(cc, err)
	os.Exit(exitCode(err))
	return err
}

// exitCode maps the error of a command to the process exit code.
func exitCode(err error) int {
	var xc cli.ExitCodeErr
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrUsage),
		errors.Is(err, cli.ErrNoSuchCommand),
		errors.Is(err, cli.ErrNoCommandProvided):
		return exitUsage
	case errors.As(err, &xc):
		return int(xc)
	}
	return 1
}

// parseArgs parses the options of cmd, marking failures as usage errors.
func parseArgs(cmd *cli.Command, cc *cli.Context, args []string) ([]string, error) {
	args, err := cmd.Parse(cc, args)
	if err != nil && !errors.Is(err, cli.ErrUsage) {
		err = fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return args, err
}

// signalContext is canceled on interrupt, which stops a run between files.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func (cfg *MainConfig) openPlan(path, profile string, env map[string]any) (*plan.Plan, error) {
	opts := []plan.Option{plan.WithEnv(env)}
	if cfg.Dir != "" {
		opts = append(opts, plan.WithRoot(cfg.Dir))
	}
	if profile != "" {
		opts = append(opts, plan.WithProfile(profile))
	}
	return plan.Open(path, opts...)
}

func (cfg *MainConfig) writeReport(cc *cli.Context, rep *runner.Report, opts ...report.Option) error {
	opts = append([]report.Option{report.WithColors(report.ColorsFor(cc.Out, cfg.Color))}, opts...)
	return report.Write(cc.Out, rep, opts...)
}

func diffStyle(unified, inline bool) (report.DiffStyle, error) {
	switch {
	case unified && inline:
		return report.NoDiff, fmt.Errorf("%w: cannot use -d and -w together", cli.ErrUsage)
	case unified:
		return report.UnifiedDiff, nil
	case inline:
		return report.InlineDiff, nil
	}
	return report.NoDiff, nil
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := plan.SetEnv(env, a); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return 0, nil
	}
}

func appendOptTypeFunc(dst *[]string) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if a == "" {
			return nil, fmt.Errorf("%w: empty argument", cli.ErrUsage)
		}
		*dst = append(*dst, a)
		return 0, nil
	}
}
