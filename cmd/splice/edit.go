package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/plan"
	"github.com/signadot/splice/report"
	"github.com/signadot/splice/runner"
	"github.com/signadot/splice/store"

	"github.com/scott-cotton/cli"
)

func editFile(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := parseArgs(cfg.Edit, cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: edit requires exactly one file", cli.ErrUsage)
	}
	e, err := cfg.buildEdit(cc.In)
	if err != nil {
		return err
	}
	root := "."
	if cfg.Dir != "" {
		root = cfg.Dir
	}
	p, err := plan.Single(root, args[0], e)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	style := report.NoDiff
	if cfg.Diff {
		style = report.UnifiedDiff
	}
	ctx, cancel := signalContext()
	defer cancel()

	rep, runErr := runner.New(store.NewFS(), cfg.DryRun).Run(ctx, p)
	if err := cfg.writeReport(cc, rep, report.WithDiff(style)); err != nil {
		return err
	}
	return runErr
}

func (cfg *EditConfig) buildEdit(in io.Reader) (*edit.Edit, error) {
	op, err := edit.ParseOp(cfg.Op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	text := cfg.Text
	if cfg.TextFile != "" {
		if cfg.Text != "" {
			return nil, fmt.Errorf("%w: cannot use -text and -f together", cli.ErrUsage)
		}
		var d []byte
		if cfg.TextFile == "-" {
			d, err = io.ReadAll(in)
		} else {
			d, err = os.ReadFile(cfg.TextFile)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read text: %w", err)
		}
		text = string(d)
	}
	return &edit.Edit{
		Name:     cfg.Name,
		Op:       op,
		At:       cfg.At,
		Last:     cfg.Last,
		Until:    cfg.Until,
		Text:     text,
		Old:      cfg.Old,
		Count:    cfg.Count,
		Line:     cfg.Line,
		Unless:   cfg.Unless,
		Requires: cfg.Requires,
		Fallback: edit.Op(cfg.Fallback),
	}, nil
}
