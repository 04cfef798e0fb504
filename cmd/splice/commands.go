package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "splice").
		WithSynopsis("splice [opts] command [opts]").
		WithDescription("splice applies guarded, idempotent text edits to source files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return spliceMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			CheckCommand(cfg),
			ListCommand(cfg),
			EditCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set a plan environment value",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
	})
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a").
		WithSynopsis("apply [-n] [-d|-w] [-p profile] [-e path=val]... plan...").
		WithDescription("apply plans and report the outcome of each edit").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set a plan environment value",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
	})
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-strict] [-d] [-p profile] [-e path=val]... plan...").
		WithDescription("check that plans are fully applied, exiting 1 if not").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-profiles] [-p profile] plan...").
		WithDescription("list the files and edits of plans, or their profiles").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func EditCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EditConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "at",
			Description: "anchor marker, repeat to chain markers",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(appendOptTypeFunc(&cfg.At)), "(marker)"),
		},
		&cli.Opt{
			Name:        "unless",
			Description: "skip the edit if this text is present",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(appendOptTypeFunc(&cfg.Unless)), "(text)"),
		},
		&cli.Opt{
			Name:        "requires",
			Description: "skip the edit unless this text is present",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(appendOptTypeFunc(&cfg.Requires)), "(text)"),
		})
	return cli.NewCommandAt(&cfg.Edit, "edit").
		WithAliases("e").
		WithSynopsis("edit -op op [-at marker]... [-until marker] [-old s] [-text s | -f file] [opts] file").
		WithDescription("apply a single guarded edit to a file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return editFile(cfg, cc, args)
		})
}
