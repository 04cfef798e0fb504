package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/signadot/splice/plan"

	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := parseArgs(cfg.List, cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires at least one plan", cli.ErrUsage)
	}
	if cfg.Profiles && cfg.Profile != "" {
		return fmt.Errorf("%w: cannot use -profiles and -p together", cli.ErrUsage)
	}
	for _, arg := range args {
		if cfg.Profiles {
			profiles, err := plan.Profiles(filepath.Dir(arg))
			if err != nil {
				return fmt.Errorf("error getting profiles: %w", err)
			}
			for _, profile := range profiles {
				fmt.Fprintln(cc.Out, profile)
			}
			continue
		}
		p, err := cfg.openPlan(arg, cfg.Profile, nil)
		if err != nil {
			return err
		}
		if err := listPlan(cc.Out, p); err != nil {
			return err
		}
	}
	return nil
}

func listPlan(w io.Writer, p *plan.Plan) error {
	if p.Description != "" {
		fmt.Fprintf(w, "# %s\n", p.Description)
	}
	for i := range p.Files {
		f := &p.Files[i]
		var attrs []string
		if f.Optional {
			attrs = append(attrs, "optional")
		}
		if len(f.Expect) != 0 {
			attrs = append(attrs, fmt.Sprintf("%d expected", len(f.Expect)))
		}
		line := f.Path
		if len(attrs) != 0 {
			line += " (" + strings.Join(attrs, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for j := range f.Edits {
			s := &f.Edits[j]
			line := "  " + s.String()
			if s.Name != "" {
				line = fmt.Sprintf("  %-13s %s", s.Op, s.Name)
			}
			if s.If != "" {
				line += " if " + s.If
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
