// Package runner applies plans to the documents they name.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/plan"
	"github.com/signadot/splice/store"
)

// ErrExpectation is returned when a file lacks one of its expected strings
// after its edits ran.
var ErrExpectation = errors.New("expectation not met")

type Runner struct {
	store  store.Store
	dryRun bool
}

// New returns a Runner over s. A dry run keeps all writes in memory, so
// successive runs observe one another without touching s.
func New(s store.Store, dryRun bool) *Runner {
	if dryRun {
		s = store.NewOverlay(s)
	}
	return &Runner{store: s, dryRun: dryRun}
}

type FileReport struct {
	// Name is the path as written in the plan, Path its resolved location.
	Name string
	Path string
	// Skipped is set for optional files which do not exist.
	Skipped bool
	Before  string
	After   string
	Results []edit.Result
	Written bool
}

func (f *FileReport) Changed() bool {
	return f.Before != f.After
}

type Report struct {
	Plan   string
	DryRun bool
	Files  []FileReport
}

// Count returns the number of edits with outcome o.
func (r *Report) Count(o edit.Outcome) int {
	n := 0
	for i := range r.Files {
		for j := range r.Files[i].Results {
			if r.Files[i].Results[j].Outcome == o {
				n++
			}
		}
	}
	return n
}

// Run applies p file by file. Each file is read once, edited in memory and
// written once if it changed. The first error aborts the run; the report
// covers the files processed up to and including the failing one.
func (r *Runner) Run(ctx context.Context, p *plan.Plan) (*Report, error) {
	rep := &Report{Plan: p.Path, DryRun: r.dryRun}
	for i := range p.Files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		fr, err := r.runFile(ctx, p, &p.Files[i])
		rep.Files = append(rep.Files, *fr)
		if err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (r *Runner) runFile(ctx context.Context, p *plan.Plan, f *plan.File) (*FileReport, error) {
	path := p.Resolve(f.Path)
	fr := &FileReport{Name: f.Path, Path: path}
	if f.Optional {
		ok, err := r.store.Exists(ctx, path)
		if err != nil {
			return fr, err
		}
		if !ok {
			if debug.Run() {
				debug.Logf("skipping missing optional file %s\n", path)
			}
			fr.Skipped = true
			return fr, nil
		}
	}
	doc, err := r.store.Load(ctx, path)
	if err != nil {
		return fr, err
	}
	fr.Before = doc
	for j := range f.Edits {
		spec := &f.Edits[j]
		e := spec.Edit()
		ok, err := spec.Enabled(p.Env, doc, f.Path)
		if err != nil {
			return fr, fmt.Errorf("%s: edit %d (%s): %w", path, j, e, err)
		}
		if !ok {
			fr.Results = append(fr.Results, edit.Result{Edit: e.String(), Outcome: edit.SkippedCondition})
			continue
		}
		out, res := edit.Apply(doc, e)
		if err := edit.Verify(doc, out, res.Splices); err != nil {
			return fr, fmt.Errorf("%s: edit %d (%s): %w", path, j, e, err)
		}
		if debug.Run() {
			debug.Logf("%s: %s\n", path, &res)
		}
		doc = out
		fr.Results = append(fr.Results, res)
	}
	fr.After = doc
	for _, s := range f.Expect {
		if !strings.Contains(doc, s) {
			return fr, fmt.Errorf("%w: %s: %q missing after edits", ErrExpectation, path, s)
		}
	}
	if !fr.Changed() {
		return fr, nil
	}
	if err := r.store.Save(ctx, path, doc); err != nil {
		return fr, err
	}
	fr.Written = !r.dryRun
	return fr, nil
}
