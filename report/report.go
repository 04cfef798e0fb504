// Package report renders the results of a run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/runner"

	"github.com/pkg/diff"
	"github.com/pkg/diff/write"
)

type DiffStyle int

const (
	NoDiff DiffStyle = iota
	// UnifiedDiff writes a line based diff per changed file.
	UnifiedDiff
	// InlineDiff writes each changed span in the line it belongs to.
	InlineDiff
)

type options struct {
	colors *Colors
	diff   DiffStyle
	quiet  bool
}

type Option func(*options)

// WithColors colors the report with c. A nil c leaves it plain.
func WithColors(c *Colors) Option {
	return func(o *options) { o.colors = c }
}

func WithDiff(s DiffStyle) Option {
	return func(o *options) { o.diff = s }
}

// Quiet leaves out edits which were already present.
func Quiet(v bool) Option {
	return func(o *options) { o.quiet = v }
}

var glyphs = map[edit.Outcome]string{
	edit.Applied:               "+",
	edit.SkippedAlreadyPresent: "=",
	edit.SkippedMarkerNotFound: "?",
	edit.SkippedCondition:      "-",
}

// Write writes rep to w: a line per file and per edit, diffs if asked for,
// then a summary.
func Write(w io.Writer, rep *runner.Report, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	c := o.colors
	for i := range rep.Files {
		fr := &rep.Files[i]
		if _, err := fmt.Fprintf(w, "%s: %s\n", c.Color(FileColor, fr.Name), fileState(fr, rep.DryRun)); err != nil {
			return err
		}
		for j := range fr.Results {
			res := &fr.Results[j]
			if o.quiet && res.Outcome == edit.SkippedAlreadyPresent {
				continue
			}
			out := res.Outcome.String()
			if res.Fallback {
				out += " (fallback)"
			}
			_, err := fmt.Fprintf(w, "  %s %s: %s\n",
				c.Outcome(res.Outcome, glyphs[res.Outcome]),
				c.Color(NameColor, res.Edit),
				c.Outcome(res.Outcome, out))
			if err != nil {
				return err
			}
		}
		if !fr.Changed() {
			continue
		}
		var err error
		switch o.diff {
		case UnifiedDiff:
			err = writeUnified(w, fr, c != nil)
		case InlineDiff:
			err = writeInline(w, fr.Name, fr.Before, fr.After, c)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, c.Color(SummaryColor, Summary(rep)))
	return err
}

func fileState(fr *runner.FileReport, dryRun bool) string {
	switch {
	case fr.Skipped:
		return "missing, skipped"
	case fr.Written:
		return "written"
	case fr.Changed() && dryRun:
		return "would change"
	case fr.Changed():
		return "changed, not written"
	default:
		return "unchanged"
	}
}

// Summary counts the edits of rep by outcome.
func Summary(rep *runner.Report) string {
	parts := make([]string, 0, len(edit.Outcomes()))
	for _, o := range edit.Outcomes() {
		parts = append(parts, fmt.Sprintf("%d %s", rep.Count(o), o))
	}
	return strings.Join(parts, ", ")
}

func writeUnified(w io.Writer, fr *runner.FileReport, color bool) error {
	var wopts []write.Option
	if color {
		wopts = append(wopts, write.TerminalColor())
	}
	return diff.Text("a/"+fr.Name, "b/"+fr.Name, fr.Before, fr.After, w, wopts...)
}
