package report

import (
	"io"
	"os"
	"strings"

	"github.com/signadot/splice/edit"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type ColorAttr int

const (
	FileColor ColorAttr = iota
	NameColor
	InsertColor
	DeleteColor
	SummaryColor
)

type Colors struct {
	Default  func(string, ...any) string
	Outcomes map[edit.Outcome]func(string, ...any) string
	Attrs    map[ColorAttr]func(string, ...any) string
}

// NewColors returns the report palette. The colors are forced on, so
// callers decide whether to use them at all (see ColorsFor).
func NewColors() *Colors {
	colors := &Colors{
		Default:  colorDefault,
		Outcomes: map[edit.Outcome]func(string, ...any) string{},
		Attrs:    map[ColorAttr]func(string, ...any) string{},
	}
	colors.Outcomes[edit.Applied] = sprintf(color.New(color.FgGreen, color.Bold))
	colors.Outcomes[edit.SkippedAlreadyPresent] = sprintf(color.RGB(96, 96, 96))
	colors.Outcomes[edit.SkippedMarkerNotFound] = sprintf(color.New(color.FgYellow))
	colors.Outcomes[edit.SkippedCondition] = sprintf(color.RGB(74, 92, 138))

	colors.Attrs[FileColor] = sprintf(color.New(color.Bold))
	colors.Attrs[NameColor] = sprintf(color.RGB(128, 168, 196))
	colors.Attrs[InsertColor] = sprintf(color.New(color.FgGreen))
	colors.Attrs[DeleteColor] = sprintf(color.New(color.FgRed))
	colors.Attrs[SummaryColor] = sprintf(color.RGB(196, 168, 128))
	return colors
}

func sprintf(c *color.Color) func(string, ...any) string {
	c.EnableColor()
	f := c.SprintfFunc()
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func colorDefault(v string, _ ...any) string { return v }

// ColorsFor returns NewColors() if force is set or w is a terminal, and
// nil otherwise.
func ColorsFor(w io.Writer, force bool) *Colors {
	if force {
		return NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return NewColors()
	}
	return nil
}

func (c *Colors) Outcome(o edit.Outcome, s string) string {
	if c == nil {
		return s
	}
	f := c.Outcomes[o]
	if f == nil {
		return c.Default(s)
	}
	return f(s)
}

func (c *Colors) Color(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	f := c.Attrs[a]
	if f == nil {
		return c.Default(s)
	}
	return f(s)
}
