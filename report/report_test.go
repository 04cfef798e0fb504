package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/runner"

	"github.com/google/go-cmp/cmp"
)

func testReport() *runner.Report {
	return &runner.Report{
		Plan: "plan.yaml",
		Files: []runner.FileReport{
			{
				Name:    "src/hooks/use-tts.ts",
				Before:  "a\nconst chunks = [];\nb\n",
				After:   "a\nconst chunks: string[] = [];\nb\n",
				Written: true,
				Results: []edit.Result{
					{Edit: "type chunks", Outcome: edit.Applied, Splices: []edit.Splice{{Off: 2, Old: "const chunks = [];", New: "const chunks: string[] = [];"}}},
				},
			},
			{
				Name:   "src/components/tool-select-dropdown.tsx",
				Before: "x",
				After:  "x",
				Results: []edit.Result{
					{Edit: "toolkit icons", Outcome: edit.SkippedAlreadyPresent},
					{Edit: "canvas and slides cases", Outcome: edit.SkippedMarkerNotFound},
				},
			},
			{
				Name:    "src/components/tts-button.tsx",
				Skipped: true,
			},
		},
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "plain",
			want: `src/hooks/use-tts.ts: written
  + type chunks: applied
src/components/tool-select-dropdown.tsx: unchanged
  = toolkit icons: already-present
  ? canvas and slides cases: marker-not-found
src/components/tts-button.tsx: missing, skipped
1 applied, 1 already-present, 1 marker-not-found, 0 condition-false
`,
		},
		{
			name: "quiet_inline",
			opts: []Option{Quiet(true), WithDiff(InlineDiff)},
			want: `src/hooks/use-tts.ts: written
  + type chunks: applied
src/hooks/use-tts.ts:2: const chunks{+: string[]+} = [];
src/components/tool-select-dropdown.tsx: unchanged
  ? canvas and slides cases: marker-not-found
src/components/tts-button.tsx: missing, skipped
1 applied, 1 already-present, 1 marker-not-found, 0 condition-false
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Write(buf, testReport(), tt.opts...); err != nil {
				t.Fatalf("Write() = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Write() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteUnified(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, testReport(), WithDiff(UnifiedDiff)); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"--- a/src/hooks/use-tts.ts",
		"+++ b/src/hooks/use-tts.ts",
		"-const chunks = [];",
		"+const chunks: string[] = [];",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("unified diff lacks %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "b/src/components/tool-select-dropdown.tsx") {
		t.Errorf("diff written for an unchanged file:\n%s", out)
	}
}

func TestWriteStates(t *testing.T) {
	rep := &runner.Report{
		DryRun: true,
		Files: []runner.FileReport{
			{
				Name:    "a.tsx",
				Before:  "",
				After:   `"use client";` + "\n",
				Results: []edit.Result{{Edit: "use client", Outcome: edit.Applied, Fallback: true}},
			},
			{
				Name:    "b.tsx",
				Results: []edit.Result{{Edit: "tts only", Outcome: edit.SkippedCondition}},
			},
		},
	}
	buf := &bytes.Buffer{}
	if err := Write(buf, rep); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	want := `a.tsx: would change
  + use client: applied (fallback)
b.tsx: unchanged
  - tts only: condition-false
1 applied, 0 already-present, 0 marker-not-found, 1 condition-false
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestColors(t *testing.T) {
	if c := ColorsFor(&bytes.Buffer{}, false); c != nil {
		t.Errorf("ColorsFor(buffer) = %v, want nil", c)
	}
	c := ColorsFor(&bytes.Buffer{}, true)
	if c == nil {
		t.Fatalf("ColorsFor(buffer, force) = nil")
	}
	if got := c.Outcome(edit.Applied, "+"); !strings.Contains(got, "\x1b[") || !strings.Contains(got, "+") {
		t.Errorf("Outcome() = %q, want an escape sequence", got)
	}
	if got := c.Outcome(edit.Outcome(42), "x"); got != "x" {
		t.Errorf("Outcome() for unknown outcome = %q", got)
	}
	if got := c.Color(InsertColor, "100%"); !strings.Contains(got, "100%") || strings.Contains(got, "%%") {
		t.Errorf("Color() = %q", got)
	}
	var nc *Colors
	if got := nc.Color(DeleteColor, "x"); got != "x" {
		t.Errorf("nil Colors Color() = %q", got)
	}
}
