package runner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/splice/edit"
	"github.com/signadot/splice/plan"
	"github.com/signadot/splice/store"

	"github.com/google/go-cmp/cmp"
)

const ttsPlan = "testdata/tts/plan.yaml"

var ttsFiles = []string{
	"src/components/chat-preferences-content.tsx",
	"src/components/chat-preferences-popup.tsx",
	"src/components/message-parts.tsx",
	"src/components/tool-select-dropdown.tsx",
	"src/hooks/use-tts.ts",
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

// copySrc copies the fixture sources to a fresh directory and returns it.
func copySrc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range ttsFiles {
		dst := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte(readFile(t, filepath.Join("testdata/tts", f))), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func memSrc(t *testing.T, root string) *store.Memory {
	t.Helper()
	docs := map[string]string{}
	for _, f := range ttsFiles {
		docs[filepath.Join(root, f)] = readFile(t, filepath.Join("testdata/tts", f))
	}
	return store.NewMemory(docs)
}

func TestRunTTSPlan(t *testing.T) {
	ctx := context.Background()
	dir := copySrc(t)
	p, err := plan.Open(ttsPlan, plan.WithRoot(dir))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	r := New(store.NewFS(), false)
	rep, err := r.Run(ctx, p)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	for _, f := range ttsFiles {
		want := readFile(t, filepath.Join("testdata/tts/want", f))
		got := readFile(t, filepath.Join(dir, f))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}
	if len(rep.Files) != len(ttsFiles)+1 {
		t.Fatalf("got %d file reports", len(rep.Files))
	}
	for _, fr := range rep.Files[:len(ttsFiles)] {
		if !fr.Written || !fr.Changed() {
			t.Errorf("%s: written=%t changed=%t", fr.Path, fr.Written, fr.Changed())
		}
	}
	if last := rep.Files[len(ttsFiles)]; !last.Skipped || last.Written {
		t.Errorf("optional missing file: skipped=%t written=%t", last.Skipped, last.Written)
	}
	if got, want := rep.Count(edit.Applied), p.Edits()-1; got != want {
		t.Errorf("applied %d edits, want %d", got, want)
	}

	// a second run finds every edit in place
	rep, err = r.Run(ctx, p)
	if err != nil {
		t.Fatalf("second Run() = %v", err)
	}
	if n := rep.Count(edit.Applied); n != 0 {
		t.Errorf("second run applied %d edits", n)
	}
	if n := rep.Count(edit.SkippedAlreadyPresent); n != p.Edits()-1 {
		t.Errorf("second run: %d already present, want %d", n, p.Edits()-1)
	}
	for _, fr := range rep.Files {
		if fr.Written {
			t.Errorf("second run wrote %s", fr.Path)
		}
	}
}

func TestRunDryRun(t *testing.T) {
	ctx := context.Background()
	root := "/work"
	mem := memSrc(t, root)
	p, err := plan.Open(ttsPlan, plan.WithRoot(root))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	r := New(mem, true)
	rep, err := r.Run(ctx, p)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !rep.DryRun {
		t.Errorf("report not marked dry run")
	}
	for i, f := range ttsFiles {
		path := filepath.Join(root, f)
		if n := mem.Writes(path); n != 0 {
			t.Errorf("%s written %d times in dry run", f, n)
		}
		fr := rep.Files[i]
		if fr.Written {
			t.Errorf("%s reported written in dry run", f)
		}
		want := readFile(t, filepath.Join("testdata/tts/want", f))
		if diff := cmp.Diff(want, fr.After); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}

	// the dry run sees its own earlier results
	rep, err = r.Run(ctx, p)
	if err != nil {
		t.Fatalf("second Run() = %v", err)
	}
	if n := rep.Count(edit.Applied); n != 0 {
		t.Errorf("second dry run applied %d edits", n)
	}
}

func TestRunExpectationAborts(t *testing.T) {
	ctx := context.Background()
	root := "/work"
	mem := memSrc(t, root)
	p, err := plan.Open(ttsPlan, plan.WithRoot(root), plan.WithProfile("no-tts"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	rep, err := New(mem, false).Run(ctx, p)
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("Run() = %v, want ErrExpectation", err)
	}
	useTTS := filepath.Join(root, "src/hooks/use-tts.ts")
	if n := mem.Writes(useTTS); n != 0 {
		t.Errorf("use-tts.ts written %d times", n)
	}
	if n := mem.Writes(filepath.Join(root, ttsFiles[0])); n != 1 {
		t.Errorf("%s written %d times, want 1", ttsFiles[0], n)
	}
	last := rep.Files[len(rep.Files)-1]
	if last.Path != useTTS {
		t.Fatalf("last report is for %s", last.Path)
	}
	if diff := cmp.Diff([]edit.Result{{Edit: "type chunks", Outcome: edit.SkippedCondition}}, last.Results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if len(rep.Files) != len(ttsFiles) {
		t.Errorf("run continued past the failing file: %d reports", len(rep.Files))
	}
}

func TestRunMissingFileAborts(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(map[string]string{"/w/b.ts": "const t = z();\n"})
	p, err := plan.Decode([]byte(`
files:
- path: a.ts
  edits:
  - op: append
    text: x
- path: b.ts
  edits:
  - op: delete
    old: const t = z();
`), plan.WithRoot("/w"))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	rep, err := New(mem, false).Run(ctx, p)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Run() = %v, want fs.ErrNotExist", err)
	}
	if len(rep.Files) != 1 {
		t.Errorf("got %d file reports, want 1", len(rep.Files))
	}
	if n := mem.Writes("/w/b.ts"); n != 0 {
		t.Errorf("b.ts written %d times after abort", n)
	}
}

func TestRunMarkerMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	const doc = "switch (toolkit) {\n  case AppDefaultToolkit.Code:\n    break;\n}\n"
	mem := store.NewMemory(map[string]string{"/w/dropdown.tsx": doc})
	p, err := plan.Decode([]byte(`
files:
- path: dropdown.tsx
  edits:
  - name: canvas case
    op: insert-after
    at: "case Visualization:"
    text: "\n  case Canvas:"
`), plan.WithRoot("/w"))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	rep, err := New(mem, false).Run(ctx, p)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := rep.Files[0].Results[0].Outcome; got != edit.SkippedMarkerNotFound {
		t.Errorf("outcome = %s", got)
	}
	if mem.Writes("/w/dropdown.tsx") != 0 {
		t.Errorf("unchanged file written")
	}
	if d, _ := mem.Load(ctx, "/w/dropdown.tsx"); d != doc {
		t.Errorf("document changed: %q", d)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mem := store.NewMemory(map[string]string{"/w/a": ""})
	p, err := plan.Decode([]byte("files:\n- path: a\n  edits:\n  - op: append\n    text: x\n"), plan.WithRoot("/w"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(mem, false).Run(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if mem.Writes("/w/a") != 0 {
		t.Errorf("canceled run wrote")
	}
}
