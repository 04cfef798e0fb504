package report

import (
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// writeInline writes one line per run of changes, located by its line in
// from and shown within the surrounding line. Without colors, deletions
// are written as [-x-] and insertions as {+x+}.
func writeInline(w io.Writer, name, from, to string, c *Colors) error {
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffCleanupSemantic(diffCfg.DiffMain(from, to, false))
	line := 1
	for i := 0; i < len(diffs); {
		if diffs[i].Type == diffpatch.DiffEqual {
			line += strings.Count(diffs[i].Text, "\n")
			i++
			continue
		}
		start := line
		prefix := ""
		if i > 0 {
			eq := diffs[i-1].Text
			prefix = eq[strings.LastIndexByte(eq, '\n')+1:]
		}
		b := &strings.Builder{}
		for ; i < len(diffs) && diffs[i].Type != diffpatch.DiffEqual; i++ {
			d := &diffs[i]
			switch d.Type {
			case diffpatch.DiffDelete:
				b.WriteString(mark(c, DeleteColor, "[-", d.Text, "-]"))
				line += strings.Count(d.Text, "\n")
			case diffpatch.DiffInsert:
				b.WriteString(mark(c, InsertColor, "{+", d.Text, "+}"))
			}
		}
		suffix := ""
		if i < len(diffs) {
			eq := diffs[i].Text
			if j := strings.IndexByte(eq, '\n'); j >= 0 {
				eq = eq[:j]
			}
			suffix = eq
		}
		if _, err := fmt.Fprintf(w, "%s:%d: %s%s%s\n", name, start, prefix, b, suffix); err != nil {
			return err
		}
	}
	return nil
}

func mark(c *Colors, a ColorAttr, open, s, end string) string {
	if c == nil {
		return open + s + end
	}
	return c.Color(a, s)
}
