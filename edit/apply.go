package edit

import (
	"strings"

	"github.com/signadot/splice/debug"
)

// Apply applies e to doc. The returned document equals doc unless the
// result's outcome is Applied.
func Apply(doc string, e *Edit) (string, Result) {
	res := Result{Edit: e.String()}
	out, res := apply(doc, e, res)
	if debug.Edit() {
		debug.Logf("edit %s: %s, %d splices\n", res.Edit, res.Outcome, len(res.Splices))
	}
	return out, res
}

// ApplyAll applies edits in order, each to the output of the previous one.
func ApplyAll(doc string, edits []*Edit) (string, []Result) {
	res := make([]Result, 0, len(edits))
	for _, e := range edits {
		var r Result
		doc, r = Apply(doc, e)
		res = append(res, r)
	}
	return doc, res
}

func apply(doc string, e *Edit, res Result) (string, Result) {
	if containsAny(doc, e.Unless) {
		res.Outcome = SkippedAlreadyPresent
		return doc, res
	}
	if !containsAll(doc, e.Requires) {
		res.Outcome = SkippedMarkerNotFound
		return doc, res
	}
	if e.Op.inserts() {
		return insert(doc, e, res)
	}
	return replace(doc, e, res)
}

func insert(doc string, e *Edit, res Result) (string, Result) {
	if len(e.Unless) == 0 && strings.Contains(doc, e.Text) {
		res.Outcome = SkippedAlreadyPresent
		return doc, res
	}
	op := e.Op
	off := 0
	switch op {
	case Append:
		off = len(doc)
	case Prepend:
	default:
		start, end, ok := e.anchor().Find(doc)
		switch {
		case ok && op == InsertAfter:
			off = end
		case ok:
			off = start
		case e.Fallback == "":
			res.Outcome = SkippedMarkerNotFound
			return doc, res
		default:
			op = e.Fallback
			res.Fallback = true
			if op == Append {
				off = len(doc)
			}
		}
	}
	text := e.Text
	if e.Line {
		switch op {
		case InsertAfter:
			text = "\n" + text
		case Append:
			if doc != "" && !strings.HasSuffix(doc, "\n") {
				text = "\n" + text
			}
		default:
			text += "\n"
		}
	}
	s := Splice{Off: off, New: text}
	res.Outcome = Applied
	res.Splices = []Splice{s}
	return doc[:off] + text + doc[off:], res
}

func replace(doc string, e *Edit, res Result) (string, Result) {
	base := 0
	if len(e.At) != 0 {
		_, end, ok := e.anchor().Find(doc)
		if !ok {
			res.Outcome = SkippedMarkerNotFound
			return doc, res
		}
		base = end
	}
	limit := len(doc)
	if e.Until != "" {
		i := strings.Index(doc[base:], e.Until)
		if i < 0 {
			res.Outcome = SkippedMarkerNotFound
			return doc, res
		}
		limit = base + i
	}
	count := e.count()
	scope := doc[base:limit]
	if e.Op == Replace && len(e.Unless) == 0 && !e.shrinks() && strings.Contains(scope, e.Text) {
		res.Outcome = SkippedAlreadyPresent
		return doc, res
	}
	if !strings.Contains(scope, e.Old) {
		switch {
		case e.Op == Delete:
			res.Outcome = SkippedAlreadyPresent
		case e.Text != "" && strings.Contains(scope, e.Text):
			res.Outcome = SkippedAlreadyPresent
		default:
			res.Outcome = SkippedMarkerNotFound
		}
		return doc, res
	}
	text := e.Text
	if e.Op == Delete {
		text = ""
	}

	var b strings.Builder
	b.Grow(len(doc))
	b.WriteString(doc[:base])
	rest, off := scope, base
	for n := 0; count == 0 || n < count; n++ {
		i := strings.Index(rest, e.Old)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(text)
		res.Splices = append(res.Splices, Splice{Off: off + i, Old: e.Old, New: text})
		off += i + len(e.Old)
		rest = rest[i+len(e.Old):]
	}
	b.WriteString(rest)
	b.WriteString(doc[limit:])
	res.Outcome = Applied
	return b.String(), res
}
