// Package edit implements guarded, marker-anchored edits on text documents.
//
// An Edit is a guard plus an action. Guards are plain substring presence
// tests; actions splice text at a located anchor, at either end of the
// document, or in place of a target substring. Applying an edit never fails:
// when its guard does not hold the document is returned unchanged together
// with a Result saying why.
package edit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid edit")

type Op string

const (
	Append       Op = "append"
	Prepend      Op = "prepend"
	InsertAfter  Op = "insert-after"
	InsertBefore Op = "insert-before"
	Replace      Op = "replace"
	Delete       Op = "delete"
)

func Ops() []Op {
	return []Op{Append, Prepend, InsertAfter, InsertBefore, Replace, Delete}
}

func ParseOp(s string) (Op, error) {
	for _, op := range Ops() {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: unknown op %q", ErrInvalid, s)
}

func (op Op) inserts() bool {
	switch op {
	case Append, Prepend, InsertAfter, InsertBefore:
		return true
	}
	return false
}

// Edit is a single guarded transformation.
type Edit struct {
	Name string
	Op   Op

	// At is the anchor: a chain of markers, each searched from the end of
	// the previous match.
	At []string
	// Last anchors the first marker at its last occurrence.
	Last bool
	// Until ends the scope of Replace and Delete at its first occurrence
	// after the anchor.
	Until string

	// Text is the inserted text, or the replacement for Replace.
	Text string
	// Old is the substring targeted by Replace and Delete.
	Old string
	// Count bounds the number of replaced occurrences. Zero means all
	// occurrences, except for an anchored edit without Until where it
	// means one. Negative always means all.
	Count int
	// Line inserts Text as its own line.
	Line bool

	// Unless skips the edit if any of its strings is present anywhere in
	// the document.
	Unless []string
	// Requires skips the edit unless all of its strings are present.
	Requires []string
	// Fallback places inserted text at the start or end of the document
	// when the anchor is missing.
	Fallback Op
}

func (e *Edit) anchor() Anchor {
	return Anchor{Markers: e.At, Last: e.Last}
}

// count returns the number of occurrences replaced, or 0 for all.
func (e *Edit) count() int {
	switch {
	case e.Count < 0:
		return 0
	case e.Count == 0 && len(e.At) != 0 && e.Until == "":
		return 1
	}
	return e.Count
}

// shrinks reports whether replacing Old leaves no trace of Text to guard
// on.
func (e *Edit) shrinks() bool {
	return e.Op == Delete || strings.Contains(e.Old, e.Text)
}

func (e *Edit) String() string {
	if e.Name != "" {
		return e.Name
	}
	switch {
	case len(e.At) != 0:
		return fmt.Sprintf("%s %q", e.Op, e.At[len(e.At)-1])
	case e.Old != "":
		return fmt.Sprintf("%s %q", e.Op, e.Old)
	}
	return string(e.Op)
}

func (e *Edit) Validate() error {
	if _, err := ParseOp(string(e.Op)); err != nil {
		return err
	}
	switch e.Op {
	case Append, Prepend:
		if len(e.At) != 0 {
			return fmt.Errorf("%w: %s takes no anchor", ErrInvalid, e.Op)
		}
	case InsertAfter, InsertBefore:
		if len(e.At) == 0 {
			return fmt.Errorf("%w: %s requires an anchor", ErrInvalid, e.Op)
		}
	case Replace:
		if e.Old == "" {
			return fmt.Errorf("%w: replace requires old text", ErrInvalid)
		}
	case Delete:
		if e.Old == "" {
			return fmt.Errorf("%w: delete requires old text", ErrInvalid)
		}
		if e.Text != "" {
			return fmt.Errorf("%w: delete takes no text", ErrInvalid)
		}
	}
	if e.Op.inserts() && e.Text == "" {
		return fmt.Errorf("%w: %s requires text", ErrInvalid, e.Op)
	}
	for i, m := range e.At {
		if m == "" {
			return fmt.Errorf("%w: empty marker at %d", ErrInvalid, i)
		}
	}
	if e.Last && len(e.At) == 0 {
		return fmt.Errorf("%w: last requires an anchor", ErrInvalid)
	}
	if e.Count != 0 && e.Op.inserts() {
		return fmt.Errorf("%w: count applies only to replace and delete", ErrInvalid)
	}
	if e.Until != "" && e.Op.inserts() {
		return fmt.Errorf("%w: until applies only to replace and delete", ErrInvalid)
	}
	// A capped edit whose result still contains old text would reach the
	// next occurrence when run again.
	if e.count() > 0 && e.shrinks() && len(e.Unless) == 0 {
		return fmt.Errorf("%w: %s of %q is bounded to %d occurrence(s) and needs until or unless to run only once", ErrInvalid, e.Op, e.Old, e.count())
	}
	switch e.Fallback {
	case "":
	case Append, Prepend:
		if e.Op != InsertAfter && e.Op != InsertBefore {
			return fmt.Errorf("%w: fallback applies only to anchored inserts", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: fallback must be append or prepend, got %q", ErrInvalid, e.Fallback)
	}
	return nil
}

func containsAny(doc string, ss []string) bool {
	for _, s := range ss {
		if strings.Contains(doc, s) {
			return true
		}
	}
	return false
}

func containsAll(doc string, ss []string) bool {
	for _, s := range ss {
		if !strings.Contains(doc, s) {
			return false
		}
	}
	return true
}
