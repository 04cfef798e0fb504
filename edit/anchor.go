package edit

import "strings"

// Anchor locates a position in a document by a chain of literal markers.
type Anchor struct {
	Markers []string
	Last    bool
}

// Find returns the span of the final marker of the chain. The first marker
// is found at its first occurrence, or at its last when a.Last is set; each
// following marker is searched from the end of the previous match.
func (a Anchor) Find(doc string) (start, end int, ok bool) {
	if len(a.Markers) == 0 {
		return 0, 0, false
	}
	pos := 0
	for i, m := range a.Markers {
		var j int
		if i == 0 && a.Last {
			j = strings.LastIndex(doc, m)
		} else {
			j = strings.Index(doc[pos:], m)
			if j >= 0 {
				j += pos
			}
		}
		if j < 0 {
			return 0, 0, false
		}
		start, end = j, j+len(m)
		pos = end
	}
	return start, end, true
}
