package edit

import "fmt"

type Outcome int

const (
	Applied Outcome = iota
	SkippedAlreadyPresent
	SkippedMarkerNotFound
	SkippedCondition
)

var outcomeNames = [...]string{
	Applied:               "applied",
	SkippedAlreadyPresent: "already-present",
	SkippedMarkerNotFound: "marker-not-found",
	SkippedCondition:      "condition-false",
}

func Outcomes() []Outcome {
	return []Outcome{Applied, SkippedAlreadyPresent, SkippedMarkerNotFound, SkippedCondition}
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Splice records one replaced span: Old at offset Off of the document the
// edit was applied to became New.
type Splice struct {
	Off int
	Old string
	New string
}

type Result struct {
	Edit    string
	Outcome Outcome
	// Fallback is set when inserted text was placed by the edit's
	// fallback because its anchor was missing.
	Fallback bool
	Splices  []Splice
}

func (r *Result) String() string {
	if r.Fallback {
		return fmt.Sprintf("%s: %s (fallback)", r.Edit, r.Outcome)
	}
	return fmt.Sprintf("%s: %s", r.Edit, r.Outcome)
}
