package edit

import (
	"errors"
	"fmt"
)

// ErrContentChanged reports text outside of an edit's splices that differs
// between the input and output of the edit.
var ErrContentChanged = errors.New("content outside edit changed")

// Verify checks that after is before with exactly the given splices applied.
// Splices must be ordered by offset and must not overlap.
func Verify(before, after string, splices []Splice) error {
	bi, ai := 0, 0
	for _, s := range splices {
		if s.Off < bi || s.Off+len(s.Old) > len(before) {
			return fmt.Errorf("%w: splice at %d out of range", ErrContentChanged, s.Off)
		}
		gap := s.Off - bi
		if ai+gap > len(after) || before[bi:s.Off] != after[ai:ai+gap] {
			return fmt.Errorf("%w: between offsets %d and %d", ErrContentChanged, bi, s.Off)
		}
		ai += gap
		if before[s.Off:s.Off+len(s.Old)] != s.Old {
			return fmt.Errorf("%w: splice at %d does not match its old text", ErrContentChanged, s.Off)
		}
		if len(after)-ai < len(s.New) || after[ai:ai+len(s.New)] != s.New {
			return fmt.Errorf("%w: splice at %d does not match its new text", ErrContentChanged, s.Off)
		}
		ai += len(s.New)
		bi = s.Off + len(s.Old)
	}
	if before[bi:] != after[ai:] {
		return fmt.Errorf("%w: after offset %d", ErrContentChanged, bi)
	}
	return nil
}
