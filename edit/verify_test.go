package edit

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		before  string
		after   string
		splices []Splice
		ok      bool
	}{
		{"no_splices_equal", "abc", "abc", nil, true},
		{"no_splices_changed", "abc", "abd", nil, false},
		{"insert", "ac", "abc", []Splice{{Off: 1, New: "b"}}, true},
		{"insert_at_end", "ab", "abc", []Splice{{Off: 2, New: "c"}}, true},
		{"replace_two", "xaxa", "xbxb", []Splice{{Off: 1, Old: "a", New: "b"}, {Off: 3, Old: "a", New: "b"}}, true},
		{"stray_change", "xaxa", "ybxb", []Splice{{Off: 1, Old: "a", New: "b"}, {Off: 3, Old: "a", New: "b"}}, false},
		{"wrong_old", "xaxa", "xbxa", []Splice{{Off: 1, Old: "c", New: "b"}}, false},
		{"wrong_new", "xaxa", "xbxa", []Splice{{Off: 1, Old: "a", New: "c"}}, false},
		{"out_of_order", "xaxa", "xbxb", []Splice{{Off: 3, Old: "a", New: "b"}, {Off: 1, Old: "a", New: "b"}}, false},
		{"out_of_range", "xa", "xa", []Splice{{Off: 2, Old: "a"}}, false},
		{"truncated_after", "abc", "a", []Splice{{Off: 1, New: "b"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.before, tt.after, tt.splices)
			if (err == nil) != tt.ok {
				t.Fatalf("Verify() = %v, want ok=%t", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrContentChanged) {
				t.Errorf("Verify() error %v does not wrap ErrContentChanged", err)
			}
		})
	}
}

func TestAnchorFind(t *testing.T) {
	doc := "m1 a m2 b m1 c m2 d"
	tests := []struct {
		name       string
		anchor     Anchor
		start, end int
		ok         bool
	}{
		{"empty", Anchor{}, 0, 0, false},
		{"first", Anchor{Markers: []string{"m1"}}, 0, 2, true},
		{"last", Anchor{Markers: []string{"m1"}, Last: true}, 10, 12, true},
		{"chain", Anchor{Markers: []string{"m1", "m2"}}, 5, 7, true},
		{"chain_from_last", Anchor{Markers: []string{"m1", "m2"}, Last: true}, 15, 17, true},
		{"chain_missing_tail", Anchor{Markers: []string{"m2", "a"}}, 0, 0, false},
		{"missing", Anchor{Markers: []string{"zz"}}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.anchor.Find(doc)
			if ok != tt.ok || start != tt.start || end != tt.end {
				t.Errorf("Find() = (%d, %d, %t), want (%d, %d, %t)", start, end, ok, tt.start, tt.end, tt.ok)
			}
		})
	}
}
