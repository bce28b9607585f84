package match_test

import (
	"testing"

	"github.com/clintolsen/pyre/dfa"
	"github.com/clintolsen/pyre/match"
	"github.com/clintolsen/pyre/syntax"
)

func build(t *testing.T, pattern string) *dfa.DFA {
	t.Helper()
	term, groups, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", pattern, err)
	}
	d, err := dfa.Build(term, groups, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("Build(%q) error: %v", pattern, err)
	}
	return d
}

func TestMatchAnchoredLongestPrefix(t *testing.T) {
	// a|ab should greedily prefer the longer alternative when both are
	// live, since both branches are folded into one DFA state.
	d := build(t, "a|ab")
	res, ok := match.Match(d, []byte("ab"))
	if !ok {
		t.Fatal("expected a match")
	}
	start, end := res.Span()
	if start != 0 || end != 2 {
		t.Errorf("Span() = (%d,%d), want (0,2) — longest accepting prefix", start, end)
	}
}

func TestMatchNoMatch(t *testing.T) {
	d := build(t, "abc")
	if _, ok := match.Match(d, []byte("xyz")); ok {
		t.Error("expected no match")
	}
}

func TestMatchCaptureGroup(t *testing.T) {
	d := build(t, `(\d+)-(\d+)`)
	res, ok := match.Match(d, []byte("12-345"))
	if !ok {
		t.Fatal("expected a match")
	}
	start, end := res.Span()
	if start != 0 || end != 6 {
		t.Errorf("Span() = (%d,%d), want (0,6)", start, end)
	}
	if s, e, ok := res.Group(1); !ok || s != 0 || e != 2 {
		t.Errorf("Group(1) = (%d,%d,%v), want (0,2,true)", s, e, ok)
	}
	if s, e, ok := res.Group(2); !ok || s != 3 || e != 6 {
		t.Errorf("Group(2) = (%d,%d,%v), want (3,6,true)", s, e, ok)
	}
}

func TestMatchCaptureLastIterationWins(t *testing.T) {
	// (x)* against "xxx": group 1 should record the last iteration only.
	d := build(t, `(x)*`)
	res, ok := match.Match(d, []byte("xxx"))
	if !ok {
		t.Fatal("expected a match")
	}
	if s, e, ok := res.Group(1); !ok || s != 2 || e != 3 {
		t.Errorf("Group(1) = (%d,%d,%v), want (2,3,true)", s, e, ok)
	}
}

func TestSearchFindsLeftmostMatch(t *testing.T) {
	d := build(t, `\d+`)
	res, ok := match.Search(d, []byte("abc123def456"), 0, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	start, end := res.Span()
	if start != 3 || end != 6 {
		t.Errorf("Span() = (%d,%d), want (3,6)", start, end)
	}
}

func TestSearchNoMatch(t *testing.T) {
	d := build(t, `\d+`)
	if _, ok := match.Search(d, []byte("no digits here"), 0, nil); ok {
		t.Error("expected no match")
	}
}

func TestSearchAllNonOverlapping(t *testing.T) {
	d := build(t, `\d+`)
	results := match.SearchAll(d, []byte("a1 b22 c333"), nil)
	if len(results) != 3 {
		t.Fatalf("SearchAll found %d matches, want 3", len(results))
	}
	wantSpans := [][2]int{{1, 2}, {4, 6}, {8, 11}}
	for i, res := range results {
		start, end := res.Span()
		if start != wantSpans[i][0] || end != wantSpans[i][1] {
			t.Errorf("match %d = (%d,%d), want %v", i, start, end, wantSpans[i])
		}
	}
}

func TestSearchAllZeroLengthProgresses(t *testing.T) {
	d := build(t, `a*`)
	results := match.SearchAll(d, []byte("bb"), nil)
	// a* matches the empty string at every position; expect 3
	// non-overlapping zero-length matches (positions 0,1,2) without
	// looping forever.
	if len(results) != 3 {
		t.Fatalf("SearchAll found %d matches, want 3", len(results))
	}
}
