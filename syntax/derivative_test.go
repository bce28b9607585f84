package syntax

import "testing"

func charTerm(c byte) Term {
	return Chr(CharSet{{Lo: c, Hi: c}})
}

// matches runs the derivative loop to decide membership, independent of
// the dfa package, so Nullable/Derivative can be tested in isolation.
func matches(t Term, s string) bool {
	for i := 0; i < len(s); i++ {
		t = Derivative(t, s[i], nil)
	}
	return Nullable(t)
}

func TestNullable(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want bool
	}{
		{"empty", Empty(), false},
		{"empty string", EmptyString(), true},
		{"char class", charTerm('a'), false},
		{"star", Star(charTerm('a')), true},
		{"cat both nullable", Cat(EmptyString(), EmptyString()), true},
		{"cat one non-nullable", Cat(charTerm('a'), EmptyString()), false},
		{"alt", Alt(Empty(), EmptyString()), true},
		{"and", And(Star(AnyChar()), EmptyString()), true},
		{"not of empty", Not(Empty()), true},
		{"not of nullable", Not(EmptyString()), false},
		{"group", Group(1, EmptyString()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nullable(tt.term); got != tt.want {
				t.Errorf("Nullable(%v) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestDerivativeLiteralMatch(t *testing.T) {
	abc := Cat(charTerm('a'), Cat(charTerm('b'), charTerm('c')))
	if !matches(abc, "abc") {
		t.Error(`"abc" should match literal abc`)
	}
	if matches(abc, "abd") {
		t.Error(`"abd" should not match literal abc`)
	}
	if matches(abc, "ab") {
		t.Error(`"ab" (prefix) should not match literal abc`)
	}
}

func TestDerivativeStarPlus(t *testing.T) {
	aStar := Star(charTerm('a'))
	if !matches(aStar, "") {
		t.Error(`a* should match ""`)
	}
	if !matches(aStar, "aaaa") {
		t.Error(`a* should match "aaaa"`)
	}
	if matches(aStar, "aaab") {
		t.Error(`a* should not match "aaab"`)
	}
}

func TestDerivativeIntersection(t *testing.T) {
	// (ab|a)&(a|ab) should match both "a" and "ab".
	lhs := Alt(Cat(charTerm('a'), charTerm('b')), charTerm('a'))
	rhs := Alt(charTerm('a'), Cat(charTerm('a'), charTerm('b')))
	both := And(lhs, rhs)
	if !matches(both, "a") {
		t.Error(`intersection should match "a"`)
	}
	if !matches(both, "ab") {
		t.Error(`intersection should match "ab"`)
	}
	if matches(both, "b") {
		t.Error(`intersection should not match "b"`)
	}
}

func TestDerivativeComplement(t *testing.T) {
	// ~(a*) should match everything a* doesn't: e.g. "b", but not "", "a", "aa".
	notAStar := Not(Star(charTerm('a')))
	if matches(notAStar, "") {
		t.Error(`~(a*) should not match ""`)
	}
	if matches(notAStar, "aaa") {
		t.Error(`~(a*) should not match "aaa"`)
	}
	if !matches(notAStar, "b") {
		t.Error(`~(a*) should match "b"`)
	}
}

// TestDerivativeCaptureRepeatedGroup exercises the "last iteration wins"
// semantics for (x)* against "xxx": each star iteration reopens and
// recloses group 1, so the final recorded span should be the last
// character, not the first.
func TestDerivativeCaptureRepeatedGroup(t *testing.T) {
	pattern := Star(Group(1, charTerm('x')))

	term := pattern
	var lastOpen, lastClose int = -1, -1
	for i := 0; i < 3; i++ {
		acc := NewCaptureAccum()
		term = Derivative(term, 'x', acc)
		for _, e := range acc.Edits() {
			if e.Group != 1 {
				continue
			}
			if e.Edge == EdgeOpen {
				lastOpen = i
			} else {
				lastClose = i
			}
		}
	}
	if !Nullable(term) {
		t.Fatal("(x)* should accept \"xxx\"")
	}
	if lastOpen != 2 || lastClose != 2 {
		t.Errorf("expected group 1 opened and closed on the final iteration (index 2), got open=%d close=%d", lastOpen, lastClose)
	}
}

// TestDerivativeCaptureOpenIdempotentPerStep ensures a group entered via a
// nullable Cat left side and re-entered below doesn't double-open within
// one derivative call.
func TestDerivativeCaptureOpenIdempotentPerStep(t *testing.T) {
	// (x?)(x) — when deriving on 'x', the left Group (x?) is nullable-ish
	// only after consuming, but exercise the accumulator directly: opening
	// the same group twice in one step must be a no-op on the second call.
	acc := NewCaptureAccum()
	acc.open(1)
	acc.open(1)
	count := 0
	for _, e := range acc.Edits() {
		if e.Group == 1 && e.Edge == EdgeOpen {
			count++
		}
	}
	if count != 1 {
		t.Errorf("open(1) called twice produced %d open edits, want 1", count)
	}
}
