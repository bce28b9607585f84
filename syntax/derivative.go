package syntax

// Nullable implements ν(r): whether r accepts the empty string.
func Nullable(t Term) bool {
	switch t.kind {
	case KindEmpty:
		return false
	case KindEmptyString:
		return true
	case KindCharClass:
		return false
	case KindCat:
		return Nullable(*t.left) && Nullable(*t.right)
	case KindAlt:
		return Nullable(*t.left) || Nullable(*t.right)
	case KindAnd:
		return Nullable(*t.left) && Nullable(*t.right)
	case KindNot:
		return !Nullable(*t.left)
	case KindStar:
		return true
	case KindGroup:
		return Nullable(*t.left)
	default:
		return false
	}
}

// EdgeKind distinguishes a capture-group boundary marker: the group's
// start or its end.
type EdgeKind uint8

const (
	// EdgeOpen marks that a group just started matching.
	EdgeOpen EdgeKind = iota
	// EdgeClose marks that a group just finished matching.
	EdgeClose
)

// String renders the edge kind.
func (e EdgeKind) String() string {
	if e == EdgeOpen {
		return "open"
	}
	return "close"
}

// Edit is a capture-group boundary action attached to a DFA transition.
type Edit struct {
	Group int
	Edge  EdgeKind
}

// CaptureAccum is the mutable side-channel threaded down the Derivative
// recursion to collect capture edits for a single input byte: computing
// the derivative needs somewhere to accumulate open/close edits as it
// traverses a Group node.
type CaptureAccum struct {
	edits []Edit
	// opened tracks which groups have already emitted an "open" edit
	// during this single derivative computation, so that a group that
	// is entered and, within the same step, re-examined further down the
	// recursion (e.g. under Cat when the left side is nullable) is only
	// opened once per step.
	opened map[int]bool
}

// NewCaptureAccum returns a fresh, empty accumulator.
func NewCaptureAccum() *CaptureAccum {
	return &CaptureAccum{opened: make(map[int]bool)}
}

// Edits returns the edits collected so far, in recursion order (open
// before close for a group completed in a single step).
func (a *CaptureAccum) Edits() []Edit {
	return a.edits
}

func (a *CaptureAccum) open(group int) {
	if a.opened[group] {
		return
	}
	a.opened[group] = true
	a.edits = append(a.edits, Edit{Group: group, Edge: EdgeOpen})
}

func (a *CaptureAccum) close(group int) {
	a.edits = append(a.edits, Edit{Group: group, Edge: EdgeClose})
}

// Derivative implements ∂_c(r), recording capture-group open/close
// edits on acc as the recursion crosses Group boundaries. acc may be nil
// when the caller doesn't need captures (e.g. a membership-only check);
// Derivative still returns the correct term in that case.
func Derivative(t Term, c byte, acc *CaptureAccum) Term {
	switch t.kind {
	case KindEmpty, KindEmptyString:
		return Empty()

	case KindCharClass:
		if t.set.Contains(c) {
			return EmptyString()
		}
		return Empty()

	case KindCat:
		left := Derivative(*t.left, c, acc)
		catTerm := Cat(left, *t.right)
		if Nullable(*t.left) {
			rightTerm := Derivative(*t.right, c, acc)
			return Alt(catTerm, rightTerm)
		}
		return catTerm

	case KindAlt:
		return Alt(Derivative(*t.left, c, acc), Derivative(*t.right, c, acc))

	case KindAnd:
		return And(Derivative(*t.left, c, acc), Derivative(*t.right, c, acc))

	case KindNot:
		return Not(Derivative(*t.left, c, acc))

	case KindStar:
		return Cat(Derivative(*t.left, c, acc), Star(*t.left))

	case KindGroup:
		inner := Derivative(*t.left, c, acc)
		if inner.IsEmpty() {
			return Empty()
		}
		// Only record this group's open once its residue is known to
		// survive the step; a branch that dies to ∅ shouldn't leave an
		// edit attached to a transition merged in from elsewhere (e.g.
		// the unmatched side of an Alt).
		if acc != nil {
			acc.open(t.group)
		}
		if inner.IsEmptyString() {
			if acc != nil {
				acc.close(t.group)
			}
			return EmptyString()
		}
		return Group(t.group, inner)

	default:
		return Empty()
	}
}
