// Package syntax implements the regular-expression abstract syntax, its
// algebraic normalization, the Brzozowski nullability and derivative
// operators, the character-class partitioner, and the surface-syntax
// parser that produces Term values for the dfa and match packages.
//
// Term dispatch uses a tagged-variant style: a single Kind byte selects
// which fields are meaningful, switched over rather than expressed
// through an interface hierarchy.
package syntax

import (
	"fmt"
	"strings"
)

// Kind identifies a Term's constructor.
type Kind uint8

const (
	// KindEmpty is ∅, the empty language.
	KindEmpty Kind = iota
	// KindEmptyString is ε, the language containing only the empty string.
	KindEmptyString
	// KindCharClass is Chr(S), a non-empty character class.
	KindCharClass
	// KindCat is concatenation.
	KindCat
	// KindAlt is union.
	KindAlt
	// KindAnd is intersection.
	KindAnd
	// KindNot is complement over Σ.
	KindNot
	// KindStar is Kleene closure.
	KindStar
	// KindGroup is a numbered capture group, transparent to language
	// membership.
	KindGroup
)

// String returns a human-readable constructor name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindEmptyString:
		return "EmptyString"
	case KindCharClass:
		return "CharClass"
	case KindCat:
		return "Cat"
	case KindAlt:
		return "Alt"
	case KindAnd:
		return "And"
	case KindNot:
		return "Not"
	case KindStar:
		return "Star"
	case KindGroup:
		return "Group"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Term is a regular-expression AST node in canonical form. Terms are
// immutable once constructed; the smart constructors in this file are
// the only way to build one, and they enforce a set of algebraic
// rewrites so that structural equality implies language equality for
// the identities those rewrites cover.
//
// Term is not comparable with == and cannot be a map key (its CharSet is
// a slice and its children are pointers); the dfa package's interner keys
// states by Key(t) instead.
type Term struct {
	kind Kind

	// Set is populated for KindCharClass.
	set CharSet

	// Left/Right are populated for KindCat, KindAlt, KindAnd (binary) and
	// KindNot/KindStar (Left only, unary).
	left, right *Term

	// Group is populated for KindGroup: the 1-based capture group id and
	// its wrapped sub-term (kept in Left).
	group int
}

// Kind returns the term's constructor tag.
func (t Term) Kind() Kind { return t.kind }

// Set returns the character set for a KindCharClass term.
func (t Term) Set() CharSet { return t.set }

// Left returns the first (or only) child term.
func (t Term) Left() *Term { return t.left }

// Right returns the second child term (KindCat/KindAlt/KindAnd only).
func (t Term) Right() *Term { return t.right }

// Group returns the capture group id for a KindGroup term.
func (t Term) Group() int { return t.group }

// Canonical term singletons. ∅ and ε carry no payload, so a single shared
// value suffices; smart constructors return these directly instead of
// allocating.
var (
	emptyTerm       = Term{kind: KindEmpty}
	emptyStringTerm = Term{kind: KindEmptyString}
)

// Empty returns ∅, the empty-language term.
func Empty() Term { return emptyTerm }

// EmptyString returns ε, the empty-string term.
func EmptyString() Term { return emptyStringTerm }

// IsEmpty reports whether t is ∅.
func (t Term) IsEmpty() bool { return t.kind == KindEmpty }

// IsEmptyString reports whether t is ε.
func (t Term) IsEmptyString() bool { return t.kind == KindEmptyString }

// Chr builds a character-class term from a canonical CharSet, applying
// rule 6 (empty set collapses to ∅).
func Chr(s CharSet) Term {
	if s.IsEmpty() {
		return Empty()
	}
	return Term{kind: KindCharClass, set: s}
}

// AnyChar returns the term matching any single byte (Σ).
func AnyChar() Term {
	return Chr(CharSet{FullRange})
}

// Cat builds a concatenation term, applying rule 1: ∅ absorbs,
// ε is the identity, and the result is right-associated so that repeated
// concatenation collapses to a canonical right-leaning chain (this is what
// makes the derivative of Star, which rebuilds Cat(∂_c(r), Star(r)) on
// every step, converge to a stable shape for interning).
func Cat(r, s Term) Term {
	if r.IsEmpty() || s.IsEmpty() {
		return Empty()
	}
	if r.IsEmptyString() {
		return s
	}
	if s.IsEmptyString() {
		return r
	}
	if r.kind == KindCat {
		// Re-associate: (a·b)·s = a·(b·s)
		return Cat(*r.left, Cat(*r.right, s))
	}
	rCopy, sCopy := r, s
	return Term{kind: KindCat, left: &rCopy, right: &sCopy}
}

// Alt builds a union term, applying rule 2: ∅ is the identity,
// duplicates collapse, and the result is flattened and sorted by Compare
// so that union is commutative and associative under structural equality.
func Alt(r, s Term) Term {
	terms := make([]Term, 0, 4)
	terms = flattenAlt(r, terms)
	terms = flattenAlt(s, terms)
	terms = sortDedup(terms)
	return buildAlt(terms)
}

func flattenAlt(t Term, into []Term) []Term {
	if t.IsEmpty() {
		return into
	}
	if t.kind == KindAlt {
		into = flattenAlt(*t.left, into)
		into = flattenAlt(*t.right, into)
		return into
	}
	return append(into, t)
}

func buildAlt(terms []Term) Term {
	if len(terms) == 0 {
		return Empty()
	}
	acc := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		l, r := terms[i], acc
		acc = Term{kind: KindAlt, left: &l, right: &r}
	}
	return acc
}

// And builds an intersection term, applying rule 3: ∅ absorbs,
// Σ* is the identity, duplicates collapse, flattened and sorted like Alt.
func And(r, s Term) Term {
	if r.IsEmpty() || s.IsEmpty() {
		return Empty()
	}
	terms := make([]Term, 0, 4)
	terms = flattenAnd(r, terms)
	terms = flattenAnd(s, terms)
	terms = sortDedup(terms)
	// Drop Σ* identity elements (Star(AnyChar)) once sorted/deduped.
	filtered := terms[:0]
	for _, t := range terms {
		if isUniverse(t) {
			continue
		}
		filtered = append(filtered, t)
	}
	if len(filtered) == 0 {
		return Star(AnyChar())
	}
	return buildAnd(filtered)
}

func isUniverse(t Term) bool {
	return t.kind == KindStar && t.left.kind == KindCharClass && t.left.set.IsFull()
}

func flattenAnd(t Term, into []Term) []Term {
	if t.kind == KindAnd {
		into = flattenAnd(*t.left, into)
		into = flattenAnd(*t.right, into)
		return into
	}
	return append(into, t)
}

func buildAnd(terms []Term) Term {
	if len(terms) == 0 {
		return Star(AnyChar())
	}
	acc := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		l, r := terms[i], acc
		acc = Term{kind: KindAnd, left: &l, right: &r}
	}
	return acc
}

// sortDedup sorts terms by Compare and removes adjacent duplicates.
func sortDedup(terms []Term) []Term {
	insertionSort(terms)
	out := terms[:0]
	for i, t := range terms {
		if i == 0 || Compare(out[len(out)-1], t) != 0 {
			out = append(out, t)
		}
	}
	return out
}

func insertionSort(terms []Term) {
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0 && Compare(terms[j-1], terms[j]) > 0; j-- {
			terms[j-1], terms[j] = terms[j], terms[j-1]
		}
	}
}

// Not builds a complement term, applying rule 4: double
// complement cancels.
func Not(r Term) Term {
	if r.kind == KindNot {
		return *r.left
	}
	rCopy := r
	return Term{kind: KindNot, left: &rCopy}
}

// Star builds a Kleene-closure term, applying rule 5: closure
// of ∅ or ε is ε, and closure is idempotent.
func Star(r Term) Term {
	if r.IsEmpty() || r.IsEmptyString() {
		return EmptyString()
	}
	if r.kind == KindStar {
		return r
	}
	rCopy := r
	return Term{kind: KindStar, left: &rCopy}
}

// Group wraps r in a numbered capture group. Per rule 7, Group
// is never simplified away, and the rewrites above apply to the wrapped
// inner term (callers normalize r via the smart constructors before
// calling Group).
func Group(id int, r Term) Term {
	rCopy := r
	return Term{kind: KindGroup, group: id, left: &rCopy}
}

// Equal reports structural equality of two canonical terms.
func Equal(a, b Term) bool {
	return Compare(a, b) == 0
}

// Compare provides the total order over canonical terms required by
// : lexicographic over (constructor tag, children).
func Compare(a, b Term) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindEmpty, KindEmptyString:
		return 0
	case KindCharClass:
		return a.set.Compare(b.set)
	case KindCat, KindAlt, KindAnd:
		if c := Compare(*a.left, *b.left); c != 0 {
			return c
		}
		return Compare(*a.right, *b.right)
	case KindNot, KindStar:
		return Compare(*a.left, *b.left)
	case KindGroup:
		if a.group != b.group {
			return a.group - b.group
		}
		return Compare(*a.left, *b.left)
	default:
		return 0
	}
}

// String renders a canonical term back to surface syntax; useful for
// debugging and for the CLI's --debug output.
func (t Term) String() string {
	switch t.kind {
	case KindEmpty:
		return "(?:)"
	case KindEmptyString:
		return ""
	case KindCharClass:
		return charSetString(t.set)
	case KindCat:
		return t.left.String() + t.right.String()
	case KindAlt:
		return t.left.String() + "|" + t.right.String()
	case KindAnd:
		return t.left.String() + "&" + t.right.String()
	case KindNot:
		return "~" + parenIfNeeded(*t.left)
	case KindStar:
		return parenIfNeeded(*t.left) + "*"
	case KindGroup:
		return "(" + t.left.String() + ")"
	default:
		return "?"
	}
}

func parenIfNeeded(t Term) string {
	switch t.kind {
	case KindCharClass, KindGroup, KindEmpty, KindEmptyString:
		return t.String()
	default:
		return "(?:" + t.String() + ")"
	}
}

// Key returns a canonical, collision-free string encoding of t suitable for
// use as a map key by the dfa package's state interner. Term
// itself cannot be used directly as a map key: its Left/Right fields are
// pointers, so Go's built-in equality would compare addresses rather than
// the structural equality Compare defines, and two independently built but
// structurally-equal terms generally have distinct child pointers. Key
// instead walks the term the same way String does but tags every node
// with its Kind and length-prefixes every variable-length payload, so
// no two structurally distinct canonical terms can produce the same Key.
func Key(t Term) string {
	var b strings.Builder
	writeKey(&b, t)
	return b.String()
}

func writeKey(b *strings.Builder, t Term) {
	fmt.Fprintf(b, "%d:", t.kind)
	switch t.kind {
	case KindEmpty, KindEmptyString:
	case KindCharClass:
		fmt.Fprintf(b, "%d:", len(t.set))
		for _, r := range t.set {
			fmt.Fprintf(b, "%02x%02x", r.Lo, r.Hi)
		}
	case KindCat, KindAlt, KindAnd:
		writeKey(b, *t.left)
		writeKey(b, *t.right)
	case KindNot, KindStar:
		writeKey(b, *t.left)
	case KindGroup:
		fmt.Fprintf(b, "%d:", t.group)
		writeKey(b, *t.left)
	}
}

func charSetString(s CharSet) string {
	if s.IsFull() {
		return "."
	}
	if len(s) == 1 && s[0].Lo == s[0].Hi {
		return fmt.Sprintf("%q", string(rune(s[0].Lo)))
	}
	out := "["
	for _, r := range s {
		if r.Lo == r.Hi {
			out += fmt.Sprintf("%c", r.Lo)
		} else {
			out += fmt.Sprintf("%c-%c", r.Lo, r.Hi)
		}
	}
	return out + "]"
}
