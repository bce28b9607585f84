// Package literal provides types and operations for extracting literal
// sequences from regex patterns for prefilter optimization.
package literal

import "github.com/clintolsen/pyre/syntax"

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Classes like [abc] are expanded to ["a", "b", "c"]; classes larger
	// than MaxClassSize (like [a-z]) are left unexpanded.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal sequences from a syntax.Term, enabling fast
// prefiltering before running the DFA.
//
// The walk dispatches on syntax.Term's Kind; KindAnd and KindNot are
// treated conservatively (no reliable prefix), since intersection and
// complement can't in general be reduced to a required leading literal.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes extracts literals that must appear at the start of any
// match:
//
//	"hello"        → ["hello"]
//	"(foo|bar)"    → ["foo", "bar"]
//	"[abc]test"    → ["atest", "btest", "ctest"]
//	"hello.*world" → ["hello"]
//	".*foo"        → [] (no prefix requirement)
func (e *Extractor) ExtractPrefixes(t syntax.Term) *Seq {
	return e.extractPrefixes(t, 0)
}

func (e *Extractor) extractPrefixes(t syntax.Term, depth int) *Seq {
	if depth > 100 {
		return NewSeq()
	}

	switch t.Kind() {
	case syntax.KindEmpty:
		return NewSeq()

	case syntax.KindEmptyString:
		return NewSeq(NewLiteral(nil, true))

	case syntax.KindCharClass:
		return e.expandCharClass(t)

	case syntax.KindGroup:
		return e.extractPrefixes(*t.Left(), depth+1)

	case syntax.KindCat:
		return e.extractPrefixesConcat(t, depth)

	case syntax.KindAlt:
		return e.extractPrefixesAlt(t, depth)

	case syntax.KindStar:
		// a*bc -> prefix could be "", "a", "aa", ... -> no reliable prefix.
		return NewSeq()

	case syntax.KindAnd, syntax.KindNot:
		// Intersection/complement don't reduce to a required prefix in
		// general; treat conservatively.
		return NewSeq()

	default:
		return NewSeq()
	}
}

// extractPrefixesConcat performs cross-product expansion across a Cat
// chain: each literal/small-class term extends every literal accumulated
// so far, until a non-literal term (star, wildcard, and/not) is hit, at
// which point extension stops and whatever was accumulated becomes the
// concatenation's prefix set.
func (e *Extractor) extractPrefixesConcat(t syntax.Term, depth int) *Seq {
	acc := NewSeq(NewLiteral(nil, true))
	extended := false

	stopShort := func() *Seq {
		if !extended {
			// Nothing was ever accumulated: the very first element is
			// already non-literal, so the concatenation has no reliable
			// prefix at all (e.g. ".*foo").
			return NewSeq()
		}
		e.markAllInexact(acc)
		return acc
	}

	term := t
	for term.Kind() == syntax.KindCat {
		left := *term.Left()
		seq := e.prefixContribution(left, depth+1)
		if seq == nil {
			return stopShort()
		}
		acc = crossProduct(acc, seq, e.config.MaxLiteralLen)
		extended = true
		if acc.Len() >= e.config.MaxLiterals {
			e.markAllInexact(acc)
			return acc
		}
		term = *term.Right()
	}
	// term is now the final non-Cat element of the chain.
	seq := e.prefixContribution(term, depth+1)
	if seq == nil {
		return stopShort()
	}
	acc = crossProduct(acc, seq, e.config.MaxLiteralLen)
	return acc
}

// prefixContribution returns the Seq a single concatenation element
// contributes, or nil if the element isn't literal-like (so the caller
// should stop extending and mark the accumulator inexact).
func (e *Extractor) prefixContribution(t syntax.Term, depth int) *Seq {
	switch t.Kind() {
	case syntax.KindEmptyString:
		return NewSeq(NewLiteral(nil, true))
	case syntax.KindCharClass:
		return e.expandCharClass(t)
	case syntax.KindGroup:
		return e.prefixContribution(*t.Left(), depth+1)
	case syntax.KindCat:
		return e.extractPrefixesConcat(t, depth)
	case syntax.KindAlt:
		seq := e.extractPrefixesAlt(t, depth)
		if seq.IsEmpty() {
			return nil
		}
		return seq
	default:
		return nil
	}
}

func (e *Extractor) extractPrefixesAlt(t syntax.Term, depth int) *Seq {
	var branches []syntax.Term
	flattenAlt(t, &branches)

	var allLits []Literal
	truncated := false
	for _, sub := range branches {
		seq := e.extractPrefixes(sub, depth+1)
		if seq.IsEmpty() {
			return NewSeq()
		}
		for i := 0; i < seq.Len(); i++ {
			allLits = append(allLits, seq.Get(i))
			if len(allLits) >= e.config.MaxLiterals {
				truncated = true
				break
			}
		}
		if truncated {
			break
		}
	}
	if truncated {
		for i := range allLits {
			allLits[i].Complete = false
		}
	}
	return NewSeq(allLits...)
}

func flattenAlt(t syntax.Term, into *[]syntax.Term) {
	if t.Kind() == syntax.KindAlt {
		flattenAlt(*t.Left(), into)
		flattenAlt(*t.Right(), into)
		return
	}
	*into = append(*into, t)
}

// expandCharClass expands a small character class into one literal per
// member byte; classes larger than MaxClassSize are left unexpanded.
func (e *Extractor) expandCharClass(t syntax.Term) *Seq {
	set := t.Set()
	count := 0
	for _, r := range set {
		count += int(r.Hi) - int(r.Lo) + 1
	}
	if count == 0 || count > e.config.MaxClassSize {
		return NewSeq()
	}
	lits := make([]Literal, 0, count)
	for _, r := range set {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			lits = append(lits, NewLiteral([]byte{byte(b)}, true))
		}
	}
	return NewSeq(lits...)
}

func (e *Extractor) markAllInexact(s *Seq) {
	for i := 0; i < s.Len(); i++ {
		lit := s.Get(i)
		lit.Complete = false
		s.Set(i, lit)
	}
}

// crossProduct extends every literal in acc with every literal in next,
// truncating results longer than maxLen.
func crossProduct(acc, next *Seq, maxLen int) *Seq {
	out := make([]Literal, 0, acc.Len()*next.Len())
	for i := 0; i < acc.Len(); i++ {
		a := acc.Get(i)
		for j := 0; j < next.Len(); j++ {
			b := next.Get(j)
			combined := append(append([]byte{}, a.Bytes...), b.Bytes...)
			if len(combined) > maxLen {
				combined = combined[:maxLen]
			}
			out = append(out, NewLiteral(combined, a.Complete && b.Complete))
		}
	}
	return NewSeq(out...)
}
