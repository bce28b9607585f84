// Package pyre provides a regex engine that builds its automaton directly
// from the pattern's derivatives, skipping the NFA-construction /
// subset-construction pipeline most regex engines use.
//
// pyre additionally supports two operators stdlib regexp does not: `&`
// (intersection of two patterns) and `~` (complement of a pattern), both
// free consequences of building a DFA from derivatives directly over the
// term algebra.
//
// Basic usage:
//
//	re, err := pyre.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("room 42") {
//	    fmt.Println(re.FindString("room 42")) // "42"
//	}
//
// Capture groups:
//
//	re := pyre.MustCompile(`(\d+)-(\d+)`)
//	groups := re.FindStringSubmatch("12-345")
//	// groups[0] = "12-345", groups[1] = "12", groups[2] = "345"
//
// Intersection and complement:
//
//	re := pyre.MustCompile(`(.*a.*)&~(.*b.*)`) // contains 'a', does not contain 'b'
package pyre

import (
	"github.com/clintolsen/pyre/dfa"
	"github.com/clintolsen/pyre/literal"
	"github.com/clintolsen/pyre/match"
	"github.com/clintolsen/pyre/prefilter"
	"github.com/clintolsen/pyre/syntax"
)

// Regex is a compiled pattern, built eagerly into a complete DFA at
// Compile time. A Regex is safe for concurrent use: matching only reads
// the DFA's transition tables.
type Regex struct {
	d         *dfa.DFA
	pattern   string
	numGroups int
	pf        prefilter.Prefilter
}

// Compile compiles a pattern into a Regex using DefaultConfig.
//
// Syntax: literals, `.`, `[...]`/`[^...]` classes with `a-z` ranges,
// `|` alternation, `&` intersection, `~` complement (prefix), `*`/`+`/`?`
// repetition, and `(...)` capturing groups numbered left-to-right from 1.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("pyre: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// DefaultConfig returns the default DFA construction configuration.
func DefaultConfig() dfa.Config {
	return dfa.DefaultConfig()
}

// CompileWithConfig compiles a pattern with a custom dfa.Config, e.g. to
// raise MaxStates for patterns expected to need a larger automaton, or to
// disable capture tracking for throughput-only matching.
func CompileWithConfig(pattern string, config dfa.Config) (*Regex, error) {
	term, numGroups, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Build(term, numGroups, config)
	if err != nil {
		return nil, err
	}

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)
	pf := prefilter.WrapWithTracking(prefilter.NewBuilder(prefixes, nil).Build())

	return &Regex{
		d:         d,
		pattern:   pattern,
		numGroups: numGroups,
		pf:        pf,
	}, nil
}

// String returns the source pattern the Regex was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capturing groups in the pattern (not
// counting group 0, the whole match).
func (r *Regex) NumSubexp() int {
	return r.numGroups
}

// Debug returns a textual dump of the compiled DFA's states and
// transitions, for the CLI's --debug flag.
func (r *Regex) Debug() string {
	return r.d.String()
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	_, ok := match.Search(r.d, b, 0, r.pf)
	return ok
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
func (r *Regex) Find(b []byte) []byte {
	res, ok := match.Search(r.d, b, 0, r.pf)
	if !ok {
		return nil
	}
	start, end := res.Span()
	return b[start:end]
}

// FindString is like Find but for strings.
func (r *Regex) FindString(s string) string {
	m := r.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns the [start, end) byte offsets of the leftmost match
// in b, or nil if there is none.
func (r *Regex) FindIndex(b []byte) []int {
	res, ok := match.Search(r.d, b, 0, r.pf)
	if !ok {
		return nil
	}
	start, end := res.Span()
	return []int{start, end}
}

// FindStringIndex is like FindIndex but for strings.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch is like Find but also returns the text of each capture
// group. Result[0] is the whole match; result[i] is group i. An
// unmatched group is reported as nil.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	res, ok := match.Search(r.d, b, 0, r.pf)
	if !ok {
		return nil
	}
	return submatchBytes(res, b)
}

// FindStringSubmatch is like FindSubmatch but for strings.
func (r *Regex) FindStringSubmatch(s string) []string {
	groups := r.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			out[i] = string(g)
		}
	}
	return out
}

// FindSubmatchIndex is like FindSubmatch but returns [start, end) offset
// pairs instead of slices of b. Result[2*i:2*i+2] is the span for group
// i; an unmatched group is reported as [-1, -1].
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	res, ok := match.Search(r.d, b, 0, r.pf)
	if !ok {
		return nil
	}
	return submatchIndex(res)
}

// FindStringSubmatchIndex is like FindSubmatchIndex but for strings.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// FindAll returns all successive non-overlapping matches of the pattern
// in b. If n >= 0, at most n matches are returned; n < 0 means
// unlimited. Returns nil if there is no match.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	results := match.SearchAll(r.d, b, r.pf)
	var out [][]byte
	for _, res := range results {
		if n >= 0 && len(out) >= n {
			break
		}
		start, end := res.Span()
		out = append(out, b[start:end])
	}
	return out
}

// FindAllString is like FindAll but for strings.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// FindAllIndex is like FindAll but returns [start, end) offset pairs.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	results := match.SearchAll(r.d, b, r.pf)
	var out [][]int
	for _, res := range results {
		if n >= 0 && len(out) >= n {
			break
		}
		start, end := res.Span()
		out = append(out, []int{start, end})
	}
	return out
}

// FindAllStringIndex is like FindAllIndex but for strings.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAllSubmatch is like FindAll but each match additionally carries its
// capture groups, in FindSubmatch's [][]byte shape.
func (r *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	if n == 0 {
		return nil
	}
	results := match.SearchAll(r.d, b, r.pf)
	var out [][][]byte
	for _, res := range results {
		if n >= 0 && len(out) >= n {
			break
		}
		out = append(out, submatchBytes(res, b))
	}
	return out
}

// FindAllStringSubmatch is like FindAllSubmatch but for strings.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	groups := r.FindAllSubmatch([]byte(s), n)
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, len(g))
		for j, b := range g {
			if b != nil {
				row[j] = string(b)
			}
		}
		out[i] = row
	}
	return out
}

func submatchBytes(res *match.Result, b []byte) [][]byte {
	out := make([][]byte, res.GroupCount()+1)
	for i := range out {
		start, end, ok := res.Group(i)
		if !ok {
			continue
		}
		out[i] = b[start:end]
	}
	return out
}

func submatchIndex(res *match.Result) []int {
	n := res.GroupCount() + 1
	out := make([]int, n*2)
	for i := 0; i < n; i++ {
		start, end, ok := res.Group(i)
		if !ok {
			out[i*2] = -1
			out[i*2+1] = -1
			continue
		}
		out[i*2] = start
		out[i*2+1] = end
	}
	return out
}
