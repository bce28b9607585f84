// Package match drives a dfa.DFA over input bytes, implementing anchored
// match and scanning search operations. Because a derivative-built DFA
// is fully determinized up front (dfa.Build already folded every
// alternative into one state per residual language), driving it is a
// single linear walk rather than the multi-thread simulation an NFA-based
// engine needs.
package match

import (
	"github.com/clintolsen/pyre/dfa"
	"github.com/clintolsen/pyre/prefilter"
	"github.com/clintolsen/pyre/syntax"
)

// Result reports a successful match: the overall span (group 0) plus any
// numbered capture-group spans the pattern defines.
type Result struct {
	slots dfa.Slots
}

// Span returns the overall match's [start, end) byte offsets.
func (r *Result) Span() (start, end int) {
	start, end, _ = r.slots.Span(0)
	return start, end
}

// Group returns the [start, end) byte offsets captured by the given group
// number (1-based; group 0 is the overall match, also reachable here).
// ok is false if the group didn't participate in the match — e.g. the
// unmatched side of an alternation, or a group inside a repetition that
// never ran.
func (r *Result) Group(id int) (start, end int, ok bool) {
	return r.slots.Span(id)
}

// GroupCount returns the number of numbered capture groups (not counting
// group 0).
func (r *Result) GroupCount() int {
	return r.slots.GroupCount()
}

// Match runs the DFA anchored at the start of input and reports the
// longest accepting prefix: the walk keeps consuming bytes past the
// first accept so long as transitions remain, remembering the last
// position at which the current state was accepting, since a derivative
// DFA's single state already folds together every alternative live at
// that point (there is no second "path" to backtrack into the way an
// NFA would need to).
func Match(d *dfa.DFA, input []byte) (*Result, bool) {
	return matchFrom(d, input, 0)
}

func matchFrom(d *dfa.DFA, input []byte, start int) (*Result, bool) {
	id := d.Start()
	slots := dfa.NewSlots(d.GroupCount())
	slots.Set(0, true, start)

	bestEnd := -1
	var bestSlots dfa.Slots
	if d.IsAccept(id) {
		bestEnd = start
		bestSlots = slots.Clone()
		bestSlots.Set(0, false, start)
	}

	pos := start
	for pos < len(input) {
		next, edits, ok := d.Step(id, input[pos])
		if !ok {
			break
		}
		for _, e := range edits {
			if e.Edge == syntax.EdgeOpen {
				slots.Set(e.Group, true, pos)
			} else {
				slots.Set(e.Group, false, pos+1)
			}
		}
		id = next
		pos++
		if d.IsAccept(id) {
			bestEnd = pos
			bestSlots = slots.Clone()
			bestSlots.Set(0, false, pos)
		}
	}

	if bestEnd < 0 {
		return nil, false
	}
	return &Result{slots: bestSlots}, true
}

// trackedPrefilter is satisfied by a prefilter.Tracker-wrapped Prefilter
// (see prefilter.WrapWithTracking): it can report whether it has retired
// itself after too many false-positive candidates, and it wants to know
// when a candidate it produced turned into a real match.
type trackedPrefilter interface {
	IsActive() bool
	ConfirmMatch()
}

// Search scans input for the first (leftmost) match starting at or after
// the given offset, using pf (which may be nil) to skip ahead to
// candidate start positions before attempting an anchored Match at each
// one. If pf tracks its own effectiveness and has retired itself, Search
// falls back to an unfiltered byte-by-byte scan rather than trusting it
// for further candidates.
func Search(d *dfa.DFA, input []byte, from int, pf prefilter.Prefilter) (*Result, bool) {
	tracked, isTracked := pf.(trackedPrefilter)
	start := from
	for start <= len(input) {
		usedPrefilter := pf != nil && (!isTracked || tracked.IsActive())
		if usedPrefilter {
			candidate := pf.Find(input, start)
			if candidate < 0 {
				return nil, false
			}
			start = candidate
		}
		if res, ok := matchFrom(d, input, start); ok {
			if usedPrefilter && isTracked {
				tracked.ConfirmMatch()
			}
			return res, true
		}
		start++
	}
	return nil, false
}

// SearchAll returns every non-overlapping leftmost match in input, in
// order. A zero-length match advances the scan position by one byte to
// guarantee progress.
func SearchAll(d *dfa.DFA, input []byte, pf prefilter.Prefilter) []*Result {
	var results []*Result
	pos := 0
	for pos <= len(input) {
		res, ok := Search(d, input, pos, pf)
		if !ok {
			break
		}
		results = append(results, res)
		start, end := res.Span()
		if end > start {
			pos = end
		} else {
			pos = start + 1
		}
	}
	return results
}
