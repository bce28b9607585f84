// Package dfa builds a deterministic finite automaton directly from a
// syntax.Term by repeated Brzozowski differentiation, rather than by
// compiling a Thompson NFA and subset-constructing it. Each DFA state
// corresponds to one canonical derivative term; states are discovered by
// a worklist and interned by a string key so that structurally identical
// derivatives collapse onto the same state, guaranteeing termination
// over the finite set of canonical terms.
//
// Transitions carry the capture-group edit list produced alongside the
// derivative that created them, so a match driver can replay group
// boundaries by walking the path taken through the DFA without ever
// re-examining the original Term.
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clintolsen/pyre/syntax"
)

// StateID identifies a DFA state by its index into DFA.states.
type StateID int32

// Transition is one outgoing edge of a state: the inclusive byte range
// [Lo, Hi] it covers (a block of the state's syntax.Partition), the state
// it leads to, and the capture edits crossing it applies.
type Transition struct {
	Lo, Hi byte
	Next   StateID
	Edits  []syntax.Edit
}

// State is one DFA state: whether it accepts (its term is nullable) and
// its outgoing transitions, sorted by Lo for binary search.
type State struct {
	Accept      bool
	Transitions []Transition
	term        syntax.Term
}

// DFA is a complete, eagerly-built deterministic automaton.
type DFA struct {
	states     []State
	start      StateID
	groupCount int
}

// Build constructs a DFA recognizing t, with groupCount capture groups
// (not counting the implicit group 0), using a worklist that discovers
// states by taking the derivative of each frontier term with respect to
// every byte class in that term's partition, interning each resulting
// term by a canonical string key so structurally identical derivatives
// collapse onto a single state. Construction is eager and complete: once
// Build returns, every reachable state already exists, there is no
// on-demand discovery left to do during a search.
func Build(t syntax.Term, groupCount int, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interned := make(map[string]StateID)
	var terms []syntax.Term
	var states []State

	intern := func(term syntax.Term) (StateID, bool, error) {
		key := syntax.Key(term)
		if id, ok := interned[key]; ok {
			return id, false, nil
		}
		if len(terms) >= cfg.MaxStates {
			return 0, false, ErrStateLimitExceeded
		}
		id := StateID(len(terms))
		interned[key] = id
		terms = append(terms, term)
		states = append(states, State{})
		return id, true, nil
	}

	startID, _, err := intern(t)
	if err != nil {
		return nil, err
	}

	queue := []StateID{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		term := terms[id]

		blocks := syntax.Partition(term)
		transitions := make([]Transition, 0, len(blocks))
		for _, blk := range blocks {
			rep := blk.Lo
			var acc *syntax.CaptureAccum
			if cfg.TrackCaptures {
				acc = syntax.NewCaptureAccum()
			}
			next := syntax.Derivative(term, rep, acc)

			nid, fresh, err := intern(next)
			if err != nil {
				return nil, err
			}
			if fresh {
				queue = append(queue, nid)
			}

			var edits []syntax.Edit
			if acc != nil {
				edits = acc.Edits()
			}
			transitions = append(transitions, Transition{Lo: blk.Lo, Hi: blk.Hi, Next: nid, Edits: edits})
		}

		states[id] = State{
			Accept:      syntax.Nullable(term),
			Transitions: transitions,
			term:        term,
		}
	}

	return &DFA{states: states, start: startID, groupCount: groupCount}, nil
}

// Start returns the DFA's initial state.
func (d *DFA) Start() StateID { return d.start }

// NumStates returns the number of states in d.
func (d *DFA) NumStates() int { return len(d.states) }

// GroupCount returns the number of capture groups the DFA tracks, not
// counting the implicit group 0.
func (d *DFA) GroupCount() int { return d.groupCount }

// IsAccept reports whether id is an accepting state.
func (d *DFA) IsAccept(id StateID) bool {
	return d.states[id].Accept
}

// Step follows the transition out of id for byte c, returning the next
// state, the capture edits crossed, and whether a transition exists (it
// always does: the partition at build time covers all of Σ, so this only
// ever returns false for an out-of-range StateID).
func (d *DFA) Step(id StateID, c byte) (StateID, []syntax.Edit, bool) {
	if int(id) < 0 || int(id) >= len(d.states) {
		return 0, nil, false
	}
	trans := d.states[id].Transitions
	i := sort.Search(len(trans), func(i int) bool { return trans[i].Hi >= c })
	if i == len(trans) || trans[i].Lo > c {
		return 0, nil, false
	}
	t := trans[i]
	return t.Next, t.Edits, true
}

// String renders a compact per-state dump of the automaton, used by the
// CLI's --debug flag: state count, accept flags, byte-range transitions,
// and which capture edits fire on each.
func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dfa: %d states, start=%d, groups=%d\n", len(d.states), d.start, d.groupCount)
	for id, s := range d.states {
		accept := ""
		if s.Accept {
			accept = " accept"
		}
		fmt.Fprintf(&b, "  state %d%s  (%s)\n", id, accept, s.term)
		for _, t := range s.Transitions {
			editStr := ""
			if len(t.Edits) > 0 {
				parts := make([]string, len(t.Edits))
				for i, e := range t.Edits {
					parts[i] = fmt.Sprintf("%s(%d)", e.Edge, e.Group)
				}
				editStr = " [" + strings.Join(parts, ",") + "]"
			}
			fmt.Fprintf(&b, "    [%#02x-%#02x] -> %d%s\n", t.Lo, t.Hi, t.Next, editStr)
		}
	}
	return b.String()
}
