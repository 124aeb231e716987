// Package dfa builds a deterministic finite automaton from a regex AST
// (package regex) via subset-style construction over its position
// bitmap, per the source toolkit's "regex configuration" approach: states
// are not sets of NFA states in the usual Thompson sense, they are the
// AST's own position-liveness vectors, stepped directly by each node's
// Step method.
package dfa

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/ictiobus/regex"
)

// alphabetSize is the alphabet this toolkit operates over: 7-bit bytes,
// matching the source toolkit's ASCII-only scope.
const alphabetSize = 128

// DFA is a table of configurations with a 128-wide transition table and
// an accept-transition matrix tagging each edge with the token id
// recognized on it, if any.
type DFA struct {
	// Transitions[state][b] is next_state+1, or 0 for reject.
	Transitions [][alphabetSize]int

	// AcceptTransitions[state][next] is the token id recognized on the
	// state->next edge, or 0 if that edge accepts nothing. Declaration
	// order ties are resolved by Build visiting earlier-declared rules
	// first.
	AcceptTransitions []map[int]int

	// Start is the index of the initial state (always 0).
	Start int

	// Accepting has one entry per state. Build sets only Accepting[Start],
	// to whether the regex matches the empty string; every other entry is
	// false. The lexer does not consult it: Lexer.Next never returns a
	// zero-length token.
	Accepting []bool

	// Configs holds, per state, the regex.Configuration that state was
	// built from -- needed by callers that query AST-level sentinel bits
	// (e.g. regex.AltTop's LeftFired/RightFired) against a given state.
	Configs []regex.Configuration
}

// Build runs the worklist subset construction described in the regex
// component design: starting from root's initial configuration, for each
// unique configuration and byte value 0..127, compute the successor; if
// non-empty, add it to the worklist (if new) and record the transition.
// totalPositions must equal the value most recently returned by
// root.AssignPositions.
func Build(root regex.Node, totalPositions int) (*DFA, error) {
	if totalPositions < 0 {
		return nil, fmt.Errorf("dfa: totalPositions must be >= 0")
	}

	d := &DFA{Start: 0}

	seen := map[string]int{}
	var confs []regex.Configuration

	index := func(conf regex.Configuration) int {
		key := conf.Key()
		if idx, ok := seen[key]; ok {
			return idx
		}
		idx := len(confs)
		seen[key] = idx
		confs = append(confs, conf)
		return idx
	}

	start := make(regex.Configuration, totalPositions)
	nullable := root.SeedInitial(start)
	index(start)

	var worklist []int
	worklist = append(worklist, 0)

	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		for len(d.Transitions) <= i {
			var row [alphabetSize]int
			d.Transitions = append(d.Transitions, row)
			d.AcceptTransitions = append(d.AcceptTransitions, nil)
			d.Accepting = append(d.Accepting, false)
		}

		cur := confs[i]
		for b := 0; b < alphabetSize; b++ {
			succ := make(regex.Configuration, totalPositions)
			var accept []int
			live := root.Step(cur, succ, &accept, byte(b))
			if !live || succ.Empty() {
				continue
			}

			before := len(confs)
			j := index(succ)
			if j == before {
				worklist = append(worklist, j)
			}

			d.Transitions[i][b] = j + 1

			if len(accept) > 0 {
				if d.AcceptTransitions[i] == nil {
					d.AcceptTransitions[i] = map[int]int{}
				}
				d.AcceptTransitions[i][j] = accept[0]
			}
		}
	}

	d.Accepting[0] = nullable
	d.Configs = confs

	return d, nil
}

// Step looks up the next state from state on byte b, returning (next, ok).
func (d *DFA) Step(state int, b byte) (int, bool) {
	if b >= alphabetSize {
		return 0, false
	}
	v := d.Transitions[state][b]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

// AcceptID returns the token id recognized transitioning from `from` to
// `to`, and whether that edge accepts at all.
func (d *DFA) AcceptID(from, to int) (int, bool) {
	m := d.AcceptTransitions[from]
	if m == nil {
		return 0, false
	}
	id, ok := m[to]
	return id, ok
}

// NumStates returns the number of states in the DFA.
func (d *DFA) NumStates() int { return len(d.Transitions) }

// String renders the DFA as a state/edge table, one row per state, edges
// collapsed into contiguous byte ranges to keep it readable.
func (d *DFA) String() string {
	data := [][]string{{"state", "accept", "edges"}}

	for i := range d.Transitions {
		accept := ""
		if d.Accepting[i] {
			accept = "eps"
		}
		if m := d.AcceptTransitions[i]; m != nil {
			for _, tok := range m {
				accept += " " + strconv.Itoa(tok)
			}
		}
		data = append(data, []string{strconv.Itoa(i), accept, edgeRanges(d.Transitions[i])})
	}

	return rosed.Edit("").InsertTableOpts(0, data, 24, rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}).String()
}

// edgeRanges collapses a transition row into "lo-hi:state" segments for
// consecutive bytes sharing a destination.
func edgeRanges(row [alphabetSize]int) string {
	var out string
	segStart := 0
	flush := func(end int) {
		if row[segStart] == 0 {
			return
		}
		if out != "" {
			out += " "
		}
		dest := row[segStart] - 1
		if end == segStart {
			out += fmt.Sprintf("%d:%d", segStart, dest)
		} else {
			out += fmt.Sprintf("%d-%d:%d", segStart, end, dest)
		}
	}
	for b := 1; b < alphabetSize; b++ {
		if row[b] != row[segStart] {
			flush(b - 1)
			segStart = b
		}
	}
	flush(alphabetSize - 1)
	return out
}
