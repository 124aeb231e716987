package lr

import (
	"fmt"
	"sort"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbol"
	"github.com/dekarrin/rosed"
)

// ConflictError reports a shift-reduce or reduce-reduce conflict found
// while building the ACTION table. Per this toolkit's non-goal of a full
// LALR(1)/LR(1) generator, there is no precedence or associativity
// mechanism: a conflict either aborts construction with this error (Build,
// or BuildWithOptions with conflictsFatal true) or is resolved by a fixed
// rule and recorded in Tables.Warnings.
type ConflictError struct {
	State int
	Kind  string // "shift-reduce" or "reduce-reduce"
	Msg   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("lr: %s conflict in state %d: %s", e.Kind, e.State, e.Msg)
}

// Tables is the compiled SLR(1) ACTION/GOTO table set for a grammar,
// plus the FIRST/FOLLOW sets and canonical collection used to build it
// (retained for printing and debugging, as lr_parser does in the source
// toolkit).
type Tables struct {
	Grammar *grammar.Grammar

	States []ItemSet

	// Action[state][terminalIndex] is 0 (error), n+1 (shift to state n),
	// or -(p+1) (reduce by production p).
	Action [][]int

	// Goto[state][nonTerminalIndex] is 0 or n+1 (goto state n).
	Goto [][]int

	RuleLengths  []int
	ReduceSymbol []symbol.Symbol

	Terminals        []symbol.Symbol
	NonTerminals     []symbol.Symbol
	TerminalIndex    map[symbol.Symbol]int
	NonTerminalIndex map[symbol.Symbol]int

	AcceptingState int

	First  grammar.SymbolSets
	Follow grammar.SymbolSets

	// Warnings collects one entry per conflict resolved by preferring
	// shift over reduce, or the first-declared production over a later
	// one, when BuildWithOptions was called with conflictsFatal false.
	// Empty when the grammar is unambiguous.
	Warnings []string
}

func bySymbolID(syms []symbol.Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Less(syms[j]) })
}

// Build constructs the canonical collection of LR(0) item sets for g and
// the SLR(1) ACTION/GOTO tables derived from it. g must already be
// Finalize-d.
//
// Ported from lr_parser<symbol_type> (build_first_sets, build_follow_sets,
// build_configuration_set, build_transition_table).
func Build(g *grammar.Grammar) (*Tables, error) {
	return BuildWithTrace(g, nil)
}

// BuildWithTrace is Build with an optional nil-safe trace hook, invoked at
// each new state discovered and at each accept, reduce and shift entry
// filled in, mirroring the source toolkit's
// notifyTrace/notifyStatePeek/notifyAction callbacks.
func BuildWithTrace(g *grammar.Grammar, trace func(string)) (*Tables, error) {
	return BuildWithOptions(g, trace, true)
}

// BuildWithOptions is Build with a trace hook and a conflictsFatal switch.
// When conflictsFatal is true (as Build passes it), any shift-reduce or
// reduce-reduce conflict is a fatal ConflictError. When false, conflicts are
// resolved the same way the source toolkit's allowAmbig mode does: shift is
// preferred over reduce, and of several simultaneously reducible
// productions the first in declaration order wins; each resolution is
// appended to Tables.Warnings instead of aborting construction.
func BuildWithOptions(g *grammar.Grammar, trace func(string), conflictsFatal bool) (*Tables, error) {
	notify := func(msg string) {
		if trace != nil {
			trace(msg)
		}
	}

	terminals := g.Terminals()
	nonTerminals := g.NonTerminals()
	bySymbolID(terminals)
	bySymbolID(nonTerminals)

	terminalIndex := map[symbol.Symbol]int{}
	for i, t := range terminals {
		terminalIndex[t] = i
	}
	nonTerminalIndex := map[symbol.Symbol]int{}
	for i, nt := range nonTerminals {
		nonTerminalIndex[nt] = i
	}

	first := g.FIRST()
	follow := g.FOLLOW(first)

	ruleLengths := make([]int, len(g.Productions))
	reduceSymbol := make([]symbol.Symbol, len(g.Productions))
	for i, p := range g.Productions {
		ruleLengths[i] = len(p.RHS)
		reduceSymbol[i] = p.LHS
	}

	startItem := Item{Production: g.StartRuleID(), Dot: 0}
	startSet := closure(newItemSet(startItem), g)

	states := []ItemSet{startSet}
	seen := map[string]int{startSet.Key(): 0}
	transitions := []map[symbol.Symbol]int{{}}

	allSymbols := append(append([]symbol.Symbol{}, terminals...), nonTerminals...)

	worklist := []int{0}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		for _, sym := range allSymbols {
			succ := gotoSet(states[i], sym, g)
			if len(succ) == 0 {
				continue
			}
			key := succ.Key()
			j, ok := seen[key]
			if !ok {
				j = len(states)
				seen[key] = j
				states = append(states, succ)
				transitions = append(transitions, map[symbol.Symbol]int{})
				worklist = append(worklist, j)
				notify(fmt.Sprintf("discovered state %d via %s from state %d", j, sym, i))
			}
			transitions[i][sym] = j
		}
	}

	t := &Tables{
		Grammar:          g,
		States:           states,
		RuleLengths:      ruleLengths,
		ReduceSymbol:     reduceSymbol,
		Terminals:        terminals,
		NonTerminals:     nonTerminals,
		TerminalIndex:    terminalIndex,
		NonTerminalIndex: nonTerminalIndex,
		First:            first,
		Follow:           follow,
		AcceptingState:   -1,
	}

	t.Action = make([][]int, len(states))
	t.Goto = make([][]int, len(states))
	for i := range states {
		t.Action[i] = make([]int, len(terminals))
		t.Goto[i] = make([]int, len(nonTerminals))
	}

	for i, state := range states {
		reducible := reducibleItems(state, g)
		if len(reducible) > 1 {
			if conflictsFatal {
				return nil, &ConflictError{
					State: i, Kind: "reduce-reduce",
					Msg: fmt.Sprintf("productions %v are all reducible in the same state", productionIDs(reducible)),
				}
			}
			sort.Slice(reducible, func(a, b int) bool { return reducible[a].Production < reducible[b].Production })
			t.Warnings = append(t.Warnings, fmt.Sprintf("state %d: productions %v all reducible, keeping %d (first declared)", i, productionIDs(reducible), reducible[0].Production))
			reducible = reducible[:1]
		}
		if len(reducible) == 1 {
			pid := reducible[0].Production
			lhs := g.Productions[pid].LHS
			if lhs.Equal(g.Start) {
				t.AcceptingState = i
				notify(fmt.Sprintf("state %d accepts", i))
			} else {
				for _, term := range follow.Of(lhs) {
					idx := terminalIndex[term]
					t.Action[i][idx] = -(pid + 1)
				}
				notify(fmt.Sprintf("state %d reduces by production %d on FOLLOW(%s)", i, pid, lhs))
			}
		}

		for sym, j := range transitions[i] {
			if g.IsTerminal(sym) {
				idx := terminalIndex[sym]
				if t.Action[i][idx] != 0 {
					if conflictsFatal {
						return nil, &ConflictError{
							State: i, Kind: "shift-reduce",
							Msg: fmt.Sprintf("both a reduce and a shift are possible on %s", sym),
						}
					}
					t.Warnings = append(t.Warnings, fmt.Sprintf("state %d: shift-reduce conflict on %s, preferring shift", i, sym))
				}
				t.Action[i][idx] = j + 1
				notify(fmt.Sprintf("state %d shifts to %d on %s", i, j, sym))
			} else {
				t.Goto[i][nonTerminalIndex[sym]] = j + 1
			}
		}
	}

	if t.AcceptingState < 0 {
		return nil, fmt.Errorf("lr: no state reduces the start production; grammar is not SLR(1) or is malformed")
	}

	return t, nil
}

func productionIDs(items []Item) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.Production
	}
	return ids
}

// String renders the ACTION/GOTO tables as a text grid, in the style of
// the source toolkit's LRParser::print.
func (t *Tables) String() string {
	headers := []string{"state"}
	for _, term := range t.Terminals {
		headers = append(headers, "A:"+term.String())
	}
	headers = append(headers, "|")
	for _, nt := range t.NonTerminals {
		headers = append(headers, "G:"+nt.String())
	}

	data := [][]string{headers}
	for i := range t.States {
		row := []string{fmt.Sprintf("%d", i)}
		for j := range t.Terminals {
			row = append(row, actionCell(t.Action[i][j]))
		}
		row = append(row, "|")
		for j := range t.NonTerminals {
			cell := ""
			if v := t.Goto[i][j]; v != 0 {
				cell = fmt.Sprintf("%d", v-1)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func actionCell(a int) string {
	switch {
	case a == 0:
		return ""
	case a > 0:
		return fmt.Sprintf("s%d", a-1)
	default:
		return fmt.Sprintf("r%d", -a-1)
	}
}
