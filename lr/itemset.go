package lr

import (
	"sort"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbol"
)

// ItemSet is a set of items, compared by membership (order does not
// matter for equality, but Sorted gives a deterministic enumeration).
type ItemSet map[Item]bool

func newItemSet(items ...Item) ItemSet {
	s := ItemSet{}
	for _, it := range items {
		s[it] = true
	}
	return s
}

// Sorted returns the items in s in a deterministic order.
func (s ItemSet) Sorted() []Item {
	out := make([]Item, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Key returns a canonical string usable to compare item sets for
// equality when deduplicating the canonical collection.
func (s ItemSet) Key() string {
	sorted := s.Sorted()
	buf := make([]byte, 0, len(sorted)*8)
	for _, it := range sorted {
		buf = append(buf, byte(it.Production), byte(it.Production>>8), byte(it.Dot))
	}
	return string(buf)
}

// dotSymbol returns the symbol immediately after the dot in it, and
// whether one exists (false if the dot is at the end of the RHS).
func dotSymbol(it Item, g *grammar.Grammar) (symbol.Symbol, bool) {
	rhs := g.Productions[it.Production].RHS
	if it.Dot >= len(rhs) {
		var zero symbol.Symbol
		return zero, false
	}
	return rhs[it.Dot], true
}

// closure completes a partial item set: for each item [A -> a.Bb] where B
// is a non-terminal, add [B -> .g] for every production of B, iterating
// until stable.
//
// Ported from lr_parser::close_parser_state.
func closure(items ItemSet, g *grammar.Grammar) ItemSet {
	out := ItemSet{}
	for it := range items {
		out[it] = true
	}

	changed := true
	for changed {
		changed = false
		for it := range out {
			sym, ok := dotSymbol(it, g)
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}
			for _, pid := range g.ProductionsFor(sym) {
				cand := Item{Production: pid, Dot: 0}
				if !out[cand] {
					out[cand] = true
					changed = true
				}
			}
		}
	}
	return out
}

// gotoSet advances the dot past sym in every item of items whose dot
// faces sym, then closes the result.
//
// Ported from lr_parser::compute_successor_parser_state.
func gotoSet(items ItemSet, sym symbol.Symbol, g *grammar.Grammar) ItemSet {
	moved := ItemSet{}
	for it := range items {
		s, ok := dotSymbol(it, g)
		if ok && s.Equal(sym) {
			moved[Item{Production: it.Production, Dot: it.Dot + 1}] = true
		}
	}
	if len(moved) == 0 {
		return moved
	}
	return closure(moved, g)
}

// reducibleItems returns every item in items whose dot is at the end of
// its production's RHS.
func reducibleItems(items ItemSet, g *grammar.Grammar) []Item {
	var out []Item
	for it := range items {
		if it.Dot == len(g.Productions[it.Production].RHS) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
