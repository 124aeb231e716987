package grammar

import "github.com/dekarrin/ictiobus/symbol"

// SymbolSets is a map from symbol to a set of symbols, used for both
// FIRST and FOLLOW results.
type SymbolSets map[symbol.Symbol]map[symbol.Symbol]bool

// Has reports whether b is a member of the set for a.
func (s SymbolSets) Has(a, b symbol.Symbol) bool {
	set, ok := s[a]
	return ok && set[b]
}

// Of returns the set of symbols associated with a, possibly empty.
func (s SymbolSets) Of(a symbol.Symbol) []symbol.Symbol {
	set := s[a]
	out := make([]symbol.Symbol, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	return out
}

func (s SymbolSets) ensure(a symbol.Symbol) map[symbol.Symbol]bool {
	set, ok := s[a]
	if !ok {
		set = map[symbol.Symbol]bool{}
		s[a] = set
	}
	return set
}

func (s SymbolSets) addAll(a symbol.Symbol, src map[symbol.Symbol]bool) bool {
	dst := s.ensure(a)
	changed := false
	for sym := range src {
		if !dst[sym] {
			dst[sym] = true
			changed = true
		}
	}
	return changed
}

// FIRST computes FIRST(X) for every symbol X of the grammar. A finalized
// grammar has no epsilon productions, so every terminal's FIRST set is
// just itself, and each non-terminal's FIRST set is the union, over its
// productions A -> Xβ, of FIRST(X) for the production's leading symbol.
//
// Ported from lr_parser::build_first_sets (purple dragon book, pp. 221),
// simplified by the absence of epsilon productions: there is no need to
// propagate a nullable marker once the leading symbol is known to always
// derive a non-empty string.
func (g *Grammar) FIRST() SymbolSets {
	first := SymbolSets{}
	for t := range g.terminals {
		first.ensure(t)[t] = true
	}

	for {
		changed := false
		for _, p := range g.Productions {
			lead := p.RHS[0]
			if g.terminals[lead] {
				if first.addAll(p.LHS, map[symbol.Symbol]bool{lead: true}) {
					changed = true
				}
				continue
			}
			if first.addAll(p.LHS, first[lead]) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return first
}

// FOLLOW computes FOLLOW(A) for every non-terminal A, given the FIRST
// sets already computed for the grammar. For every production
// A -> αXβ: if β is non-empty, FOLLOW(X) gains FIRST(β's leading
// symbol) (equivalently FIRST(β), since the grammar has no epsilon
// productions); if β is empty, FOLLOW(X) gains FOLLOW(A). Every
// occurrence of X across every RHS contributes, not only the first.
//
// Ported from lr_parser::build_follow_sets (purple dragon book, pp. 222).
func (g *Grammar) FOLLOW(first SymbolSets) SymbolSets {
	follow := SymbolSets{}
	follow.ensure(g.Start)[symbol.EOI] = true

	for {
		changed := false
		for _, p := range g.Productions {
			for i, x := range p.RHS {
				if !g.nonTerminals[x] {
					continue
				}
				if i+1 < len(p.RHS) {
					next := p.RHS[i+1]
					var contribution map[symbol.Symbol]bool
					if g.terminals[next] {
						contribution = map[symbol.Symbol]bool{next: true}
					} else {
						contribution = first[next]
					}
					if follow.addAll(x, contribution) {
						changed = true
					}
				} else {
					if follow.addAll(x, follow[p.LHS]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return follow
}
