// Package grammar implements the context-free grammar data model the LR
// table builder and parse driver operate over: an ordered list of
// productions plus the terminal/non-terminal/symbol sets derived from
// them by Finalize.
package grammar

import (
	"fmt"

	"github.com/dekarrin/ictiobus/symbol"
)

// Production is a single rewrite rule LHS -> RHS. RHS is never empty;
// epsilon productions are disallowed by this toolkit (see spec non-goals).
type Production struct {
	LHS symbol.Symbol
	RHS []symbol.Symbol
}

func (p Production) String() string {
	s := p.LHS.String() + " ->"
	for _, sym := range p.RHS {
		s += " " + sym.String()
	}
	return s
}

// Equal reports whether p and o have the same LHS and RHS, symbol for
// symbol.
func (p Production) Equal(o Production) bool {
	if !p.LHS.Equal(o.LHS) || len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if !p.RHS[i].Equal(o.RHS[i]) {
			return false
		}
	}
	return true
}

// Grammar is a start symbol plus an ordered sequence of productions.
// Productions are identified by their index in that sequence: this index
// is the production_id referenced by LR items, ACTION table reduce
// entries, and parse tree production nodes.
type Grammar struct {
	Start       symbol.Symbol
	Productions []Production

	// derived by Finalize
	terminals     map[symbol.Symbol]bool
	nonTerminals  map[symbol.Symbol]bool
	allSymbols    map[symbol.Symbol]bool
	finalized     bool
	startRuleID   int
}

// New returns an empty Grammar rooted at start. Call AddProduction to
// populate it, then Finalize before use.
func New(start symbol.Symbol) *Grammar {
	return &Grammar{Start: start, startRuleID: -1}
}

// AddProduction appends a production to the grammar. It must be called
// before Finalize.
func (g *Grammar) AddProduction(lhs symbol.Symbol, rhs ...symbol.Symbol) (int, error) {
	if g.finalized {
		return -1, fmt.Errorf("grammar: cannot add productions after Finalize")
	}
	if len(rhs) == 0 {
		return -1, fmt.Errorf("grammar: production for %s has empty RHS (epsilon productions are not supported)", lhs)
	}
	if lhs.Equal(symbol.EOI) {
		return -1, fmt.Errorf("grammar: EOI cannot appear as a production LHS")
	}
	id := len(g.Productions)
	g.Productions = append(g.Productions, Production{LHS: lhs, RHS: rhs})
	return id, nil
}

// Finalize derives non_terminals, all_symbols, and terminals from the
// productions added so far, and validates the grammar's invariants:
// exactly one production whose LHS is the start symbol, every RHS
// non-empty (enforced already at AddProduction time), and no production
// rewriting EOI.
func (g *Grammar) Finalize() error {
	g.nonTerminals = map[symbol.Symbol]bool{}
	g.allSymbols = map[symbol.Symbol]bool{}
	g.startRuleID = -1

	startCount := 0
	for i, p := range g.Productions {
		g.nonTerminals[p.LHS] = true
		g.allSymbols[p.LHS] = true
		for _, s := range p.RHS {
			g.allSymbols[s] = true
		}
		if p.LHS.Equal(g.Start) {
			startCount++
			g.startRuleID = i
		}
	}

	if startCount == 0 {
		return fmt.Errorf("grammar: no production has LHS equal to the start symbol %s", g.Start)
	}
	if startCount > 1 {
		return fmt.Errorf("grammar: %d productions have LHS equal to the start symbol %s, expected exactly one", startCount, g.Start)
	}

	g.terminals = map[symbol.Symbol]bool{}
	for s := range g.allSymbols {
		if !g.nonTerminals[s] {
			g.terminals[s] = true
		}
	}
	// EOI is always a terminal of the grammar even if it never literally
	// occurs in a RHS (the parse driver always appends it to the token
	// stream).
	g.terminals[symbol.EOI] = true
	g.allSymbols[symbol.EOI] = true

	g.finalized = true
	return nil
}

// StartRuleID returns the index of the unique production whose LHS is
// the start symbol. Finalize must have succeeded first.
func (g *Grammar) StartRuleID() int { return g.startRuleID }

// IsTerminal reports whether s is a terminal of this (finalized) grammar.
func (g *Grammar) IsTerminal(s symbol.Symbol) bool { return g.terminals[s] }

// IsNonTerminal reports whether s is a non-terminal of this (finalized)
// grammar.
func (g *Grammar) IsNonTerminal(s symbol.Symbol) bool { return g.nonTerminals[s] }

// Terminals returns the finalized terminal set.
func (g *Grammar) Terminals() []symbol.Symbol { return setSlice(g.terminals) }

// NonTerminals returns the finalized non-terminal set.
func (g *Grammar) NonTerminals() []symbol.Symbol { return setSlice(g.nonTerminals) }

// AllSymbols returns the union of terminals and non-terminals.
func (g *Grammar) AllSymbols() []symbol.Symbol { return setSlice(g.allSymbols) }

func setSlice(m map[symbol.Symbol]bool) []symbol.Symbol {
	out := make([]symbol.Symbol, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out
}

// ProductionsFor returns the indices of every production whose LHS is A,
// in declaration order.
func (g *Grammar) ProductionsFor(a symbol.Symbol) []int {
	var ids []int
	for i, p := range g.Productions {
		if p.LHS.Equal(a) {
			ids = append(ids, i)
		}
	}
	return ids
}
