package parse

import (
	"fmt"

	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/symbol"
)

// attemptRecovery repeatedly tries recoverPanicMode against tok, pulling
// a fresh lookahead and discarding the stale one whenever no recovery
// goal matches, until a goal is found, the input exhausts (EOI), or
// MaxRecoveryAttempts tokens have been discarded.
func (d *driver) attemptRecovery(tok lex.Token) (*Tree, lex.Token, bool) {
	max := d.opts.MaxRecoveryAttempts
	if max <= 0 {
		max = 1
	}

	for attempt := 0; attempt < max; attempt++ {
		if node, newTok, ok := d.recoverPanicMode(tok); ok {
			return node, newTok, true
		}
		if isEOI(tok) {
			return nil, tok, false
		}
		next, err := d.lx.Next(d.in)
		if err != nil {
			return nil, tok, false
		}
		tok = next
	}
	return nil, tok, false
}

// recoverPanicMode searches the state stack from top to bottom for a
// state with a GOTO entry on some non-terminal A such that the current
// lookahead is in FOLLOW(A) — a point at which "having already reduced
// up to an A" would let parsing continue. Non-terminals are tried in
// grammar declaration order at each depth, so the choice is
// deterministic whenever more than one candidate applies. On a match,
// every node above that depth is discarded into a single synthetic A
// node (Production == -1), the stack is truncated to that depth and
// advanced by the GOTO transition, and parsing resumes with the same
// lookahead token.
func (d *driver) recoverPanicMode(tok lex.Token) (*Tree, lex.Token, bool) {
	var declOrder []symbol.Symbol
	declared := map[symbol.Symbol]bool{}
	for _, p := range d.tbl.Grammar.Productions {
		if !declared[p.LHS] {
			declared[p.LHS] = true
			declOrder = append(declOrder, p.LHS)
		}
	}

	for depth := len(d.stateStack) - 1; depth >= 0; depth-- {
		state := d.stateStack[depth]
		for _, nt := range declOrder {
			ntIdx := d.tbl.NonTerminalIndex[nt]
			next := d.tbl.Goto[state][ntIdx]
			if next == 0 {
				continue
			}
			if !d.tbl.Follow.Has(nt, tok.Symbol) {
				continue
			}

			var discarded []*Tree
			if d.buildTree {
				discarded = append([]*Tree{}, d.nodeStack[depth:]...)
				d.nodeStack = d.nodeStack[:depth]
			}
			d.stateStack = d.stateStack[:depth+1]
			d.stateStack = append(d.stateStack, next-1)

			var node *Tree
			if d.buildTree {
				node = synthetic(nt, discarded)
			}
			if d.opts.Trace != nil {
				d.opts.Trace(fmt.Sprintf("recovered as %s at stack depth %d", nt, depth))
			}
			return node, tok, true
		}
	}
	return nil, lex.Token{}, false
}

func isEOI(tok lex.Token) bool {
	return tok.Symbol.Equal(symbol.EOI)
}
