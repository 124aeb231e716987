package parse

import (
	"fmt"

	"github.com/dekarrin/ictiobus/charinput"
	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/symbol"
)

// Options configures the parse driver's error recovery.
type Options struct {
	// Recover enables panic-mode recovery; when false the driver stops
	// and returns the first SyntaxError it hits.
	Recover bool

	// MaxRecoveryAttempts bounds how many lookahead tokens a single
	// recovery search will discard before giving up.
	MaxRecoveryAttempts int

	// RecentWindow bounds how many previously-shifted terminals a
	// SyntaxError's RecentTerminals retains.
	RecentWindow int

	// Trace, if non-nil, is called with a one-line description of every
	// shift, reduce, and recovery decision the driver makes.
	Trace func(string)
}

// DefaultOptions returns sensible defaults: recovery on, a generous
// discard budget, and an 8-terminal trailing window.
func DefaultOptions() Options {
	return Options{Recover: true, MaxRecoveryAttempts: 8, RecentWindow: 8}
}

// Parse runs the table-driven shift-reduce loop over tokens from lx
// against in, building a Tree. The start production itself is never
// reduced, so the returned Tree is the node for the first symbol of its
// RHS; any later RHS symbols (such as EOI) are discarded.
// Every SyntaxError hit along the way (including ones successfully
// recovered from) is returned alongside the tree; a non-nil error is
// returned only when parsing could not continue (an unrecovered syntax
// error, or a lexer/internal failure).
func Parse(tbl *lr.Tables, lx *lex.Lexer, in *charinput.Input, opts Options) (*Tree, []*SyntaxError, error) {
	d := &driver{tbl: tbl, lx: lx, in: in, buildTree: true, opts: opts}
	return d.run()
}

// Validate runs the same driver as Parse but never allocates a tree,
// for callers that only need to know whether input is well-formed.
func Validate(tbl *lr.Tables, lx *lex.Lexer, in *charinput.Input, opts Options) (bool, []*SyntaxError, error) {
	d := &driver{tbl: tbl, lx: lx, in: in, buildTree: false, opts: opts}
	_, errs, err := d.run()
	return err == nil, errs, err
}

type driver struct {
	tbl       *lr.Tables
	lx        *lex.Lexer
	in        *charinput.Input
	buildTree bool
	opts      Options

	stateStack []int
	nodeStack  []*Tree
}

func (d *driver) run() (*Tree, []*SyntaxError, error) {
	d.stateStack = []int{0}
	window := d.opts.RecentWindow
	if window <= 0 {
		window = 8
	}
	recent := newRecentRing(window)

	notify := func(msg string) {
		if d.opts.Trace != nil {
			d.opts.Trace(msg)
		}
	}

	var errs []*SyntaxError

	tok, err := d.lx.Next(d.in)
	if err != nil {
		return nil, errs, err
	}

	for {
		state := d.stateStack[len(d.stateStack)-1]
		if state == d.tbl.AcceptingState {
			if d.buildTree {
				if len(d.nodeStack) == 0 {
					return nil, errs, fmt.Errorf("parse: internal error: accepting state reached with an empty node stack")
				}
				// The start production is never itself reduced (reaching
				// it is what marks the accepting state), so its RHS
				// symbols are still individually on the stack. The node
				// we want is the first of them; anything after it (EOI,
				// and any other trailing symbols of the start rule) is
				// discarded.
				return d.nodeStack[0], errs, nil
			}
			return nil, errs, nil
		}

		action := 0
		if idx, ok := d.tbl.TerminalIndex[tok.Symbol]; ok {
			action = d.tbl.Action[state][idx]
		}

		switch {
		case action > 0:
			notify(fmt.Sprintf("shift %s -> state %d", tok.Symbol, action-1))
			d.stateStack = append(d.stateStack, action-1)
			if d.buildTree {
				d.nodeStack = append(d.nodeStack, leaf(tok))
			}
			recent.push(tok.Symbol)

			next, nerr := d.lx.Next(d.in)
			if nerr != nil {
				return nil, errs, nerr
			}
			tok = next

		case action < 0:
			pid := -action - 1
			notify(fmt.Sprintf("reduce by production %d", pid))
			rhsLen := d.tbl.RuleLengths[pid]
			d.stateStack = d.stateStack[:len(d.stateStack)-rhsLen]

			var children []*Tree
			if d.buildTree {
				children = append([]*Tree{}, d.nodeStack[len(d.nodeStack)-rhsLen:]...)
				d.nodeStack = d.nodeStack[:len(d.nodeStack)-rhsLen]
			}

			lhs := d.tbl.ReduceSymbol[pid]
			newTop := d.stateStack[len(d.stateStack)-1]
			ntIdx := d.tbl.NonTerminalIndex[lhs]
			next := d.tbl.Goto[newTop][ntIdx]
			if next == 0 {
				return nil, errs, fmt.Errorf("parse: internal error: no GOTO entry for state %d on %s", newTop, lhs)
			}
			d.stateStack = append(d.stateStack, next-1)
			if d.buildTree {
				d.nodeStack = append(d.nodeStack, production(lhs, pid, children))
			}

		default:
			se := d.syntaxError(state, tok, recent.items())
			errs = append(errs, se)

			if !d.opts.Recover {
				return nil, errs, se
			}

			node, newTok, ok := d.attemptRecovery(tok)
			if !ok {
				return nil, errs, se
			}
			se.Recovered = true
			if d.buildTree {
				d.nodeStack = append(d.nodeStack, node)
			}
			tok = newTok
		}
	}
}

func (d *driver) syntaxError(state int, tok lex.Token, recent []symbol.Symbol) *SyntaxError {
	var expected []symbol.Symbol
	for _, term := range d.tbl.Terminals {
		idx := d.tbl.TerminalIndex[term]
		if d.tbl.Action[state][idx] != 0 {
			expected = append(expected, term)
		}
	}
	return &SyntaxError{
		Line:            tok.Line,
		Column:          tok.Column,
		Got:             tok.Symbol,
		Expected:        expected,
		RecentTerminals: recent,
	}
}
