// Package parse drives a compiled lr.Tables over a lex.Lexer's token
// stream, building a parse tree by shift-reduce, with panic-mode error
// recovery when the table has no action for the current state and
// lookahead.
package parse

import (
	"strings"

	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/symbol"
)

// Tree is a parse tree node. A Leaf node (Token != nil) wraps a single
// token consumed by a shift. A Production node wraps the children
// matched by one production's RHS, identified by Production (an index
// into the grammar's production list). A node created during panic-mode
// recovery has Synthetic set and Production == -1, since it was not
// actually derived by any grammar production.
type Tree struct {
	Symbol     symbol.Symbol
	Production int
	Synthetic  bool
	Token      *lex.Token
	Children   []*Tree
}

// IsLeaf reports whether n is a leaf (terminal) node.
func (n *Tree) IsLeaf() bool { return n.Token != nil }

func leaf(tok lex.Token) *Tree {
	return &Tree{Symbol: tok.Symbol, Production: -1, Token: &tok}
}

func production(sym symbol.Symbol, pid int, children []*Tree) *Tree {
	return &Tree{Symbol: sym, Production: pid, Children: children}
}

func synthetic(sym symbol.Symbol, children []*Tree) *Tree {
	return &Tree{Symbol: sym, Production: -1, Synthetic: true, Children: children}
}

// String renders the tree as an indented outline, in the style of the
// source toolkit's debug AST dumps.
func (n *Tree) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Tree) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch {
	case n.IsLeaf():
		b.WriteString(n.Symbol.String())
		b.WriteString(" <- ")
		b.WriteString(string(n.Token.Lexeme))
		b.WriteString("\n")
	case n.Synthetic:
		b.WriteString(n.Symbol.String())
		b.WriteString(" (recovered)\n")
	default:
		b.WriteString(n.Symbol.String())
		b.WriteString("\n")
	}
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}
