// Package lex compiles a set of (regex, symbol) lexer rules plus a
// skipper regex into two DFAs and drives a greedy longest-match scanner
// over a charinput.Input, producing a stream of Tokens.
package lex

import (
	"fmt"

	"github.com/dekarrin/ictiobus/symbol"
)

// Token is a single lexical unit: the grammar symbol it was recognized
// as, the raw bytes matched, and the coordinates it started at.
type Token struct {
	Symbol symbol.Symbol
	Lexeme []byte
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Symbol, t.Lexeme, t.Line, t.Column)
}
