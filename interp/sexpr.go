package interp

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/ictiobus/charinput"
	"github.com/dekarrin/ictiobus/gspec"
	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/parse"
)

// sexprGrammarSource is this package's own grammar specification for the
// S-expression surface syntax: parenthesized lists and bare atoms (reals,
// strings, bare symbols), one or more top-level forms per script. It is
// parsed once by CompileSyntax via the gspec/lr/lex toolchain, the same
// way any other grammar in this module is built.
const sexprGrammarSource = `
LPAREN ::= /\(/ .
RPAREN ::= /\)/ .
NUM    ::= /-?[0-9]+(\.[0-9]+)?/ .
STR    ::= /"[^"]*"/ .
SYM    ::= /[a-zA-Z_*+\/<>=!?-][a-zA-Z0-9_*+\/<>=!?-]*/ .
SKIP   ::= /[ \t\r\n]+/ .

<start> ::= <exprs> EOI .
<exprs> ::= <exprs> <expr> | <expr> .
<expr>  ::= NUM | STR | SYM | <list> .
<list>  ::= LPAREN RPAREN | LPAREN <items> RPAREN .
<items> ::= <items> <expr> | <expr> .
`

// Syntax is the compiled lexer and LR tables for the S-expression surface
// syntax. Building it is not free, so callers should compile it once via
// CompileSyntax and reuse it across every FromSource call.
type Syntax struct {
	tbl *lr.Tables
	lx  *lex.Lexer
}

// CompileSyntax builds the S-expression grammar's tables and lexer from
// sexprGrammarSource.
func CompileSyntax() (*Syntax, error) {
	spec, err := gspec.Parse(sexprGrammarSource)
	if err != nil {
		return nil, fmt.Errorf("interp: compiling sexpr syntax: %w", err)
	}
	if err := spec.Grammar.Finalize(); err != nil {
		return nil, fmt.Errorf("interp: finalizing sexpr grammar: %w", err)
	}
	tbl, err := lr.Build(spec.Grammar)
	if err != nil {
		return nil, fmt.Errorf("interp: building sexpr tables: %w", err)
	}
	lx, err := lex.Compile(spec.Rules, spec.SkipPattern)
	if err != nil {
		return nil, fmt.Errorf("interp: compiling sexpr lexer: %w", err)
	}
	return &Syntax{tbl: tbl, lx: lx}, nil
}

// FromSource tokenizes and parses src against the S-expression grammar,
// then converts the resulting parse tree into one Value per top-level
// form, in source order. This is the AST -> value-list conversion: the
// bridge that lets an actual script be evaluated rather than only values
// built by hand with List/NewSymbol.
func (s *Syntax) FromSource(src string) ([]Value, error) {
	in := charinput.New([]byte(src))
	tree, _, err := parse.Parse(s.tbl, s.lx, in, parse.Options{Recover: false, RecentWindow: 1})
	if err != nil {
		return nil, err
	}
	// The accepting state's start production (<start> -> <exprs> EOI) is
	// never itself reduced, so tree is already the <exprs> node: Parse
	// discards the trailing EOI for us.
	return fromExprs(tree)
}

// fromExprs converts an <exprs> node (the left-recursive chain
// <exprs> -> <exprs> <expr> | <expr>) into its ordered sequence of
// Values.
func fromExprs(t *parse.Tree) ([]Value, error) {
	nodes := flattenLeftRecursive(t)
	vals := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := fromExpr(n)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// flattenLeftRecursive unrolls a "<x> -> <x> <y> | <y>" production node
// into the ordered sequence of its <y> children, left to right. <exprs>
// and <items> share exactly this shape.
func flattenLeftRecursive(t *parse.Tree) []*parse.Tree {
	if len(t.Children) == 2 {
		return append(flattenLeftRecursive(t.Children[0]), t.Children[1])
	}
	return []*parse.Tree{t.Children[0]}
}

// fromExpr converts a single <expr> node - always exactly one child,
// either an atom terminal or a <list> - into a Value.
func fromExpr(t *parse.Tree) (Value, error) {
	child := t.Children[0]
	if child.IsLeaf() {
		return fromAtom(child)
	}
	return fromList(child)
}

// fromAtom converts a NUM, STR or SYM leaf token into a Value. Numbers
// are parsed as base-10 floating point.
func fromAtom(t *parse.Tree) (Value, error) {
	switch t.Symbol.Name() {
	case "NUM":
		text := string(t.Token.Lexeme)
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Nil, fmt.Errorf("interp: malformed number %q: %w", text, err)
		}
		return NewReal(f), nil
	case "STR":
		raw := string(t.Token.Lexeme)
		return NewString(raw[1 : len(raw)-1]), nil
	case "SYM":
		return NewSymbol(string(t.Token.Lexeme)), nil
	default:
		return Nil, fmt.Errorf("interp: unexpected atom terminal %s", t.Symbol)
	}
}

// fromList converts a <list> node - "LPAREN RPAREN" (empty) or
// "LPAREN <items> RPAREN" - into a cons-list Value terminated by Nil.
func fromList(t *parse.Tree) (Value, error) {
	if len(t.Children) == 2 {
		return Nil, nil
	}
	items := flattenLeftRecursive(t.Children[1])
	vals := make([]Value, 0, len(items))
	for _, n := range items {
		v, err := fromExpr(n)
		if err != nil {
			return Value{}, err
		}
		vals = append(vals, v)
	}
	return List(vals...), nil
}
