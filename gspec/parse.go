// Package gspec parses the toolkit's own grammar specification file
// format: a flat list of terminal and production rules sharing a
// single <> / UPPER-CASE / /regex/ syntax.
//
//	NUM    ::= /[0-9]+/ .
//	PLUS   ::= /\+/ .
//	SKIP   ::= /[ \t\n]+/ .
//
//	<start> ::= <expr> EOI .
//	<expr>  ::= <expr> PLUS <term> | <term> .
//
// A terminal rule is an UPPERCASE name, "::=", a /regex/ literal, and a
// terminating ".". A production rule is a <lowercase> name, "::=", one
// or more "|"-separated alternatives (each a space-separated sequence
// of UPPERCASE terminal names and <lowercase> non-terminal names), and
// a terminating ".".
//
// <start> always names the grammar's start symbol, bound to the
// reserved symbol.START identity rather than a minted one. EOI, used
// on the right-hand side of a production, likewise always means the
// reserved symbol.EOI, never a minted terminal. A terminal named
// exactly SKIP is not added to the lexer's rule list; its pattern
// becomes the lexer's whitespace/comment skipper instead.
package gspec

import (
	"fmt"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/symbol"
)

// Spec is a fully parsed grammar specification: a grammar ready for
// Finalize, the lexer rules to compile alongside it, and the factory
// that minted every symbol referenced by both - reusing it for any
// further minting (e.g. when reloading a persisted tables.Snapshot)
// keeps ids aligned.
type Spec struct {
	Grammar     *grammar.Grammar
	Rules       []lex.Rule
	SkipPattern string
	Factory     *symbol.Factory
}

// Parse reads src and produces a Spec. The grammar is not Finalized;
// call Grammar.Finalize once all productions of interest are known to
// be present (Parse always includes every production rule found in
// src, so in practice this just means calling Finalize right away).
func Parse(src string) (*Spec, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &specParser{toks: toks, factory: symbol.NewFactory()}
	if err := p.parseStatements(); err != nil {
		return nil, err
	}
	if !p.startDeclared {
		return nil, fmt.Errorf("gspec: no <start> production declared")
	}

	g := grammar.New(p.start)
	for _, prod := range p.productions {
		if _, err := g.AddProduction(prod.lhs, prod.rhs...); err != nil {
			return nil, err
		}
	}

	return &Spec{
		Grammar:     g,
		Rules:       p.rules,
		SkipPattern: p.skipPattern,
		Factory:     p.factory,
	}, nil
}

type production struct {
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

type specParser struct {
	toks []token
	pos  int

	factory *symbol.Factory

	start         symbol.Symbol
	startDeclared bool
	productions   []production
	rules       []lex.Rule
	skipPattern string
}

func (p *specParser) peek() token  { return p.toks[p.pos] }
func (p *specParser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *specParser) expect(k tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != k {
		return token{}, fmt.Errorf("gspec: expected %s at %d:%d", what, t.line, t.col)
	}
	return p.advance(), nil
}

func (p *specParser) parseStatements() error {
	for p.peek().kind != tokEOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *specParser) parseStatement() error {
	switch p.peek().kind {
	case tokUpper:
		return p.parseTerminalRule()
	case tokNonterm:
		return p.parseProductionRule()
	default:
		t := p.peek()
		return fmt.Errorf("gspec: expected a terminal or non-terminal declaration at %d:%d", t.line, t.col)
	}
}

func (p *specParser) parseTerminalRule() error {
	name := p.advance().text
	if _, err := p.expect(tokAssign, "'::='"); err != nil {
		return err
	}
	pat, err := p.expect(tokRegex, "a /regex/ literal")
	if err != nil {
		return err
	}
	if _, err := p.expect(tokDot, "'.'"); err != nil {
		return err
	}

	if name == "SKIP" {
		p.skipPattern = pat.text
		return nil
	}

	sym := p.terminalSymbol(name)
	p.rules = append(p.rules, lex.Rule{Symbol: sym, Pattern: pat.text})
	return nil
}

func (p *specParser) parseProductionRule() error {
	lhsName := p.advance().text
	lhs := p.nonTermSymbol(lhsName)
	if lhsName == "start" {
		p.start = lhs
		p.startDeclared = true
	}

	if _, err := p.expect(tokAssign, "'::='"); err != nil {
		return err
	}

	for {
		rhs, err := p.parseAlternative()
		if err != nil {
			return err
		}
		p.productions = append(p.productions, production{lhs: lhs, rhs: rhs})

		if p.peek().kind == tokPipe {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(tokDot, "'.'"); err != nil {
		return err
	}
	return nil
}

func (p *specParser) parseAlternative() ([]symbol.Symbol, error) {
	var rhs []symbol.Symbol
	for {
		switch p.peek().kind {
		case tokUpper:
			rhs = append(rhs, p.terminalSymbol(p.advance().text))
		case tokNonterm:
			rhs = append(rhs, p.nonTermSymbol(p.advance().text))
		default:
			if len(rhs) == 0 {
				t := p.peek()
				return nil, fmt.Errorf("gspec: empty alternative at %d:%d", t.line, t.col)
			}
			return rhs, nil
		}
	}
}

func (p *specParser) terminalSymbol(name string) symbol.Symbol {
	if name == "EOI" {
		return symbol.EOI
	}
	return p.factory.Mint(name)
}

func (p *specParser) nonTermSymbol(name string) symbol.Symbol {
	if name == "start" {
		return symbol.START
	}
	return p.factory.Mint(name)
}
