package lex

import (
	"fmt"

	"github.com/dekarrin/ictiobus/charinput"
	"github.com/dekarrin/ictiobus/dfa"
	"github.com/dekarrin/ictiobus/regex"
	"github.com/dekarrin/ictiobus/symbol"
)

// Rule pairs a regex pattern with the grammar symbol it recognizes. Rules
// are matched in declaration order; when two rules' patterns accept the
// same longest prefix, the earliest-declared rule wins.
type Rule struct {
	Symbol  symbol.Symbol
	Pattern string
}

// UnrecognizedTokenError reports a byte sequence that no lexer rule
// accepts.
type UnrecognizedTokenError struct {
	Line, Column int
	Byte         byte
}

func (e *UnrecognizedTokenError) Error() string {
	return fmt.Sprintf("lex: unrecognized token at %d:%d (byte %q)", e.Line, e.Column, e.Byte)
}

// Lexer drives a greedy longest-match scan over an Input, against a
// compiled token DFA and an independent skipper DFA (for whitespace and
// comments) run before every token.
type Lexer struct {
	tokenDFA *dfa.DFA
	skipDFA  *dfa.DFA
	bySymbol []symbol.Symbol // index i holds the symbol for token id i+1

	// topAlt is non-nil when Compile combined more than one rule: the
	// outermost alternation, wrapped in an AltTop so the branch-fired
	// sentinels are queryable after a match via BranchesFired.
	topAlt *regex.AltTop

	// lastAcceptState is the token DFA state reached by the most recent
	// successful Next() match, for BranchesFired to query.
	lastAcceptState int
}

// Compile builds the token and skipper DFAs for rules and skipPattern.
// skipPattern may be empty, in which case the skipper never consumes
// anything.
func Compile(rules []Rule, skipPattern string) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("lex: at least one rule is required")
	}

	syms := make([]symbol.Symbol, len(rules))
	nodes := make([]regex.Node, len(rules))
	for i, r := range rules {
		node, err := regex.Parse(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lex: rule %d (%s /%s/): %w", i, r.Symbol, r.Pattern, err)
		}
		node.SetDelimiter(i + 1)
		syms[i] = r.Symbol
		nodes[i] = node
	}

	// The rules fold left-to-right into ordinary alternations, except the
	// very last fold, which uses AltTop so the lexer's root records which
	// side last matched: the earlier-declared rules (left) or the final
	// rule (right).
	var combined regex.Node
	var topAlt *regex.AltTop
	combined = nodes[0]
	for i := 1; i < len(nodes); i++ {
		if i == len(nodes)-1 {
			top := regex.NewAltTop(combined, nodes[i])
			combined = top
			topAlt = top
		} else {
			combined = regex.NewAlt(combined, nodes[i])
		}
	}
	n := combined.AssignPositions(0)

	tokenDFA, err := dfa.Build(combined, n)
	if err != nil {
		return nil, fmt.Errorf("lex: building token DFA: %w", err)
	}

	var skipDFA *dfa.DFA
	if skipPattern != "" {
		skipNode, err := regex.Parse(skipPattern)
		if err != nil {
			return nil, fmt.Errorf("lex: skipper pattern: %w", err)
		}
		skipNode.SetDelimiter(1)
		sn := skipNode.AssignPositions(0)
		skipDFA, err = dfa.Build(skipNode, sn)
		if err != nil {
			return nil, fmt.Errorf("lex: building skipper DFA: %w", err)
		}
	}

	return &Lexer{tokenDFA: tokenDFA, skipDFA: skipDFA, bySymbol: syms, topAlt: topAlt, lastAcceptState: -1}, nil
}

// skip advances in past the longest prefix the skipper DFA accepts
// (possibly zero bytes).
func (l *Lexer) skip(in *charinput.Input) {
	if l.skipDFA == nil {
		return
	}
	state := l.skipDFA.Start
	lastAccept := 0
	consumed := 0
	for {
		b, ok := in.PeekAt(consumed)
		if !ok {
			break
		}
		next, ok := l.skipDFA.Step(state, b)
		if !ok {
			break
		}
		consumed++
		if _, accepted := l.skipDFA.AcceptID(state, next); accepted {
			lastAccept = consumed
		}
		state = next
	}
	if lastAccept > 0 {
		in.Advance(lastAccept)
	}
}

// Next consumes the skipper's longest accepted prefix, then runs the
// token DFA byte by byte, tracking the most recent accept. Per the
// longest-match rule, scanning continues past an accept as long as a
// transition exists; when the machine stalls, the bytes up to and
// including the last accept position become the lexeme. If the input is
// exhausted after skipping, Next returns an EOI token. If no accept ever
// fires, Next returns an UnrecognizedTokenError.
func (l *Lexer) Next(in *charinput.Input) (Token, error) {
	l.skip(in)

	if in.AtEnd() {
		return Token{Symbol: symbol.EOI, Line: in.Line(), Column: in.Column()}, nil
	}

	startLine, startCol := in.Line(), in.Column()

	state := l.tokenDFA.Start
	lastAccept := -1
	lastTokenID := 0
	lastAcceptState := -1

	consumed := 0
	for {
		b, ok := in.PeekAt(consumed)
		if !ok {
			break
		}
		next, ok := l.tokenDFA.Step(state, b)
		if !ok {
			break
		}
		consumed++
		if id, accepted := l.tokenDFA.AcceptID(state, next); accepted {
			lastAccept = consumed
			lastTokenID = id
			lastAcceptState = next
		}
		state = next
	}

	if lastAccept < 0 {
		b, _ := in.PeekAt(0)
		return Token{}, &UnrecognizedTokenError{Line: startLine, Column: startCol, Byte: b}
	}

	l.lastAcceptState = lastAcceptState

	lexeme := make([]byte, lastAccept)
	for i := 0; i < lastAccept; i++ {
		b, _ := in.PeekAt(i)
		lexeme[i] = b
	}
	in.Advance(lastAccept)

	return Token{
		Symbol: l.bySymbol[lastTokenID-1],
		Lexeme: lexeme,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// BranchesFired reports, for the match made by the most recent successful
// Next() call, whether the earlier-declared rules (left) or the
// final-declared rule (right) contributed to it. Both are false when
// Compile combined only a single rule, or before any token has been
// scanned.
func (l *Lexer) BranchesFired() (left, right bool) {
	if l.topAlt == nil || l.lastAcceptState < 0 {
		return false, false
	}
	conf := l.tokenDFA.Configs[l.lastAcceptState]
	return l.topAlt.LeftFired(conf), l.topAlt.RightFired(conf)
}
