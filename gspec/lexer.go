package gspec

import (
	"fmt"

	"github.com/dekarrin/ictiobus/charinput"
)

type tokenKind int

const (
	tokUpper tokenKind = iota
	tokNonterm
	tokAssign
	tokPipe
	tokDot
	tokRegex
	tokEOF
)

type token struct {
	kind       tokenKind
	text       string
	line, col int
}

// tokenize scans a grammar specification source into a flat token
// list. The format has exactly six token shapes: an UPPERCASE
// terminal name, a <lowercase> non-terminal name, the rule separator
// ::=, the alternation bar |, the rule terminator ., and a /regex/
// literal.
func tokenize(src string) ([]token, error) {
	in := charinput.New([]byte(src))
	var toks []token

	for {
		skipSpaceAndComments(in)
		if in.AtEnd() {
			toks = append(toks, token{kind: tokEOF, line: in.Line(), col: in.Column()})
			return toks, nil
		}

		b, _ := in.PeekAt(0)
		line, col := in.Line(), in.Column()

		switch {
		case b == '<':
			name, err := scanNonterm(in)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNonterm, text: name, line: line, col: col})

		case b == '/':
			pattern, err := scanRegex(in)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokRegex, text: pattern, line: line, col: col})

		case b == '|':
			in.Advance(1)
			toks = append(toks, token{kind: tokPipe, line: line, col: col})

		case b == '.':
			in.Advance(1)
			toks = append(toks, token{kind: tokDot, line: line, col: col})

		case b == ':':
			if err := scanAssign(in); err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokAssign, line: line, col: col})

		case isUpperStart(b):
			name := scanUpper(in)
			toks = append(toks, token{kind: tokUpper, text: name, line: line, col: col})

		default:
			return nil, fmt.Errorf("gspec: unexpected character %q at %d:%d", b, line, col)
		}
	}
}

func skipSpaceAndComments(in *charinput.Input) {
	for {
		b, ok := in.PeekAt(0)
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			in.Advance(1)
		case b == '#':
			for {
				b, ok := in.PeekAt(0)
				if !ok || b == '\n' {
					break
				}
				in.Advance(1)
			}
		default:
			return
		}
	}
}

func isUpperStart(b byte) bool { return b >= 'A' && b <= 'Z' }
func isUpperCont(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}
func isLowerStart(b byte) bool { return b >= 'a' && b <= 'z' }
func isLowerCont(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

func scanUpper(in *charinput.Input) string {
	start := in.Pos()
	in.Advance(1)
	for {
		b, ok := in.PeekAt(0)
		if !ok || !isUpperCont(b) {
			break
		}
		in.Advance(1)
	}
	return string(in.Extract(start, in.Pos()))
}

func scanNonterm(in *charinput.Input) (string, error) {
	openLine, openCol := in.Line(), in.Column()
	in.Advance(1) // '<'
	b, ok := in.PeekAt(0)
	if !ok || !isLowerStart(b) {
		return "", fmt.Errorf("gspec: expected a lowercase non-terminal name after '<' at %d:%d", openLine, openCol)
	}
	start := in.Pos()
	for {
		b, ok := in.PeekAt(0)
		if !ok || !isLowerCont(b) {
			break
		}
		in.Advance(1)
	}
	name := string(in.Extract(start, in.Pos()))
	b, ok = in.PeekAt(0)
	if !ok || b != '>' {
		return "", fmt.Errorf("gspec: unterminated non-terminal name starting at %d:%d", openLine, openCol)
	}
	in.Advance(1)
	return name, nil
}

func scanRegex(in *charinput.Input) (string, error) {
	openLine, openCol := in.Line(), in.Column()
	in.Advance(1) // opening '/'
	start := in.Pos()
	for {
		b, ok := in.PeekAt(0)
		if !ok {
			return "", fmt.Errorf("gspec: unterminated regex literal starting at %d:%d", openLine, openCol)
		}
		if b == '\\' {
			in.Advance(1)
			if _, ok := in.PeekAt(0); !ok {
				return "", fmt.Errorf("gspec: unterminated regex literal starting at %d:%d", openLine, openCol)
			}
			in.Advance(1)
			continue
		}
		if b == '/' {
			break
		}
		in.Advance(1)
	}
	pattern := string(in.Extract(start, in.Pos()))
	in.Advance(1) // closing '/'
	return pattern, nil
}

func scanAssign(in *charinput.Input) error {
	line, col := in.Line(), in.Column()
	for _, want := range []byte{':', ':', '='} {
		b, ok := in.PeekAt(0)
		if !ok || b != want {
			return fmt.Errorf("gspec: expected '::=' at %d:%d", line, col)
		}
		in.Advance(1)
	}
	return nil
}
