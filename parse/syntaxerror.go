package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ictiobus/symbol"
)

// SyntaxError reports a state/lookahead pair for which the ACTION table
// has no entry. RecentTerminals is a bounded window of the terminals
// shifted immediately before the error, most recent last; it is the
// fixed replacement for a term-collection pass that, in the toolkit this
// was ported from, never actually collected anything (an unsigned
// length compared less-than-zero is always false).
type SyntaxError struct {
	Line, Column    int
	Got             symbol.Symbol
	Expected        []symbol.Symbol
	RecentTerminals []symbol.Symbol
	Recovered       bool
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse: syntax error at %d:%d: unexpected %s", e.Line, e.Column, e.Got)
	if len(e.Expected) > 0 {
		b.WriteString(", expected one of: ")
		for i, s := range e.Expected {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.String())
		}
	}
	if e.Recovered {
		b.WriteString(" (recovered)")
	}
	return b.String()
}

// recentRing is a fixed-capacity ring buffer of symbols, oldest
// overwritten first.
type recentRing struct {
	buf   []symbol.Symbol
	start int
	count int
}

func newRecentRing(capacity int) *recentRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &recentRing{buf: make([]symbol.Symbol, capacity)}
}

func (r *recentRing) push(s symbol.Symbol) {
	idx := (r.start + r.count) % len(r.buf)
	r.buf[idx] = s
	if r.count < len(r.buf) {
		r.count++
	} else {
		r.start = (r.start + 1) % len(r.buf)
	}
}

// items returns the buffered symbols in push order, oldest first.
func (r *recentRing) items() []symbol.Symbol {
	out := make([]symbol.Symbol, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
