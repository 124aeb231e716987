// Package interp is a small S-expression evaluator: cons cells, symbols,
// reals and strings as self-evaluating atoms, and a handful of special
// and builtin forms (quote, set, the arithmetic operators, and the
// standard math library) bound into a scoped Environment.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNil Kind = iota
	KindReal
	KindString
	KindSymbol
	KindCons
	KindForm
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindCons:
		return "cons"
	case KindForm:
		return "form"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single node of interpreted data: an atom (real, string,
// symbol, nil) or a compound (a cons cell or a callable form).
type Value struct {
	kind Kind

	real float64
	str  string // String and Symbol both carry their text here

	car, cdr *Value // set only when kind == KindCons

	form *Form // set only when kind == KindForm
}

// Nil is the empty list / false-ish sentinel.
var Nil = Value{kind: KindNil}

// NewReal wraps a float64 as a self-evaluating Value.
func NewReal(f float64) Value { return Value{kind: KindReal, real: f} }

// NewString wraps a string as a self-evaluating Value.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewSymbol wraps a symbol name. Symbols evaluate by resolving against
// an Environment; they are not self-evaluating.
func NewSymbol(name string) Value { return Value{kind: KindSymbol, str: name} }

// Cons builds a single cons cell (car . cdr).
func Cons(car, cdr Value) Value {
	return Value{kind: KindCons, car: &car, cdr: &cdr}
}

// List builds a proper list out of vs, terminated by Nil.
func List(vs ...Value) Value {
	out := Nil
	for i := len(vs) - 1; i >= 0; i-- {
		out = Cons(vs[i], out)
	}
	return out
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsReal() bool   { return v.kind == KindReal }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsSymbol() bool { return v.kind == KindSymbol }
func (v Value) IsCons() bool   { return v.kind == KindCons }
func (v Value) IsForm() bool   { return v.kind == KindForm }

// Real returns v's value as a float64, converting from String (via
// strconv) or Nil (as zero). A malformed numeric string, or any other
// kind, is reported as a *TypeError rather than a panic: interpreter
// type mismatches are errors the caller evaluates against, not faults.
func (v Value) Real() (float64, error) {
	switch v.kind {
	case KindReal:
		return v.real, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, &TypeError{Want: "a numeric string", Got: v.kind}
		}
		return f, nil
	case KindNil:
		return 0, nil
	default:
		return 0, &TypeError{Want: "real", Got: v.kind}
	}
}

// Str returns v's textual form: the symbol or string text directly, or
// a formatted rendering of any other kind.
func (v Value) Str() string {
	switch v.kind {
	case KindString, KindSymbol:
		return v.str
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindNil:
		return ""
	default:
		return v.String()
	}
}

// Name returns the symbol's name. Only valid when IsSymbol.
func (v Value) Name() string { return v.str }

// Car returns the head of a cons cell. Only valid when IsCons.
func (v Value) Car() Value { return *v.car }

// Cdr returns the tail of a cons cell. Only valid when IsCons.
func (v Value) Cdr() Value { return *v.cdr }

// Form returns the callable payload of a KindForm value.
func (v Value) Form() *Form { return v.form }

// ToSlice flattens a proper list into a slice, in order. Returns false
// if v is not a proper (nil-terminated) list.
func (v Value) ToSlice() ([]Value, bool) {
	var out []Value
	cur := v
	for {
		if cur.IsNil() {
			return out, true
		}
		if !cur.IsCons() {
			return out, false
		}
		out = append(out, cur.Car())
		cur = cur.Cdr()
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "()"
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindSymbol:
		return v.str
	case KindForm:
		return "#<form " + v.form.name + ">"
	case KindCons:
		var b strings.Builder
		b.WriteString("(")
		cur := v
		first := true
		for cur.IsCons() {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(cur.Car().String())
			cur = cur.Cdr()
		}
		if !cur.IsNil() {
			b.WriteString(" . ")
			b.WriteString(cur.String())
		}
		b.WriteString(")")
		return b.String()
	default:
		return "#<?>"
	}
}
