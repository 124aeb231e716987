package interp

import "fmt"

// UnboundSymbolError reports a symbol with no binding visible from the
// environment it was evaluated in.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("interp: unbound symbol %q", e.Name)
}

// ApplyError reports a call that could not be completed: wrong arity,
// a non-callable head, or a malformed argument list.
type ApplyError struct {
	Msg string
}

func (e *ApplyError) Error() string { return "interp: " + e.Msg }

// TypeError reports a value of the wrong kind for the operation trying
// to use it, such as taking the Real view of a symbol.
type TypeError struct {
	Want string
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("interp: expected %s, got %s", e.Want, e.Got)
}

// Eval evaluates v in env. Real, String and Nil are self-evaluating.
// Symbols resolve against env. A cons cell is an application: quote,
// set, lambda, macro and progn are recognized as special forms by the
// literal name of the list's head symbol (their arguments are not
// evaluated the normal way); anything else is evaluated as a call, with
// the head evaluated first. If the head is a macro, its argument
// expressions are passed unevaluated and the expansion it returns is
// evaluated in env; otherwise every argument is evaluated before the call
// is applied.
func Eval(v Value, env *Environment) (Value, error) {
	switch v.Kind() {
	case KindReal, KindString, KindNil, KindForm:
		return v, nil
	case KindSymbol:
		if bound, ok := env.Resolve(v.Name()); ok {
			return bound, nil
		}
		return Value{}, &UnboundSymbolError{Name: v.Name()}
	case KindCons:
		return evalList(v, env)
	default:
		return Value{}, &ApplyError{Msg: fmt.Sprintf("cannot evaluate a %s", v.Kind())}
	}
}

func evalList(v Value, env *Environment) (Value, error) {
	head := v.Car()
	rest := v.Cdr()

	if head.IsSymbol() {
		switch head.Name() {
		case "quote":
			args, ok := rest.ToSlice()
			if !ok || len(args) != 1 {
				return Value{}, &ApplyError{Msg: "quote takes exactly one argument"}
			}
			return args[0], nil

		case "set":
			args, ok := rest.ToSlice()
			if !ok || len(args) != 2 || !args[0].IsSymbol() {
				return Value{}, &ApplyError{Msg: "set takes a symbol and a value expression"}
			}
			val, err := Eval(args[1], env)
			if err != nil {
				return Value{}, err
			}
			env.Bind(args[0].Name(), val)
			return val, nil

		case "lambda":
			return makeClosure(rest, env, FormLambda)

		case "macro":
			return makeClosure(rest, env, FormMacro)

		case "progn":
			exprs, ok := rest.ToSlice()
			if !ok {
				return Value{}, &ApplyError{Msg: "progn requires a proper list of expressions"}
			}
			result := Nil
			for _, expr := range exprs {
				var err error
				result, err = Eval(expr, env)
				if err != nil {
					return Value{}, err
				}
			}
			return result, nil
		}
	}

	headVal, err := Eval(head, env)
	if err != nil {
		return Value{}, err
	}
	if !headVal.IsForm() {
		return Value{}, &ApplyError{Msg: fmt.Sprintf("%s is not callable", headVal.String())}
	}

	argExprs, ok := rest.ToSlice()
	if !ok {
		return Value{}, &ApplyError{Msg: "improper argument list"}
	}

	if headVal.form.kind == FormMacro {
		expansion, err := applyClosure(headVal.form, argExprs, env, false)
		if err != nil {
			return Value{}, err
		}
		return Eval(expansion, env)
	}

	args := make([]Value, len(argExprs))
	for i, e := range argExprs {
		args[i], err = Eval(e, env)
		if err != nil {
			return Value{}, err
		}
	}

	return apply(headVal.form, args, env)
}

func makeClosure(rest Value, env *Environment, kind FormKind) (Value, error) {
	parts, ok := rest.ToSlice()
	if !ok || len(parts) < 1 {
		return Value{}, &ApplyError{Msg: "lambda/macro requires a parameter list and a body"}
	}
	paramList, ok := parts[0].ToSlice()
	if !ok {
		return Value{}, &ApplyError{Msg: "lambda/macro parameter list must be a proper list of symbols"}
	}
	params := make([]string, len(paramList))
	for i, p := range paramList {
		if !p.IsSymbol() {
			return Value{}, &ApplyError{Msg: "lambda/macro parameters must be symbols"}
		}
		params[i] = p.Name()
	}

	body := List(parts[1:]...)
	body = Cons(NewSymbol("progn"), body)

	fn := newForm(kind, "<anonymous>")
	fn.form.params = params
	fn.form.body = body
	fn.form.env = env
	return fn, nil
}

func apply(f *Form, args []Value, env *Environment) (Value, error) {
	switch f.kind {
	case FormUnaryBuiltin:
		if len(args) != 1 {
			return Value{}, &ApplyError{Msg: fmt.Sprintf("%s takes exactly one argument", f.name)}
		}
		x, err := args[0].Real()
		if err != nil {
			return Value{}, err
		}
		return NewReal(f.unary(x)), nil

	case FormBinaryBuiltin:
		if len(args) != 2 {
			return Value{}, &ApplyError{Msg: fmt.Sprintf("%s takes exactly two arguments", f.name)}
		}
		x, err := args[0].Real()
		if err != nil {
			return Value{}, err
		}
		y, err := args[1].Real()
		if err != nil {
			return Value{}, err
		}
		return NewReal(f.binary(x, y)), nil

	case FormBinaryOp:
		if len(args) < 1 {
			return Value{}, &ApplyError{Msg: fmt.Sprintf("%s takes at least one argument", f.name)}
		}
		if len(args) == 1 {
			x, err := args[0].Real()
			if err != nil {
				return Value{}, err
			}
			return NewReal(x), nil
		}
		acc := args[0]
		var err error
		for _, next := range args[1:] {
			acc, err = f.binaryOpFold(acc, next)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil

	case FormLambda:
		return applyClosure(f, args, env, true)

	default:
		return Value{}, &ApplyError{Msg: fmt.Sprintf("%s is not directly callable", f.name)}
	}
}

// applyClosure runs a lambda or macro body in a fresh scope over the
// closure's captured environment, with params bound to args. When
// evalArgs is false (macro expansion), args are the raw, unevaluated
// argument expressions bound as-is - the macro body decides what, if
// anything, to evaluate.
func applyClosure(f *Form, args []Value, callerEnv *Environment, evalArgs bool) (Value, error) {
	if len(args) != len(f.params) {
		return Value{}, &ApplyError{Msg: fmt.Sprintf("%s expects %d argument(s), got %d", f.name, len(f.params), len(args))}
	}
	_ = evalArgs // args are already evaluated by the caller when that applies; macros pass raw expressions

	callEnv := f.env
	callEnv.Push()
	defer callEnv.Pop()
	for i, p := range f.params {
		callEnv.Bind(p, args[i])
	}
	return Eval(f.body, callEnv)
}
