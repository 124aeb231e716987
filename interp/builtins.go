package interp

import "math"

// RegisterGlobals binds the standard arithmetic operators and math
// library functions into env's outermost scope.
func RegisterGlobals(env *Environment) {
	env.BindGlobal("+", NewBinaryOp("+", builtinAdd))
	env.BindGlobal("-", NewBinaryOp("-", builtinSub))
	env.BindGlobal("*", NewBinaryOp("*", builtinMul))
	env.BindGlobal("/", NewBinaryOp("/", builtinDiv))

	env.BindGlobal("sin", NewUnaryBuiltin("sin", math.Sin))
	env.BindGlobal("cos", NewUnaryBuiltin("cos", math.Cos))
	env.BindGlobal("tan", NewUnaryBuiltin("tan", math.Tan))
	env.BindGlobal("asin", NewUnaryBuiltin("asin", math.Asin))
	env.BindGlobal("acos", NewUnaryBuiltin("acos", math.Acos))
	env.BindGlobal("atan", NewUnaryBuiltin("atan", math.Atan))
	env.BindGlobal("sinh", NewUnaryBuiltin("sinh", math.Sinh))
	env.BindGlobal("cosh", NewUnaryBuiltin("cosh", math.Cosh))
	env.BindGlobal("tanh", NewUnaryBuiltin("tanh", math.Tanh))
	env.BindGlobal("exp", NewUnaryBuiltin("exp", math.Exp))
	env.BindGlobal("log", NewUnaryBuiltin("log", math.Log))
	env.BindGlobal("sqrt", NewUnaryBuiltin("sqrt", math.Sqrt))
	env.BindGlobal("ceil", NewUnaryBuiltin("ceil", math.Ceil))
	env.BindGlobal("floor", NewUnaryBuiltin("floor", math.Floor))
	env.BindGlobal("abs", NewUnaryBuiltin("abs", math.Abs))

	env.BindGlobal("pow", NewBinaryBuiltin("pow", math.Pow))
	env.BindGlobal("atan2", NewBinaryBuiltin("atan2", math.Atan2))
}

// builtinAdd adds numerically unless either operand is a string, in
// which case it concatenates - the same type-sensitive behavior as the
// arithmetic builtins this was adapted from.
func builtinAdd(x, y Value) (Value, error) {
	if x.IsString() || y.IsString() {
		return NewString(x.Str() + y.Str()), nil
	}
	xr, yr, err := bothReal(x, y)
	if err != nil {
		return Value{}, err
	}
	return NewReal(xr + yr), nil
}

func builtinSub(x, y Value) (Value, error) {
	xr, yr, err := bothReal(x, y)
	if err != nil {
		return Value{}, err
	}
	return NewReal(xr - yr), nil
}

func builtinMul(x, y Value) (Value, error) {
	xr, yr, err := bothReal(x, y)
	if err != nil {
		return Value{}, err
	}
	return NewReal(xr * yr), nil
}

func builtinDiv(x, y Value) (Value, error) {
	xr, yr, err := bothReal(x, y)
	if err != nil {
		return Value{}, err
	}
	if yr == 0 {
		return Value{}, &ApplyError{Msg: "division by zero"}
	}
	return NewReal(xr / yr), nil
}

func bothReal(x, y Value) (float64, float64, error) {
	xr, err := x.Real()
	if err != nil {
		return 0, 0, err
	}
	yr, err := y.Real()
	if err != nil {
		return 0, 0, err
	}
	return xr, yr, nil
}
