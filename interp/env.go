package interp

// Environment is an ordered stack of variable scopes. The outermost two
// scopes - globals and the top-level call frame - are never popped,
// regardless of how many unmatched Pop calls are made; this mirrors an
// invariant of the environment this package's scoping was adapted from.
type Environment struct {
	scopes []map[string]Value
}

// NewEnvironment returns an Environment with its two permanent scopes
// already in place.
func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]Value{{}, {}}}
}

// Push opens a new innermost scope, for a function call or a let-like
// binding form.
func (e *Environment) Push() {
	e.scopes = append(e.scopes, map[string]Value{})
}

// Pop discards the innermost scope. A no-op when only the two
// permanent scopes remain.
func (e *Environment) Pop() {
	if len(e.scopes) > 2 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Bind sets name to v in the innermost scope.
func (e *Environment) Bind(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// BindGlobal sets name to v in the outermost (global) scope, for
// registering builtins.
func (e *Environment) BindGlobal(name string, v Value) {
	e.scopes[0][name] = v
}

// Resolve looks up name in the innermost scope, falling back to the
// global scope; it does not consult any scope in between.
func (e *Environment) Resolve(name string) (Value, bool) {
	if v, ok := e.scopes[len(e.scopes)-1][name]; ok {
		return v, true
	}
	if v, ok := e.scopes[0][name]; ok {
		return v, true
	}
	return Value{}, false
}

// Depth returns the current number of open scopes.
func (e *Environment) Depth() int { return len(e.scopes) }
