package transproc

import (
	"slices"

	"github.com/google/uuid"
)

// Function wraps a single Func together with a fixed list of extra arguments.
// Calling a Function applies the Func to the input value followed by the
// stored arguments, in order.
//
// Function is the basic building block created by New and Named. It is an
// immutable value: the arguments are copied at construction, and every
// accessor returns a copy, so a Function can be shared between pipelines and
// goroutines without coordination.
//
// The identifier decides how the Function appears in an AST:
//   - Named Functions report their registered name
//   - Anonymous Functions report an opaque, stable reference
type Function struct {
	fn         Func
	args       []any
	identifier Identifier
}

// New creates an anonymous Function around fn with optional fixed arguments.
// The Function receives a fresh opaque identifier, so two anonymous Functions
// are never equal in an AST even when they wrap the same callable.
//
// New panics if fn is nil.
//
// Example:
//
//	multiply := transproc.New(func(v any, args ...any) (any, error) {
//	    return v.(int) * args[0].(int), nil
//	}, 2)
func New(fn Func, args ...any) Function {
	if fn == nil {
		panic("transproc.New: fn must not be nil")
	}
	return Function{
		fn:         fn,
		args:       slices.Clone(args),
		identifier: opaqueIdentifier(uuid.New(), fn),
	}
}

// Named creates a Function registered under name. Named Functions report the
// name in their AST, which is what makes a pipeline serializable.
//
// Named panics if fn is nil or name is empty.
func Named(name Name, fn Func, args ...any) Function {
	if fn == nil {
		panic("transproc.Named: fn must not be nil")
	}
	if name == "" {
		panic("transproc.Named: name must not be empty")
	}
	return Function{
		fn:         fn,
		args:       slices.Clone(args),
		identifier: NamedIdentifier(name),
	}
}

// With returns a curried variant of f: the same identifier and callable,
// with args replacing the fixed arguments. f itself is not changed.
//
//	rename := transproc.Named("rename_keys", renameKeys)
//	userToName := rename.With(map[string]string{"user_name": "name"})
//	idToKey := rename.With(map[string]string{"id": "key"})
func (f Function) With(args ...any) Function {
	return Function{
		fn:         f.fn,
		args:       slices.Clone(args),
		identifier: f.identifier,
	}
}

// Call applies the wrapped Func to value followed by the fixed arguments.
// Whatever the Func returns is returned unchanged, including its error.
func (f Function) Call(value any) (any, error) {
	return f.fn(value, f.args...)
}

// Apply is identical to Call.
func (f Function) Apply(value any) (any, error) {
	return f.Call(value)
}

// Compose returns a Composite that applies f first and other second.
// Neither operand is modified.
func (f Function) Compose(other Transform) Composite {
	return Compose(f, other)
}

// Then is identical to Compose. It reads left to right when chained:
//
//	pipeline := parse.Then(validate).Then(render)
func (f Function) Then(other Transform) Composite {
	return Compose(f, other)
}

// ComposeFunc composes f with a bare callable. The callable is wrapped as an
// anonymous Function with no fixed arguments.
func (f Function) ComposeFunc(fn Func) Composite {
	return Compose(f, New(fn))
}

// ToAST returns the [identifier, args] pair describing f.
// The pair is returned as is, not wrapped in an AST.
func (f Function) ToAST() Node {
	return Node{
		Identifier: f.identifier,
		Args:       f.Args(),
	}
}

// Nodes returns the one-node AST of f.
func (f Function) Nodes() AST {
	return AST{f.ToAST()}
}

// Identifier returns the identifier f reports in its AST.
func (f Function) Identifier() Identifier {
	return f.identifier
}

// Args returns a copy of the fixed arguments. It never returns nil.
func (f Function) Args() []any {
	if len(f.args) == 0 {
		return []any{}
	}
	return slices.Clone(f.args)
}

// Func returns the wrapped callable.
func (f Function) Func() Func {
	return f.fn
}
