// Package transproc provides composable transformation functions for Go.
//
// # Overview
//
// transproc wraps a named or anonymous transformation together with a fixed
// list of extra arguments, and lets wrapped transformations be chained into a
// pipeline that behaves as a single callable. Every pipeline can also describe
// itself as a flat AST, so tools can inspect, serialize or rebuild it without
// running it.
//
// # Core Concepts
//
// The library is built around a single, small interface:
//
//	type Transform interface {
//	    Call(value any) (any, error)
//	    Nodes() AST
//	}
//
// Key components:
//   - Function: one callable plus its fixed arguments (New, Named)
//   - Composite: two Transforms applied left then right (Compose, Chain)
//   - AST: the flat, ordered list of [identifier, args] nodes of a pipeline
//
// Functions and Composites are immutable values. Composing never changes an
// operand, it returns a new Composite, so pipelines can be shared freely
// between goroutines.
//
// # Quick Start
//
//	multiply := transproc.New(func(v any, args ...any) (any, error) {
//	    return v.(int) * args[0].(int), nil
//	}, 2)
//	format := transproc.New(func(v any, _ ...any) (any, error) {
//	    return strconv.Itoa(v.(int)), nil
//	})
//
//	pipeline := multiply.Then(format)
//	result, err := pipeline.Call(3)
//	// result: "6", err: nil
//
// # Named Functions
//
// Functions registered under a name report that name in their AST. Curried
// variants share the name and callable but carry different arguments:
//
//	rename := transproc.Named("rename_keys", renameKeys)
//	toName := rename.With(map[string]string{"user_name": "name"})
//
//	ast := symbolize.Then(toName).ToAST()
//	// [["symbolize_keys", []], ["rename_keys", [{"user_name": "name"}]]]
//
// # Errors
//
// The composition layer is transparent to failures: an error returned by a
// wrapped Func is returned to the caller of Call unchanged, and panics are
// never recovered.
package transproc

// Name is a type alias for registered transformation names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
//
// Example:
//
//	const (
//	    SymbolizeKeysName transproc.Name = "symbolize_keys"
//	    RenameKeysName    transproc.Name = "rename_keys"
//	)
type Name = string

// Func is the shape of every wrapped callable: the primary input value
// followed by the fixed arguments of the Function that wraps it.
type Func func(value any, args ...any) (any, error)

// Transform defines the interface for anything that can be invoked with one
// value and can describe itself as a flat AST.
//
// Function and Composite implement Transform, and so does Observer. Any other
// type implementing both methods can be composed with them.
type Transform interface {
	Call(value any) (any, error)
	Nodes() AST
}
