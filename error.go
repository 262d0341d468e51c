package transproc

import (
	"errors"
	"fmt"
)

// Sentinel errors for building and decoding pipelines. Calling a pipeline
// never produces them: errors from wrapped Funcs are returned unchanged.
var (
	ErrEmptyAST          = errors.New("ast is empty")
	ErrOpaqueIdentifier  = errors.New("opaque identifier cannot be resolved")
	ErrUnknownTransform  = errors.New("unknown transform")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidAST        = errors.New("invalid ast")
)

// BuildError provides context about a node that could not be turned into a
// Transform, either while decoding an AST document or while building a
// pipeline from an AST.
//
// Identifier is the zero value when the node could not be decoded far enough
// to have one.
type BuildError struct {
	Err        error
	Identifier Identifier
	Index      int
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Identifier.Kind() == 0 {
		return fmt.Sprintf("node %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("node %d (%s): %v", e.Index, e.Identifier, e.Err)
}

// Unwrap returns the underlying error, supporting error wrapping patterns.
func (e *BuildError) Unwrap() error {
	return e.Err
}
