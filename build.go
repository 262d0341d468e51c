package transproc

import "slices"

// Lookup resolves a registered name and its fixed arguments to a Transform.
// It is the boundary to a registry, which transproc itself does not provide.
//
// Implementations should return an error wrapping ErrUnknownTransform when
// name is not registered.
type Lookup interface {
	Lookup(name Name, args ...any) (Transform, error)
}

// LookupFunc adapts an ordinary function to the Lookup interface.
//
// Example:
//
//	lookup := transproc.LookupFunc(func(name transproc.Name, args ...any) (transproc.Transform, error) {
//	    fn, ok := registry[name]
//	    if !ok {
//	        return nil, fmt.Errorf("%w: %s", transproc.ErrUnknownTransform, name)
//	    }
//	    return transproc.Named(name, fn, args...), nil
//	})
type LookupFunc func(name Name, args ...any) (Transform, error)

// Lookup calls f(name, args...).
func (f LookupFunc) Lookup(name Name, args ...any) (Transform, error) {
	return f(name, args...)
}

// Build rebuilds a pipeline from its AST. Named nodes are resolved through
// lookup with their arguments; opaque nodes that still carry their callable
// are wrapped again under the same identifier, so the rebuilt pipeline
// reports the same AST as the original.
//
// Build returns ErrEmptyAST for an empty AST. Any other failure is a
// *BuildError naming the node that could not be resolved.
func Build(lookup Lookup, ast AST) (Transform, error) {
	if len(ast) == 0 {
		return nil, ErrEmptyAST
	}

	transforms := make([]Transform, 0, len(ast))
	for i, node := range ast {
		t, err := resolve(lookup, node)
		if err != nil {
			return nil, &BuildError{
				Index:      i,
				Identifier: node.Identifier,
				Err:        err,
			}
		}
		transforms = append(transforms, t)
	}

	return Chain(transforms[0], transforms[1:]...), nil
}

func resolve(lookup Lookup, node Node) (Transform, error) {
	switch node.Identifier.Kind() {
	case IdentifierNamed:
		if lookup == nil {
			return nil, ErrUnknownTransform
		}
		t, err := lookup.Lookup(node.Identifier.Name(), node.Args...)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrUnknownTransform
		}
		return t, nil
	case IdentifierOpaque:
		fn := node.Identifier.Func()
		if fn == nil {
			return nil, ErrOpaqueIdentifier
		}
		return Function{
			fn:         fn,
			args:       slices.Clone(node.Args),
			identifier: node.Identifier,
		}, nil
	default:
		return nil, ErrInvalidAST
	}
}
