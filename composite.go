package transproc

// Composite applies two Transforms in order: right is called with the output
// of left. Composite is what Compose, Then and Chain produce.
//
// Every composition wraps the whole pipeline built so far as left and the new
// Transform as right, so a chain built left to right is always left-leaning:
//
//	f.Then(g).Then(h)  ==  Composite{left: Composite{left: f, right: g}, right: h}
//
// Like Function, Composite is an immutable value. Calling it has no side
// effects beyond those of the wrapped Transforms, and its AST is recomputed
// on every request.
type Composite struct {
	left  Transform
	right Transform
}

// Compose returns a Composite that applies left first and right second.
// It accepts any pair of Transforms, including user-defined ones.
//
// Compose panics if either operand is nil.
func Compose(left, right Transform) Composite {
	if left == nil {
		panic("transproc.Compose: left transform must not be nil")
	}
	if right == nil {
		panic("transproc.Compose: right transform must not be nil")
	}
	return Composite{left: left, right: right}
}

// Chain folds transforms into a single pipeline from left to right:
//
//	transproc.Chain(f, g, h)  ==  f.Then(g).Then(h)
//
// A pipeline must start from at least one Transform, which is why first is
// a separate parameter. With no rest, first is returned as is.
func Chain(first Transform, rest ...Transform) Transform {
	if first == nil {
		panic("transproc.Chain: first transform must not be nil")
	}
	result := first
	for _, next := range rest {
		result = Compose(result, next)
	}
	return result
}

// Call computes right(left(value)). The first error stops the pipeline and is
// returned unchanged; right is not called in that case.
func (c Composite) Call(value any) (any, error) {
	intermediate, err := c.left.Call(value)
	if err != nil {
		return nil, err
	}
	return c.right.Call(intermediate)
}

// Apply is identical to Call.
func (c Composite) Apply(value any) (any, error) {
	return c.Call(value)
}

// Compose returns a Composite wrapping c as left and other as right.
func (c Composite) Compose(other Transform) Composite {
	return Compose(c, other)
}

// Then is identical to Compose.
func (c Composite) Then(other Transform) Composite {
	return Compose(c, other)
}

// ComposeFunc composes c with a bare callable, wrapped as an anonymous
// Function with no fixed arguments.
func (c Composite) ComposeFunc(fn Func) Composite {
	return Compose(c, New(fn))
}

// ToAST returns the flat AST of the pipeline: the nodes of left followed by
// the nodes of right, in construction order. Nested Composites on either
// side are flattened, so the result never contains a nested sequence.
// Every node is visited once, whatever the depth of the chain.
func (c Composite) ToAST() AST {
	return c.appendNodes(nil)
}

// Nodes is identical to ToAST.
func (c Composite) Nodes() AST {
	return c.ToAST()
}

// Left returns the Transform applied first.
func (c Composite) Left() Transform {
	return c.left
}

// Right returns the Transform applied second.
func (c Composite) Right() Transform {
	return c.right
}

// appendNodes walks the left spine iteratively and appends the nodes of the
// whole pipeline to dst in construction order.
func (c Composite) appendNodes(dst AST) AST {
	var rights []Transform
	var current Transform = c
	for {
		composite, ok := current.(Composite)
		if !ok {
			break
		}
		rights = append(rights, composite.right)
		current = composite.left
	}

	dst = appendNodes(dst, current)
	for i := len(rights) - 1; i >= 0; i-- {
		dst = appendNodes(dst, rights[i])
	}
	return dst
}

// appendNodes appends the AST of t to dst. Transforms defined outside this
// package contribute through Nodes.
func appendNodes(dst AST, t Transform) AST {
	switch v := t.(type) {
	case Function:
		return append(dst, v.ToAST())
	case Composite:
		return v.appendNodes(dst)
	default:
		return append(dst, t.Nodes()...)
	}
}
