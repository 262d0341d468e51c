package transproc

import (
	"encoding/json"
	"reflect"

	"github.com/google/uuid"
)

// IdentifierKind is a discriminator for the Identifier variants.
type IdentifierKind uint8

// Identifier variants.
const (
	// IdentifierNamed identifies a Function registered under a name.
	IdentifierNamed IdentifierKind = iota + 1
	// IdentifierOpaque identifies an anonymous Function by reference.
	IdentifierOpaque
)

// String returns the variant name.
func (k IdentifierKind) String() string {
	switch k {
	case IdentifierNamed:
		return "named"
	case IdentifierOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Identifier tells which callable an AST node stands for. It is a tagged
// union: either Named, carrying the registered name, or Opaque, carrying a
// stable reference to an anonymous callable.
//
// Consumers switch on Kind instead of inspecting the callable:
//
//	switch node.Identifier.Kind() {
//	case transproc.IdentifierNamed:
//	    fmt.Println("named:", node.Identifier.Name())
//	case transproc.IdentifierOpaque:
//	    fmt.Println("anonymous:", node.Identifier.Ref())
//	}
type Identifier struct {
	fn   Func
	name Name
	ref  uuid.UUID
	kind IdentifierKind
}

// NamedIdentifier returns the Named identifier for name.
func NamedIdentifier(name Name) Identifier {
	return Identifier{kind: IdentifierNamed, name: name}
}

func opaqueIdentifier(ref uuid.UUID, fn Func) Identifier {
	return Identifier{kind: IdentifierOpaque, ref: ref, fn: fn}
}

// Kind returns the variant of the identifier.
func (i Identifier) Kind() IdentifierKind { return i.kind }

// Name returns the registered name, or "" for opaque identifiers.
func (i Identifier) Name() Name { return i.name }

// Ref returns the opaque reference, or uuid.Nil for named identifiers.
func (i Identifier) Ref() uuid.UUID { return i.ref }

// Func returns the callable behind an opaque identifier. It is nil for named
// identifiers and for opaque identifiers that were not minted in this process.
func (i Identifier) Func() Func { return i.fn }

// Equal reports whether both identifiers stand for the same callable.
// Named identifiers compare by name, opaque identifiers by reference.
func (i Identifier) Equal(other Identifier) bool {
	if i.kind != other.kind {
		return false
	}
	if i.kind == IdentifierOpaque {
		return i.ref == other.ref
	}
	return i.name == other.name
}

// String returns the name of a named identifier, or "<fn REF>" for an
// opaque one.
func (i Identifier) String() string {
	switch i.kind {
	case IdentifierNamed:
		return i.name
	case IdentifierOpaque:
		return "<fn " + i.ref.String() + ">"
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes a named identifier as its name and an opaque one as
// {"ref": "<uuid>"}.
func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.wire())
}

func (i Identifier) wire() any {
	switch i.kind {
	case IdentifierNamed:
		return i.name
	case IdentifierOpaque:
		return map[string]any{"ref": i.ref.String()}
	default:
		return nil
	}
}

// Node is one [identifier, args] pair of an AST.
type Node struct {
	Identifier Identifier
	Args       []any
}

// Equal reports whether both nodes have equal identifiers and deeply equal
// arguments. Nil and empty argument lists are equal.
func (n Node) Equal(other Node) bool {
	if !n.Identifier.Equal(other.Identifier) {
		return false
	}
	if len(n.Args) == 0 && len(other.Args) == 0 {
		return true
	}
	return reflect.DeepEqual(n.Args, other.Args)
}

// MarshalJSON encodes the node as the two-element array [identifier, args].
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.wire())
}

func (n Node) wire() []any {
	args := n.Args
	if args == nil {
		args = []any{}
	}
	return []any{n.Identifier.wire(), args}
}

// AST is the flat structural form of a pipeline: its nodes in construction
// order, first composed first. It is not a general syntax tree; nesting is
// never represented.
//
// Example:
//
//	ast := symbolize.Then(rename).Then(nest).ToAST()
//	for i, node := range ast {
//	    fmt.Println(i, node.Identifier, node.Args)
//	}
type AST []Node

// Equal reports whether both ASTs have the same length and pairwise equal
// nodes.
func (a AST) Equal(other AST) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !a[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of nodes.
func (a AST) Len() int {
	return len(a)
}

// Names returns the string form of every identifier, in order.
func (a AST) Names() []string {
	names := make([]string, len(a))
	for i, node := range a {
		names[i] = node.Identifier.String()
	}
	return names
}

// Walk calls fn for each node in order with its position.
func (a AST) Walk(fn func(int, Node)) {
	for i, node := range a {
		fn(i, node)
	}
}

// Find returns the first node matching the predicate, or nil if not found.
func (a AST) Find(predicate func(Node) bool) *Node {
	for i := range a {
		if predicate(a[i]) {
			node := a[i]
			return &node
		}
	}
	return nil
}

// FindByName returns the first node with the given registered name, or nil
// if not found.
func (a AST) FindByName(name Name) *Node {
	return a.Find(func(n Node) bool {
		return n.Identifier.Kind() == IdentifierNamed && n.Identifier.Name() == name
	})
}
