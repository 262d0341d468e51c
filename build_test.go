package transproc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func testLookup() Lookup {
	registry := map[Name]Func{
		"multiply":  multiply,
		"add":       add,
		"to_string": toString,
	}
	return LookupFunc(func(name Name, args ...any) (Transform, error) {
		fn, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTransform, name)
		}
		return Named(name, fn, args...), nil
	})
}

func TestBuild(t *testing.T) {
	t.Run("Rebuilds Named Pipeline", func(t *testing.T) {
		lookup := testLookup()
		original := Chain(
			Named("multiply", multiply, 3),
			Named("add", add, 1),
			Named("to_string", toString),
		)

		rebuilt, err := Build(lookup, original.Nodes())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !rebuilt.Nodes().Equal(original.Nodes()) {
			t.Errorf("expected %v, got %v", original.Nodes().Names(), rebuilt.Nodes().Names())
		}

		r1, _ := original.Call(4)
		r2, _ := rebuilt.Call(4)
		if r1 != r2 || r1 != "13" {
			t.Errorf("original = %v, rebuilt = %v, expected \"13\"", r1, r2)
		}
	})

	t.Run("From Literal AST", func(t *testing.T) {
		ast := AST{
			{Identifier: NamedIdentifier("add"), Args: []any{5}},
			{Identifier: NamedIdentifier("multiply"), Args: []any{2}},
		}

		pipeline, err := Build(testLookup(), ast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, _ := pipeline.Call(1)
		if result != 12 {
			t.Errorf("expected 12, got %v", result)
		}
	})

	t.Run("Single Node Is Function", func(t *testing.T) {
		pipeline, err := Build(testLookup(), AST{{Identifier: NamedIdentifier("add"), Args: []any{1}}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := pipeline.(Function); !ok {
			t.Errorf("expected Function, got %T", pipeline)
		}
	})

	t.Run("Opaque Nodes Keep Identity", func(t *testing.T) {
		original := Named("multiply", multiply, 2).ComposeFunc(toString)

		rebuilt, err := Build(testLookup(), original.ToAST())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rebuilt.Nodes().Equal(original.ToAST()) {
			t.Error("expected rebuilt pipeline to report the same AST")
		}
		result, _ := rebuilt.Call(21)
		if result != "42" {
			t.Errorf("expected \"42\", got %v", result)
		}
	})

	t.Run("Empty AST", func(t *testing.T) {
		_, err := Build(testLookup(), nil)
		if !errors.Is(err, ErrEmptyAST) {
			t.Errorf("expected ErrEmptyAST, got %v", err)
		}
	})

	t.Run("Unknown Name", func(t *testing.T) {
		ast := AST{
			{Identifier: NamedIdentifier("add"), Args: []any{1}},
			{Identifier: NamedIdentifier("missing")},
		}

		_, err := Build(testLookup(), ast)
		if !errors.Is(err, ErrUnknownTransform) {
			t.Fatalf("expected ErrUnknownTransform, got %v", err)
		}

		var buildErr *BuildError
		if !errors.As(err, &buildErr) {
			t.Fatalf("expected *BuildError, got %T", err)
		}
		if buildErr.Index != 1 {
			t.Errorf("expected index 1, got %d", buildErr.Index)
		}
		if buildErr.Identifier.Name() != "missing" {
			t.Errorf("expected identifier missing, got %v", buildErr.Identifier)
		}
	})

	t.Run("Nil Lookup", func(t *testing.T) {
		_, err := Build(nil, AST{{Identifier: NamedIdentifier("add")}})
		if !errors.Is(err, ErrUnknownTransform) {
			t.Errorf("expected ErrUnknownTransform, got %v", err)
		}
	})

	t.Run("Lookup Returns Nil", func(t *testing.T) {
		lookup := LookupFunc(func(Name, ...any) (Transform, error) {
			return nil, nil
		})
		_, err := Build(lookup, AST{{Identifier: NamedIdentifier("add")}})
		if !errors.Is(err, ErrUnknownTransform) {
			t.Errorf("expected ErrUnknownTransform, got %v", err)
		}
	})

	t.Run("Opaque Without Callable", func(t *testing.T) {
		ast := AST{{Identifier: opaqueIdentifier(uuid.New(), nil)}}

		_, err := Build(testLookup(), ast)
		if !errors.Is(err, ErrOpaqueIdentifier) {
			t.Errorf("expected ErrOpaqueIdentifier, got %v", err)
		}
	})

	t.Run("Zero Identifier", func(t *testing.T) {
		_, err := Build(testLookup(), AST{{}})
		if !errors.Is(err, ErrInvalidAST) {
			t.Errorf("expected ErrInvalidAST, got %v", err)
		}
	})
}
