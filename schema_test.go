package transproc

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Run("Valid Documents", func(t *testing.T) {
		docs := []any{
			[]any{"symbolize_keys"},
			[]any{[]any{"rename_keys", []any{map[string]any{"user_name": "name"}}}},
			[]any{[]any{"to_string"}, "inc"},
			[]any{[]any{map[string]any{"ref": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}, []any{2}}},
		}
		for i, doc := range docs {
			if err := Validate(doc); err != nil {
				t.Errorf("doc %d: unexpected error %v", i, err)
			}
		}
	})

	t.Run("Invalid Documents", func(t *testing.T) {
		docs := map[string]any{
			"object":           map[string]any{"a": 1},
			"empty":            []any{},
			"empty node":       []any{[]any{}},
			"numeric node":     []any{42},
			"ref missing":      []any{[]any{map[string]any{"id": "x"}, []any{}}},
			"ref extra fields": []any{[]any{map[string]any{"ref": "x", "name": "y"}}},
		}
		for name, doc := range docs {
			t.Run(name, func(t *testing.T) {
				err := Validate(doc)
				if !errors.Is(err, ErrInvalidAST) {
					t.Errorf("expected ErrInvalidAST, got %v", err)
				}
			})
		}
	})

	t.Run("Violations Are Reported", func(t *testing.T) {
		err := Validate([]any{42})
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Error() == ErrInvalidAST.Error() {
			t.Errorf("expected schema violations in %q", err.Error())
		}
	})
}
