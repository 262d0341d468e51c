package testing

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zoobzio/transproc"
)

// Names of the sample hash transformations.
const (
	SymbolizeKeysName transproc.Name = "symbolize_keys"
	RenameKeysName    transproc.Name = "rename_keys"
	NestName          transproc.Name = "nest"
)

// Symbol is a hash key that has been through SymbolizeKeys.
type Symbol string

// Hash is the map type the sample transformations work on after
// SymbolizeKeys.
type Hash = map[Symbol]any

// SymbolizeKeys converts a map[string]any into a Hash.
func SymbolizeKeys(v any, _ ...any) (any, error) {
	input, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("symbolize_keys: expected map[string]any, got %T", v)
	}
	out := make(Hash, len(input))
	for k, val := range input {
		out[Symbol(k)] = val
	}
	return out, nil
}

// RenameKeys renames the keys of a Hash. It takes one argument, a
// map[Symbol]Symbol from old to new key. Keys missing from the input are
// ignored. The decoded form of the argument, a map[string]any of strings,
// is accepted too.
func RenameKeys(v any, args ...any) (any, error) {
	input, ok := v.(Hash)
	if !ok {
		return nil, fmt.Errorf("rename_keys: expected %T, got %T", Hash{}, v)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("rename_keys: expected 1 argument, got %d", len(args))
	}
	mapping, ok := symbolMap(args[0])
	if !ok {
		return nil, fmt.Errorf("rename_keys: expected map[Symbol]Symbol, got %T", args[0])
	}

	out := maps.Clone(input)
	for from, to := range mapping {
		if val, found := input[from]; found {
			delete(out, from)
			out[to] = val
		}
	}
	return out, nil
}

// Nest moves the given keys of a Hash under a new key. It takes two
// arguments: the new key as a Symbol and the keys to move as a []Symbol.
// The new key is always present in the output, empty when nothing moved.
// Decoded arguments (a string and a []any of strings) are accepted too.
func Nest(v any, args ...any) (any, error) {
	input, ok := v.(Hash)
	if !ok {
		return nil, fmt.Errorf("nest: expected %T, got %T", Hash{}, v)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("nest: expected 2 arguments, got %d", len(args))
	}
	root, ok := symbol(args[0])
	if !ok {
		return nil, fmt.Errorf("nest: expected Symbol key, got %T", args[0])
	}
	keys, ok := symbolList(args[1])
	if !ok {
		return nil, fmt.Errorf("nest: expected []Symbol keys, got %T", args[1])
	}

	out := make(Hash, len(input)+1)
	nested := make(Hash, len(keys))
	for k, val := range input {
		if slices.Contains(keys, k) {
			nested[k] = val
			continue
		}
		out[k] = val
	}
	out[root] = nested
	return out, nil
}

func symbol(v any) (Symbol, bool) {
	switch s := v.(type) {
	case Symbol:
		return s, true
	case string:
		return Symbol(s), true
	default:
		return "", false
	}
}

func symbolList(v any) ([]Symbol, bool) {
	switch list := v.(type) {
	case []Symbol:
		return list, true
	case []any:
		out := make([]Symbol, 0, len(list))
		for _, item := range list {
			s, ok := symbol(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func symbolMap(v any) (map[Symbol]Symbol, bool) {
	switch m := v.(type) {
	case map[Symbol]Symbol:
		return m, true
	case map[string]any:
		out := make(map[Symbol]Symbol, len(m))
		for from, to := range m {
			s, ok := symbol(to)
			if !ok {
				return nil, false
			}
			out[Symbol(from)] = s
		}
		return out, true
	default:
		return nil, false
	}
}
