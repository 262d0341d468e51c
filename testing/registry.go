package testing

import (
	"fmt"
	"slices"
	"sync"

	"github.com/zoobzio/transproc"
)

// Registry is a map-backed transproc.Lookup for tests. Registered callables
// are returned as named Functions, curried with the arguments of the lookup.
type Registry struct {
	fns map[transproc.Name]transproc.Func
	mu  sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[transproc.Name]transproc.Func),
	}
}

// HashRegistry returns a Registry holding the sample hash transformations
// under the names symbolize_keys, rename_keys and nest.
func HashRegistry() *Registry {
	return NewRegistry().
		Register(SymbolizeKeysName, SymbolizeKeys).
		Register(RenameKeysName, RenameKeys).
		Register(NestName, Nest)
}

// Register adds fn under name, replacing any previous registration.
func (r *Registry) Register(name transproc.Name, fn transproc.Func) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = fn
	return r
}

// Lookup implements transproc.Lookup.
func (r *Registry) Lookup(name transproc.Name, args ...any) (transproc.Transform, error) {
	fn, err := r.Function(name, args...)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Function returns the named Function for name, curried with args.
func (r *Registry) Function(name transproc.Name, args ...any) (transproc.Function, error) {
	r.mu.RLock()
	fn, ok := r.fns[name]
	r.mu.RUnlock()
	if !ok {
		return transproc.Function{}, fmt.Errorf("%w: %s", transproc.ErrUnknownTransform, name)
	}
	return transproc.Named(name, fn, args...), nil
}

// Fn is Function for test setup: it panics when name is not registered.
func (r *Registry) Fn(name transproc.Name, args ...any) transproc.Function {
	fn, err := r.Function(name, args...)
	if err != nil {
		panic(err)
	}
	return fn
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []transproc.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]transproc.Name, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
