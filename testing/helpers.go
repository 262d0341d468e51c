// Package testing provides test utilities and helpers for transproc-based
// applications.
//
// This package includes a recording Transform, a map-backed registry that
// satisfies transproc.Lookup, a handful of sample hash transformations and
// assertion helpers, to make testing pipelines easier.
//
// Example usage:
//
//	func TestMyPipeline(t *testing.T) {
//		registry := testing.HashRegistry()
//		rec := testing.NewRecorder(t, "audit")
//
//		pipeline := registry.Fn("symbolize_keys").Then(rec)
//		_, err := pipeline.Call(map[string]any{"user_name": "Jane"})
//
//		require.NoError(t, err)
//		testing.AssertCalled(t, rec, 1)
//		testing.AssertAST(t, pipeline, "symbolize_keys", "audit")
//	}
package testing

import (
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/zoobzio/transproc"
)

// Recorder is a configurable transproc.Transform that records every call.
// By default it returns its input unchanged; WithReturn and WithPanic change
// that. Recorder is safe for concurrent use.
type Recorder struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t          *testing.T
	name       transproc.Name
	inputs     []any
	returnVal  any
	returnErr  error
	panicMsg   string
	configured bool
	mu         sync.RWMutex
}

// NewRecorder creates a pass-through Recorder reporting name in its AST.
func NewRecorder(t *testing.T, name transproc.Name) *Recorder {
	return &Recorder{
		t:    t,
		name: name,
	}
}

// WithReturn configures the recorder to return val and err for all
// subsequent calls instead of its input.
func (r *Recorder) WithReturn(val any, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.returnVal = val
	r.returnErr = err
	r.configured = true
	return r
}

// WithPanic configures the recorder to panic with msg.
func (r *Recorder) WithPanic(msg string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panicMsg = msg
	return r
}

// Call implements transproc.Transform.
func (r *Recorder) Call(value any) (any, error) {
	r.mu.Lock()
	r.inputs = append(r.inputs, value)
	panicMsg := r.panicMsg
	configured, val, err := r.configured, r.returnVal, r.returnErr
	r.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if configured {
		return val, err
	}
	return value, nil
}

// Nodes implements transproc.Transform. The recorder appears as a single
// named node without arguments.
func (r *Recorder) Nodes() transproc.AST {
	return transproc.AST{{Identifier: transproc.NamedIdentifier(r.name), Args: []any{}}}
}

// Name returns the name of the recorder.
func (r *Recorder) Name() transproc.Name {
	return r.name
}

// CallCount returns the number of calls so far.
func (r *Recorder) CallCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inputs)
}

// LastInput returns the input of the most recent call, or nil.
func (r *Recorder) LastInput() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.inputs) == 0 {
		return nil
	}
	return r.inputs[len(r.inputs)-1]
}

// Inputs returns a copy of all inputs in call order.
func (r *Recorder) Inputs() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.inputs)
}

// Reset clears the call history and restores pass-through behavior.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = nil
	r.returnVal = nil
	r.returnErr = nil
	r.panicMsg = ""
	r.configured = false
}

// AssertCalled verifies that the recorder was called exactly expectedCalls times.
func AssertCalled(t *testing.T, rec *Recorder, expectedCalls int) {
	t.Helper()
	actualCalls := rec.CallCount()
	if actualCalls != expectedCalls {
		t.Errorf("expected recorder %s to be called %d times, but was called %d times",
			rec.name, expectedCalls, actualCalls)
	}
}

// AssertNotCalled verifies that the recorder was never called.
func AssertNotCalled(t *testing.T, rec *Recorder) {
	t.Helper()
	AssertCalled(t, rec, 0)
}

// AssertCalledWith verifies that the most recent call received expectedInput.
// Inputs are compared with reflect.DeepEqual.
func AssertCalledWith(t *testing.T, rec *Recorder, expectedInput any) {
	t.Helper()
	if rec.CallCount() == 0 {
		t.Errorf("expected recorder %s to be called with input %v, but it was never called",
			rec.name, expectedInput)
		return
	}

	actualInput := rec.LastInput()
	if !reflect.DeepEqual(actualInput, expectedInput) {
		t.Errorf("expected recorder %s to be called with input %v, but was called with %v",
			rec.name, expectedInput, actualInput)
	}
}

// AssertAST verifies the identifiers of a pipeline's AST, in order.
// Opaque identifiers are written as they print, "<fn REF>".
func AssertAST(t *testing.T, transform transproc.Transform, names ...string) {
	t.Helper()
	actual := transform.Nodes().Names()
	if !slices.Equal(actual, names) {
		t.Errorf("expected AST %v, got %v", names, actual)
	}
}
