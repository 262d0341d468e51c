package transproc

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for the Observer.
const (
	// Metrics.
	ObserverCallsTotal     = metricz.Key("observer.calls.total")
	ObserverSuccessesTotal = metricz.Key("observer.successes.total")
	ObserverFailuresTotal  = metricz.Key("observer.failures.total")
	ObserverDurationMs     = metricz.Key("observer.duration.ms")

	// Spans.
	ObserverCallSpan = tracez.Key("observer.call")

	// Tags.
	ObserverTagName    = tracez.Tag("observer.name")
	ObserverTagSuccess = tracez.Tag("observer.success")
	ObserverTagError   = tracez.Tag("observer.error")

	// Hook event keys.
	ObserverEventCallComplete = hookz.Key("observer.call_complete")
)

// ObserverEvent describes one completed call of an observed Transform.
type ObserverEvent struct {
	Timestamp time.Time
	Error     error
	Name      Name
	Duration  time.Duration
	Success   bool
}

// Observer decorates a Transform with metrics, traces and call events without
// changing its behavior: the value and error of every call, and the AST, are
// exactly those of the wrapped Transform.
//
// Unlike Function and Composite, Observer is a pointer type: it owns
// observability state and should be closed when no longer needed.
//
// Metrics:
//   - observer.calls.total: Counter of calls
//   - observer.successes.total: Counter of calls that returned no error
//   - observer.failures.total: Counter of calls that returned an error
//   - observer.duration.ms: Gauge of the last call duration
//
// Traces:
//   - observer.call: Span for each call
//
// Events (via hooks):
//   - observer.call_complete: Fired after every call
//
// Example:
//
//	observed := transproc.NewObserver("user-import", pipeline)
//	defer observed.Close()
//
//	observed.OnCallComplete(func(_ context.Context, event transproc.ObserverEvent) error {
//	    if !event.Success {
//	        log.Printf("%s failed after %v: %v", event.Name, event.Duration, event.Error)
//	    }
//	    return nil
//	})
type Observer struct {
	transform Transform
	clock     clockz.Clock
	metrics   *metricz.Registry
	tracer    *tracez.Tracer
	hooks     *hookz.Hooks[ObserverEvent]
	name      Name
	mu        sync.RWMutex
}

// NewObserver creates an Observer around t.
//
// NewObserver panics if t is nil.
func NewObserver(name Name, t Transform) *Observer {
	if t == nil {
		panic("transproc.NewObserver: transform must not be nil")
	}

	metrics := metricz.New()
	metrics.Counter(ObserverCallsTotal)
	metrics.Counter(ObserverSuccessesTotal)
	metrics.Counter(ObserverFailuresTotal)
	metrics.Gauge(ObserverDurationMs)

	return &Observer{
		name:      name,
		transform: t,
		metrics:   metrics,
		tracer:    tracez.New(),
		hooks:     hookz.New[ObserverEvent](),
	}
}

// Call calls the wrapped Transform and records the outcome. The result and
// error are returned unchanged.
func (o *Observer) Call(value any) (result any, err error) {
	clock := o.getClock()

	o.metrics.Counter(ObserverCallsTotal).Inc()
	start := clock.Now()

	ctx, span := o.tracer.StartSpan(context.Background(), ObserverCallSpan)
	span.SetTag(ObserverTagName, o.name)
	defer span.Finish()

	result, err = o.transform.Call(value)

	elapsed := clock.Since(start)
	o.metrics.Gauge(ObserverDurationMs).Set(float64(elapsed.Milliseconds()))

	if err != nil {
		o.metrics.Counter(ObserverFailuresTotal).Inc()
		span.SetTag(ObserverTagSuccess, "false")
		span.SetTag(ObserverTagError, err.Error())
	} else {
		o.metrics.Counter(ObserverSuccessesTotal).Inc()
		span.SetTag(ObserverTagSuccess, "true")
	}

	_ = o.hooks.Emit(ctx, ObserverEventCallComplete, ObserverEvent{ //nolint:errcheck
		Name:      o.name,
		Success:   err == nil,
		Error:     err,
		Duration:  elapsed,
		Timestamp: clock.Now(),
	})

	return result, err
}

// Apply is identical to Call.
func (o *Observer) Apply(value any) (any, error) {
	return o.Call(value)
}

// Nodes returns the AST of the wrapped Transform. Observers do not appear in
// the AST.
func (o *Observer) Nodes() AST {
	return o.transform.Nodes()
}

// Compose returns a Composite applying o first and other second.
func (o *Observer) Compose(other Transform) Composite {
	return Compose(o, other)
}

// Then is identical to Compose.
func (o *Observer) Then(other Transform) Composite {
	return Compose(o, other)
}

// ComposeFunc composes o with a bare callable, wrapped as an anonymous
// Function with no fixed arguments.
func (o *Observer) ComposeFunc(fn Func) Composite {
	return Compose(o, New(fn))
}

// Unwrap returns the observed Transform.
func (o *Observer) Unwrap() Transform {
	return o.transform
}

// Name returns the name of this observer.
func (o *Observer) Name() Name {
	return o.name
}

// WithClock sets a custom clock for testing.
func (o *Observer) WithClock(clock clockz.Clock) *Observer {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clock = clock
	return o
}

func (o *Observer) getClock() clockz.Clock {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.clock == nil {
		return clockz.RealClock
	}
	return o.clock
}

// Metrics returns the metrics registry for this observer.
func (o *Observer) Metrics() *metricz.Registry {
	return o.metrics
}

// Tracer returns the tracer for this observer.
func (o *Observer) Tracer() *tracez.Tracer {
	return o.tracer
}

// OnCallComplete registers a handler called asynchronously after every call,
// whether it succeeded or failed.
func (o *Observer) OnCallComplete(handler func(context.Context, ObserverEvent) error) error {
	_, err := o.hooks.Hook(ObserverEventCallComplete, handler)
	return err
}

// Close gracefully shuts down observability components.
func (o *Observer) Close() error {
	if o.tracer != nil {
		o.tracer.Close()
	}
	o.hooks.Close()
	return nil
}
