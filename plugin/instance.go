package plugin

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-lynx/wasplug/pkg/wasmval"
)

var tracer = otel.Tracer("github.com/go-lynx/wasplug/plugin")

// PluginInstance is one instantiated plugin: its own store, its own running
// component instance, and the mutex that makes Dispatch calls sequential —
// no RWMutex, since guest calls always at least touch fuel/epoch state and a
// shared read lock buys nothing when every call writes.
type PluginInstance struct {
	ID PluginID

	store    Store
	instance Instance

	// FuelLimiter and EpochLimiter are invoked fresh on every Dispatch call
	// (never cached) so a binding can change limits between calls without
	// re-instantiating the plugin. Either may be nil to skip that limit
	// entirely. store is passed through so a limiter can inspect or key off
	// store-specific state; most limiters ignore it and close over a fixed
	// budget or a per-function override instead.
	FuelLimiter  func(store Store, interfacePath, functionName string, descriptor FunctionDescriptor) uint64
	EpochLimiter func(store Store, interfacePath, functionName string, descriptor FunctionDescriptor) uint64

	mu sync.Mutex
}

// NewPluginInstance wraps an already-instantiated store/instance pair. The
// socket loader is the only caller; it owns the instantiation sequence.
func NewPluginInstance(id PluginID, store Store, instance Instance) *PluginInstance {
	return &PluginInstance{ID: id, store: store, instance: instance}
}

// Dispatch runs one call against this plugin:
//
//  1. size the return buffer from descriptor.Return
//  2. apply the fuel limiter, if any
//  3. apply the epoch limiter, if any
//  4. resolve the interface export index
//  5. resolve the function export off it
//  6. invoke the guest function with args into the return buffer
//  7. reset fuel to zero so unused fuel never carries to the next call
//  8. treat a Call error as a trap -> RuntimeException
//  9. run PostReturn, swallowing any error — it is cleanup, not outcome
//  10. return the buffered value, or the placeholder for Void functions
//
// Only one call runs at a time per instance; a call arriving while another
// is in flight is rejected immediately with ErrLockRejected rather than
// queued, since queuing would let a slow guest function stall unrelated
// callers indefinitely.
func (p *PluginInstance) Dispatch(interfacePath, functionName string, descriptor FunctionDescriptor, args []Val) (Val, DispatchError) {
	ctx, span := tracer.Start(p.store.Context(), "wasplug.dispatch", trace.WithAttributes(
		attribute.String("interface_path", interfacePath),
		attribute.String("function_name", functionName),
	))
	defer span.End()
	_ = ctx // the runtime adapter owns the store's context; this span only annotates it

	started := time.Now()
	v, derr := p.dispatchLocked(interfacePath, functionName, descriptor, args)
	recordDispatch(interfacePath, functionName, started, derr)
	if derr != nil {
		span.RecordError(derr)
	}
	return v, derr
}

// dispatchLocked is the ten-step algorithm itself, separated from Dispatch
// so the tracing/metrics wrapper above never has to duplicate its control
// flow.
func (p *PluginInstance) dispatchLocked(interfacePath, functionName string, descriptor FunctionDescriptor, args []Val) (Val, DispatchError) {
	if !p.mu.TryLock() {
		return Val{}, ErrLockRejected{}
	}
	defer p.mu.Unlock()

	result := make([]Val, 1)
	if descriptor.Return == Void {
		result = nil
	}

	if p.FuelLimiter != nil {
		fuel := p.FuelLimiter(p.store, interfacePath, functionName, descriptor)
		if err := p.store.SetFuel(fuel); err != nil {
			return Val{}, ErrRuntimeException{Err: err}
		}
	}
	if p.EpochLimiter != nil {
		p.store.SetEpochDeadline(p.EpochLimiter(p.store, interfacePath, functionName, descriptor))
	}

	parent, ok := p.instance.GetExportIndex(p.store, nil, interfacePath)
	if !ok {
		return Val{}, ErrInvalidInterfacePath{Path: interfacePath}
	}
	fnIndex, ok := p.instance.GetExportIndex(p.store, parent, functionName)
	if !ok {
		return Val{}, ErrInvalidFunction{Name: functionName}
	}
	fn, ok := p.instance.GetFunc(p.store, fnIndex)
	if !ok {
		return Val{}, ErrInvalidFunction{Name: functionName}
	}

	callErr := fn.Call(p.store, args, result)

	// Fuel must be reset even on trap; an unbounded guest must never be able
	// to bank fuel across calls by tripping early.
	if p.FuelLimiter != nil {
		_ = p.store.SetFuel(0)
	}

	if callErr != nil {
		return Val{}, ErrRuntimeException{Err: callErr}
	}

	_ = fn.PostReturn(p.store)

	if descriptor.Return == Void || len(result) == 0 {
		return Placeholder(), nil
	}
	return result[0], nil
}

// Placeholder is the Void return value, the empty tuple.
func Placeholder() Val { return wasmval.Placeholder }

// Resources exposes the resource table of the instance's own store. The
// dispatch shims do not use it: they read and write the caller store's table.
func (p *PluginInstance) Resources() ResourceTable { return p.store.Resources() }

// Store exposes the instance's underlying store.
func (p *PluginInstance) Store() Store { return p.store }
