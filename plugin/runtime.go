package plugin

import "context"

// The interfaces in this file are the narrow surface the core needs from the
// component-model runtime. Concrete implementations live in package engine,
// backed by bytecodealliance/wasmtime-go; plugin never imports engine, only
// the other way around, so the core stays agnostic of the concrete runtime.

// Store owns one instance's guest memory, fuel, and epoch state, plus the
// resource table wrappers get pushed into.
type Store interface {
	Context() context.Context
	SetFuel(fuel uint64) error
	SetEpochDeadline(ticks uint64)
	Resources() ResourceTable
}

// ResourceTable is the per-store table opaque resource handles are pushed
// into and looked up from. Handles are never meaningful outside the store
// that issued them.
type ResourceTable interface {
	// Push stores wrapper and returns a fresh handle for it. Fails with
	// ErrResourceCreation{Kind: ResourceTableFull} when the table is at capacity.
	Push(wrapper ResourceWrapper) (ResourceHandle, error)
	// Get looks up a previously pushed wrapper by handle.
	Get(handle ResourceHandle) (ResourceWrapper, bool)
	// Delete removes a wrapper, called from the host resource drop hook.
	Delete(handle ResourceHandle) (ResourceWrapper, bool)
}

// ResourceHandle is an opaque guest-observable resource reference, scoped to
// the store that issued it.
type ResourceHandle uint32

// ExportIndex is an opaque handle into an instance's export namespace,
// returned by Instance.GetExportIndex and consumed by GetExportIndex/GetFunc.
type ExportIndex interface{}

// Instance is an instantiated component, ready to resolve and call exports.
type Instance interface {
	// GetExportIndex resolves name under parent (nil for the top-level
	// namespace). Returns ok=false if no such export exists.
	GetExportIndex(store Store, parent ExportIndex, name string) (ExportIndex, bool)
	// GetFunc resolves a callable function at index. Returns ok=false if
	// index does not name a function.
	GetFunc(store Store, index ExportIndex) (Func, bool)
}

// Func is a single callable guest export.
type Func interface {
	// Call invokes the function with args, writing results into result
	// (pre-sized by the caller). A trap or host-side failure is returned
	// as-is; the caller wraps it as RuntimeException.
	Call(store Store, args []Val, result []Val) error
	// PostReturn runs the guest's post-return cleanup hook. Failures here
	// are swallowed by the caller — it is cleanup, not part of the call's
	// outcome.
	PostReturn(store Store) error
}

// Linker accumulates host shims before a plugin is instantiated against it.
// Dispatch shim factory (link.InstallShims) is the only core code that
// writes to a Linker; PluginData.Component/instantiation reads from it.
type Linker interface {
	// Clone returns an independent copy so installing shims for one parent
	// plugin never leaks into another parent's linker.
	Clone() Linker
	// DefineFunc installs a host shim under package-qualified interfacePath,
	// callable from the guest as functionName.
	DefineFunc(interfacePath, functionName string, shim HostShim) error
	// DefineResourceType registers a resource type under interfacePath with
	// a drop hook invoked when the guest drops a handle of that type.
	DefineResourceType(interfacePath, resourceName string, drop func(Store, ResourceHandle) error) error
	// Instantiate instantiates component against a fresh store derived from
	// parentCtx, returning the running instance.
	Instantiate(parentCtx context.Context, component CompiledComponent, store Store) (Instance, error)
}

// HostShim is a host-implemented function installed on a Linker; it is what
// link.InstallShims builds out of PluginInstance.Dispatch and the walker.
type HostShim func(ctx context.Context, store Store, args []Val) (Val, error)
