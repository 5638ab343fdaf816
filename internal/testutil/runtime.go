package testutil

import (
	"context"

	"github.com/go-lynx/wasplug/plugin"
)

// Component is a fake plugin.CompiledComponent.
type Component struct{ NameValue string }

func (c Component) Name() string { return c.NameValue }

// Store is a fake plugin.Store backed by a real plugin.ResourceTable, so the
// cross-plugin walker (link.walkResources) behaves identically to the
// engine-backed one.
type Store struct {
	ctx           context.Context
	resources     plugin.ResourceTable
	Fuel          uint64
	EpochDeadline uint64
}

func NewStore(ctx context.Context) *Store {
	return &Store{ctx: ctx, resources: plugin.NewResourceTable()}
}

func (s *Store) Context() context.Context { return s.ctx }

func (s *Store) SetFuel(fuel uint64) error {
	s.Fuel = fuel
	return nil
}

func (s *Store) SetEpochDeadline(ticks uint64) { s.EpochDeadline = ticks }

func (s *Store) Resources() plugin.ResourceTable { return s.resources }

// Engine is a fake plugin.Engine handing out fresh testutil Stores.
type Engine struct{}

func (Engine) Raw() any { return nil }

func (Engine) NewStore(ctx context.Context) plugin.Store { return NewStore(ctx) }

// HandlerFunc is the behavior a fake Func runs when called.
type HandlerFunc func(args []plugin.Val, result []plugin.Val) error

// Func is a fake plugin.Func running Handler directly, with no call-frame
// indirection — these tests exercise PluginInstance.Dispatch and the link
// package, not the engine package's wasmtime binding convention.
type Func struct {
	Handler HandlerFunc
}

func (f Func) Call(store plugin.Store, args []plugin.Val, result []plugin.Val) error {
	return f.Handler(args, result)
}

func (f Func) PostReturn(store plugin.Store) error { return nil }

type exportKey struct{ name string }

// Instance is a fake plugin.Instance with a flat export table, keyed the
// same way engine.Instance flattens interfacePath/functionName (dotted),
// so fixtures built against Instance transfer directly to real component
// exports if one is ever substituted in.
//
// PluginInstance.Dispatch resolves an export in two steps: it looks up the
// bare interfacePath first, then the dotted interfacePath.functionName under
// it. Since lookups here are exact-match against Exports, every fixture
// needs an entry keyed by the bare interfacePath itself (its Func is never
// called) in addition to the real dotted leaf entries, or the first lookup
// fails before the function is ever found. A component compiled for the
// engine package's flattened namespace needs the same marker export.
type Instance struct {
	Exports map[string]Func
}

func (i Instance) GetExportIndex(store plugin.Store, parent plugin.ExportIndex, name string) (plugin.ExportIndex, bool) {
	full := name
	if p, ok := parent.(exportKey); ok {
		full = p.name + "." + name
	}
	if _, ok := i.Exports[full]; !ok {
		return nil, false
	}
	return exportKey{name: full}, true
}

func (i Instance) GetFunc(store plugin.Store, index plugin.ExportIndex) (plugin.Func, bool) {
	k, ok := index.(exportKey)
	if !ok {
		return nil, false
	}
	fn, ok := i.Exports[k.name]
	return fn, ok
}

// Linker is a fake plugin.Linker recording installed shims/drop hooks so a
// test can invoke them directly, and optionally overriding Instantiate to
// hand back a specific fake Instance.
type Linker struct {
	shims           map[string]plugin.HostShim
	drops           map[string]func(plugin.Store, plugin.ResourceHandle) error
	InstantiateFunc func(ctx context.Context, component plugin.CompiledComponent, store plugin.Store) (plugin.Instance, error)
}

func NewLinker() *Linker {
	return &Linker{
		shims: make(map[string]plugin.HostShim),
		drops: make(map[string]func(plugin.Store, plugin.ResourceHandle) error),
	}
}

func linkerKey(interfacePath, name string) string { return interfacePath + "#" + name }

func (l *Linker) Clone() plugin.Linker {
	clone := NewLinker()
	for k, v := range l.shims {
		clone.shims[k] = v
	}
	for k, v := range l.drops {
		clone.drops[k] = v
	}
	clone.InstantiateFunc = l.InstantiateFunc
	return clone
}

func (l *Linker) DefineFunc(interfacePath, functionName string, shim plugin.HostShim) error {
	l.shims[linkerKey(interfacePath, functionName)] = shim
	return nil
}

func (l *Linker) DefineResourceType(interfacePath, resourceName string, drop func(plugin.Store, plugin.ResourceHandle) error) error {
	l.drops[linkerKey(interfacePath, resourceName)] = drop
	return nil
}

func (l *Linker) Instantiate(ctx context.Context, component plugin.CompiledComponent, store plugin.Store) (plugin.Instance, error) {
	if l.InstantiateFunc != nil {
		return l.InstantiateFunc(ctx, component, store)
	}
	return Instance{}, nil
}

// Shim returns a previously installed host shim, for tests that want to
// invoke it directly instead of through a real dispatch call.
func (l *Linker) Shim(interfacePath, functionName string) (plugin.HostShim, bool) {
	s, ok := l.shims[linkerKey(interfacePath, functionName)]
	return s, ok
}

// Drop returns a previously installed resource drop hook.
func (l *Linker) Drop(interfacePath, resourceName string) (func(plugin.Store, plugin.ResourceHandle) error, bool) {
	d, ok := l.drops[linkerKey(interfacePath, resourceName)]
	return d, ok
}
