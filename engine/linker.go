package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytecodealliance/wasmtime-go/v25"

	"github.com/go-lynx/wasplug/plugin"
)

var frames = newFrameTable()

// Linker wraps a wasmtime.Linker. Since wasmtime-go's Linker has no native
// Clone, this adapter tracks every DefineFunc/DefineResourceType call itself
// and replays them onto a fresh wasmtime.Linker when Clone is called, giving
// a parent plugin its own linker prepared from its parent's bindings without
// sharing mutable state with the original.
type Linker struct {
	raw *wasmtime.Linker
	eng *wasmtime.Engine

	shims     map[string]plugin.HostShim
	dropHooks map[string]func(plugin.Store, plugin.ResourceHandle) error

	// boundStore is set just before Instantiate. Every shim installed on
	// this linker is only ever invoked after instantiation, so by the time
	// a guest call reaches a shim closure, boundStore already names the
	// store that call is running against.
	boundStore *Store
}

// NewLinker builds an empty Linker against eng.
func NewLinker(eng *Engine) *Linker {
	return &Linker{
		raw:       wasmtime.NewLinker(eng.raw),
		eng:       eng.raw,
		shims:     make(map[string]plugin.HostShim),
		dropHooks: make(map[string]func(plugin.Store, plugin.ResourceHandle) error),
	}
}

func shimKey(interfacePath, name string) string { return interfacePath + "#" + name }

func splitShimKey(key string) (string, string) {
	i := strings.LastIndexByte(key, '#')
	if i < 0 {
		return key, ""
	}
	return key[:i], key[i+1:]
}

func (l *Linker) Clone() plugin.Linker {
	clone := &Linker{
		raw:       wasmtime.NewLinker(l.eng),
		eng:       l.eng,
		shims:     make(map[string]plugin.HostShim),
		dropHooks: make(map[string]func(plugin.Store, plugin.ResourceHandle) error),
	}
	for key, shim := range l.shims {
		interfacePath, name := splitShimKey(key)
		_ = clone.DefineFunc(interfacePath, name, shim)
	}
	for key, hook := range l.dropHooks {
		interfacePath, name := splitShimKey(key)
		_ = clone.DefineResourceType(interfacePath, name, hook)
	}
	return clone
}

// DefineFunc installs shim under the wasmtime import namespace
// (module=interfacePath, name=functionName). Every shim speaks the uniform
// call-frame-handle convention described in the package doc: one i32 in
// (the argument frame handle), one i32 out (the result frame handle).
func (l *Linker) DefineFunc(interfacePath, functionName string, shim plugin.HostShim) error {
	l.shims[shimKey(interfacePath, functionName)] = shim
	callback := func(argFrame int32) int32 {
		args := frames.pop(argFrame)
		store := l.boundStore
		v, err := shim(store.Context(), store, args)
		if err != nil {
			return frames.push(nil)
		}
		return frames.push([]plugin.Val{v})
	}
	return l.raw.DefineFunc(interfacePath, functionName, callback)
}

// DefineResourceType registers resourceName's drop hook under interfacePath
// as a "<resourceName>.drop" import taking the raw i32 handle directly (no
// call frame needed here since the signature is fixed and scalar).
func (l *Linker) DefineResourceType(interfacePath, resourceName string, drop func(plugin.Store, plugin.ResourceHandle) error) error {
	l.dropHooks[shimKey(interfacePath, resourceName)] = drop
	callback := func(handle int32) {
		if l.boundStore == nil {
			return
		}
		_ = drop(l.boundStore, plugin.ResourceHandle(handle))
	}
	return l.raw.DefineFunc(interfacePath, resourceName+".drop", callback)
}

func (l *Linker) Instantiate(parentCtx context.Context, component plugin.CompiledComponent, store plugin.Store) (plugin.Instance, error) {
	engStore, ok := store.(*Store)
	if !ok {
		return nil, fmt.Errorf("engine: Instantiate requires an *engine.Store, got %T", store)
	}
	comp, ok := component.(*Component)
	if !ok {
		return nil, fmt.Errorf("engine: Instantiate requires an *engine.Component, got %T", component)
	}
	l.boundStore = engStore
	inst, err := l.raw.Instantiate(engStore.RawStore(), comp.module)
	if err != nil {
		return nil, err
	}
	return &Instance{raw: inst, store: engStore}, nil
}
