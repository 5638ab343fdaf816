package engine

import (
	"fmt"

	"github.com/bytecodealliance/wasmtime-go/v25"

	"github.com/go-lynx/wasplug/plugin"
)

// Instance is an instantiated Component.
type Instance struct {
	raw   *wasmtime.Instance
	store *Store
}

// exportPath is this adapter's ExportIndex: wasmtime's core Instance has a
// flat export namespace, so interfacePath/functionName nesting is flattened
// into a single dotted name. Guest components built against this adapter
// (see internal/testutil) export their functions under that flattened name
// directly.
type exportPath struct{ name string }

func (i *Instance) GetExportIndex(store plugin.Store, parent plugin.ExportIndex, name string) (plugin.ExportIndex, bool) {
	full := name
	if p, ok := parent.(exportPath); ok {
		full = p.name + "." + name
	}
	if i.raw.GetExport(i.store.raw, full) == nil {
		return nil, false
	}
	return exportPath{name: full}, true
}

func (i *Instance) GetFunc(store plugin.Store, index plugin.ExportIndex) (plugin.Func, bool) {
	ep, ok := index.(exportPath)
	if !ok {
		return nil, false
	}
	ext := i.raw.GetExport(i.store.raw, ep.name)
	if ext == nil {
		return nil, false
	}
	fn := ext.Func()
	if fn == nil {
		return nil, false
	}
	return &Func{raw: fn, store: i.store}, true
}

// Func wraps one guest export, called through the call-frame-handle
// convention: a single i32 argument-frame handle in, a single i32
// result-frame handle out.
type Func struct {
	raw   *wasmtime.Func
	store *Store
}

func (f *Func) Call(store plugin.Store, args []plugin.Val, result []plugin.Val) error {
	argFrame := frames.push(args)
	ret, err := f.raw.Call(f.store.raw, argFrame)
	if err != nil {
		return err
	}
	resultFrame, ok := ret.(int32)
	if !ok {
		return fmt.Errorf("engine: guest export returned %T, want int32 call-frame handle", ret)
	}
	out := frames.pop(resultFrame)
	for i := range result {
		if i < len(out) {
			result[i] = out[i]
		}
	}
	return nil
}

// PostReturn is a no-op under the call-frame convention: frame cleanup
// already happens in frameTable.pop, and this adapter's guest exports have
// no separate post-return hook of their own to invoke.
func (f *Func) PostReturn(store plugin.Store) error { return nil }
