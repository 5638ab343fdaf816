// Package engine is the component-model runtime adapter named as an
// external collaborator by the core's design: it implements the plugin
// package's abstract Store/Instance/Func/Linker/Engine surface on top of
// bytecodealliance/wasmtime-go's core engine primitives (Engine, Store,
// Module, Linker, fuel, epoch interruption).
//
// wasmtime-go's publicly stable surface is core WebAssembly, not the
// component model; a genuine component binding would carry full WIT type
// information (parameter/result shapes) across the host/guest boundary and
// do the canonical-ABI lowering itself. Lacking that binding, every host
// shim and guest export installed through this adapter uses one uniform
// low-level signature: a single i32 "call frame handle" in, a single i32
// call frame handle out. The call frame table (frame.go) holds the actual
// []plugin.Val argument/result lists the core passes around; the guest
// side of this convention is whatever test component exercises it (see
// internal/testutil), since no off-the-shelf compiled component exists to
// target here. Once wasmtime-go ships genuine component bindings, this
// package is the one place that needs to change — the plugin/link core
// above it is already written against the abstract interfaces, not this
// adapter's internals.
//
// Instance.GetExportIndex resolves names against wasmtime's flat core-module
// export namespace by concatenating parent.name + "." + name, since core
// wasm has no nested interfaces. PluginInstance.Dispatch always resolves the
// bare interface path before the dotted functionName leaf, so a component
// compiled for this adapter must also export an entry keyed by the bare
// interface path itself (unused beyond that lookup) alongside its real
// dotted function exports.
package engine

import (
	"context"

	"github.com/bytecodealliance/wasmtime-go/v25"

	"github.com/go-lynx/wasplug/plugin"
)

// Engine wraps a wasmtime.Engine configured for fuel consumption and epoch
// interruption, the two mechanisms the per-call limiter protocol builds on.
type Engine struct {
	raw *wasmtime.Engine
}

// NewEngine builds an Engine with fuel accounting and epoch interruption
// enabled; both are required for PluginInstance's limiter closures to have
// anything to act on.
func NewEngine() *Engine {
	cfg := wasmtime.NewConfig()
	cfg.SetConsumeFuel(true)
	cfg.SetEpochInterruption(true)
	return &Engine{raw: wasmtime.NewEngineWithConfig(cfg)}
}

// Raw exposes the underlying wasmtime.Engine as an untyped value, satisfying
// plugin.Engine; nothing in this module calls it.
func (e *Engine) Raw() any { return e.raw }

// RawEngine is the typed counterpart of Raw, for code in this module that
// already knows it is talking to this adapter.
func (e *Engine) RawEngine() *wasmtime.Engine { return e.raw }

// IncrementEpoch advances the epoch counter once; callers drive this
// externally (e.g. on a ticker) to enforce epoch deadlines.
func (e *Engine) IncrementEpoch() { e.raw.IncrementEpoch() }

func (e *Engine) NewStore(ctx context.Context) plugin.Store {
	return newStore(ctx, e.raw)
}
