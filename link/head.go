package link

import (
	"context"

	"github.com/go-lynx/wasplug/plugin"
)

// GraphHead is the post-load object: holds the loaded container for the root
// contract and exposes the single typed dispatch entry point external
// callers use. It is the only object this package exposes after a
// successful Load.
type GraphHead struct {
	rootContract  plugin.ContractData
	rootContainer pluginContainer

	// resources stands in for the "receiving store" the cross-plugin value
	// walker wraps resource handles into when a root-level dispatch returns
	// one. External callers are not a guest store, so the graph head owns
	// this table itself; handles returned to the external caller are valid
	// for the lifetime of the GraphHead.
	resources plugin.ResourceTable
}

// Dispatch drives a call across the root container identically to the
// all-plugins shim, but with no host-linker wrapper around it. Path
// resolution failures (unknown interface, unknown function)
// surface per-plugin inside the projected container exactly as they would
// through a shim, since each PluginInstance.Dispatch call resolves its own
// interface/function export independently.
func (h *GraphHead) Dispatch(ctx context.Context, interfacePath, functionName string, args []plugin.Val) plugin.Val {
	fn := plugin.FunctionDescriptor{Name: functionName, Return: plugin.MayContainResources}
	if fns, err := h.rootContract.Functions(); err == nil {
		for _, f := range fns {
			if f.Name == functionName {
				fn = f
				break
			}
		}
	}
	return dispatchAllPlugins(h.rootContainer, interfacePath, fn, args, dispatchStore{h.resources})
}

// dispatchStore adapts a bare ResourceTable into the plugin.Store shape
// dispatchAllPlugins expects for its "receiving store" parameter, since
// GraphHead has a resource table but no guest store of its own.
type dispatchStore struct {
	resources plugin.ResourceTable
}

func (s dispatchStore) Context() context.Context       { return context.Background() }
func (dispatchStore) SetFuel(uint64) error              { return nil }
func (dispatchStore) SetEpochDeadline(uint64)           {}
func (s dispatchStore) Resources() plugin.ResourceTable { return s.resources }
