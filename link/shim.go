package link

import (
	"context"
	"encoding/hex"

	"github.com/go-lynx/wasplug/pkg/wasmval"
	"github.com/go-lynx/wasplug/plugin"
)

// pluginContainer is the loaded cardinality container every socket resolves
// to: PluginID-keyed instances of the plugins that fill a contract.
type pluginContainer = plugin.Container[plugin.PluginID, *plugin.PluginInstance]

func idVal(id plugin.PluginID) plugin.Val {
	return wasmval.NewString(hex.EncodeToString(id.Bytes()))
}

func valPtr(v plugin.Val) *plugin.Val { return &v }

// InstallShims is the dispatch shim factory. For every function
// in contract, it installs a host shim on linker under the package-qualified
// path "<package>/root"; for every resource type the contract declares, it
// registers a drop handler that removes the wrapper entry from whichever
// store's resource table the guest dropped it from.
func InstallShims(linker plugin.Linker, contract plugin.ContractData, container pluginContainer) error {
	pkgName, err := contract.PackageName()
	if err != nil {
		return plugin.ErrCorruptedContractManifest{Err: err}
	}
	interfacePath := pkgName + "/root"

	fns, err := contract.Functions()
	if err != nil {
		return plugin.ErrCorruptedContractManifest{Err: err}
	}
	for _, fn := range fns {
		fn := fn
		var shim plugin.HostShim
		if fn.Method {
			shim = func(ctx context.Context, store plugin.Store, args []plugin.Val) (plugin.Val, error) {
				return methodShim(container, interfacePath, fn, args, store), nil
			}
		} else {
			shim = func(ctx context.Context, store plugin.Store, args []plugin.Val) (plugin.Val, error) {
				return dispatchAllPlugins(container, interfacePath, fn, args, store), nil
			}
		}
		if err := linker.DefineFunc(interfacePath, fn.Name, shim); err != nil {
			return plugin.ErrFailedToLinkFunction{Name: fn.Name, Err: err}
		}
	}

	resources, err := contract.Resources()
	if err != nil {
		return plugin.ErrCorruptedContractManifest{Err: err}
	}
	for _, resName := range resources {
		drop := func(store plugin.Store, handle plugin.ResourceHandle) error {
			store.Resources().Delete(handle)
			return nil
		}
		if err := linker.DefineResourceType(interfacePath, resName, drop); err != nil {
			return plugin.ErrFailedToLinkInterface{Err: err}
		}
	}
	return nil
}

// dispatchAllPlugins is the all-plugins (non-method) shim flavor, also
// reused directly by GraphHead.Dispatch for the root contract — identically
// to the all-plugins shim, but without a host-linker wrapper around it.
func dispatchAllPlugins(container pluginContainer, interfacePath string, fn plugin.FunctionDescriptor, args []plugin.Val, callerStore plugin.Store) plugin.Val {
	results := plugin.Map(container, func(id plugin.PluginID, inst *plugin.PluginInstance) plugin.Val {
		v, derr := inst.Dispatch(interfacePath, fn.Name, fn, args)
		if derr != nil {
			return wasmval.NewResult(false, valPtr(derr.ToVal()))
		}
		if fn.Return == plugin.MayContainResources {
			walked, werr := walkResources(v, id, callerStore.Resources())
			if werr != nil {
				return wasmval.NewResult(false, valPtr(werr.ToVal()))
			}
			v = walked
		}
		return wasmval.NewResult(true, valPtr(v))
	})
	return plugin.Project(results, idVal, func(v plugin.Val) plugin.Val { return v })
}

// methodShim is the method-call routing shim flavor. Unlike the
// all-plugins shim, a method call targets exactly one plugin instance — the
// one that owns the resource named by the call's receiver argument — so the
// guest sees a bare Result rather than a container projection.
func methodShim(container pluginContainer, interfacePath string, fn plugin.FunctionDescriptor, args []plugin.Val, callerStore plugin.Store) plugin.Val {
	if len(args) == 0 || args[0].Kind() != wasmval.KindResource {
		return wasmval.NewResult(false, valPtr(plugin.ErrInvalidArgumentList{}.ToVal()))
	}

	wrapper, found := callerStore.Resources().Get(plugin.ResourceHandle(args[0].Resource()))
	if !found {
		return wasmval.NewResult(false, valPtr(plugin.ErrResourceReceive{Kind: plugin.InvalidHandle}.ToVal()))
	}

	inst, found := container.Get(wrapper.PluginID)
	if !found {
		return wasmval.NewResult(false, valPtr(plugin.ErrInvalidArgumentList{}.ToVal()))
	}

	routedArgs := make([]plugin.Val, len(args))
	copy(routedArgs, args)
	routedArgs[0] = wasmval.NewResource(wasmval.ResourceHandle(wrapper.Handle))

	v, derr := inst.Dispatch(interfacePath, fn.Name, fn, routedArgs)
	if derr != nil {
		return wasmval.NewResult(false, valPtr(derr.ToVal()))
	}
	if fn.Return == plugin.MayContainResources {
		walked, werr := walkResources(v, wrapper.PluginID, callerStore.Resources())
		if werr != nil {
			return wasmval.NewResult(false, valPtr(werr.ToVal()))
		}
		v = walked
	}
	return wasmval.NewResult(true, valPtr(v))
}
