package link

import (
	"github.com/go-lynx/wasplug/pkg/wasmval"
	"github.com/go-lynx/wasplug/plugin"
)

// walkResources is the cross-plugin value walker: a structural recursion
// over the guest value model that wraps every embedded resource handle with
// the originating plugin's identity before the value is allowed to cross a
// plugin boundary. It is only ever invoked when a function descriptor's
// return kind is plugin.MayContainResources — scalar-only functions skip it
// entirely.
//
// origin is the plugin the value is leaving; dest is the resource table of
// the store the value is entering (the *receiving* side — the wrapper ends
// up stored in the borrower's resource table, not the originating one).
func walkResources(v plugin.Val, origin plugin.PluginID, dest plugin.ResourceTable) (plugin.Val, plugin.DispatchError) {
	switch v.Kind() {
	case wasmval.KindBool, wasmval.KindS8, wasmval.KindS16, wasmval.KindS32, wasmval.KindS64,
		wasmval.KindU8, wasmval.KindU16, wasmval.KindU32, wasmval.KindU64,
		wasmval.KindFloat32, wasmval.KindFloat64, wasmval.KindChar, wasmval.KindString,
		wasmval.KindEnum, wasmval.KindFlags:
		return v, nil

	case wasmval.KindList, wasmval.KindTuple:
		in := v.List()
		out := make([]plugin.Val, len(in))
		for i, item := range in {
			walked, err := walkResources(item, origin, dest)
			if err != nil {
				return plugin.Val{}, err
			}
			out[i] = walked
		}
		if v.Kind() == wasmval.KindList {
			return wasmval.NewList(out), nil
		}
		return wasmval.NewTuple(out), nil

	case wasmval.KindRecord:
		in := v.Record()
		out := make([]wasmval.RecordField, len(in))
		for i, f := range in {
			walked, err := walkResources(f.Value, origin, dest)
			if err != nil {
				return plugin.Val{}, err
			}
			out[i] = wasmval.RecordField{Name: f.Name, Value: walked}
		}
		return wasmval.NewRecord(out), nil

	case wasmval.KindVariant:
		payload := v.VariantPayload()
		if payload == nil {
			return v, nil
		}
		walked, err := walkResources(*payload, origin, dest)
		if err != nil {
			return plugin.Val{}, err
		}
		return wasmval.NewVariant(v.VariantName(), &walked), nil

	case wasmval.KindOption:
		some := v.OptionValue()
		if some == nil {
			return v, nil
		}
		walked, err := walkResources(*some, origin, dest)
		if err != nil {
			return plugin.Val{}, err
		}
		return wasmval.NewOption(&walked), nil

	case wasmval.KindResult:
		payload := v.ResultPayload()
		if payload == nil {
			return v, nil
		}
		walked, err := walkResources(*payload, origin, dest)
		if err != nil {
			return plugin.Val{}, err
		}
		return wasmval.NewResult(v.ResultOK(), &walked), nil

	case wasmval.KindResource:
		wrapper := plugin.ResourceWrapper{PluginID: origin, Handle: plugin.ResourceHandle(v.Resource())}
		handle, err := dest.Push(wrapper)
		if err != nil {
			return plugin.Val{}, plugin.ErrResourceCreation{Kind: plugin.ResourceTableFull}
		}
		return wasmval.NewResource(wasmval.ResourceHandle(handle)), nil

	case wasmval.KindFuture:
		return plugin.Val{}, plugin.ErrUnsupportedType{Name: "future:" + v.UnsupportedName()}
	case wasmval.KindStream:
		return plugin.Val{}, plugin.ErrUnsupportedType{Name: "stream:" + v.UnsupportedName()}
	case wasmval.KindErrorContext:
		return plugin.Val{}, plugin.ErrUnsupportedType{Name: "error-context:" + v.UnsupportedName()}
	default:
		return plugin.Val{}, plugin.ErrUnsupportedType{Name: "unknown"}
	}
}
