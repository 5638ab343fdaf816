package link

import (
	"context"
	"testing"

	"github.com/go-lynx/wasplug/internal/testutil"
	"github.com/go-lynx/wasplug/pkg/wasmval"
	"github.com/go-lynx/wasplug/plugin"
)

// pluginInstanceWithExport builds a PluginInstance whose only export is
// interfacePath/functionName, plus the bare interfacePath marker entry
// testutil.Instance's flat export table requires to resolve the namespace
// step of GetExportIndex before resolving the function itself.
func pluginInstanceWithExport(t *testing.T, store *testutil.Store, interfacePath, functionName string, fn testutil.Func) *plugin.PluginInstance {
	t.Helper()
	inst := testutil.Instance{Exports: map[string]testutil.Func{
		interfacePath:                      {Handler: func(args []plugin.Val, result []plugin.Val) error { return nil }},
		interfacePath + "." + functionName: fn,
	}}
	return plugin.NewPluginInstance(testutil.NewPluginID(), store, inst)
}

func TestDispatchAllPlugins_FanOutProjection(t *testing.T) {
	store := testutil.NewStore(context.Background())
	echo := testutil.Func{Handler: func(args []plugin.Val, result []plugin.Val) error {
		result[0] = args[0]
		return nil
	}}

	p1 := pluginInstanceWithExport(t, store, "demo/root", "greet", echo)
	p2 := pluginInstanceWithExport(t, store, "demo/root", "greet", echo)

	container := plugin.NewAny(map[plugin.PluginID]*plugin.PluginInstance{
		p1.ID: p1,
		p2.ID: p2,
	})

	fn := plugin.FunctionDescriptor{Name: "greet", Return: plugin.AssumeNoResources}
	v := dispatchAllPlugins(container, "demo/root", fn, []plugin.Val{wasmval.NewString("hi")}, store)

	if v.Kind() != wasmval.KindList {
		t.Fatalf("expected a list projection for an Any container, got kind %v", v.Kind())
	}
	if len(v.List()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.List()))
	}
	for _, entry := range v.List() {
		tuple := entry.Tuple()
		result := tuple[1]
		if result.Kind() != wasmval.KindResult || !result.ResultOK() {
			t.Fatalf("expected an Ok result, got %+v", result)
		}
		if result.ResultPayload().String() != "hi" {
			t.Fatalf("unexpected payload: %+v", result.ResultPayload())
		}
	}
}

func TestDispatchAllPlugins_PerPluginFailureDoesNotAbortOthers(t *testing.T) {
	store := testutil.NewStore(context.Background())
	ok := testutil.Func{Handler: func(args []plugin.Val, result []plugin.Val) error {
		result[0] = wasmval.NewString("fine")
		return nil
	}}

	good := pluginInstanceWithExport(t, store, "demo/root", "op", ok)
	bad := plugin.NewPluginInstance(testutil.NewPluginID(), store, testutil.Instance{})

	container := plugin.NewAny(map[plugin.PluginID]*plugin.PluginInstance{
		good.ID: good,
		bad.ID:  bad,
	})
	fn := plugin.FunctionDescriptor{Name: "op", Return: plugin.AssumeNoResources}
	v := dispatchAllPlugins(container, "demo/root", fn, nil, store)

	var sawOK, sawErr bool
	for _, entry := range v.List() {
		result := entry.Tuple()[1]
		if result.ResultOK() {
			sawOK = true
		} else {
			sawErr = true
		}
	}
	if !sawOK || !sawErr {
		t.Fatalf("expected one Ok and one Err entry, sawOK=%v sawErr=%v", sawOK, sawErr)
	}
}

func TestDispatchAllPlugins_WalksResourcesWhenMayContainResources(t *testing.T) {
	store := testutil.NewStore(context.Background())
	returnsHandle := testutil.Func{Handler: func(args []plugin.Val, result []plugin.Val) error {
		result[0] = wasmval.NewResource(3)
		return nil
	}}
	p := pluginInstanceWithExport(t, store, "demo/root", "make", returnsHandle)
	container := plugin.NewExactlyOne(p.ID, p)

	fn := plugin.FunctionDescriptor{Name: "make", Return: plugin.MayContainResources}
	v := dispatchAllPlugins(container, "demo/root", fn, nil, store)

	result := v.Tuple()[1]
	if !result.ResultOK() {
		t.Fatalf("expected Ok, got %+v", result)
	}
	payload := result.ResultPayload()
	if payload.Kind() != wasmval.KindResource {
		t.Fatalf("expected a wrapped resource, got kind %v", payload.Kind())
	}
	wrapper, found := store.Resources().Get(plugin.ResourceHandle(payload.Resource()))
	if !found || wrapper.PluginID != p.ID {
		t.Fatalf("expected the resource to be wrapped with origin %v, got %+v/%v", p.ID, wrapper, found)
	}
}

func TestMethodShim_RoutesToOwningPlugin(t *testing.T) {
	store := testutil.NewStore(context.Background())
	callerStore := testutil.NewStore(context.Background())

	var seenHandle plugin.Val
	owner := pluginInstanceWithExport(t, store, "demo/root", "touch", testutil.Func{
		Handler: func(args []plugin.Val, result []plugin.Val) error {
			seenHandle = args[0]
			result[0] = wasmval.NewBool(true)
			return nil
		},
	})

	rawHandle, err := owner.Resources().Push(plugin.ResourceWrapper{PluginID: owner.ID, Handle: 0})
	if err != nil {
		t.Fatalf("unexpected error pushing a wrapper: %v", err)
	}
	callerHandle, err := callerStore.Resources().Push(plugin.ResourceWrapper{PluginID: owner.ID, Handle: rawHandle})
	if err != nil {
		t.Fatalf("unexpected error pushing the caller-side wrapper: %v", err)
	}

	container := plugin.NewExactlyOne(owner.ID, owner)
	fn := plugin.FunctionDescriptor{Name: "touch", Method: true, Return: plugin.AssumeNoResources}
	args := []plugin.Val{wasmval.NewResource(wasmval.ResourceHandle(callerHandle))}

	v := methodShim(container, "demo/root", fn, args, callerStore)
	if !v.ResultOK() {
		t.Fatalf("expected Ok, got %+v", v)
	}
	if seenHandle.Kind() != wasmval.KindResource || plugin.ResourceHandle(seenHandle.Resource()) != rawHandle {
		t.Fatalf("expected the owning plugin to see its own raw handle %d, got %+v", rawHandle, seenHandle)
	}
}

func TestMethodShim_InvalidHandleRejected(t *testing.T) {
	store := testutil.NewStore(context.Background())
	container := plugin.NewAny(map[plugin.PluginID]*plugin.PluginInstance{})
	fn := plugin.FunctionDescriptor{Name: "touch", Method: true}

	v := methodShim(container, "demo/root", fn, []plugin.Val{wasmval.NewResource(99)}, store)
	if v.ResultOK() {
		t.Fatal("expected an Err result for an unresolvable handle")
	}
}

func TestMethodShim_NonResourceFirstArgRejected(t *testing.T) {
	store := testutil.NewStore(context.Background())
	container := plugin.NewAny(map[plugin.PluginID]*plugin.PluginInstance{})
	fn := plugin.FunctionDescriptor{Name: "touch", Method: true}

	v := methodShim(container, "demo/root", fn, []plugin.Val{wasmval.NewString("not a handle")}, store)
	if v.ResultOK() {
		t.Fatal("expected an Err result when the receiver argument is not a resource")
	}
}

func TestInstallShims_RegistersFunctionsAndResources(t *testing.T) {
	linker := testutil.NewLinker()
	contract := testutil.Contract{
		PackageNameValue: "demo",
		FunctionsValue: []plugin.FunctionDescriptor{
			{Name: "greet", Return: plugin.AssumeNoResources},
			{Name: "touch", Method: true, Return: plugin.Void},
		},
		ResourcesValue: []string{"handle"},
	}
	container := plugin.NewAny(map[plugin.PluginID]*plugin.PluginInstance{})

	if err := InstallShims(linker, contract, container); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := linker.Shim("demo/root", "greet"); !ok {
		t.Fatal("expected a shim installed for greet")
	}
	if _, ok := linker.Shim("demo/root", "touch"); !ok {
		t.Fatal("expected a shim installed for touch")
	}
	if _, ok := linker.Drop("demo/root", "handle"); !ok {
		t.Fatal("expected a drop hook installed for the handle resource type")
	}
}
