package plugin_test

import (
	"testing"

	"github.com/go-lynx/wasplug/internal/testutil"
	"github.com/go-lynx/wasplug/plugin"
)

func TestResourceTable_PushGetDelete(t *testing.T) {
	table := plugin.NewResourceTable()
	wrapper := plugin.ResourceWrapper{PluginID: testutil.NewPluginID(), Handle: 7}

	handle, err := table.Push(wrapper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := table.Get(handle)
	if !ok || got != wrapper {
		t.Fatalf("got %+v/%v, want %+v/true", got, ok, wrapper)
	}

	deleted, ok := table.Delete(handle)
	if !ok || deleted != wrapper {
		t.Fatalf("Delete returned %+v/%v", deleted, ok)
	}

	if _, ok := table.Get(handle); ok {
		t.Fatal("expected the handle to be gone after Delete")
	}
}

func TestResourceTable_HandlesAreDistinct(t *testing.T) {
	table := plugin.NewResourceTable()
	id := testutil.NewPluginID()

	h1, _ := table.Push(plugin.ResourceWrapper{PluginID: id, Handle: 1})
	h2, _ := table.Push(plugin.ResourceWrapper{PluginID: id, Handle: 2})
	if h1 == h2 {
		t.Fatalf("expected distinct handles, got %d twice", h1)
	}
}
