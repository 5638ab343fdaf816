package engine

import (
	"testing"

	"github.com/go-lynx/wasplug/pkg/wasmval"
	"github.com/go-lynx/wasplug/plugin"
)

func TestFrameTable_PushPopRoundTrip(t *testing.T) {
	ft := newFrameTable()
	vals := []plugin.Val{wasmval.NewString("hi"), wasmval.NewU32(7)}

	h := ft.push(vals)
	got := ft.pop(h)
	if len(got) != 2 || got[0].String() != "hi" || got[1].Kind() != wasmval.KindU32 {
		t.Fatalf("unexpected round-trip result: %+v", got)
	}
}

func TestFrameTable_PopDeletesFrame(t *testing.T) {
	ft := newFrameTable()
	h := ft.push([]plugin.Val{wasmval.NewBool(true)})
	ft.pop(h)

	if got := ft.pop(h); got != nil {
		t.Fatalf("expected a second pop of the same handle to return nil, got %+v", got)
	}
}

func TestFrameTable_HandlesAreDistinct(t *testing.T) {
	ft := newFrameTable()
	h1 := ft.push([]plugin.Val{wasmval.NewU32(1)})
	h2 := ft.push([]plugin.Val{wasmval.NewU32(2)})

	if h1 == h2 {
		t.Fatalf("expected distinct handles, got %d twice", h1)
	}
}
