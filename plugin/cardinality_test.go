package plugin_test

import (
	"testing"

	"github.com/go-lynx/wasplug/pkg/wasmval"
	"github.com/go-lynx/wasplug/plugin"
)

func TestContainer_ExactlyOne(t *testing.T) {
	c := plugin.NewExactlyOne("a", 1)
	if c.Arity() != plugin.ExactlyOne || c.Len() != 1 {
		t.Fatalf("unexpected arity/len: %v/%d", c.Arity(), c.Len())
	}
	v, ok := c.Get("anything")
	if !ok || v != 1 {
		t.Fatalf("ExactlyOne.Get should ignore id mismatch and return its one value, got %v/%v", v, ok)
	}
}

func TestContainer_AtMostOneEmpty(t *testing.T) {
	c := plugin.NewAtMostOne[string, int]("", 0, false)
	if c.Len() != 0 {
		t.Fatalf("expected len 0, got %d", c.Len())
	}
	_, ok := c.Get("a")
	if ok {
		t.Fatal("expected Get to miss on an empty AtMostOne")
	}
}

func TestContainer_MapPreservesArity(t *testing.T) {
	c := plugin.NewAtLeastOne(map[string]int{"a": 1, "b": 2})
	mapped := plugin.Map(c, func(id string, v int) string { return id })
	if mapped.Arity() != plugin.AtLeastOne {
		t.Fatalf("Map changed arity: %v", mapped.Arity())
	}
	if mapped.Len() != 2 {
		t.Fatalf("expected len 2, got %d", mapped.Len())
	}
}

func TestContainer_ProjectExactlyOne(t *testing.T) {
	c := plugin.NewExactlyOne("id-1", 42)
	v := plugin.Project(c, func(id string) plugin.Val { return wasmval.NewString(id) }, func(n int) plugin.Val { return wasmval.NewS32(int32(n)) })
	if v.Kind() != wasmval.KindTuple {
		t.Fatalf("expected a tuple projection, got kind %v", v.Kind())
	}
	tuple := v.Tuple()
	if len(tuple) != 2 || tuple[0].String() != "id-1" || tuple[1].S32() != 42 {
		t.Fatalf("unexpected projected tuple: %+v", tuple)
	}
}

func TestContainer_ProjectAtMostOneEmpty(t *testing.T) {
	c := plugin.NewAtMostOne[string, int]("", 0, false)
	v := plugin.Project(c, func(id string) plugin.Val { return wasmval.NewString(id) }, func(n int) plugin.Val { return wasmval.NewS32(int32(n)) })
	if v.Kind() != wasmval.KindOption || v.OptionValue() != nil {
		t.Fatalf("expected Option(None), got kind %v", v.Kind())
	}
}

func TestContainer_ProjectAny(t *testing.T) {
	c := plugin.NewAny(map[string]int{"a": 1})
	v := plugin.Project(c, func(id string) plugin.Val { return wasmval.NewString(id) }, func(n int) plugin.Val { return wasmval.NewS32(int32(n)) })
	if v.Kind() != wasmval.KindList || len(v.List()) != 1 {
		t.Fatalf("expected a one-element list projection, got %+v", v)
	}
}
