package engine

import "github.com/bytecodealliance/wasmtime-go/v25"

// Component is a compiled, not-yet-instantiated module. One Component is
// instantiated once per plugin via a bound Linker.
type Component struct {
	name   string
	module *wasmtime.Module
}

func (c *Component) Name() string { return c.name }

// Compile compiles wasmBytes against eng. Despite the name this is core
// WebAssembly compilation, not component-model compilation; see the package
// doc on engine.go for why.
func Compile(eng *Engine, wasmBytes []byte, name string) (*Component, error) {
	mod, err := wasmtime.NewModule(eng.raw, wasmBytes)
	if err != nil {
		return nil, err
	}
	return &Component{name: name, module: mod}, nil
}
