// Package manifest is a reference implementation of the abstract metadata
// capability (plugin.ContractData/plugin.PluginData): concrete loaders that
// read contract and plugin descriptions from JSON documents, either a local
// file or a go-kratos config source. It is deliberately outside the core —
// any other backing store implementing plugin.ContractData/plugin.PluginData
// works equally well.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-lynx/wasplug/engine"
	"github.com/go-lynx/wasplug/plugin"
)

// functionSpec is the wire shape of one plugin.FunctionDescriptor.
type functionSpec struct {
	Name          string  `json:"name"`
	Method        bool    `json:"method"`
	Return        string  `json:"return"` // "void" | "no-resources" | "may-contain-resources"
	FuelBudget    *uint64 `json:"fuel_budget,omitempty"`
	EpochDeadline *uint64 `json:"epoch_deadline,omitempty"`
}

func (f functionSpec) descriptor() (plugin.FunctionDescriptor, error) {
	var kind plugin.ReturnKind
	switch f.Return {
	case "", "void":
		kind = plugin.Void
	case "no-resources":
		kind = plugin.AssumeNoResources
	case "may-contain-resources":
		kind = plugin.MayContainResources
	default:
		return plugin.FunctionDescriptor{}, fmt.Errorf("manifest: unknown return kind %q for function %q", f.Return, f.Name)
	}
	return plugin.FunctionDescriptor{
		Name:          f.Name,
		Method:        f.Method,
		Return:        kind,
		FuelBudget:    f.FuelBudget,
		EpochDeadline: f.EpochDeadline,
	}, nil
}

// contractDoc is the wire shape of one contract manifest.
type contractDoc struct {
	ID          string         `json:"id"`
	PackageName string         `json:"package_name"`
	Cardinality string         `json:"cardinality"` // "exactly-one" | "at-most-one" | "at-least-one" | "any"
	Functions   []functionSpec `json:"functions"`
	Resources   []string       `json:"resources"`
}

// pluginDoc is the wire shape of one plugin manifest.
type pluginDoc struct {
	ID       string   `json:"id"`
	Plug     string   `json:"plug"`
	Sockets  []string `json:"sockets"`
	WasmPath string   `json:"wasm_path"`
}

func parseID16(s string) ([16]byte, error) {
	var out [16]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("manifest: invalid hex id %q: %w", s, err)
	}
	if len(raw) != 16 {
		return out, fmt.Errorf("manifest: id %q must decode to 16 bytes, got %d", s, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func parseCardinality(s string) (plugin.Arity, error) {
	switch s {
	case "exactly-one":
		return plugin.ExactlyOne, nil
	case "at-most-one":
		return plugin.AtMostOne, nil
	case "at-least-one":
		return plugin.AtLeastOne, nil
	case "any":
		return plugin.Any, nil
	default:
		return 0, fmt.Errorf("manifest: unknown cardinality %q", s)
	}
}

// JSONContractData adapts one decoded contractDoc to plugin.ContractData.
// Every accessor is independently fallible. Only the id is checked when the
// document is loaded (loadContracts, LoadKratosSource); the package name,
// cardinality and function return kinds are validated on each access, so
// those errors surface from the accessors.
type JSONContractData struct {
	doc contractDoc
}

func (c JSONContractData) ID() (plugin.ContractID, error) {
	id, err := parseID16(c.doc.ID)
	return plugin.ContractID(id), err
}

func (c JSONContractData) PackageName() (string, error) {
	if c.doc.PackageName == "" {
		return "", fmt.Errorf("manifest: contract %s has no package_name", c.doc.ID)
	}
	return c.doc.PackageName, nil
}

func (c JSONContractData) Cardinality() (plugin.Arity, error) {
	return parseCardinality(c.doc.Cardinality)
}

func (c JSONContractData) Functions() ([]plugin.FunctionDescriptor, error) {
	out := make([]plugin.FunctionDescriptor, 0, len(c.doc.Functions))
	for _, f := range c.doc.Functions {
		fd, err := f.descriptor()
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}
	return out, nil
}

func (c JSONContractData) Resources() ([]string, error) {
	return c.doc.Resources, nil
}

// JSONPluginData adapts one decoded pluginDoc to plugin.PluginData. Component
// compiles the wasm file named by wasm_path against the engine handed to it,
// reading it fresh on every call since PluginData is a read-only view, not a
// cache.
type JSONPluginData struct {
	doc  pluginDoc
	base string // directory wasm_path is resolved relative to
}

func (p JSONPluginData) ID() (plugin.PluginID, error) {
	id, err := parseID16(p.doc.ID)
	return plugin.PluginID(id), err
}

func (p JSONPluginData) Plug() (plugin.ContractID, error) {
	id, err := parseID16(p.doc.Plug)
	return plugin.ContractID(id), err
}

func (p JSONPluginData) Sockets() ([]plugin.ContractID, error) {
	out := make([]plugin.ContractID, 0, len(p.doc.Sockets))
	for _, s := range p.doc.Sockets {
		id, err := parseID16(s)
		if err != nil {
			return nil, err
		}
		out = append(out, plugin.ContractID(id))
	}
	return out, nil
}

func (p JSONPluginData) Component(eng plugin.Engine) (plugin.CompiledComponent, error) {
	realEngine, ok := eng.(*engine.Engine)
	if !ok {
		return nil, fmt.Errorf("manifest: Component requires an *engine.Engine, got %T", eng)
	}
	path := p.doc.WasmPath
	if p.base != "" {
		path = p.base + "/" + path
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	return engine.Compile(realEngine, raw, p.doc.ID)
}

// LoadDirectory reads contracts.json and plugins.json from dir, each a JSON
// array of the respective doc shape, and returns the plugin.ContractData/
// plugin.PluginData values the rest of this module consumes.
func LoadDirectory(dir string) (map[plugin.ContractID]plugin.ContractData, []plugin.PluginData, error) {
	contracts, err := loadContracts(dir + "/contracts.json")
	if err != nil {
		return nil, nil, err
	}
	plugins, err := loadPlugins(dir+"/plugins.json", dir)
	if err != nil {
		return nil, nil, err
	}
	return contracts, plugins, nil
}

func loadContracts(path string) (map[plugin.ContractID]plugin.ContractData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	var docs []contractDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("manifest: decoding %s: %w", path, err)
	}
	out := make(map[plugin.ContractID]plugin.ContractData, len(docs))
	for _, doc := range docs {
		cd := JSONContractData{doc: doc}
		id, err := cd.ID()
		if err != nil {
			return nil, err
		}
		out[id] = cd
	}
	return out, nil
}

func loadPlugins(path, base string) ([]plugin.PluginData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	var docs []pluginDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("manifest: decoding %s: %w", path, err)
	}
	out := make([]plugin.PluginData, 0, len(docs))
	for _, doc := range docs {
		out = append(out, JSONPluginData{doc: doc, base: base})
	}
	return out, nil
}
