package manifest

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"

	"github.com/go-lynx/wasplug/plugin"
)

// kratosDocs is the shape this loader scans a go-kratos config tree into,
// mirroring contracts.json/plugins.json's top-level arrays under a single
// "wasplug" key so the manifest can live inside a larger application's own
// bootstrap config file.
type kratosDocs struct {
	Contracts []contractDoc `json:"contracts"`
	Plugins   []pluginDoc   `json:"plugins"`
}

// LoadKratosSource reads a contract/plugin manifest out of a go-kratos
// config.Config built over source, using the standard
// file.NewSource/config.New/cfg.Scan bootstrap sequence. base is the
// directory wasm_path entries in the plugin list are resolved relative to.
func LoadKratosSource(source config.Source, key, base string) (map[plugin.ContractID]plugin.ContractData, []plugin.PluginData, error) {
	cfg := config.New(config.WithSource(source))
	if err := cfg.Load(); err != nil {
		return nil, nil, fmt.Errorf("manifest: loading config source: %w", err)
	}
	defer func() { _ = cfg.Close() }()

	var docs kratosDocs
	if err := cfg.Value(key).Scan(&docs); err != nil {
		return nil, nil, fmt.Errorf("manifest: scanning %q: %w", key, err)
	}

	contracts := make(map[plugin.ContractID]plugin.ContractData, len(docs.Contracts))
	for _, doc := range docs.Contracts {
		cd := JSONContractData{doc: doc}
		id, err := cd.ID()
		if err != nil {
			return nil, nil, err
		}
		contracts[id] = cd
	}

	plugins := make([]plugin.PluginData, 0, len(docs.Plugins))
	for _, doc := range docs.Plugins {
		plugins = append(plugins, JSONPluginData{doc: doc, base: base})
	}

	return contracts, plugins, nil
}

// LoadKratosFile is LoadKratosSource specialized to a single local file or
// directory path, the common case for an application loading its own
// bootstrap config from disk.
func LoadKratosFile(path, key, base string) (map[plugin.ContractID]plugin.ContractData, []plugin.PluginData, error) {
	return LoadKratosSource(file.NewSource(path), key, base)
}
