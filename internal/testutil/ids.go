// Package testutil provides fakes for the abstract capability interfaces
// (plugin.ContractData, plugin.PluginData, plugin.Engine, plugin.Store,
// plugin.Instance, plugin.Func, plugin.Linker) so plugin/ and link/ tests can
// exercise the dispatch and load algorithms without a real compiled
// component or a real wasmtime engine — plain structs implementing the
// production interfaces directly, fields standing in for constructor
// arguments, rather than a generated mock framework.
package testutil

import (
	"github.com/google/uuid"

	"github.com/go-lynx/wasplug/plugin"
)

// NewPluginID returns a fresh random plugin id. google/uuid.UUID is itself a
// [16]byte, so the conversion is direct.
func NewPluginID() plugin.PluginID { return plugin.PluginID(uuid.New()) }

// NewContractID returns a fresh random contract id.
func NewContractID() plugin.ContractID { return plugin.ContractID(uuid.New()) }
