package plugin

import "fmt"

// ConstructionWarning is a non-fatal defect discovered while building a
// plugin tree: the tree still loads, but a caller that cares can inspect
// these after NewPluginTree or Load returns.
type ConstructionWarning interface {
	error
	Tag() string
}

// PluginDataErrorWarning wraps a single plugin's failure: a PluginData
// accessor error (ID/Plug), or the error a candidate plugin failed to load
// with. The offending plugin is left out of the tree; whether the load as a
// whole still succeeds depends on the socket's cardinality.
type PluginDataErrorWarning struct {
	Err error
}

func (w PluginDataErrorWarning) Error() string {
	return fmt.Sprintf("plugin data error: %v", w.Err)
}
func (w PluginDataErrorWarning) Unwrap() error { return w.Err }
func (PluginDataErrorWarning) Tag() string     { return "plugin-data-error" }

// MissingContractWarning fires when a group of plugins all declare the same
// plug contract id, but no ContractData for that id was supplied. The whole
// group is dropped from the tree rather than failing the load.
type MissingContractWarning struct {
	ContractID ContractID
	PluginIDs  []PluginID
}

func (w MissingContractWarning) Error() string {
	return fmt.Sprintf("contract %s is missing; dropping %d plugin(s)", w.ContractID, len(w.PluginIDs))
}
func (MissingContractWarning) Tag() string { return "missing-contract" }
