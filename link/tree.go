package link

import (
	"context"

	"github.com/go-lynx/wasplug/internal/wlog"
	"github.com/go-lynx/wasplug/plugin"
)

// PluginTree is the pre-load graph builder: a map from contract id to the
// (contract, candidate plugins) pair that still needs resolving, plus the
// single contract id exposed to external callers once loaded.
type PluginTree struct {
	rootContractID plugin.ContractID
	sockets        map[plugin.ContractID]socketState

	// FuelLimiter and EpochLimiter, if set, are attached to every
	// PluginInstance this tree loads. They are not part of the construction
	// step itself, but Load is the one place that has both the tree and the
	// about-to-be-created instances in scope, so this is where a caller
	// configures them.
	FuelLimiter  func(store plugin.Store, interfacePath, functionName string, fn plugin.FunctionDescriptor) uint64
	EpochLimiter func(store plugin.Store, interfacePath, functionName string, fn plugin.FunctionDescriptor) uint64
}

// NewPluginTree builds a tree from the supplied contracts and plugins. It
// panics if rootContractID is absent from contracts — that is a hard
// assertion failure, not a recoverable warning, since a tree with no root
// has nothing to expose.
func NewPluginTree(rootContractID plugin.ContractID, contracts map[plugin.ContractID]plugin.ContractData, plugins []plugin.PluginData) (*PluginTree, []plugin.ConstructionWarning) {
	if _, ok := contracts[rootContractID]; !ok {
		panic("wasplug: root contract id is absent from the supplied contract set")
	}

	var warnings []plugin.ConstructionWarning

	remaining := make(map[plugin.ContractID]plugin.ContractData, len(contracts))
	for id, c := range contracts {
		remaining[id] = c
	}

	groups := make(map[plugin.ContractID][]plugin.PluginData)
	var groupOrder []plugin.ContractID
	for _, pd := range plugins {
		plugID, err := pd.Plug()
		if err != nil {
			warnings = append(warnings, plugin.PluginDataErrorWarning{Err: err})
			continue
		}
		if _, seen := groups[plugID]; !seen {
			groupOrder = append(groupOrder, plugID)
		}
		groups[plugID] = append(groups[plugID], pd)
	}

	sockets := make(map[plugin.ContractID]socketState, len(contracts))
	for _, contractID := range groupOrder {
		group := groups[contractID]
		contract, ok := remaining[contractID]
		if !ok {
			ids := make([]plugin.PluginID, 0, len(group))
			for _, pd := range group {
				id, err := pd.ID()
				if err != nil {
					warnings = append(warnings, plugin.PluginDataErrorWarning{Err: err})
					continue
				}
				ids = append(ids, id)
			}
			warnings = append(warnings, plugin.MissingContractWarning{ContractID: contractID, PluginIDs: ids})
			continue
		}
		delete(remaining, contractID)
		sockets[contractID] = unprocessedState{contract: contract, plugins: group}
	}

	// Contracts with no plugins plugging them stay visible with an empty
	// candidate list — cardinality still needs to see them (an ExactlyOne
	// contract with zero plugins must still fail load with
	// CardinalityViolation, not look like a missing socket).
	for contractID, contract := range remaining {
		sockets[contractID] = unprocessedState{contract: contract, plugins: nil}
	}

	return &PluginTree{rootContractID: rootContractID, sockets: sockets}, warnings
}

// Load drives the socket loader starting from the root contract. The result
// carries its warnings regardless of outcome, per the PartialResult
// convention (partial.go).
func (t *PluginTree) Load(ctx context.Context, eng plugin.Engine, baseLinker plugin.Linker) PartialResult[*GraphHead] {
	ctx, span := tracer.Start(ctx, "wasplug.load")
	defer span.End()

	l := &loader{
		ctx:          ctx,
		eng:          eng,
		baseLinker:   baseLinker,
		state:        t.sockets,
		fuelLimiter:  t.FuelLimiter,
		epochLimiter: t.EpochLimiter,
	}
	loaded, warnings, err := l.loadSocket(t.rootContractID)
	for _, w := range warnings {
		wlog.Warnf("plugin tree load warning: %s", w.Error())
	}
	if err != nil {
		span.RecordError(err)
		wlog.Errorf("plugin tree load failed: %s", err.Error())
		return fatal[*GraphHead](err, warnings)
	}
	wlog.Infof("plugin tree loaded root contract %s", t.rootContractID)
	head := &GraphHead{
		rootContract:  loaded.contract,
		rootContainer: loaded.container,
		resources:     plugin.NewResourceTable(),
	}
	return ok(head, warnings)
}
