package link

import (
	"context"

	"github.com/go-lynx/wasplug/plugin"
)

// socketState is the loader-internal sum type: one of unprocessed, loaded,
// borrowed (the cycle sentinel), or failed. Go has no enum, so this is an
// interface with an unexported marker method — nothing outside this package
// can add a fifth variant.
type socketState interface {
	socketState()
}

type unprocessedState struct {
	contract plugin.ContractData
	plugins  []plugin.PluginData
}

func (unprocessedState) socketState() {}

type loadedState struct {
	contract  plugin.ContractData
	container pluginContainer
}

func (loadedState) socketState() {}

// borrowedState is the cycle-detection sentinel: placed in the state map for
// the duration of a contract's own resolution. Observing it
// again from recursion (rather than from a separate top-level call) means
// the current resolution path would revisit a contract still being
// resolved above it on the call stack.
type borrowedState struct{}

func (borrowedState) socketState() {}

// failedState is the terminal error state; a contract that lands here stays
// there, so a second request for it returns AlreadyHandled instead of
// re-running (and re-reporting) the same failure.
type failedState struct{ err error }

func (failedState) socketState() {}

// loader threads the mutable state map, the engine, the base linker, and the
// optional limiter closures through the recursive socket resolution. The
// state map is a Go map (reference type) held on the loader; "threading the
// state through the recursion" here means every call mutates that same
// backing map in place rather than passing or returning it — there is never
// more than one logical owner of the map at a time because resolution is
// strictly single-threaded at load time.
type loader struct {
	ctx        context.Context
	eng        plugin.Engine
	baseLinker plugin.Linker
	state      map[plugin.ContractID]socketState

	fuelLimiter  func(store plugin.Store, interfacePath, functionName string, fn plugin.FunctionDescriptor) uint64
	epochLimiter func(store plugin.Store, interfacePath, functionName string, fn plugin.FunctionDescriptor) uint64
}

// loadSocket resolves socketID against the current loader state, moving it
// through unprocessed -> borrowed -> loaded (or failed).
func (l *loader) loadSocket(socketID plugin.ContractID) (*loadedState, []plugin.ConstructionWarning, error) {
	prior, found := l.state[socketID]
	if !found {
		return nil, nil, plugin.ErrInvalidSocket{ID: socketID}
	}
	l.state[socketID] = borrowedState{}

	switch s := prior.(type) {
	case borrowedState:
		return nil, nil, plugin.ErrLoopDetected{ID: socketID}

	case failedState:
		l.state[socketID] = s
		return nil, nil, plugin.ErrAlreadyHandled{}

	case loadedState:
		l.state[socketID] = s
		return &s, nil, nil

	case unprocessedState:
		loaded, warnings, err := l.resolveUnprocessed(socketID, s)
		if err != nil {
			l.state[socketID] = failedState{err: err}
			return nil, warnings, err
		}
		l.state[socketID] = *loaded
		return loaded, warnings, nil

	default:
		return nil, nil, plugin.ErrInvalidSocket{ID: socketID}
	}
}

// candidate is one plugin's attempt to become an instance filling a socket.
type candidate struct {
	id   plugin.PluginID
	inst *plugin.PluginInstance
	err  error
}

// resolveUnprocessed loads every candidate plugin for socketID, then
// collates the results according to the contract's declared cardinality.
func (l *loader) resolveUnprocessed(socketID plugin.ContractID, s unprocessedState) (*loadedState, []plugin.ConstructionWarning, error) {
	arity, err := s.contract.Cardinality()
	if err != nil {
		return nil, nil, plugin.ErrCorruptedContractManifest{Err: err}
	}

	var warnings []plugin.ConstructionWarning
	candidates := make([]candidate, 0, len(s.plugins))
	for _, pd := range s.plugins {
		id, idErr := pd.ID()
		if idErr != nil {
			warnings = append(warnings, plugin.PluginDataErrorWarning{Err: idErr})
			candidates = append(candidates, candidate{err: plugin.ErrCorruptedPluginManifest{Err: idErr}})
			continue
		}
		inst, instWarnings, instErr := l.loadPlugin(pd)
		warnings = append(warnings, instWarnings...)
		candidates = append(candidates, candidate{id: id, inst: inst, err: instErr})
	}

	switch arity {
	case plugin.ExactlyOne:
		if len(candidates) != 1 {
			warnings = append(warnings, failureWarnings(candidates)...)
			return nil, warnings, plugin.ErrCardinalityViolation{Required: plugin.ExactlyOne, Found: len(candidates)}
		}
		c := candidates[0]
		if c.err != nil {
			return nil, warnings, c.err
		}
		return &loadedState{contract: s.contract, container: plugin.NewExactlyOne(c.id, c.inst)}, warnings, nil

	case plugin.AtMostOne:
		switch len(candidates) {
		case 0:
			var zero plugin.PluginID
			return &loadedState{contract: s.contract, container: plugin.NewAtMostOne[plugin.PluginID, *plugin.PluginInstance](zero, nil, false)}, warnings, nil
		case 1:
			c := candidates[0]
			if c.err != nil {
				warnings = append(warnings, plugin.PluginDataErrorWarning{Err: c.err})
				var zero plugin.PluginID
				return &loadedState{contract: s.contract, container: plugin.NewAtMostOne[plugin.PluginID, *plugin.PluginInstance](zero, nil, false)}, warnings, nil
			}
			return &loadedState{contract: s.contract, container: plugin.NewAtMostOne(c.id, c.inst, true)}, warnings, nil
		default:
			warnings = append(warnings, failureWarnings(candidates)...)
			return nil, warnings, plugin.ErrCardinalityViolation{Required: plugin.AtMostOne, Found: len(candidates)}
		}

	case plugin.AtLeastOne:
		entries := entriesOf(successfulOf(candidates))
		warnings = append(warnings, failureWarnings(candidates)...)
		if len(entries) == 0 {
			return nil, warnings, plugin.ErrCardinalityViolation{Required: plugin.AtLeastOne, Found: 0}
		}
		return &loadedState{contract: s.contract, container: plugin.NewAtLeastOne(entries)}, warnings, nil

	default: // Any
		entries := entriesOf(successfulOf(candidates))
		warnings = append(warnings, failureWarnings(candidates)...)
		return &loadedState{contract: s.contract, container: plugin.NewAny(entries)}, warnings, nil
	}
}

func successfulOf(candidates []candidate) []candidate {
	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.err == nil {
			out = append(out, c)
		}
	}
	return out
}

func entriesOf(candidates []candidate) map[plugin.PluginID]*plugin.PluginInstance {
	entries := make(map[plugin.PluginID]*plugin.PluginInstance, len(candidates))
	for _, c := range candidates {
		entries[c.id] = c.inst
	}
	return entries
}

func failureWarnings(candidates []candidate) []plugin.ConstructionWarning {
	var warnings []plugin.ConstructionWarning
	for _, c := range candidates {
		if c.err != nil {
			warnings = append(warnings, plugin.PluginDataErrorWarning{Err: c.err})
		}
	}
	return warnings
}

// loadPlugin loads a single plugin: recursively resolve every socket it
// declares, installing each resolved socket's shims
// onto a linker clone scoped to this plugin, then compile and instantiate
// the plugin's component against that linker.
func (l *loader) loadPlugin(pd plugin.PluginData) (*plugin.PluginInstance, []plugin.ConstructionWarning, error) {
	sockets, err := pd.Sockets()
	if err != nil {
		return nil, nil, plugin.ErrCorruptedPluginManifest{Err: err}
	}

	var warnings []plugin.ConstructionWarning
	parentLinker := l.baseLinker.Clone()
	for _, sockID := range sockets {
		loaded, sockWarnings, err := l.loadSocket(sockID)
		warnings = append(warnings, sockWarnings...)
		if err != nil {
			return nil, warnings, err
		}
		if err := InstallShims(parentLinker, loaded.contract, loaded.container); err != nil {
			return nil, warnings, err
		}
	}

	component, err := pd.Component(l.eng)
	if err != nil {
		return nil, warnings, plugin.ErrFailedToCompileComponent{Err: err}
	}

	id, err := pd.ID()
	if err != nil {
		return nil, warnings, plugin.ErrCorruptedPluginManifest{Err: err}
	}

	store := l.eng.NewStore(l.ctx)
	instance, err := parentLinker.Instantiate(l.ctx, component, store)
	if err != nil {
		return nil, warnings, plugin.ErrFailedToLinkInterface{Err: err}
	}

	pi := plugin.NewPluginInstance(id, store, instance)
	pi.FuelLimiter = l.fuelLimiter
	pi.EpochLimiter = l.epochLimiter
	return pi, warnings, nil
}
