package plugin

import "context"

// ReturnKind classifies what a function's return value may contain, which
// determines whether the cross-plugin value walker (link.walkResources) runs
// over it before the value is allowed to cross a plugin boundary.
type ReturnKind int

const (
	// Void functions return nothing; the dispatch buffer is never read.
	Void ReturnKind = iota
	// AssumeNoResources functions return a value the metadata source
	// guarantees contains no resource handles, skipping the walker.
	AssumeNoResources
	// MayContainResources functions return a value that might embed
	// resource handles anywhere in its structure; the walker always runs.
	MayContainResources
)

// FunctionDescriptor is a read-only description of one function exposed by
// a contract. It is a plain data value, not a capability — ContractData
// hands out a slice of these from Functions().
type FunctionDescriptor struct {
	Name   string
	Method bool // true if the first argument is a resource receiver
	Return ReturnKind

	// FuelBudget and EpochDeadline override the binding-wide limiter
	// default for this function specifically; nil means "use the default".
	FuelBudget    *uint64
	EpochDeadline *uint64
}

// ContractData is the read-only external capability describing one
// contract: its identity, package-qualified name, cardinality, and the
// functions/resources it exposes. Every accessor is independently fallible
// because the backing source (a manifest file, a database, ...) is
// fallible; the loader wraps any error as CorruptedContractManifest.
type ContractData interface {
	ID() (ContractID, error)
	// PackageName is used to form the "<pkg>/root" interface path every
	// contract's surface is addressed under.
	PackageName() (string, error)
	Cardinality() (Arity, error)
	Functions() ([]FunctionDescriptor, error)
	Resources() ([]string, error)
}

// PluginData is the read-only external capability describing one plugin:
// its identity, the single contract it plugs, the contracts it sockets
// into, and a factory that compiles it into a runnable component given a
// runtime engine. Errors from ID/Sockets during load surface as
// CorruptedPluginManifest; an error from Plug during tree construction
// becomes a PluginDataErrorWarning; errors from Component surface as
// FailedToCompileComponent (it is a distinct failure mode — a well-formed
// manifest whose referenced bytes fail to compile).
type PluginData interface {
	ID() (PluginID, error)
	Plug() (ContractID, error)
	Sockets() ([]ContractID, error)
	Component(engine Engine) (CompiledComponent, error)
}

// Engine is the abstract component-model runtime collaborator: it hands out
// the store each plugin instance runs in, and is passed to
// PluginData.Component, which does the compiling. The concrete implementation
// (package engine, backed by bytecodealliance/wasmtime-go) lives outside the
// core — the core only ever depends on this interface.
type Engine interface {
	// Raw exposes the underlying runtime handle for adapters that need it;
	// no code in this module calls it (the engine package's own constructors
	// use their typed field directly).
	Raw() any
	// NewStore creates a fresh store seeded with ctx, one per plugin
	// instance.
	NewStore(ctx context.Context) Store
}

// CompiledComponent is a component ready to be instantiated against a store
// and linker. Opaque to the core beyond that.
type CompiledComponent interface {
	// Name identifies the component; the core itself never reads it.
	Name() string
}
