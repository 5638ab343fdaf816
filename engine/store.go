package engine

import (
	"context"

	"github.com/bytecodealliance/wasmtime-go/v25"

	"github.com/go-lynx/wasplug/plugin"
)

// Store wraps one wasmtime.Store, giving it the plugin.Store shape: fuel and
// epoch controls plus the resource table the wrapper/walker machinery
// writes into.
type Store struct {
	raw       *wasmtime.Store
	ctx       context.Context
	resources plugin.ResourceTable
}

func newStore(ctx context.Context, eng *wasmtime.Engine) *Store {
	return &Store{
		raw:       wasmtime.NewStore(eng),
		ctx:       ctx,
		resources: plugin.NewResourceTable(),
	}
}

func (s *Store) Context() context.Context { return s.ctx }

func (s *Store) SetFuel(fuel uint64) error { return s.raw.SetFuel(fuel) }

func (s *Store) SetEpochDeadline(ticks uint64) { s.raw.SetEpochDeadline(ticks) }

func (s *Store) Resources() plugin.ResourceTable { return s.resources }

// RawStore exposes the underlying wasmtime.Store for this package's own
// Linker/Instance code.
func (s *Store) RawStore() *wasmtime.Store { return s.raw }
