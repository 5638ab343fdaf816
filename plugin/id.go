package plugin

import "github.com/go-lynx/wasplug/pkg/idhash"

// ContractID identifies a contract. It is opaque: the core only ever
// compares and hashes it, never interprets its bytes. Whatever supplies
// ContractData (a manifest file, a database row, ...) is responsible for
// assigning stable, content-addressed values.
type ContractID [16]byte

// String renders a short diagnostic tag, not the full identifier — used only
// in logs and error messages, never for equality.
func (id ContractID) String() string { return "contract:" + idhash.Short(id[:]) }

// Bytes exposes the raw identifier for guest-facing encodings — the shim
// factory and graph head project ids into the guest value model from these
// bytes, since String's hash is lossy and fit only for diagnostics.
func (id ContractID) Bytes() []byte { return id[:] }

// PluginID identifies a plugin, with the same opacity guarantee as ContractID.
type PluginID [16]byte

func (id PluginID) String() string { return "plugin:" + idhash.Short(id[:]) }

func (id PluginID) Bytes() []byte { return id[:] }
