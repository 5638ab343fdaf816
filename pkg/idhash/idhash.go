// Package idhash renders opaque fixed-size identifiers as short, stable
// diagnostic tags. ContractID and PluginID carry no inherent display form —
// they are content-addressed bytes assigned by whatever metadata source
// produced them — so logs and error messages need something shorter and more
// legible than a hex dump of sixteen bytes.
package idhash

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Short returns an 8-character hex tag derived from id. It is stable across
// runs (not randomized, unlike a plain pointer or slice address) so the same
// plugin/contract prints the same tag in every log line of a given process,
// which is what makes it useful for tracing one entity through a cycle
// report or a warning list.
func Short(id []byte) string {
	sum := blake2b.Sum256(id)
	return hex.EncodeToString(sum[:4])
}
