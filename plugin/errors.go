package plugin

import (
	"fmt"

	"github.com/go-lynx/wasplug/pkg/wasmval"
)

// ---- Dispatch errors ----
//
// Every DispatchError has a kebab-case Tag matching the variant name the
// guest sees, and a ToVal projection into the guest value model — the only
// surface through which guest code observes a host failure.

// DispatchError is any failure produced by plugin.PluginInstance.Dispatch or
// the dispatch shim factory. All implementations are comparable value types
// so callers can switch on them with errors.As.
type DispatchError interface {
	error
	Tag() string
	ToVal() Val
}

func variantVal(tag string, payload *Val) Val { return wasmval.NewVariant(tag, payload) }
func stringPayload(s string) *Val             { v := wasmval.NewString(s); return &v }

type ErrLockRejected struct{}

func (ErrLockRejected) Error() string { return "lock rejected: another call is in progress" }
func (ErrLockRejected) Tag() string   { return "lock-rejected" }
func (ErrLockRejected) ToVal() Val    { return variantVal("lock-rejected", nil) }

type ErrInvalidInterfacePath struct{ Path string }

func (e ErrInvalidInterfacePath) Error() string { return "invalid interface path: " + e.Path }
func (ErrInvalidInterfacePath) Tag() string      { return "invalid-interface-path" }
func (e ErrInvalidInterfacePath) ToVal() Val     { return variantVal(e.Tag(), stringPayload(e.Path)) }

type ErrInvalidFunction struct{ Name string }

func (e ErrInvalidFunction) Error() string { return "invalid function: " + e.Name }
func (ErrInvalidFunction) Tag() string      { return "invalid-function" }
func (e ErrInvalidFunction) ToVal() Val     { return variantVal(e.Tag(), stringPayload(e.Name)) }

type ErrMissingResponse struct{}

func (ErrMissingResponse) Error() string { return "missing response" }
func (ErrMissingResponse) Tag() string   { return "missing-response" }
func (ErrMissingResponse) ToVal() Val    { return variantVal("missing-response", nil) }

type ErrRuntimeException struct{ Err error }

func (e ErrRuntimeException) Error() string { return "runtime exception: " + e.Err.Error() }
func (e ErrRuntimeException) Unwrap() error { return e.Err }
func (ErrRuntimeException) Tag() string      { return "runtime-exception" }
func (e ErrRuntimeException) ToVal() Val     { return variantVal(e.Tag(), stringPayload(e.Err.Error())) }

type ErrInvalidArgumentList struct{}

func (ErrInvalidArgumentList) Error() string { return "invalid argument list" }
func (ErrInvalidArgumentList) Tag() string   { return "invalid-argument-list" }
func (ErrInvalidArgumentList) ToVal() Val    { return variantVal("invalid-argument-list", nil) }

type ErrUnsupportedType struct{ Name string }

func (e ErrUnsupportedType) Error() string { return "unsupported type: " + e.Name }
func (ErrUnsupportedType) Tag() string      { return "unsupported-type" }
func (e ErrUnsupportedType) ToVal() Val     { return variantVal(e.Tag(), stringPayload(e.Name)) }

// ResourceCreationKind distinguishes the one failure mode resource creation
// can have today; kept as a kind rather than inlining so the shape matches
// the rust original's error enum and can grow without an API break.
type ResourceCreationKind int

const ResourceTableFull ResourceCreationKind = iota

type ErrResourceCreation struct{ Kind ResourceCreationKind }

func (ErrResourceCreation) Error() string { return "resource creation error: table full" }
func (ErrResourceCreation) Tag() string   { return "resource-table-full" }
func (ErrResourceCreation) ToVal() Val    { return variantVal("resource-table-full", nil) }

type ResourceReceiveKind int

const InvalidHandle ResourceReceiveKind = iota

type ErrResourceReceive struct{ Kind ResourceReceiveKind }

func (ErrResourceReceive) Error() string { return "resource receive error: invalid handle" }
func (ErrResourceReceive) Tag() string   { return "invalid-resource-handle" }
func (ErrResourceReceive) ToVal() Val    { return variantVal("invalid-resource-handle", nil) }

// ---- Load errors ----

// LoadError is any fatal failure the socket loader or plugin tree produces.
type LoadError interface {
	error
	loadError()
}

type ErrInvalidSocket struct{ ID ContractID }

func (e ErrInvalidSocket) Error() string { return fmt.Sprintf("invalid socket: %s", e.ID) }
func (ErrInvalidSocket) loadError()      {}

type ErrLoopDetected struct{ ID ContractID }

func (e ErrLoopDetected) Error() string { return fmt.Sprintf("dependency loop detected at %s", e.ID) }
func (ErrLoopDetected) loadError()      {}

type ErrCardinalityViolation struct {
	Required Arity
	Found    int
}

func (e ErrCardinalityViolation) Error() string {
	return fmt.Sprintf("cardinality violation: required %s, found %d", e.Required, e.Found)
}
func (ErrCardinalityViolation) loadError() {}

type ErrCorruptedContractManifest struct{ Err error }

func (e ErrCorruptedContractManifest) Error() string {
	return fmt.Sprintf("corrupted contract manifest: %v", e.Err)
}
func (e ErrCorruptedContractManifest) Unwrap() error { return e.Err }
func (ErrCorruptedContractManifest) loadError()      {}

type ErrCorruptedPluginManifest struct{ Err error }

func (e ErrCorruptedPluginManifest) Error() string {
	return fmt.Sprintf("corrupted plugin manifest: %v", e.Err)
}
func (e ErrCorruptedPluginManifest) Unwrap() error { return e.Err }
func (ErrCorruptedPluginManifest) loadError()      {}

type ErrFailedToCompileComponent struct{ Err error }

func (e ErrFailedToCompileComponent) Error() string {
	return fmt.Sprintf("failed to compile component: %v", e.Err)
}
func (e ErrFailedToCompileComponent) Unwrap() error { return e.Err }
func (ErrFailedToCompileComponent) loadError()      {}

type ErrFailedToLinkInterface struct{ Err error }

func (e ErrFailedToLinkInterface) Error() string {
	return fmt.Sprintf("failed to link interface: %v", e.Err)
}
func (e ErrFailedToLinkInterface) Unwrap() error { return e.Err }
func (ErrFailedToLinkInterface) loadError()      {}

type ErrFailedToLinkFunction struct {
	Name string
	Err  error
}

func (e ErrFailedToLinkFunction) Error() string {
	return fmt.Sprintf("failed to link function %s: %v", e.Name, e.Err)
}
func (e ErrFailedToLinkFunction) Unwrap() error { return e.Err }
func (ErrFailedToLinkFunction) loadError()      {}

// ErrAlreadyHandled is the internal suppression marker returned when a
// socket that already failed is requested again — it exists purely to avoid
// emitting the same fatal diagnostic twice.
type ErrAlreadyHandled struct{}

func (ErrAlreadyHandled) Error() string { return "already handled" }
func (ErrAlreadyHandled) loadError()    {}
