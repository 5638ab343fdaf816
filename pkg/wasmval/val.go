// Package wasmval models the WebAssembly component-model guest value, the
// shape every dispatch argument and return value travels in once it has left
// a typed function signature and is being routed by the host.
//
// It mirrors wasmtime's own `wasmtime::component::Val` one-for-one: a sum
// type over scalars, aggregates, and the handful of shapes (resource,
// future, stream, error-context) that need host mediation when they cross a
// plugin boundary. The host never interprets payload bytes for any of these
// shapes; it only ever recurses into or rebuilds the aggregate cases.
package wasmval

// Kind tags which variant a Val holds.
type Kind int

const (
	KindBool Kind = iota
	KindS8
	KindS16
	KindS32
	KindS64
	KindU8
	KindU16
	KindU32
	KindU64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindList
	KindRecord
	KindTuple
	KindVariant
	KindEnum
	KindOption
	KindResult
	KindFlags
	KindResource
	KindFuture
	KindStream
	KindErrorContext
)

// RecordField is one named slot of a Record value.
type RecordField struct {
	Name  string
	Value Val
}

// ResourceHandle is the guest-side opaque handle wasmtime assigns a resource.
// The host never constructs one of these directly — it always comes back
// from a guest call or from a component import/export boundary.
type ResourceHandle uint32

// Val is an immutable WebAssembly component-model value. The zero Val is not
// meaningful; always construct one of the New* helpers.
type Val struct {
	kind Kind

	boolean bool
	num     uint64 // s8..u64 bit pattern, char (rune), bool unused here
	f32     float32
	f64     float64
	str     string

	list    []Val
	record  []RecordField
	variant string
	payload *Val // variant payload, option-some, result-ok/err payload

	resultOK  bool // meaningful only when kind == KindResult
	hasResult bool // whether Result carries a payload slot at all (vs empty)

	flags []string

	resource ResourceHandle

	unsupportedName string // future/stream/error-context: diagnostic name only
}

func (v Val) Kind() Kind { return v.kind }

func NewBool(b bool) Val    { return Val{kind: KindBool, boolean: b} }
func NewS8(n int8) Val      { return Val{kind: KindS8, num: uint64(uint8(n))} }
func NewS16(n int16) Val    { return Val{kind: KindS16, num: uint64(uint16(n))} }
func NewS32(n int32) Val    { return Val{kind: KindS32, num: uint64(uint32(n))} }
func NewS64(n int64) Val    { return Val{kind: KindS64, num: uint64(n)} }
func NewU8(n uint8) Val     { return Val{kind: KindU8, num: uint64(n)} }
func NewU16(n uint16) Val   { return Val{kind: KindU16, num: uint64(n)} }
func NewU32(n uint32) Val   { return Val{kind: KindU32, num: uint64(n)} }
func NewU64(n uint64) Val   { return Val{kind: KindU64, num: n} }
func NewFloat32(f float32) Val { return Val{kind: KindFloat32, f32: f} }
func NewFloat64(f float64) Val { return Val{kind: KindFloat64, f64: f} }
func NewChar(r rune) Val    { return Val{kind: KindChar, num: uint64(r)} }
func NewString(s string) Val { return Val{kind: KindString, str: s} }
func NewList(items []Val) Val { return Val{kind: KindList, list: items} }
func NewRecord(fields []RecordField) Val { return Val{kind: KindRecord, record: fields} }
func NewTuple(items []Val) Val { return Val{kind: KindTuple, list: items} }
func NewEnum(name string) Val { return Val{kind: KindEnum, variant: name} }
func NewFlags(set []string) Val { return Val{kind: KindFlags, flags: set} }
func NewResource(h ResourceHandle) Val { return Val{kind: KindResource, resource: h} }

// NewVariant builds a variant value. payload may be nil for a no-payload case.
func NewVariant(name string, payload *Val) Val {
	return Val{kind: KindVariant, variant: name, payload: payload}
}

// NewOption builds Option(None) when some is nil, Option(Some(*some)) otherwise.
func NewOption(some *Val) Val {
	return Val{kind: KindOption, payload: some}
}

// NewResult builds a Result value. ok selects the Ok/Err branch; payload may
// be nil for a branch with no payload.
func NewResult(ok bool, payload *Val) Val {
	return Val{kind: KindResult, resultOK: ok, hasResult: payload != nil, payload: payload}
}

func NewFuture(name string) Val       { return Val{kind: KindFuture, unsupportedName: name} }
func NewStream(name string) Val       { return Val{kind: KindStream, unsupportedName: name} }
func NewErrorContext(name string) Val { return Val{kind: KindErrorContext, unsupportedName: name} }

// placeholder value wasmtime's dispatch buffer is seeded with for Void
// returns; the bare empty tuple.
var Placeholder = NewTuple(nil)

func (v Val) Bool() bool           { return v.boolean }
func (v Val) S8() int8             { return int8(uint8(v.num)) }
func (v Val) S16() int16           { return int16(uint16(v.num)) }
func (v Val) S32() int32           { return int32(uint32(v.num)) }
func (v Val) S64() int64           { return int64(v.num) }
func (v Val) U8() uint8            { return uint8(v.num) }
func (v Val) U16() uint16          { return uint16(v.num) }
func (v Val) U32() uint32          { return uint32(v.num) }
func (v Val) U64() uint64          { return v.num }
func (v Val) Float32() float32     { return v.f32 }
func (v Val) Float64() float64     { return v.f64 }
func (v Val) Char() rune           { return rune(v.num) }
func (v Val) String() string       { return v.str }
func (v Val) List() []Val          { return v.list }
func (v Val) Record() []RecordField { return v.record }
func (v Val) Tuple() []Val         { return v.list }
func (v Val) VariantName() string  { return v.variant }
func (v Val) VariantPayload() *Val { return v.payload }
func (v Val) EnumName() string     { return v.variant }
func (v Val) Flags() []string      { return v.flags }
func (v Val) Resource() ResourceHandle { return v.resource }
func (v Val) OptionValue() *Val    { return v.payload }
func (v Val) ResultOK() bool       { return v.resultOK }
func (v Val) ResultPayload() *Val {
	if !v.hasResult {
		return nil
	}
	return v.payload
}
func (v Val) UnsupportedName() string { return v.unsupportedName }
