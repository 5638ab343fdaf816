package plugin

import "github.com/go-lynx/wasplug/pkg/wasmval"

// Val is the guest value model type, re-exported for callers that only
// import plugin. See pkg/wasmval for the full definition.
type Val = wasmval.Val

// Arity names the cardinality constraint a contract places on its providers.
// It is the contract-declared requirement; Container is the runtime value
// that is checked against it during load (see link.loadSocket).
type Arity int

const (
	ExactlyOne Arity = iota
	AtMostOne
	AtLeastOne
	Any
)

func (a Arity) String() string {
	switch a {
	case ExactlyOne:
		return "exactly-one"
	case AtMostOne:
		return "at-most-one"
	case AtLeastOne:
		return "at-least-one"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// idValue is the (identifier, instance) pair the singleton variants carry.
type idValue[Id comparable, T any] struct {
	id    Id
	value T
}

// Container is a structure-preserving cardinality wrapper: one of ExactlyOne,
// AtMostOne, AtLeastOne, or Any, each carrying instances keyed by Id. The
// zero Container is not meaningful; use one of the New* constructors.
//
// Go cannot add a type parameter to a method, so the structural reshape
// operations (Map, MapOwned, Project) are free functions below rather than
// methods — only the accessors that do not change T (Arity, Len, Get, Each)
// are methods.
type Container[Id comparable, T any] struct {
	arity   Arity
	single  *idValue[Id, T] // populated for ExactlyOne, and AtMostOne when present
	entries map[Id]T        // populated for AtLeastOne and Any
}

// NewExactlyOne builds an ExactlyOne container. Callers (the socket loader)
// are responsible for having already checked arity; Container itself does
// not validate — that is a load-time concern (CardinalityViolation).
func NewExactlyOne[Id comparable, T any](id Id, value T) Container[Id, T] {
	return Container[Id, T]{arity: ExactlyOne, single: &idValue[Id, T]{id: id, value: value}}
}

// NewAtMostOne builds an AtMostOne container. Pass present=false for the
// empty case; id and value are then ignored.
func NewAtMostOne[Id comparable, T any](id Id, value T, present bool) Container[Id, T] {
	c := Container[Id, T]{arity: AtMostOne}
	if present {
		c.single = &idValue[Id, T]{id: id, value: value}
	}
	return c
}

// NewAtLeastOne builds an AtLeastOne container from a non-empty map. Callers
// must have already verified len(entries) >= 1.
func NewAtLeastOne[Id comparable, T any](entries map[Id]T) Container[Id, T] {
	return Container[Id, T]{arity: AtLeastOne, entries: entries}
}

// NewAny builds an Any container, including the empty map.
func NewAny[Id comparable, T any](entries map[Id]T) Container[Id, T] {
	if entries == nil {
		entries = map[Id]T{}
	}
	return Container[Id, T]{arity: Any, entries: entries}
}

func (c Container[Id, T]) Arity() Arity { return c.arity }

// Len reports how many instances the container currently holds.
func (c Container[Id, T]) Len() int {
	switch c.arity {
	case ExactlyOne:
		return 1
	case AtMostOne:
		if c.single != nil {
			return 1
		}
		return 0
	default:
		return len(c.entries)
	}
}

// Get returns the value for id, if present. The singleton variants
// (ExactlyOne, AtMostOne) ignore a mismatched id entirely and
// return their one stored value regardless — a wrong id passed to a
// singleton container is a caller bug, not a lookup miss, so masking it
// behind "not found" would hide the bug rather than surface it.
func (c Container[Id, T]) Get(id Id) (T, bool) {
	switch c.arity {
	case ExactlyOne:
		return c.single.value, true
	case AtMostOne:
		if c.single == nil {
			var zero T
			return zero, false
		}
		return c.single.value, true
	default:
		v, ok := c.entries[id]
		return v, ok
	}
}

// Each calls f for every (id, value) pair the container holds. Iteration
// order over the map variants is unspecified.
func (c Container[Id, T]) Each(f func(id Id, value T)) {
	switch c.arity {
	case ExactlyOne:
		f(c.single.id, c.single.value)
	case AtMostOne:
		if c.single != nil {
			f(c.single.id, c.single.value)
		}
	default:
		for id, v := range c.entries {
			f(id, v)
		}
	}
}

// Map reshapes a container by reference, preserving its arity. Go cannot add
// a type parameter to a method, so this is a free function rather than a
// `(c Container[Id, T]) Map(f) -> Container[Id, U]` method.
func Map[Id comparable, T, U any](c Container[Id, T], f func(id Id, value T) U) Container[Id, U] {
	switch c.arity {
	case ExactlyOne:
		return NewExactlyOne(c.single.id, f(c.single.id, c.single.value))
	case AtMostOne:
		if c.single == nil {
			var zero Id
			var zeroU U
			return NewAtMostOne(zero, zeroU, false)
		}
		return NewAtMostOne(c.single.id, f(c.single.id, c.single.value), true)
	case AtLeastOne:
		out := make(map[Id]U, len(c.entries))
		for id, v := range c.entries {
			out[id] = f(id, v)
		}
		return NewAtLeastOne(out)
	default: // Any
		out := make(map[Id]U, len(c.entries))
		for id, v := range c.entries {
			out[id] = f(id, v)
		}
		return NewAny(out)
	}
}

// MapOwned is Map's consuming counterpart: the value-only transform used
// when the original container is no longer needed afterward.
func MapOwned[Id comparable, T, U any](c Container[Id, T], f func(value T) U) Container[Id, U] {
	return Map(c, func(_ Id, v T) U { return f(v) })
}

// Project converts a container into the guest value model: ExactlyOne ->
// tuple(id, val); AtMostOne -> option of tuple; the map variants -> list of
// tuples. idVal renders an Id as a Val
// (the guest-facing identifier encoding); val renders an instance as a Val.
func Project[Id comparable, T any](c Container[Id, T], idVal func(Id) Val, val func(T) Val) Val {
	switch c.arity {
	case ExactlyOne:
		return wasmval.NewTuple([]Val{idVal(c.single.id), val(c.single.value)})
	case AtMostOne:
		if c.single == nil {
			return wasmval.NewOption(nil)
		}
		tuple := wasmval.NewTuple([]Val{idVal(c.single.id), val(c.single.value)})
		return wasmval.NewOption(&tuple)
	default:
		items := make([]Val, 0, len(c.entries))
		c.Each(func(id Id, v T) {
			items = append(items, wasmval.NewTuple([]Val{idVal(id), val(v)}))
		})
		return wasmval.NewList(items)
	}
}
