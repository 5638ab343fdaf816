package link

import "github.com/go-lynx/wasplug/plugin"

// PartialResult is the `(T, warnings)` / `(fatal, warnings)` convention
// PluginTree.Load returns, rather than discarding warnings the moment a
// fatal error appears (NewPluginTree, which cannot fail, returns a plain
// (tree, warnings) pair). Value is the zero
// value of T when Err is non-nil.
type PartialResult[T any] struct {
	Value    T
	Warnings []plugin.ConstructionWarning
	Err      error
}

func ok[T any](value T, warnings []plugin.ConstructionWarning) PartialResult[T] {
	return PartialResult[T]{Value: value, Warnings: warnings}
}

func fatal[T any](err error, warnings []plugin.ConstructionWarning) PartialResult[T] {
	return PartialResult[T]{Warnings: warnings, Err: err}
}
