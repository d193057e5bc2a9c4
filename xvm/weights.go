package xvm

import "github.com/shuoer86/Astar/primitives"

// WeightInfo is the overhead table: the fixed weight charged for crossing
// into a given VM, independent of the call's outcome. Values are fixed at
// build time and never mutated at runtime.
type WeightInfo interface {
	EvmCallOverheads() primitives.Weight
	WasmCallOverheads() primitives.Weight
}

// defaultWeights carries the benchmarked overhead constants for the reference
// hardware.
type defaultWeights struct{}

// DefaultWeights returns the built-in overhead table.
func DefaultWeights() WeightInfo {
	return defaultWeights{}
}

func (defaultWeights) EvmCallOverheads() primitives.Weight {
	return primitives.WeightFromParts(6_304_000, 1_485)
}

func (defaultWeights) WasmCallOverheads() primitives.Weight {
	return primitives.WeightFromParts(7_185_000, 1_930)
}
