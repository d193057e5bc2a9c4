package primitives

import "fmt"

// Weight is the runtime's VM-agnostic unit of computational and storage cost.
// It is two-dimensional: RefTime meters execution time (picoseconds of
// reference hardware), ProofSize meters the state-proof footprint in bytes.
// Both dimensions are budgeted and consumed independently.
type Weight struct {
	RefTime   uint64
	ProofSize uint64
}

// WeightFromParts builds a Weight from its two components.
func WeightFromParts(refTime, proofSize uint64) Weight {
	return Weight{RefTime: refTime, ProofSize: proofSize}
}

// WeightZero returns the zero weight.
func WeightZero() Weight {
	return Weight{}
}

// SaturatingAdd returns w + other, clamping each dimension at the maximum
// uint64 value instead of wrapping.
func (w Weight) SaturatingAdd(other Weight) Weight {
	return Weight{
		RefTime:   saturatingAdd(w.RefTime, other.RefTime),
		ProofSize: saturatingAdd(w.ProofSize, other.ProofSize),
	}
}

// SaturatingSub returns w - other, flooring each dimension at zero instead of
// underflowing. Budget adjustments rely on this never going negative.
func (w Weight) SaturatingSub(other Weight) Weight {
	return Weight{
		RefTime:   saturatingSub(w.RefTime, other.RefTime),
		ProofSize: saturatingSub(w.ProofSize, other.ProofSize),
	}
}

// IsZero reports whether both dimensions are zero.
func (w Weight) IsZero() bool {
	return w.RefTime == 0 && w.ProofSize == 0
}

// AnyGt reports whether any dimension of w exceeds the same dimension of
// other.
func (w Weight) AnyGt(other Weight) bool {
	return w.RefTime > other.RefTime || w.ProofSize > other.ProofSize
}

// AllGte reports whether every dimension of w is at least the same dimension
// of other.
func (w Weight) AllGte(other Weight) bool {
	return w.RefTime >= other.RefTime && w.ProofSize >= other.ProofSize
}

func (w Weight) String() string {
	return fmt.Sprintf("{refTime: %d, proofSize: %d}", w.RefTime, w.ProofSize)
}

func saturatingAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
