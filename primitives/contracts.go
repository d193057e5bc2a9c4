package primitives

import "github.com/holiman/uint256"

// ReturnFlags is the bit set a WASM contract hands back alongside its output
// data.
type ReturnFlags uint32

// ReturnFlagRevert marks the output as a deliberate revert: state changes are
// rolled back and the data is the revert payload.
const ReturnFlagRevert ReturnFlags = 1 << 0

// Contains reports whether all bits of flag are set.
func (f ReturnFlags) Contains(flag ReturnFlags) bool {
	return f&flag == flag
}

// ExecReturnValue is the data a WASM contract execution produced.
type ExecReturnValue struct {
	Flags ReturnFlags
	Data  []byte
}

// DidRevert reports whether the contract asked for its effects to be rolled
// back.
func (r ExecReturnValue) DidRevert() bool {
	return r.Flags.Contains(ReturnFlagRevert)
}

// Determinism controls whether the WASM engine permits indeterministic
// instructions.
type Determinism uint8

const (
	// DeterminismEnforced forbids any indeterministic instruction.
	DeterminismEnforced Determinism = iota
	// DeterminismRelaxed permits indeterministic instructions, for off-chain
	// execution only.
	DeterminismRelaxed
)

// DebugInfo controls collection of debug messages during execution.
type DebugInfo uint8

const (
	DebugInfoSkip DebugInfo = iota
	DebugInfoCollect
)

// CollectEvents controls collection of contract-emitted events.
type CollectEvents uint8

const (
	CollectEventsSkip CollectEvents = iota
	CollectEventsCollect
)

// ContractCall is the call shape the WASM-style engine accepts.
type ContractCall struct {
	Origin   AccountId
	Dest     AccountId
	Value    *uint256.Int
	GasLimit Weight
	// StorageDepositLimit caps the balance the call may hold as storage
	// deposit; nil means no cap.
	StorageDepositLimit *uint256.Int
	Input               []byte
	Debug               DebugInfo
	Events              CollectEvents
	Determinism         Determinism
}

// ContractExecResult is the outcome of a WASM contract execution. GasConsumed
// is reported on every path, including engine failure.
type ContractExecResult struct {
	GasConsumed Weight
	// Result is set when execution produced a return value, reverted or not.
	Result *ExecReturnValue
	// Err is set when the engine itself failed; Result is then nil.
	Err error
}

// ContractsEngine is the WASM-style engine boundary.
type ContractsEngine interface {
	BareCall(call ContractCall) ContractExecResult
}
