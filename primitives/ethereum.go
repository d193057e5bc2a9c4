package primitives

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// MaxEthereumTxInputSize bounds the calldata accepted for a checked Ethereum
// transaction, before the EVM engine is ever entered.
const MaxEthereumTxInputSize = 65536

// WeightPerGas is the fixed ref-time weight equivalent of one unit of EVM
// gas, used by FixedGasWeightMapping.
const WeightPerGas = 25_000

// EthereumTxInput is a length-bounded calldata payload.
type EthereumTxInput []byte

// NewEthereumTxInput validates the size bound and wraps the payload. The
// bytes are not copied; the caller hands over ownership.
func NewEthereumTxInput(data []byte) (EthereumTxInput, error) {
	if len(data) > MaxEthereumTxInputSize {
		return nil, fmt.Errorf("input size %d exceeds maximum %d", len(data), MaxEthereumTxInputSize)
	}
	return EthereumTxInput(data), nil
}

// CheckedEthereumTx is a pre-validated EVM call: target decoded, input
// bounded, value widened to the VM's native 256-bit representation. It is the
// only call shape the EVM engine accepts from the dispatcher.
type CheckedEthereumTx struct {
	GasLimit uint64
	Target   common.Address
	Value    *uint256.Int
	Input    EthereumTxInput
	// AccessList is nil when the caller supplies none.
	AccessList types.AccessList
}

// ExitKind classifies how an EVM execution ended.
type ExitKind uint8

const (
	// ExitSucceed marks a normal completion; the return data is the output.
	ExitSucceed ExitKind = iota
	// ExitRevert marks a deliberate revert; the return data is the encoded
	// revert payload.
	ExitRevert
	// ExitError marks an execution error (out of gas, invalid opcode, ...).
	ExitError
	// ExitFatal marks an unrecoverable machine failure.
	ExitFatal
)

func (k ExitKind) String() string {
	switch k {
	case ExitSucceed:
		return "Succeed"
	case ExitRevert:
		return "Revert"
	case ExitError:
		return "Error"
	case ExitFatal:
		return "Fatal"
	}
	return "unknown"
}

// ExitReason is the EVM engine's exit classification plus, for the error
// kinds, a human-readable description.
type ExitReason struct {
	Kind   ExitKind
	Reason string
}

func (r ExitReason) String() string {
	if r.Reason == "" {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Reason)
}

// EthereumTxInfo is the outcome of a checked EVM execution.
type EthereumTxInfo struct {
	ExitReason ExitReason
	// Value is the return data on success, or the encoded revert data when
	// ExitReason is ExitRevert.
	Value []byte
	// UsedWeight is the weight actually consumed by the engine, exclusive of
	// any dispatch overhead.
	UsedWeight Weight
}

// TransactError reports that the engine call itself failed to execute, before
// or outside EVM semantics. It still carries the weight consumed up to the
// failure.
type TransactError struct {
	Reason     string
	UsedWeight Weight
}

func (e *TransactError) Error() string {
	return e.Reason
}

// CheckedEthereumTransact is the EVM-style engine boundary. Implementations
// run the checked transaction and report the outcome; they never panic on
// EVM-level failures, those are encoded in the ExitReason.
type CheckedEthereumTransact interface {
	XvmTransact(source common.Address, tx CheckedEthereumTx) (*EthereumTxInfo, *TransactError)
}

// AccountMapping converts a native account into the EVM's 20-byte address
// space. Pure and total for well-formed accounts.
type AccountMapping interface {
	ToH160(account AccountId) common.Address
}

// GasWeightMapping converts between EVM gas and runtime weight. Both
// directions are pure, deterministic and monotonic.
type GasWeightMapping interface {
	WeightToGas(weight Weight) uint64
	GasToWeight(gas uint64) Weight
}

// FixedGasWeightMapping converts gas and weight through the constant
// WeightPerGas ratio on the ref-time dimension. Proof size is not modelled by
// EVM gas and maps to zero.
type FixedGasWeightMapping struct{}

func (FixedGasWeightMapping) WeightToGas(weight Weight) uint64 {
	return weight.RefTime / WeightPerGas
}

func (FixedGasWeightMapping) GasToWeight(gas uint64) Weight {
	return WeightFromParts(saturatingMul(gas, WeightPerGas), 0)
}

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if prod := a * b; prod/b == a {
		return prod
	}
	return ^uint64(0)
}
