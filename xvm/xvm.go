// Package xvm dispatches synchronous calls across the two virtual machines
// hosted by the runtime. Code executing inside one VM can invoke code inside
// the other within the same transaction; the dispatcher enforces the metering
// overhead, the same-VM rejection rule, and the depth-one reentrance bound
// that keep the two environments mutually consistent.
//
// The VM engines themselves, the account mapping, and the gas/weight
// conversion are external collaborators injected through the Config.
package xvm

import (
	"errors"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/shuoer86/Astar/primitives"
)

// Config wires the external collaborators of a CallDispatcher.
type Config struct {
	// AccountMapping converts native accounts to EVM addresses.
	AccountMapping primitives.AccountMapping
	// GasWeightMapping converts the weight budget to EVM gas.
	GasWeightMapping primitives.GasWeightMapping
	// EthereumTransact is the EVM-style engine.
	EthereumTransact primitives.CheckedEthereumTransact
	// ContractsEngine is the WASM-style engine.
	ContractsEngine primitives.ContractsEngine
	// Weights is the overhead table; nil selects DefaultWeights.
	Weights WeightInfo
	// Logger is scoped with a module key when nil.
	Logger log.Logger
}

// CallDispatcher routes cross-VM calls to the engine matching the target VM.
//
// A dispatcher instance is scoped to a single transaction's call stack: the
// runtime constructs one per transaction and hands it to the host functions
// of both VMs, so a nested dispatch attempt lands on the same instance and is
// caught by the reentrance guard. Instances must not be shared across
// concurrently executing transactions.
type CallDispatcher struct {
	accounts  primitives.AccountMapping
	gasWeight primitives.GasWeightMapping
	ethereum  primitives.CheckedEthereumTransact
	contracts primitives.ContractsEngine
	weights   WeightInfo
	logger    log.Logger

	// inCall is true exactly while a dispatch is in progress on this
	// instance's call stack.
	inCall atomic.Bool
}

// New builds a CallDispatcher from the given collaborators.
func New(cfg Config) (*CallDispatcher, error) {
	if cfg.AccountMapping == nil {
		return nil, errors.New("xvm: account mapping is nil")
	}
	if cfg.GasWeightMapping == nil {
		return nil, errors.New("xvm: gas weight mapping is nil")
	}
	if cfg.EthereumTransact == nil {
		return nil, errors.New("xvm: ethereum transact engine is nil")
	}
	if cfg.ContractsEngine == nil {
		return nil, errors.New("xvm: contracts engine is nil")
	}
	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New("module", "xvm")
	}
	return &CallDispatcher{
		accounts:  cfg.AccountMapping,
		gasWeight: cfg.GasWeightMapping,
		ethereum:  cfg.EthereumTransact,
		contracts: cfg.ContractsEngine,
		weights:   weights,
		logger:    logger,
	}, nil
}

// Call invokes code in the VM identified by vmID on behalf of source, which
// is executing inside ctx.SourceVM. target is the VM-specific encoding of the
// callee address, input the raw payload, value the balance to transfer.
// storageDepositLimit applies to the WASM-style VM only; nil means no limit.
//
// Exactly one of the returns is non-nil. Every CallFailure carries the weight
// consumed up to the failure, overhead included.
func (d *CallDispatcher) Call(
	ctx primitives.Context,
	vmID primitives.VmId,
	source primitives.AccountId,
	target []byte,
	input []byte,
	value *uint256.Int,
	storageDepositLimit *uint256.Int,
) (*primitives.CallOutput, *primitives.CallFailure) {
	return d.doCall(ctx, vmID, source, target, input, value, storageDepositLimit, false)
}

// CallWithoutExecution performs all validation and conversion of Call but
// skips the engine invocation, returning the table overhead as the consumed
// weight. It exists so the overhead constants themselves can be measured.
func (d *CallDispatcher) CallWithoutExecution(
	ctx primitives.Context,
	vmID primitives.VmId,
	source primitives.AccountId,
	target []byte,
	input []byte,
	value *uint256.Int,
	storageDepositLimit *uint256.Int,
) (*primitives.CallOutput, *primitives.CallFailure) {
	return d.doCall(ctx, vmID, source, target, input, value, storageDepositLimit, true)
}

func (d *CallDispatcher) doCall(
	ctx primitives.Context,
	vmID primitives.VmId,
	source primitives.AccountId,
	target []byte,
	input []byte,
	value *uint256.Int,
	storageDepositLimit *uint256.Int,
	skipExecution bool,
) (*primitives.CallOutput, *primitives.CallFailure) {
	var overheads primitives.Weight
	switch vmID {
	case primitives.VmIdEvm:
		overheads = d.weights.EvmCallOverheads()
	case primitives.VmIdWasm:
		overheads = d.weights.WasmCallOverheads()
	default:
		return nil, primitives.ErrorFailure(
			primitives.VmError("unsupported vm id"), primitives.WeightZero())
	}

	// A VM calling back into itself must use its native call mechanism, not
	// this dispatcher.
	if ctx.SourceVM == vmID {
		sameVmDeniedCounter.Inc(1)
		return nil, primitives.ErrorFailure(primitives.SameVmCallDenied(), overheads)
	}

	// Test-and-set the reentrance flag. Once inside a dispatch, further
	// dispatches on the same stack are refused, bounding the cross-VM call
	// graph to depth one.
	if !d.inCall.CompareAndSwap(false, true) {
		reentranceDeniedCounter.Inc(1)
		return nil, primitives.ErrorFailure(primitives.ReentranceDenied(), overheads)
	}
	// The flag must be restored on every exit path, a stuck flag would
	// disable the dispatcher for the rest of the transaction.
	defer d.inCall.Store(false)

	if value == nil {
		value = uint256.NewInt(0)
	}

	switch vmID {
	case primitives.VmIdEvm:
		return d.evmCall(ctx, source, target, input, value, overheads, skipExecution)
	default:
		return d.wasmCall(ctx, source, target, input, value, overheads, storageDepositLimit, skipExecution)
	}
}
