package xvm

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/shuoer86/Astar/primitives"
)

// evmCall translates the generic call request into a checked Ethereum
// transaction and runs it on the EVM-style engine.
func (d *CallDispatcher) evmCall(
	ctx primitives.Context,
	source primitives.AccountId,
	target []byte,
	input []byte,
	value *uint256.Int,
	overheads primitives.Weight,
	skipExecution bool,
) (*primitives.CallOutput, *primitives.CallFailure) {
	evmCallCounter.Inc(1)
	d.logger.Trace("Calling EVM", "sourceVm", ctx.SourceVM, "source", source,
		"target", hexutil.Encode(target), "inputLen", len(input), "value", value)

	if len(target) != common.AddressLength {
		return nil, primitives.RevertFailure(primitives.InvalidTarget(), overheads)
	}
	targetAddr := common.BytesToAddress(target)

	boundedInput, err := primitives.NewEthereumTxInput(input)
	if err != nil {
		return nil, primitives.RevertFailure(primitives.InputTooLarge(), overheads)
	}

	// With overheads, less weight is available.
	weightLimit := ctx.WeightLimit.SaturatingSub(overheads)
	gasLimit := d.gasWeight.WeightToGas(weightLimit)

	sourceAddr := d.accounts.ToH160(source)
	tx := primitives.CheckedEthereumTx{
		GasLimit: gasLimit,
		Target:   targetAddr,
		Value:    value,
		Input:    boundedInput,
	}

	// The skip-execution check sits immediately before the engine call so
	// that measuring with it enabled captures exactly the overhead of
	// everything above.
	if skipExecution {
		return primitives.NewCallOutput(nil, overheads), nil
	}

	start := time.Now()
	info, terr := d.ethereum.XvmTransact(sourceAddr, tx)
	evmCallTimer.UpdateSince(start)

	if terr != nil {
		usedWeight := terr.UsedWeight.SaturatingAdd(overheads)
		return nil, primitives.ErrorFailure(
			primitives.VmError(fmt.Sprintf("EVM call error: %s", terr.Reason)), usedWeight)
	}

	d.logger.Trace("EVM call result", "exitReason", info.ExitReason,
		"usedWeight", info.UsedWeight, "returnLen", len(info.Value))

	usedWeight := info.UsedWeight.SaturatingAdd(overheads)
	switch info.ExitReason.Kind {
	case primitives.ExitSucceed:
		return primitives.NewCallOutput(info.Value, usedWeight), nil
	case primitives.ExitRevert:
		// On revert, the return data is the encoded error per the contract
		// ABI specification. Forward it untouched.
		return nil, primitives.RevertFailure(primitives.VmRevert(info.Value), usedWeight)
	default:
		return nil, primitives.ErrorFailure(
			primitives.VmError(fmt.Sprintf("EVM call error: %s", info.ExitReason)), usedWeight)
	}
}
