package xvm

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/shuoer86/Astar/primitives"
)

// wasmCall translates the generic call request into a contract call and runs
// it on the WASM-style engine. Events and debug output are not collected;
// this is not an event-emission path.
func (d *CallDispatcher) wasmCall(
	ctx primitives.Context,
	source primitives.AccountId,
	target []byte,
	input []byte,
	value *uint256.Int,
	overheads primitives.Weight,
	storageDepositLimit *uint256.Int,
	skipExecution bool,
) (*primitives.CallOutput, *primitives.CallFailure) {
	wasmCallCounter.Inc(1)
	d.logger.Trace("Calling WASM", "sourceVm", ctx.SourceVM, "source", source,
		"target", hexutil.Encode(target), "inputLen", len(input), "value", value,
		"storageDepositLimit", storageDepositLimit)

	dest, err := primitives.AccountIdFromBytes(target)
	if err != nil {
		return nil, primitives.RevertFailure(primitives.InvalidTarget(), overheads)
	}

	// With overheads, less weight is available.
	weightLimit := ctx.WeightLimit.SaturatingSub(overheads)

	// The skip-execution check sits immediately before the engine call so
	// that measuring with it enabled captures exactly the overhead of
	// everything above.
	if skipExecution {
		return primitives.NewCallOutput(nil, overheads), nil
	}

	start := time.Now()
	res := d.contracts.BareCall(primitives.ContractCall{
		Origin:              source,
		Dest:                dest,
		Value:               value,
		GasLimit:            weightLimit,
		StorageDepositLimit: storageDepositLimit,
		Input:               input,
		Debug:               primitives.DebugInfoSkip,
		Events:              primitives.CollectEventsSkip,
		Determinism:         primitives.DeterminismEnforced,
	})
	wasmCallTimer.UpdateSince(start)

	d.logger.Trace("WASM call result", "gasConsumed", res.GasConsumed, "err", res.Err)

	usedWeight := res.GasConsumed.SaturatingAdd(overheads)
	if res.Err != nil {
		return nil, primitives.ErrorFailure(
			primitives.VmError(fmt.Sprintf("WASM call error: %s", res.Err)), usedWeight)
	}
	if res.Result.DidRevert() {
		return nil, primitives.RevertFailure(primitives.VmRevert(res.Result.Data), usedWeight)
	}
	return primitives.NewCallOutput(res.Result.Data, usedWeight), nil
}
