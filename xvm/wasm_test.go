package xvm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/shuoer86/Astar/primitives"
)

func TestWasmCallSuccess(t *testing.T) {
	d, _, contracts := newTestDispatcher(t)

	overheads := testWeights{}.WasmCallOverheads()
	engineUsed := primitives.WeightFromParts(900, 7)
	contracts.res = &primitives.ContractExecResult{
		GasConsumed: engineUsed,
		Result:      &primitives.ExecReturnValue{Data: []byte{0xCA, 0xFE}},
	}

	ctx := primitives.Context{
		SourceVM:    primitives.VmIdEvm,
		WeightLimit: overheads.SaturatingAdd(primitives.WeightFromParts(4000, 40)),
	}
	source := testAccount(0xBB)
	depositLimit := uint256.NewInt(123)
	out, failure := d.Call(ctx, primitives.VmIdWasm, source, wasmTarget(), []byte{0x01}, uint256.NewInt(5), depositLimit)
	require.Nil(t, failure)
	require.NotNil(t, out)
	require.Equal(t, []byte{0xCA, 0xFE}, out.Output)
	require.Equal(t, overheads.SaturatingAdd(engineUsed), out.UsedWeight)

	require.Equal(t, 1, contracts.calls)
	call := contracts.lastCall
	require.Equal(t, source, call.Origin)
	require.Equal(t, testAccount(0), call.Dest)
	// The engine budget is the caller's limit less the dispatch overhead.
	require.Equal(t, primitives.WeightFromParts(4000, 40), call.GasLimit)
	require.Equal(t, depositLimit, call.StorageDepositLimit)
	require.Equal(t, []byte{0x01}, call.Input)
	// Not an event-emission or debugging path, and determinism is mandatory.
	require.Equal(t, primitives.DebugInfoSkip, call.Debug)
	require.Equal(t, primitives.CollectEventsSkip, call.Events)
	require.Equal(t, primitives.DeterminismEnforced, call.Determinism)
}

func TestWasmCallInvalidTarget(t *testing.T) {
	d, _, contracts := newTestDispatcher(t)

	ctx := primitives.Context{SourceVM: primitives.VmIdEvm, WeightLimit: primitives.WeightFromParts(10_000, 100)}
	for _, target := range [][]byte{nil, make([]byte, 20), make([]byte, 31), make([]byte, 33)} {
		out, failure := d.Call(ctx, primitives.VmIdWasm, testAccount(1), target, nil, nil, nil)
		require.Nil(t, out)
		require.NotNil(t, failure)
		require.True(t, failure.IsRevert())
		require.Equal(t, primitives.InvalidTarget(), failure.Reason)
		require.Equal(t, testWeights{}.WasmCallOverheads(), failure.UsedWeight)
	}
	require.Zero(t, contracts.calls)
}

func TestWasmCallRevertFlag(t *testing.T) {
	d, _, contracts := newTestDispatcher(t)

	overheads := testWeights{}.WasmCallOverheads()
	engineUsed := primitives.WeightFromParts(600, 6)
	contracts.res = &primitives.ContractExecResult{
		GasConsumed: engineUsed,
		Result: &primitives.ExecReturnValue{
			Flags: primitives.ReturnFlagRevert,
			Data:  []byte{0x01, 0x02},
		},
	}

	ctx := primitives.Context{SourceVM: primitives.VmIdEvm, WeightLimit: primitives.WeightFromParts(10_000, 100)}
	out, failure := d.Call(ctx, primitives.VmIdWasm, testAccount(1), wasmTarget(), nil, nil, nil)
	require.Nil(t, out)
	require.NotNil(t, failure)
	require.True(t, failure.IsRevert())
	require.Equal(t, primitives.VmRevert([]byte{0x01, 0x02}), failure.Reason)
	require.Equal(t, overheads.SaturatingAdd(engineUsed), failure.UsedWeight)
}

func TestWasmCallEngineError(t *testing.T) {
	d, _, contracts := newTestDispatcher(t)

	overheads := testWeights{}.WasmCallOverheads()
	engineUsed := primitives.WeightFromParts(250, 2)
	contracts.res = &primitives.ContractExecResult{
		GasConsumed: engineUsed,
		Err:         errEngineDown,
	}

	ctx := primitives.Context{SourceVM: primitives.VmIdEvm, WeightLimit: primitives.WeightFromParts(10_000, 100)}
	out, failure := d.Call(ctx, primitives.VmIdWasm, testAccount(1), wasmTarget(), nil, nil, nil)
	require.Nil(t, out)
	require.NotNil(t, failure)
	require.True(t, failure.IsError())
	reason := failure.Reason.(primitives.FailureError)
	require.Equal(t, primitives.CodeVmError, reason.Code)
	require.Contains(t, reason.Diagnostic, "engine down")
	// Partial consumption is reported even on engine failure.
	require.Equal(t, overheads.SaturatingAdd(engineUsed), failure.UsedWeight)
}

func TestWasmCallNilValueAndDeposit(t *testing.T) {
	d, _, contracts := newTestDispatcher(t)

	ctx := primitives.Context{SourceVM: primitives.VmIdEvm, WeightLimit: primitives.WeightFromParts(10_000, 100)}
	out, failure := d.Call(ctx, primitives.VmIdWasm, testAccount(1), wasmTarget(), nil, nil, nil)
	require.Nil(t, failure)
	require.NotNil(t, out)

	call := contracts.lastCall
	require.NotNil(t, call.Value)
	require.True(t, call.Value.IsZero())
	// nil deposit ceiling means no limit and is passed through as such.
	require.Nil(t, call.StorageDepositLimit)
}
