package xvm

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/shuoer86/Astar/primitives"
)

var errEngineDown = errors.New("engine down")

// Fixed overhead table so test expectations stay readable.
type testWeights struct{}

func (testWeights) EvmCallOverheads() primitives.Weight {
	return primitives.WeightFromParts(100, 10)
}

func (testWeights) WasmCallOverheads() primitives.Weight {
	return primitives.WeightFromParts(200, 20)
}

// truncatingAccountMapping maps a native account to its first 20 bytes.
type truncatingAccountMapping struct{}

func (truncatingAccountMapping) ToH160(a primitives.AccountId) common.Address {
	return common.BytesToAddress(a.Bytes()[:common.AddressLength])
}

// identityGasWeightMapping makes one unit of ref time equal one unit of gas,
// so gas limits are directly readable off weight budgets in assertions.
type identityGasWeightMapping struct{}

func (identityGasWeightMapping) WeightToGas(w primitives.Weight) uint64 {
	return w.RefTime
}

func (identityGasWeightMapping) GasToWeight(gas uint64) primitives.Weight {
	return primitives.WeightFromParts(gas, 0)
}

type fakeEthEngine struct {
	calls      int
	lastSource common.Address
	lastTx     primitives.CheckedEthereumTx

	info *primitives.EthereumTxInfo
	terr *primitives.TransactError
	hook func()
}

func (f *fakeEthEngine) XvmTransact(source common.Address, tx primitives.CheckedEthereumTx) (*primitives.EthereumTxInfo, *primitives.TransactError) {
	f.calls++
	f.lastSource = source
	f.lastTx = tx
	if f.hook != nil {
		f.hook()
	}
	if f.terr != nil {
		return nil, f.terr
	}
	if f.info != nil {
		return f.info, nil
	}
	return &primitives.EthereumTxInfo{
		ExitReason: primitives.ExitReason{Kind: primitives.ExitSucceed},
	}, nil
}

type fakeContractsEngine struct {
	calls    int
	lastCall primitives.ContractCall

	res  *primitives.ContractExecResult
	hook func()
}

func (f *fakeContractsEngine) BareCall(call primitives.ContractCall) primitives.ContractExecResult {
	f.calls++
	f.lastCall = call
	if f.hook != nil {
		f.hook()
	}
	if f.res != nil {
		return *f.res
	}
	return primitives.ContractExecResult{Result: &primitives.ExecReturnValue{}}
}

func newTestDispatcher(t *testing.T) (*CallDispatcher, *fakeEthEngine, *fakeContractsEngine) {
	t.Helper()
	eth := &fakeEthEngine{}
	contracts := &fakeContractsEngine{}
	d, err := New(Config{
		AccountMapping:   truncatingAccountMapping{},
		GasWeightMapping: identityGasWeightMapping{},
		EthereumTransact: eth,
		ContractsEngine:  contracts,
		Weights:          testWeights{},
	})
	require.NoError(t, err)
	return d, eth, contracts
}

func testAccount(fill byte) primitives.AccountId {
	var id primitives.AccountId
	for i := range id {
		id[i] = fill
	}
	return id
}

func evmTarget() []byte {
	return make([]byte, common.AddressLength)
}

func wasmTarget() []byte {
	return make([]byte, primitives.AccountIdLength)
}
