package xvm

import "github.com/ethereum/go-ethereum/metrics"

var (
	evmCallCounter  = metrics.NewRegisteredCounter("xvm/calls/evm", nil)
	wasmCallCounter = metrics.NewRegisteredCounter("xvm/calls/wasm", nil)

	sameVmDeniedCounter     = metrics.NewRegisteredCounter("xvm/denied/samevm", nil)
	reentranceDeniedCounter = metrics.NewRegisteredCounter("xvm/denied/reentrance", nil)

	evmCallTimer  = metrics.NewRegisteredTimer("xvm/duration/evm", nil)
	wasmCallTimer = metrics.NewRegisteredTimer("xvm/duration/wasm", nil)
)
