package primitives

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// VmId identifies one of the two supported virtual machine kinds. The set is
// closed: routing logic switches exhaustively over it and unknown
// discriminants are rejected at decode time.
type VmId uint8

const (
	// VmIdEvm is the EVM-style virtual machine.
	VmIdEvm VmId = 0x0F
	// VmIdWasm is the WASM-style virtual machine.
	VmIdWasm VmId = 0x1F
)

// DecodeVmId parses a raw VM discriminant, rejecting values outside the
// closed set.
func DecodeVmId(b uint8) (VmId, error) {
	switch VmId(b) {
	case VmIdEvm:
		return VmIdEvm, nil
	case VmIdWasm:
		return VmIdWasm, nil
	default:
		return 0, fmt.Errorf("invalid vm id 0x%02X", b)
	}
}

func (id VmId) String() string {
	switch id {
	case VmIdEvm:
		return "evm"
	case VmIdWasm:
		return "wasm"
	}
	return fmt.Sprintf("unknown(0x%02X)", uint8(id))
}

// Context is the execution context of a cross-VM call, supplied by the
// caller. It is immutable and consumed by a single dispatch.
type Context struct {
	// SourceVM identifies the VM the call originates from.
	SourceVM VmId
	// WeightLimit is the total budget for the call, overhead included.
	WeightLimit Weight
}

// CallOutput is the successful outcome of a cross-VM call.
type CallOutput struct {
	// Output is the raw data returned by the called code.
	Output []byte
	// UsedWeight is the total weight consumed, dispatch overhead included.
	UsedWeight Weight
}

// NewCallOutput builds a CallOutput.
func NewCallOutput(output []byte, usedWeight Weight) *CallOutput {
	return &CallOutput{Output: output, UsedWeight: usedWeight}
}

// ErrorCode enumerates the dispatch-level failure family: failures not
// attributable to the called code's own revert semantics.
type ErrorCode uint8

const (
	// CodeSameVmCallDenied rejects a call whose source and target VM match.
	CodeSameVmCallDenied ErrorCode = iota
	// CodeReentranceDenied rejects a dispatch started while another dispatch
	// is active on the same call stack.
	CodeReentranceDenied
	// CodeVmError wraps an internal error reported by the called VM engine.
	CodeVmError
)

func (c ErrorCode) String() string {
	switch c {
	case CodeSameVmCallDenied:
		return "SameVmCallDenied"
	case CodeReentranceDenied:
		return "ReentranceDenied"
	case CodeVmError:
		return "VmError"
	}
	return "unknown"
}

// RevertCode enumerates the revert failure family: rejections the caller's
// program may want to handle through its own revert path.
type RevertCode uint8

const (
	// CodeInvalidTarget rejects a target byte sequence that does not decode
	// to a valid address for the target VM.
	CodeInvalidTarget RevertCode = iota
	// CodeInputTooLarge rejects an input payload exceeding the VM's bound.
	CodeInputTooLarge
	// CodeVmRevert carries a structured rejection returned by the called
	// code as data.
	CodeVmRevert
)

func (c RevertCode) String() string {
	switch c {
	case CodeInvalidTarget:
		return "InvalidTarget"
	case CodeInputTooLarge:
		return "InputTooLarge"
	case CodeVmRevert:
		return "VmRevert"
	}
	return "unknown"
}

// FailureReason tags a CallFailure as belonging to exactly one of the two
// failure families. The interface is closed: FailureError and FailureRevert
// are its only implementations.
type FailureReason interface {
	failureReason()
	String() string
}

// FailureError is the dispatch-error family of failure reasons.
type FailureError struct {
	Code ErrorCode
	// Diagnostic is set only for CodeVmError and carries the engine's own
	// description of what went wrong. It is informational, never parsed.
	Diagnostic string
}

func (FailureError) failureReason() {}

func (e FailureError) String() string {
	if e.Code == CodeVmError {
		return fmt.Sprintf("VmError(%s)", e.Diagnostic)
	}
	return e.Code.String()
}

// FailureRevert is the revert family of failure reasons.
type FailureRevert struct {
	Code RevertCode
	// Data is set only for CodeVmRevert and holds the bytes the called code
	// returned, forwarded unmodified.
	Data []byte
}

func (FailureRevert) failureReason() {}

func (r FailureRevert) String() string {
	if r.Code == CodeVmRevert {
		return fmt.Sprintf("VmRevert(%s)", hexutil.Encode(r.Data))
	}
	return r.Code.String()
}

// SameVmCallDenied builds the reason for a rejected same-VM call.
func SameVmCallDenied() FailureError {
	return FailureError{Code: CodeSameVmCallDenied}
}

// ReentranceDenied builds the reason for a rejected reentrant dispatch.
func ReentranceDenied() FailureError {
	return FailureError{Code: CodeReentranceDenied}
}

// VmError builds the reason wrapping a VM engine's internal error.
func VmError(diagnostic string) FailureError {
	return FailureError{Code: CodeVmError, Diagnostic: diagnostic}
}

// InvalidTarget builds the reason for an undecodable target.
func InvalidTarget() FailureRevert {
	return FailureRevert{Code: CodeInvalidTarget}
}

// InputTooLarge builds the reason for an oversized input payload.
func InputTooLarge() FailureRevert {
	return FailureRevert{Code: CodeInputTooLarge}
}

// VmRevert builds the reason carrying a revert payload from the called code.
func VmRevert(data []byte) FailureRevert {
	return FailureRevert{Code: CodeVmRevert, Data: data}
}

// CallFailure is the failed outcome of a cross-VM call. It is constructed
// only through ErrorFailure and RevertFailure so that every failure site
// classifies itself into one of the two families and accounts for the weight
// consumed up to the failure point.
type CallFailure struct {
	Reason     FailureReason
	UsedWeight Weight
}

// ErrorFailure builds a CallFailure of the dispatch-error family.
func ErrorFailure(reason FailureError, usedWeight Weight) *CallFailure {
	return &CallFailure{Reason: reason, UsedWeight: usedWeight}
}

// RevertFailure builds a CallFailure of the revert family.
func RevertFailure(reason FailureRevert, usedWeight Weight) *CallFailure {
	return &CallFailure{Reason: reason, UsedWeight: usedWeight}
}

// IsError reports whether the failure belongs to the dispatch-error family.
func (f *CallFailure) IsError() bool {
	_, ok := f.Reason.(FailureError)
	return ok
}

// IsRevert reports whether the failure belongs to the revert family.
func (f *CallFailure) IsRevert() bool {
	_, ok := f.Reason.(FailureRevert)
	return ok
}

// Error makes CallFailure usable as a Go error.
func (f *CallFailure) Error() string {
	return fmt.Sprintf("xvm call failed: %s, used weight %s", f.Reason, f.UsedWeight)
}
