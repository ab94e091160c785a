package vm

import "github.com/rgeraldes24/evmone/core/types"

// StatusCode is the outcome of one Execute call. Only Success/Revert/
// Failure are distinguished at the receipt level (core/types.ReceiptStatus);
// the finer kinds let the Host and tests tell failure modes apart without
// the core having to interpret bytecode itself.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusRevert
	StatusFailure
	StatusOutOfGas
	StatusInvalidInstruction
	StatusStackUnderflow
	StatusStackOverflow
	StatusStaticModeViolation
	StatusBadJumpDestination
	StatusInvalidMemoryAccess
	StatusCallDepthExceeded
	StatusPrecompileFailure
)

// Succeeded reports whether status represents successful completion.
func (s StatusCode) Succeeded() bool { return s == StatusSuccess }

// Result is what Execute (and Host.Call, recursively) returns.
type Result struct {
	StatusCode    StatusCode
	GasLeft       int64
	GasRefund     int64
	Output        []byte
	CreateAddress types.Address // populated for successful Create/Create2
}
