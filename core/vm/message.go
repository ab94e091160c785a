package vm

import (
	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

// CallKind selects the call dispatch semantics for one Host.Call invocation.
type CallKind int

const (
	Call CallKind = iota
	DelegateCall
	CallCode
	StaticCall
	Create
	Create2
)

// Message is the prepared call/create request passed to the external VM,
// and to Host.Call recursively for nested calls.
type Message struct {
	Kind        CallKind
	Depth       int
	Gas         int64
	Recipient   types.Address
	Sender      types.Address
	Value       *uint256.Int
	Input       []byte
	Salt        types.Hash // Create2 only
	CodeAddress types.Address
	Static      bool
}

// TxContext is what Host.GetTxContext derives from BlockInfo and
// Transaction for the VM's TXGASPRICE/COINBASE/TIMESTAMP/... opcodes.
type TxContext struct {
	GasPrice    *uint256.Int
	Origin      types.Address
	Coinbase    types.Address
	Number      int64
	Timestamp   int64
	GasLimit    int64
	PrevRandao  types.Hash
	ChainID     *uint256.Int
	BaseFee     *uint256.Int
}
