package core

import (
	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

// BlockInfo is the subset of block-header fields a transition needs:
// gas limit (for validation), base fee (for EIP-1559 pricing), and the
// context fields the Host hands the VM verbatim.
type BlockInfo struct {
	Number     int64
	Timestamp  int64
	GasLimit   int64
	BaseFee    *uint256.Int
	Coinbase   types.Address
	PrevRandao types.Hash
}
