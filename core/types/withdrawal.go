package types

import "github.com/holiman/uint256"

// weiPerGwei is the protocol-fixed scaling factor between a withdrawal's
// on-wire Gwei amount and the Wei value credited during finalization.
const weiPerGwei = 1_000_000_000

// Withdrawal is a beacon-chain (EIP-4895) validator withdrawal credited to
// an execution-layer account during Finalize.
type Withdrawal struct {
	Index          uint64
	ValidatorIndex uint64
	Recipient      Address
	Amount         uint64 // Gwei
}

// GetAmount returns the withdrawal amount in Wei.
func (w *Withdrawal) GetAmount() *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(w.Amount), uint256.NewInt(weiPerGwei))
}
