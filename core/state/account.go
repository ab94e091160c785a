// Package state implements the in-memory account store the Host mutates
// during a transition: an address-keyed account map with EIP-2929
// warm/cold tracking and journal-based snapshot/revert.
package state

import (
	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

// AccessStatus records EIP-2929 warm/cold access tracking for an account
// or a storage slot.
type AccessStatus uint8

const (
	Cold AccessStatus = iota
	Warm
)

// NonceMax is the sentinel nonce value a sender may never reach; a sender
// already at this nonce fails validation with NONCE_HAS_MAX_VALUE.
const NonceMax = ^uint64(0)

// StorageValue is one storage slot as seen within a single transaction:
// its value at transaction start (Original), its current value, and
// whether it has been observed yet this transaction.
type StorageValue struct {
	Current      types.Hash
	Original     types.Hash
	AccessStatus AccessStatus
}

// Account is one entry in the state trie, extended with the transaction-
// scoped bookkeeping the Host needs: Destructed/Erasable/AccessStatus are
// cleared at the start of every transition and must never leak across
// transactions that reuse a pre-state.
type Account struct {
	Nonce        uint64
	Balance      *uint256.Int
	Storage      map[types.Hash]*StorageValue
	Code         []byte
	Destructed   bool
	Erasable     bool
	AccessStatus AccessStatus
}

// NewAccount returns a freshly touched, empty account.
func NewAccount() *Account {
	return &Account{
		Balance: new(uint256.Int),
		Storage: make(map[types.Hash]*StorageValue),
	}
}

// IsEmpty reports the EIP-161 emptiness test: no code, zero nonce, zero
// balance.
func (a *Account) IsEmpty() bool {
	return len(a.Code) == 0 && a.Nonce == 0 && a.Balance.IsZero()
}

// GetStorage returns the slot's current value, or the zero hash for a slot
// never written.
func (a *Account) GetStorage(key types.Hash) types.Hash {
	if sv, ok := a.Storage[key]; ok {
		return sv.Current
	}
	return types.Hash{}
}

// storageSlot returns the slot for key, creating it Cold with
// current == original if this is the first time it's seen this transaction.
func (a *Account) storageSlot(key types.Hash) *StorageValue {
	sv, ok := a.Storage[key]
	if !ok {
		sv = &StorageValue{}
		a.Storage[key] = sv
	}
	return sv
}
