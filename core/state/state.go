package state

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

// State is the address-keyed account map exclusively owned by one
// in-flight transition. Insertion order is immaterial: hashing sorts by
// key via the trie (core/statehash), so State itself need not preserve or
// expose any ordering.
type State struct {
	accounts map[types.Address]*Account
	logs     []*types.Log
	journal  *journal
}

// New returns an empty state store.
func New() *State {
	return &State{
		accounts: make(map[types.Address]*Account),
		journal:  newJournal(),
	}
}

// Get returns the account at addr, which must already exist; a missing
// account is a malformed-pre-state programmer error, not a runtime one.
func (s *State) Get(addr types.Address) *Account {
	a, ok := s.accounts[addr]
	if !ok {
		panic(fmt.Sprintf("state: get of missing account %s", addr))
	}
	return a
}

// Find looks up addr without creating it.
func (s *State) Find(addr types.Address) (*Account, bool) {
	a, ok := s.accounts[addr]
	return a, ok
}

// Touch fetches or creates the account at addr. A newly created account is
// marked Erasable. An existing account is marked Erasable only while it
// remains empty in EIP-161 terms; touching a non-empty account does not
// clear an Erasable flag set elsewhere (e.g. by CREATE).
func (s *State) Touch(addr types.Address) *Account {
	a, ok := s.accounts[addr]
	if !ok {
		s.journal.append(createAccountChange{addr: addr, prev: nil})
		a = NewAccount()
		s.accounts[addr] = a
		a.Erasable = true
		return a
	}
	if a.IsEmpty() {
		if !a.Erasable {
			s.journal.append(erasableChange{addr: addr, prev: a.Erasable})
			a.Erasable = true
		}
	}
	return a
}

// CreateAccount installs the account CREATE/CREATE2 deploys into at addr:
// nonce 1, no code, Erasable set. The caller is responsible for having
// checked the collision rule (nonce != 0 or code non-empty) first. An
// account already at addr (a prefunded address, or one destructed earlier
// in the same transaction) keeps its balance, its Destructed flag and its
// warm/cold status, and its storage entries are zeroed while retaining
// their access status so access-list warming survives the re-creation.
func (s *State) CreateAccount(addr types.Address) *Account {
	prev, existed := s.accounts[addr]
	var prevCopy *Account
	if existed {
		prevCopy = prev
	}
	s.journal.append(createAccountChange{addr: addr, prev: prevCopy})
	a := NewAccount()
	a.Nonce = 1
	a.Erasable = true
	if existed {
		a.Balance.Set(prev.Balance)
		a.Destructed = prev.Destructed
		a.AccessStatus = prev.AccessStatus
		for key, sv := range prev.Storage {
			a.Storage[key] = &StorageValue{AccessStatus: sv.AccessStatus}
		}
	}
	s.accounts[addr] = a
	return a
}

// Accounts returns the live account map for bulk iteration (reaping,
// hashing). Callers must not mutate the returned map's structure directly;
// use the State's mutator methods so changes remain journaled.
func (s *State) Accounts() map[types.Address]*Account {
	return s.accounts
}

// Snapshot returns a checkpoint id that Revert can later roll back to.
func (s *State) Snapshot() int {
	return s.journal.snapshot()
}

// Revert undoes every mutation recorded since id.
func (s *State) Revert(id int) {
	s.journal.revertToSnapshot(id, s)
}

// SetBalance overwrites addr's balance, journaling the prior value.
func (s *State) SetBalance(addr types.Address, balance *uint256.Int) {
	a := s.Get(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.Balance})
	a.Balance = balance
}

// AddBalance credits addr's balance by amount.
func (s *State) AddBalance(addr types.Address, amount *uint256.Int) {
	a := s.Get(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.Balance})
	a.Balance = new(uint256.Int).Add(a.Balance, amount)
}

// SubBalance debits addr's balance by amount.
func (s *State) SubBalance(addr types.Address, amount *uint256.Int) {
	a := s.Get(addr)
	s.journal.append(balanceChange{addr: addr, prev: a.Balance})
	a.Balance = new(uint256.Int).Sub(a.Balance, amount)
}

// SetNonce overwrites addr's nonce, journaling the prior value.
func (s *State) SetNonce(addr types.Address, nonce uint64) {
	a := s.Get(addr)
	s.journal.append(nonceChange{addr: addr, prev: a.Nonce})
	a.Nonce = nonce
}

// SetCode installs addr's code, journaling the prior value.
func (s *State) SetCode(addr types.Address, code []byte) {
	a := s.Get(addr)
	s.journal.append(codeChange{addr: addr, prev: a.Code})
	a.Code = code
}

// GetStorage returns addr's value at key.
func (s *State) GetStorage(addr types.Address, key types.Hash) types.Hash {
	return s.Get(addr).GetStorage(key)
}

// SetStorage overwrites addr's slot at key, journaling the full prior
// StorageValue (current, original and access status together) so revert
// restores all three atomically.
func (s *State) SetStorage(addr types.Address, key types.Hash, value types.Hash) {
	a := s.Get(addr)
	sv := a.storageSlot(key)
	s.journal.append(storageChange{addr: addr, key: key, prev: *sv})
	sv.Current = value
}

// AccessAccount returns addr's prior access status and upgrades it to Warm.
func (s *State) AccessAccount(addr types.Address) AccessStatus {
	a := s.Get(addr)
	prev := a.AccessStatus
	if prev == Cold {
		s.journal.append(accountAccessChange{addr: addr, prev: prev})
		a.AccessStatus = Warm
	}
	return prev
}

// WarmAccount marks addr Warm without reporting the prior status,
// used for the pre-execution seeding pass (sender, recipient, coinbase,
// access-list addresses, precompiles).
func (s *State) WarmAccount(addr types.Address) {
	s.AccessAccount(addr)
}

// AccessStorage returns addr's prior access status at key and upgrades it
// to Warm.
func (s *State) AccessStorage(addr types.Address, key types.Hash) AccessStatus {
	a := s.Get(addr)
	sv := a.storageSlot(key)
	prev := sv.AccessStatus
	if prev == Cold {
		s.journal.append(storageAccessChange{addr: addr, key: key, prev: prev})
		sv.AccessStatus = Warm
	}
	return prev
}

// Destruct marks addr for unconditional removal at the end of the
// transition.
func (s *State) Destruct(addr types.Address) {
	a := s.Get(addr)
	s.journal.append(destructedChange{addr: addr, prev: a.Destructed})
	a.Destructed = true
}

// AppendLog records a log emitted during execution.
func (s *State) AppendLog(log *types.Log) {
	s.journal.append(logChange{prevLen: len(s.logs)})
	s.logs = append(s.logs, log)
}

// TakeLogs returns the logs collected so far and clears the buffer. The
// journal entries recorded against those logs remain valid no-ops after a
// later revert targets a snapshot taken before TakeLogs was called only if
// the caller never reverts past a receipt boundary; Transition calls this
// once, after execution has fully committed.
func (s *State) TakeLogs() []*types.Log {
	logs := s.logs
	s.logs = nil
	return logs
}

// ReapDestructed removes every account marked Destructed. Not journaled:
// called once per transaction, after execution has committed.
func (s *State) ReapDestructed() {
	for addr, a := range s.accounts {
		if a.Destructed {
			delete(s.accounts, addr)
		}
	}
}

// ReapErasableEmpty removes every account that is both Erasable and empty,
// the EIP-161 end-of-block reaping rule.
func (s *State) ReapErasableEmpty() {
	for addr, a := range s.accounts {
		if a.Erasable && a.IsEmpty() {
			delete(s.accounts, addr)
		}
	}
}

// ResetTransient clears the transaction-scoped Destructed/Erasable/
// AccessStatus flags on every account and storage slot, so a fresh
// transition never inherits lifecycle or warmth state from a previous one
// run against the same pre-state. Each slot's original value is re-based
// to its current value at the same time.
func (s *State) ResetTransient() {
	for _, a := range s.accounts {
		a.Destructed = false
		a.Erasable = false
		a.AccessStatus = Cold
		for _, sv := range a.Storage {
			sv.AccessStatus = Cold
			sv.Original = sv.Current
		}
	}
	s.logs = nil
	s.journal = newJournal()
}
