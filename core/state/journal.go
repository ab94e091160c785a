package state

import (
	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

// journalEntry is one reversible edit. Entries are replayed in reverse
// order back to a checkpoint on revert.
type journalEntry interface {
	revert(s *State)
}

// journal is a flat edit log with named checkpoints keyed by the
// call-frame checkpoint id the Host constructs at each call.
type journal struct {
	entries   []journalEntry
	snapshots map[int]int
	nextID    int
}

func newJournal() *journal {
	return &journal{snapshots: make(map[int]int)}
}

func (j *journal) append(e journalEntry) {
	j.entries = append(j.entries, e)
}

func (j *journal) snapshot() int {
	id := j.nextID
	j.nextID++
	j.snapshots[id] = len(j.entries)
	return id
}

func (j *journal) revertToSnapshot(id int, s *State) {
	idx, ok := j.snapshots[id]
	if !ok {
		return
	}
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:idx]
	for sid := range j.snapshots {
		if sid >= id {
			delete(j.snapshots, sid)
		}
	}
}

type createAccountChange struct {
	addr types.Address
	prev *Account // nil if the account didn't exist before
}

func (ch createAccountChange) revert(s *State) {
	if ch.prev == nil {
		delete(s.accounts, ch.addr)
	} else {
		s.accounts[ch.addr] = ch.prev
	}
}

type balanceChange struct {
	addr types.Address
	prev *uint256.Int
}

func (ch balanceChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.Balance = ch.prev
	}
}

type nonceChange struct {
	addr types.Address
	prev uint64
}

func (ch nonceChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.Nonce = ch.prev
	}
}

type codeChange struct {
	addr types.Address
	prev []byte
}

func (ch codeChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.Code = ch.prev
	}
}

type storageChange struct {
	addr types.Address
	key  types.Hash
	prev StorageValue
}

func (ch storageChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		sv := a.storageSlot(ch.key)
		*sv = ch.prev
	}
}

type destructedChange struct {
	addr types.Address
	prev bool
}

func (ch destructedChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.Destructed = ch.prev
	}
}

type erasableChange struct {
	addr types.Address
	prev bool
}

func (ch erasableChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.Erasable = ch.prev
	}
}

type accountAccessChange struct {
	addr types.Address
	prev AccessStatus
}

func (ch accountAccessChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.AccessStatus = ch.prev
	}
}

type storageAccessChange struct {
	addr types.Address
	key  types.Hash
	prev AccessStatus
}

func (ch storageAccessChange) revert(s *State) {
	if a, ok := s.accounts[ch.addr]; ok {
		a.storageSlot(ch.key).AccessStatus = ch.prev
	}
}

type logChange struct {
	prevLen int
}

func (ch logChange) revert(s *State) {
	s.logs = s.logs[:ch.prevLen]
}
