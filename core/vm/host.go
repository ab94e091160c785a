package vm

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/state"
	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/crypto"
	"github.com/rgeraldes24/evmone/metrics"
	"github.com/rgeraldes24/evmone/zlog"
)

// MaxCallDepth is the protocol's recursive call-depth cap.
const MaxCallDepth = 1024

var hostLog = zlog.Default().Module("vm")

var metricCreateRejected = metrics.DefaultRegistry.Counter("vm_create_rejected_total")

const maxCodeSize = 0x6000 // EIP-170

var (
	errInsufficientBalance = errors.New("vm: insufficient balance for value transfer")
	errDepthExceeded       = errors.New("vm: call depth exceeded")
	errNonceOverflow       = errors.New("vm: sender nonce overflow")
	errAddressCollision    = errors.New("vm: create address collision")
)

// BlockHashes resolves a historical block number to its hash, letting the
// Host serve BLOCKHASH without owning a chain. Callers of Host.Call supply
// one when constructing the Host.
type BlockHashes interface {
	BlockHash(number int64) types.Hash
}

// Host is the VM's view of the world: it owns the State and the
// in-progress log buffer, and mediates every call/create the VM issues via
// Call. It never executes opcodes itself.
type Host struct {
	state  *state.State
	vm     VM
	rev    Revision
	ctx    TxContext
	hashes BlockHashes
}

// NewHost builds a Host bound to s, dispatching nested call/create
// execution to vm.
func NewHost(s *state.State, vmImpl VM, rev Revision, ctx TxContext, hashes BlockHashes) *Host {
	return &Host{state: s, vm: vmImpl, rev: rev, ctx: ctx, hashes: hashes}
}

// AccountExists reports whether addr has ever been touched in this state.
func (h *Host) AccountExists(addr types.Address) bool {
	_, ok := h.state.Find(addr)
	return ok
}

// GetStorage returns addr's current value at key, or zero for an absent
// slot or account.
func (h *Host) GetStorage(addr types.Address, key types.Hash) types.Hash {
	a, ok := h.state.Find(addr)
	if !ok {
		return types.Hash{}
	}
	return a.GetStorage(key)
}

// SetStorage writes value to addr's slot at key and returns the nine-way
// EIP-2200/3529 classification of the write. It does not itself charge gas
// or refunds; the caller uses the returned status to do so.
func (h *Host) SetStorage(addr types.Address, key types.Hash, value types.Hash) StorageStatus {
	a := h.state.Touch(addr)
	sv, ok := a.Storage[key]
	var original, current [32]byte
	if ok {
		original = sv.Original
		current = sv.Current
	}
	status := computeStorageStatus(original, current, value)
	h.state.SetStorage(addr, key, value)
	return status
}

// GetBalance returns addr's balance, or zero if the account does not exist.
func (h *Host) GetBalance(addr types.Address) *uint256.Int {
	a, ok := h.state.Find(addr)
	if !ok {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(a.Balance)
}

// GetCodeSize returns the length of addr's code.
func (h *Host) GetCodeSize(addr types.Address) int {
	a, ok := h.state.Find(addr)
	if !ok {
		return 0
	}
	return len(a.Code)
}

// GetCodeHash returns keccak256(addr's code), or the empty-code hash for a
// codeless or absent account.
func (h *Host) GetCodeHash(addr types.Address) types.Hash {
	a, ok := h.state.Find(addr)
	if !ok || len(a.Code) == 0 {
		return types.EmptyCodeHash
	}
	return crypto.Keccak256Hash(a.Code)
}

// CopyCode returns addr's code, or nil if it does not exist.
func (h *Host) CopyCode(addr types.Address) []byte {
	a, ok := h.state.Find(addr)
	if !ok {
		return nil
	}
	return a.Code
}

// EmitLog appends a log entry to the current transaction's log buffer.
func (h *Host) EmitLog(addr types.Address, data []byte, topics []types.Hash) {
	h.state.AppendLog(&types.Log{Address: addr, Topics: topics, Data: data})
}

// AccessAccount returns addr's prior EIP-2929 access status and upgrades it
// to Warm.
func (h *Host) AccessAccount(addr types.Address) AccessStatus {
	return h.state.AccessAccount(addr)
}

// AccessStorage returns addr's prior access status at key and upgrades it
// to Warm.
func (h *Host) AccessStorage(addr types.Address, key types.Hash) AccessStatus {
	return h.state.AccessStorage(addr, key)
}

// GetTxContext returns the transaction/block context visible to CALLVALUE,
// TIMESTAMP, COINBASE and the other context opcodes.
func (h *Host) GetTxContext() TxContext {
	return h.ctx
}

// GetBlockHash resolves a historical block number to its hash.
func (h *Host) GetBlockHash(number int64) types.Hash {
	if h.hashes == nil {
		return types.Hash{}
	}
	return h.hashes.BlockHash(number)
}

// TakeLogs returns and clears the accumulated log buffer.
func (h *Host) TakeLogs() []*types.Log {
	return h.state.TakeLogs()
}

// Call dispatches CALL, DELEGATECALL, STATICCALL, CREATE or CREATE2
// per msg.Kind, implementing the full snapshot/value-transfer/depth/nonce/
// address-derivation/post-processing protocol.
func (h *Host) Call(msg Message) (Result, error) {
	prepared, err := h.prepareMessage(msg)
	if err != nil {
		return Result{StatusCode: StatusRevert, GasLeft: msg.Gas}, err
	}

	snapshot := h.state.Snapshot()

	switch prepared.Kind {
	case Create, Create2:
		return h.callCreate(prepared, snapshot)
	default:
		return h.callExisting(prepared, snapshot)
	}
}

// prepareMessage performs the sender-side bookkeeping that would otherwise
// live in the interpreter: the call-depth cap, the sender nonce bump, and
// the derivation of the new contract address for CREATE/CREATE2. The
// transaction itself consumes one sender nonce, so the bump applies at
// depth 0 for every call kind, and at any depth for creates. It runs
// before the frame's snapshot is taken: a later revert of the frame does
// not undo the nonce bump.
func (h *Host) prepareMessage(msg Message) (Message, error) {
	if msg.Depth > MaxCallDepth {
		return msg, errDepthExceeded
	}

	if msg.Depth == 0 || msg.Kind == Create || msg.Kind == Create2 {
		sender := h.state.Get(msg.Sender)
		if sender.Nonce == state.NonceMax {
			return msg, errNonceOverflow
		}
		senderNonce := sender.Nonce
		h.state.SetNonce(msg.Sender, senderNonce+1)

		switch msg.Kind {
		case Create:
			msg.Recipient = crypto.CreateAddress(msg.Sender, senderNonce)
			msg.CodeAddress = msg.Recipient
		case Create2:
			msg.Recipient = crypto.CreateAddress2(msg.Sender, msg.Salt, msg.Input)
			msg.CodeAddress = msg.Recipient
		}
	}

	return msg, nil
}

func (h *Host) callExisting(msg Message, snapshot int) (Result, error) {
	if msg.Kind == Call {
		h.state.Touch(msg.Recipient)
	}
	if msg.Kind == Call || msg.Kind == CallCode {
		if !msg.Value.IsZero() {
			sender := h.state.Get(msg.Sender)
			if sender.Balance.Cmp(msg.Value) < 0 {
				h.state.Revert(snapshot)
				return Result{StatusCode: StatusRevert, GasLeft: msg.Gas}, errInsufficientBalance
			}
			h.state.SubBalance(msg.Sender, msg.Value)
			h.state.AddBalance(msg.Recipient, msg.Value)
		}
	}

	code := h.CopyCode(msg.CodeAddress)
	result, err := h.vm.Execute(h, h.ctx, h.rev, msg, code)
	if err != nil {
		h.state.Revert(snapshot)
		return result, err
	}

	switch result.StatusCode {
	case StatusSuccess:
		return result, nil
	case StatusRevert:
		h.state.Revert(snapshot)
		result.GasRefund = 0
		return result, nil
	default:
		// Revert keeps gas_left; every other non-Success outcome forfeits it.
		h.state.Revert(snapshot)
		result.GasLeft = 0
		result.GasRefund = 0
		return result, nil
	}
}

func (h *Host) callCreate(msg Message, snapshot int) (Result, error) {
	newAddr := msg.Recipient

	if existing, ok := h.state.Find(newAddr); ok {
		if existing.Nonce != 0 || len(existing.Code) != 0 {
			h.state.Revert(snapshot)
			return Result{StatusCode: StatusRevert, GasLeft: msg.Gas}, errAddressCollision
		}
	}

	if !msg.Value.IsZero() {
		sender := h.state.Get(msg.Sender)
		if sender.Balance.Cmp(msg.Value) < 0 {
			h.state.Revert(snapshot)
			return Result{StatusCode: StatusRevert, GasLeft: msg.Gas}, errInsufficientBalance
		}
	}

	h.state.CreateAccount(newAddr)
	if !msg.Value.IsZero() {
		h.state.SubBalance(msg.Sender, msg.Value)
		h.state.AddBalance(newAddr, msg.Value)
	}

	result, err := h.vm.Execute(h, h.ctx, h.rev, msg, msg.Input)
	if err != nil {
		h.state.Revert(snapshot)
		return result, err
	}

	switch result.StatusCode {
	case StatusSuccess:
		code := result.Output
		if len(code) > 0 && code[0] == 0xef { // EIP-3541
			h.state.Revert(snapshot)
			metricCreateRejected.Inc()
			hostLog.Debug("create rejected: 0xEF-prefixed code", "address", newAddr)
			result.StatusCode = StatusRevert
			result.GasRefund = 0
			return result, nil
		}
		if len(code) > maxCodeSize {
			h.state.Revert(snapshot)
			metricCreateRejected.Inc()
			hostLog.Debug("create rejected: code size exceeds limit", "address", newAddr, "size", len(code))
			result.StatusCode = StatusRevert
			result.GasRefund = 0
			return result, nil
		}
		depositCost := int64(len(code)) * 200
		if result.GasLeft < depositCost {
			h.state.Revert(snapshot)
			metricCreateRejected.Inc()
			hostLog.Debug("create rejected: insufficient gas for code deposit", "address", newAddr)
			result.StatusCode = StatusRevert
			result.GasRefund = 0
			return result, nil
		}
		result.GasLeft -= depositCost
		h.state.SetCode(newAddr, code)
		result.CreateAddress = newAddr
		result.Output = nil
		return result, nil
	case StatusRevert:
		h.state.Revert(snapshot)
		result.GasRefund = 0
		return result, nil
	default:
		// Revert keeps gas_left; every other non-Success outcome forfeits it.
		h.state.Revert(snapshot)
		result.GasLeft = 0
		result.GasRefund = 0
		return result, nil
	}
}
