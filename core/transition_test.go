package core

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/state"
	"github.com/rgeraldes24/evmone/core/types"
	vmpkg "github.com/rgeraldes24/evmone/core/vm"
)

func addr(b byte) types.Address {
	var a types.Address
	a[len(a)-1] = b
	return a
}

type noHashes struct{}

func (noHashes) BlockHash(int64) types.Hash { return types.Hash{} }

// stubVM consumes a fixed amount of gas and always succeeds with no output,
// enough to exercise Transition's accounting without an interpreter.
type stubVM struct{ gasUsed int64 }

func (v stubVM) Execute(h *vmpkg.Host, ctx vmpkg.TxContext, rev vmpkg.Revision, msg vmpkg.Message, code []byte) (vmpkg.Result, error) {
	return vmpkg.Result{StatusCode: vmpkg.StatusSuccess, GasLeft: msg.Gas - v.gasUsed}, nil
}

func testBlock() BlockInfo {
	return BlockInfo{
		Number:    1,
		Timestamp: 1000,
		GasLimit:  30_000_000,
		BaseFee:   uint256.NewInt(1),
		Coinbase:  addr(0xc0),
	}
}

func testTx(sender, to types.Address) *types.Transaction {
	return &types.Transaction{
		Kind:                types.TxKindEIP1559,
		ChainID:             uint256.NewInt(1),
		MaxPriorityGasPrice: uint256.NewInt(1),
		MaxGasPrice:         uint256.NewInt(10),
		GasLimit:            100000,
		To:                  &to,
		Value:               uint256.NewInt(0),
		Sender:              sender,
	}
}

func TestTransitionSuccessChargesGasAndCreditsCoinbase(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(100_000_000))
	s.Touch(to)

	tx := testTx(sender, to)
	block := testBlock()

	receipt, err := Transition(s, block, tx, vmpkg.Cancun, stubVM{gasUsed: 30000}, noHashes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.Status.Succeeded() {
		t.Fatalf("status = %v, want success", receipt.Status)
	}
	if receipt.GasUsed == 0 {
		t.Fatal("expected non-zero gas used")
	}
	coinbaseBalance := s.Get(block.Coinbase).Balance
	if coinbaseBalance.IsZero() {
		t.Fatal("coinbase should have been credited priority fee")
	}
}

func TestTransitionValidationOrderTipGtFeeCap(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(100_000_000))

	tx := testTx(sender, to)
	tx.MaxPriorityGasPrice = uint256.NewInt(20) // > MaxGasPrice(10)

	_, err := Transition(s, testBlock(), tx, vmpkg.Cancun, stubVM{}, noHashes{})
	verr, ok := err.(*ValidationError)
	if !ok || verr.Code != ErrTipGtFeeCap {
		t.Fatalf("err = %v, want ErrTipGtFeeCap", err)
	}
}

func TestTransitionValidationUnsupportedTxKind(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(100_000_000))

	tx := testTx(sender, to)
	tx.Kind = types.TxKindLegacy

	_, err := Transition(s, testBlock(), tx, vmpkg.Cancun, stubVM{}, noHashes{})
	verr, ok := err.(*ValidationError)
	if !ok || verr.Code != ErrUnsupportedTxKind {
		t.Fatalf("err = %v, want ErrUnsupportedTxKind", err)
	}
}

func TestTransitionValidationInsufficientFunds(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(1)) // far too little

	tx := testTx(sender, to)

	_, err := Transition(s, testBlock(), tx, vmpkg.Cancun, stubVM{}, noHashes{})
	verr, ok := err.(*ValidationError)
	if !ok || verr.Code != ErrInsufficientFunds {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestTransitionDoesNotMutateStateOnValidationFailure(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(1))

	tx := testTx(sender, to)
	before := new(uint256.Int).Set(s.Get(sender).Balance)

	_, err := Transition(s, testBlock(), tx, vmpkg.Cancun, stubVM{}, noHashes{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !s.Get(sender).Balance.Eq(before) {
		t.Fatal("sender balance changed despite validation failure")
	}
}

func TestTransitionWarmsAccessListBeforeExecution(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	accessAddr := addr(3)
	key1, key2 := types.Hash{1}, types.Hash{2}
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(100_000_000))
	s.Touch(to)

	tx := testTx(sender, to)
	tx.AccessList = []types.AccessListEntry{
		{Address: accessAddr, StorageKeys: []types.Hash{key1, key2}},
	}

	var observedSender, observedAccess state.AccessStatus
	var observedKey1 state.AccessStatus
	vm := observingVM{before: func(h *vmpkg.Host) {
		observedSender = h.AccessAccount(sender)
		observedAccess = h.AccessAccount(accessAddr)
		observedKey1 = h.AccessStorage(accessAddr, key1)
	}}

	_, err := Transition(s, testBlock(), tx, vmpkg.Cancun, vm, noHashes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if observedSender != state.Warm {
		t.Fatalf("sender access status = %v, want Warm", observedSender)
	}
	if observedAccess != state.Warm {
		t.Fatalf("access-list address status = %v, want Warm", observedAccess)
	}
	if observedKey1 != state.Warm {
		t.Fatalf("access-list storage key status = %v, want Warm", observedKey1)
	}
}

// observingVM calls before(host) once, from inside Execute, to observe the
// warm/cold state the Host presents before any opcode would run, then
// succeeds trivially.
type observingVM struct {
	before func(h *vmpkg.Host)
}

func (v observingVM) Execute(h *vmpkg.Host, ctx vmpkg.TxContext, rev vmpkg.Revision, msg vmpkg.Message, code []byte) (vmpkg.Result, error) {
	if v.before != nil {
		v.before(h)
	}
	return vmpkg.Result{StatusCode: vmpkg.StatusSuccess, GasLeft: msg.Gas}, nil
}

func TestFinalizeCreditsWithdrawals(t *testing.T) {
	s := state.New()
	recipient := addr(9)

	Finalize(s, []*types.Withdrawal{
		{Index: 0, ValidatorIndex: 1, Recipient: recipient, Amount: 5}, // 5 Gwei
	})

	got := s.Get(recipient).Balance.Uint64()
	if got != 5_000_000_000 {
		t.Fatalf("withdrawal credit = %d, want 5e9 wei", got)
	}
}

func TestTransitionClearsStaleTransientFlags(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetBalance(sender, uint256.NewInt(100_000_000))
	s.Touch(to)

	stale := addr(7)
	s.Touch(stale)
	s.SetBalance(stale, uint256.NewInt(1))
	s.Destruct(stale) // leftover from a previous transaction against this pre-state

	_, err := Transition(s, testBlock(), testTx(sender, to), vmpkg.Cancun, stubVM{gasUsed: 1000}, noHashes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Find(stale); !ok {
		t.Fatal("stale destructed flag leaked into the transition and reaped the account")
	}
}

func TestTransitionBumpsSenderNonce(t *testing.T) {
	s := state.New()
	sender, to := addr(1), addr(2)
	s.Touch(sender)
	s.SetNonce(sender, 9)
	s.SetBalance(sender, uint256.NewInt(100_000_000))
	s.Touch(to)

	tx := testTx(sender, to)
	tx.Nonce = 9

	if _, err := Transition(s, testBlock(), tx, vmpkg.Cancun, stubVM{gasUsed: 1000}, noHashes{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Get(sender).Nonce; got != 10 {
		t.Fatalf("sender nonce after transition = %d, want 10", got)
	}
}
