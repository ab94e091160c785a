package state

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func TestTouchCreatesErasableEmptyAccount(t *testing.T) {
	s := New()
	a := s.Touch(addr(1))
	if !a.Erasable {
		t.Fatal("freshly touched account should be erasable")
	}
	if !a.IsEmpty() {
		t.Fatal("freshly touched account should be empty")
	}
}

func TestSnapshotRevertRestoresBalanceAndStorage(t *testing.T) {
	s := New()
	a1 := addr(1)
	s.Touch(a1)
	s.SetBalance(a1, uint256.NewInt(100))
	key := types.HexToHash("01")
	s.SetStorage(a1, key, types.HexToHash("ff"))

	snap := s.Snapshot()
	s.SetBalance(a1, uint256.NewInt(999))
	s.SetStorage(a1, key, types.HexToHash("00"))
	s.Destruct(a1)

	s.Revert(snap)

	if got := s.Get(a1).Balance; got.Uint64() != 100 {
		t.Fatalf("balance after revert = %v, want 100", got)
	}
	if got := s.GetStorage(a1, key); got != types.HexToHash("ff") {
		t.Fatalf("storage after revert = %x, want 0xff", got)
	}
	if s.Get(a1).Destructed {
		t.Fatal("destructed flag should be reverted")
	}
}

func TestAccessAccountWarmsOnce(t *testing.T) {
	s := New()
	a1 := addr(2)
	s.Touch(a1)
	if got := s.AccessAccount(a1); got != Cold {
		t.Fatalf("first access = %v, want Cold", got)
	}
	if got := s.AccessAccount(a1); got != Warm {
		t.Fatalf("second access = %v, want Warm", got)
	}
}

func TestReapDestructedAndErasableEmpty(t *testing.T) {
	s := New()
	destructed := addr(3)
	s.Touch(destructed)
	s.SetBalance(destructed, uint256.NewInt(5))
	s.Destruct(destructed)

	erasableEmpty := addr(4)
	s.Touch(erasableEmpty)

	kept := addr(5)
	s.Touch(kept)
	s.SetBalance(kept, uint256.NewInt(1))

	s.ReapDestructed()
	if _, ok := s.Find(destructed); ok {
		t.Fatal("destructed account should be removed")
	}

	s.ReapErasableEmpty()
	if _, ok := s.Find(erasableEmpty); ok {
		t.Fatal("erasable empty account should be removed")
	}
	if _, ok := s.Find(kept); !ok {
		t.Fatal("non-empty account should survive reaping")
	}
}

func TestResetTransientClearsLifecycleFlags(t *testing.T) {
	s := New()
	a1 := addr(6)
	s.Touch(a1)
	s.SetBalance(a1, uint256.NewInt(1))
	s.AccessAccount(a1)
	s.Destruct(a1)

	s.ResetTransient()

	a := s.Get(a1)
	if a.Destructed || a.Erasable || a.AccessStatus != Cold {
		t.Fatalf("lifecycle flags not reset: %+v", a)
	}
}

func TestCreateAccountPreservesBalanceAndWarmth(t *testing.T) {
	s := New()
	a1 := addr(7)
	s.Touch(a1)
	s.SetBalance(a1, uint256.NewInt(42))
	s.AccessAccount(a1)
	key := types.Hash{1}
	s.SetStorage(a1, key, types.Hash{9})
	s.AccessStorage(a1, key)

	a := s.CreateAccount(a1)
	if a.Nonce != 1 || !a.Erasable {
		t.Fatalf("created account nonce/erasable = %d/%v, want 1/true", a.Nonce, a.Erasable)
	}
	if got := a.Balance.Uint64(); got != 42 {
		t.Fatalf("balance = %d, want 42 preserved", got)
	}
	if a.AccessStatus != Warm {
		t.Fatal("account warmth should survive re-creation")
	}
	sv, ok := a.Storage[key]
	if !ok || sv.AccessStatus != Warm {
		t.Fatal("storage slot access status should survive re-creation")
	}
	if !sv.Current.IsZero() || !sv.Original.IsZero() {
		t.Fatalf("storage value not cleared: %+v", sv)
	}
}

func TestCreateAccountRevertRestoresPrevious(t *testing.T) {
	s := New()
	a1 := addr(8)
	s.Touch(a1)
	s.SetBalance(a1, uint256.NewInt(5))

	snap := s.Snapshot()
	s.CreateAccount(a1)
	s.SetCode(a1, []byte{0x00})
	s.Revert(snap)

	a := s.Get(a1)
	if a.Nonce != 0 || len(a.Code) != 0 || a.Balance.Uint64() != 5 {
		t.Fatalf("account not restored after revert: %+v", a)
	}
}
