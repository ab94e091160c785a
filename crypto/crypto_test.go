package crypto

import (
	"testing"

	"github.com/rgeraldes24/evmone/core/types"
)

func TestKeccak256KnownVectors(t *testing.T) {
	if got := Keccak256Hash(nil); got != types.EmptyCodeHash {
		t.Fatalf("keccak256(\"\") = %s, want %s", got, types.EmptyCodeHash)
	}
	if got := Keccak256Hash([]byte{0x80}); got != types.EmptyRootHash {
		t.Fatalf("keccak256(0x80) = %s, want %s", got, types.EmptyRootHash)
	}
}

func TestKeccak256ConcatenatesArguments(t *testing.T) {
	split := Keccak256Hash([]byte("ab"), []byte("cd"))
	whole := Keccak256Hash([]byte("abcd"))
	if split != whole {
		t.Fatalf("split = %s, whole = %s", split, whole)
	}
}

func TestCreateAddress2KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		sender   types.Address
		salt     types.Hash
		initCode []byte
		want     types.Address
	}{
		{
			name:     "zero sender, zero salt, empty init code",
			sender:   types.Address{},
			salt:     types.Hash{},
			initCode: nil,
			want:     types.HexToAddress("0xE33C0C7F7df4809055C3ebA6c09CFe4BaF1BD9e0"),
		},
		{
			name:     "zero sender, zero salt, single zero byte",
			sender:   types.Address{},
			salt:     types.Hash{},
			initCode: []byte{0x00},
			want:     types.HexToAddress("0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38"),
		},
		{
			name:     "deadbeef sender, zero salt, single zero byte",
			sender:   types.HexToAddress("0xdeadbeef00000000000000000000000000000000"),
			salt:     types.Hash{},
			initCode: []byte{0x00},
			want:     types.HexToAddress("0xB928f69Bb1D91Cd65274e3c79d8986362984fDA3"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CreateAddress2(tc.sender, tc.salt, tc.initCode)
			if got != tc.want {
				t.Fatalf("CreateAddress2 = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCreateAddressChangesWithNonce(t *testing.T) {
	sender := types.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")
	a0 := CreateAddress(sender, 0)
	a1 := CreateAddress(sender, 1)
	if a0 == a1 {
		t.Fatal("different nonces must derive different addresses")
	}
	if a0 != CreateAddress(sender, 0) {
		t.Fatal("address derivation must be deterministic")
	}
}
