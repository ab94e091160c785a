// Package crypto provides the hashing and address-derivation primitives
// shared by the trie, state and transition packages. Signature
// verification and elliptic-curve arithmetic are out of scope: callers
// receive already-verified public keys from outside this module.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/rlp"
)

// Keccak256 calculates the Keccak-256 hash of the concatenation of its
// arguments.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// CreateAddress computes the address of a contract created with CREATE:
// keccak256(rlp([sender, nonce]))[12:].
func CreateAddress(sender types.Address, nonce uint64) types.Address {
	enc, err := rlp.EncodeTuple(sender[:], nonce)
	if err != nil {
		panic(err) // sender/nonce are always RLP-encodable
	}
	return types.BytesToAddress(Keccak256(enc)[12:])
}

// CreateAddress2 computes the address of a contract created with CREATE2:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initCode))[12:].
func CreateAddress2(sender types.Address, salt [32]byte, initCode []byte) types.Address {
	codeHash := Keccak256(initCode)
	data := make([]byte, 0, 1+20+32+32)
	data = append(data, 0xff)
	data = append(data, sender[:]...)
	data = append(data, salt[:]...)
	data = append(data, codeHash...)
	return types.BytesToAddress(Keccak256(data)[12:])
}
