// Package types defines the data model shared across the state-transition
// core: addresses, hashes, the bloom filter, accounts, transactions, logs,
// receipts and withdrawals.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength    = 32
	AddressLength = 20
	BloomLength   = 256
)

// Hash represents a 32-byte Keccak-256 hash.
type Hash [HashLength]byte

// Address represents a 20-byte account address.
type Address [AddressLength]byte

// BytesToHash converts b to a Hash, left-padding (or right-truncating from
// the front) to HashLength bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash decodes a (possibly 0x-prefixed) hex string into a Hash.
func HexToHash(s string) Hash { return BytesToHash(fromHex(s)) }

func (h Hash) Bytes() []byte { return h[:] }
func (h Hash) Hex() string   { return fmt.Sprintf("0x%x", h[:]) }
func (h Hash) String() string { return h.Hex() }
func (h Hash) IsZero() bool  { return h == Hash{} }

// SetBytes sets h from b, left-padding with zero bytes when b is shorter
// than HashLength and keeping only the trailing HashLength bytes otherwise.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// BytesToAddress converts b to an Address, left-padding as needed.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress decodes a (possibly 0x-prefixed) hex string into an Address.
func HexToAddress(s string) Address { return BytesToAddress(fromHex(s)) }

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) Hex() string    { return fmt.Sprintf("0x%x", a[:]) }
func (a Address) String() string { return a.Hex() }
func (a Address) IsZero() bool   { return a == Address{} }

func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// MarshalJSON encodes h as a 0x-prefixed hex string, for fixture output and
// round-tripping through the CLI's JSON receipt.
func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", h.Hex())), nil
}

// UnmarshalJSON decodes a 0x-prefixed hex string into h, for fixture input.
func (h *Hash) UnmarshalJSON(data []byte) error {
	s, err := unquoteHex(data)
	if err != nil {
		return err
	}
	h.SetBytes(fromHex(s))
	return nil
}

// MarshalJSON encodes a as a 0x-prefixed hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.Hex())), nil
}

// UnmarshalJSON decodes a 0x-prefixed hex string into a.
func (a *Address) UnmarshalJSON(data []byte) error {
	s, err := unquoteHex(data)
	if err != nil {
		return err
	}
	a.SetBytes(fromHex(s))
	return nil
}

func unquoteHex(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("types: expected quoted hex string, got %q", data)
	}
	return string(data[1 : len(data)-1]), nil
}

// EmptyRootHash is keccak256(rlp("")), the root of an empty MPT.
var EmptyRootHash = HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

// EmptyCodeHash is keccak256 of the empty byte string.
var EmptyCodeHash = HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
