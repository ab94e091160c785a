// Package rlp implements Recursive Length Prefix encoding, the canonical
// serialization format used throughout account, transaction and receipt
// hashing.
package rlp

import "errors"

var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("rlp: expected string")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("rlp: expected list")

	// ErrCanonSize is returned when a single byte was wrapped in an unnecessary string prefix.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	// ErrEOL is returned when a list was not fully consumed before ListEnd.
	ErrEOL = errors.New("rlp: end of list")

	// ErrCanonInt is returned when an integer uses non-canonical encoding (leading zeros).
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrNonCanonicalSize is returned when a long-form size prefix encodes a short-form length.
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")

	// ErrUint64Range is returned when a decoded integer exceeds uint64 range.
	ErrUint64Range = errors.New("rlp: uint64 overflow")

	// ErrValueTooLarge is returned when a Go value has no RLP representation.
	ErrValueTooLarge = errors.New("rlp: unsupported type")
)
