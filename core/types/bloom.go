package types

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// BloomBitLength is the number of bits in a log bloom filter (2048).
const BloomBitLength = 8 * BloomLength

// Bloom is a 2048-bit filter over log addresses and topics. Bits are in
// big-endian order: bit 0 of the filter is the most significant bit of
// byte 0.
type Bloom [BloomLength]byte

func (b Bloom) Bytes() []byte { return b[:] }
func (b Bloom) Hex() string   { return fmt.Sprintf("0x%x", b[:]) }

// MarshalJSON encodes b as a 0x-prefixed hex string.
func (b Bloom) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", b.Hex())), nil
}

// itemSeed hashes one filter item; the first six bytes of the digest seed
// the three filter positions.
func itemSeed(item []byte) []byte {
	d := sha3.NewLegacyKeccak256()
	d.Write(item)
	return d.Sum(nil)
}

// Add sets the three bits item contributes: for each byte pair (0,1),
// (2,3), (4,5) of keccak256(item), take its low 11 bits as index idx and
// set filter bit 2047 - idx.
func (b *Bloom) Add(item []byte) {
	s := itemSeed(item)
	for i := 0; i <= 4; i += 2 {
		idx := (uint(s[i])<<8 | uint(s[i+1])) & (BloomBitLength - 1)
		pos := BloomBitLength - 1 - idx
		b[pos/8] |= 0x80 >> (pos % 8)
	}
}

// Contains reports whether all three of item's bits are set. False means
// item was definitely never added; true may be a false positive.
func (b *Bloom) Contains(item []byte) bool {
	s := itemSeed(item)
	for i := 0; i <= 4; i += 2 {
		idx := (uint(s[i])<<8 | uint(s[i+1])) & (BloomBitLength - 1)
		pos := BloomBitLength - 1 - idx
		if b[pos/8]&(0x80>>(pos%8)) == 0 {
			return false
		}
	}
	return true
}

// Or merges every bit of other into b.
func (b *Bloom) Or(other Bloom) {
	for i := range b {
		b[i] |= other[i]
	}
}

// LogsBloom computes the combined filter for a transaction's logs: each
// log contributes its address and every topic.
func LogsBloom(logs []*Log) Bloom {
	var bloom Bloom
	for _, l := range logs {
		bloom.Add(l.Address.Bytes())
		for _, topic := range l.Topics {
			bloom.Add(topic.Bytes())
		}
	}
	return bloom
}

// CreateBloom folds a block's receipt filters into one block-level filter.
func CreateBloom(receipts []*Receipt) Bloom {
	var bloom Bloom
	for _, r := range receipts {
		bloom.Or(r.Bloom)
	}
	return bloom
}
