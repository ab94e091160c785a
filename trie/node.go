package trie

import (
	"github.com/rgeraldes24/evmone/crypto"
	"github.com/rgeraldes24/evmone/rlp"
)

// The three node kinds of the trie. Paths are nibble sequences (one byte
// per nibble, values 0x0-0xf); whether a path terminates at a value is
// carried by the node kind itself, not by a sentinel nibble in the path.
type node interface {
	encode() []byte
}

// leafNode terminates a key, carrying the remaining nibble path and the
// RLP-encoded value stored under it.
type leafNode struct {
	path  []byte
	value []byte
}

// extensionNode shares a common nibble prefix with a single subtree.
type extensionNode struct {
	path  []byte
	child node
}

// branchNode fans out by the next nibble. value holds the entry for a key
// ending exactly here, or nil.
type branchNode struct {
	children [16]node
	value    []byte
}

// packPath packs a nibble path into its hex-prefix form: a flag nibble
// 2*leaf + odd, then two nibbles per byte. An odd-length path folds its
// first nibble into the low half of the flag byte.
func packPath(path []byte, leaf bool) []byte {
	flag := byte(0)
	if leaf {
		flag = 2
	}
	buf := make([]byte, 0, len(path)/2+1)
	if len(path)%2 == 1 {
		buf = append(buf, (flag|1)<<4|path[0])
		path = path[1:]
	} else {
		buf = append(buf, flag<<4)
	}
	for i := 0; i < len(path); i += 2 {
		buf = append(buf, path[i]<<4|path[i+1])
	}
	return buf
}

// toNibbles expands a byte key into its nibble path, high nibble first.
func toNibbles(key []byte) []byte {
	path := make([]byte, 2*len(key))
	for i, b := range key {
		path[2*i] = b >> 4
		path[2*i+1] = b & 0x0f
	}
	return path
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// encodeBytes RLP-encodes a byte string. Byte strings always encode, so a
// failure here is a bug in the codec, not an input problem.
func encodeBytes(b []byte) []byte {
	enc, err := rlp.EncodeToBytes(b)
	if err != nil {
		panic("trie: " + err.Error())
	}
	return enc
}

func (n *leafNode) encode() []byte {
	payload := encodeBytes(packPath(n.path, true))
	payload = append(payload, encodeBytes(n.value)...)
	return rlp.WrapList(payload)
}

func (n *extensionNode) encode() []byte {
	payload := encodeBytes(packPath(n.path, false))
	payload = append(payload, childRef(n.child)...)
	return rlp.WrapList(payload)
}

func (n *branchNode) encode() []byte {
	var payload []byte
	for _, child := range n.children {
		if child == nil {
			payload = append(payload, 0x80)
		} else {
			payload = append(payload, childRef(child)...)
		}
	}
	payload = append(payload, encodeBytes(n.value)...)
	return rlp.WrapList(payload)
}

// childRef is a child's slot in its parent's encoding: the child's own RLP
// encoding when it is under 32 bytes, keccak256 of that encoding otherwise.
// The threshold applies to the node encoding, not to the value inside it.
func childRef(n node) []byte {
	enc := n.encode()
	if len(enc) < 32 {
		return enc
	}
	return encodeBytes(crypto.Keccak256(enc))
}
