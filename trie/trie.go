// Package trie computes Merkle-Patricia-Trie root hashes over in-memory
// key-value pairs: keys become hex-nibble paths, values are stored at the
// leaves, and the root is Keccak-256 over the RLP-encoded node graph.
package trie

import (
	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/crypto"
)

// emptyRoot is the root of a trie with no entries: keccak256(rlp("")).
var emptyRoot = crypto.Keccak256Hash([]byte{0x80})

// Trie accumulates key-value pairs and produces their root hash. It is
// insert-only: build it with Put, read the root with Hash, then discard
// it. There is no node database, deletion or proof machinery; every root
// a transition needs is computed from scratch over a known entry set.
type Trie struct {
	root node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{}
}

// Put stores value (already RLP-encoded by the caller) under key.
// Inserting the same key again overwrites the previous value.
func (t *Trie) Put(key, value []byte) {
	t.root = insert(t.root, toNibbles(key), value)
}

// Hash returns the Keccak-256 hash of the root node's RLP encoding, or the
// empty-trie root when nothing was inserted. The root is always hashed,
// never inlined, whatever its encoded size.
func (t *Trie) Hash() types.Hash {
	if t.root == nil {
		return emptyRoot
	}
	return crypto.Keccak256Hash(t.root.encode())
}

// insert walks down the trie along path, splitting leafs and extensions at
// the point of divergence and fanning out through branches, and hangs the
// value at the residual path.
func insert(n node, path []byte, value []byte) node {
	switch n := n.(type) {
	case nil:
		return &leafNode{path: path, value: value}

	case *leafNode:
		common := commonPrefixLen(path, n.path)
		if common == len(path) && common == len(n.path) {
			n.value = value
			return n
		}
		br := &branchNode{}
		br.attach(n.path[common:], n.value)
		br.attach(path[common:], value)
		return wrapPrefix(path[:common], br)

	case *extensionNode:
		common := commonPrefixLen(path, n.path)
		if common == len(n.path) {
			n.child = insert(n.child, path[common:], value)
			return n
		}
		br := &branchNode{}
		tail := n.path[common:]
		if len(tail) == 1 {
			br.children[tail[0]] = n.child
		} else {
			br.children[tail[0]] = &extensionNode{path: tail[1:], child: n.child}
		}
		br.attach(path[common:], value)
		return wrapPrefix(path[:common], br)

	case *branchNode:
		if len(path) == 0 {
			n.value = value
			return n
		}
		n.children[path[0]] = insert(n.children[path[0]], path[1:], value)
		return n

	default:
		return n
	}
}

// attach hangs a key tail and its value off the branch: in the value slot
// when the tail is exhausted, as a leaf child otherwise.
func (b *branchNode) attach(tail []byte, value []byte) {
	if len(tail) == 0 {
		b.value = value
		return
	}
	b.children[tail[0]] = &leafNode{path: tail[1:], value: value}
}

// wrapPrefix puts the shared nibble prefix back above a split point.
func wrapPrefix(prefix []byte, n node) node {
	if len(prefix) == 0 {
		return n
	}
	return &extensionNode{path: prefix, child: n}
}
