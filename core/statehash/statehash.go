// Package statehash binds the trie (MPT) and rlp packages into the
// concrete hashing rules for accounts, storage, transactions and receipts.
// It is the only place that knows the exact key/value encodings the
// protocol hashes commit to.
package statehash

import (
	"github.com/rgeraldes24/evmone/core/state"
	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/crypto"
	"github.com/rgeraldes24/evmone/rlp"
	"github.com/rgeraldes24/evmone/trie"
)

// Accounts computes the state root over accounts: each (addr, acc) inserts
// key keccak256(addr), value rlp_tuple(nonce, balance, storageRoot,
// codeHash).
func Accounts(accounts map[types.Address]*state.Account) types.Hash {
	t := trie.New()
	for addr, acc := range accounts {
		storageRoot := Storage(acc.Storage)
		codeHash := types.EmptyCodeHash
		if len(acc.Code) > 0 {
			codeHash = crypto.Keccak256Hash(acc.Code)
		}
		enc, err := rlp.EncodeTuple(acc.Nonce, acc.Balance, storageRoot.Bytes(), codeHash.Bytes())
		if err != nil {
			panic(err) // account fields are always RLP-encodable
		}
		key := crypto.Keccak256(addr[:])
		t.Put(key, enc)
	}
	return t.Hash()
}

// Storage computes one account's storage root: for every non-zero current
// value, key keccak256(slot_key), value rlp_encode(rlp_trim(current)).
func Storage(storage map[types.Hash]*state.StorageValue) types.Hash {
	t := trie.New()
	for key, sv := range storage {
		if sv.Current.IsZero() {
			continue
		}
		trimmed := rlp.Trim(sv.Current.Bytes())
		enc, err := rlp.EncodeToBytes(trimmed)
		if err != nil {
			panic(err)
		}
		t.Put(crypto.Keccak256(key[:]), enc)
	}
	return t.Hash()
}

// txKindByte is the leading discriminant byte prepended to the
// transaction/receipt trie values, fixed at 0x02 (EIP-1559 typed
// envelope), the only wire shape this core hashes.
const txKindByte = 0x02

// Transactions computes the transactions root: key rlp_encode(index),
// value 0x02 ++ rlp_tuple(chain_id, nonce, max_priority_gas_price,
// max_gas_price, gas_limit, to_or_empty, value, data, access_list,
// public_key, signature).
func Transactions(txs []*types.Transaction) types.Hash {
	t := trie.New()
	for i, tx := range txs {
		var to []byte
		if tx.To != nil {
			to = tx.To.Bytes()
		}
		body, err := rlp.EncodeTuple(
			tx.ChainID, tx.Nonce, tx.MaxPriorityGasPrice, tx.MaxGasPrice,
			uint64(tx.GasLimit), to, tx.Value, tx.Data, tx.AccessList,
			tx.PublicKey, tx.Signature,
		)
		if err != nil {
			panic(err)
		}
		value := append([]byte{txKindByte}, body...)

		keyEnc, err := rlp.EncodeToBytes(uint64(i))
		if err != nil {
			panic(err)
		}
		t.Put(keyEnc, value)
	}
	return t.Hash()
}

// Receipts computes the receipts root: key rlp_encode(index), value
// 0x02 ++ rlp_tuple(status_success_bool, gas_used, bloom, logs).
func Receipts(receipts []*types.Receipt) types.Hash {
	t := trie.New()
	for i, r := range receipts {
		body, err := rlp.EncodeTuple(r.Status.Succeeded(), r.GasUsed, r.Bloom[:], r.Logs)
		if err != nil {
			panic(err)
		}
		value := append([]byte{txKindByte}, body...)

		keyEnc, err := rlp.EncodeToBytes(uint64(i))
		if err != nil {
			panic(err)
		}
		t.Put(keyEnc, value)
	}
	return t.Hash()
}
