package types

import "github.com/holiman/uint256"

// TxKind identifies the transaction envelope format. Only TxKindEIP1559 is
// executed by this core; the others are recognized so that validation can
// reject them explicitly rather than silently misinterpreting their fields.
type TxKind uint8

const (
	TxKindLegacy     TxKind = iota // pre-EIP-2718, not supported here
	TxKindAccessList               // EIP-2930, not supported here
	TxKindEIP1559                  // the only kind this core executes
)

func (k TxKind) String() string {
	switch k {
	case TxKindLegacy:
		return "legacy"
	case TxKindAccessList:
		return "access-list"
	case TxKindEIP1559:
		return "eip1559"
	default:
		return "unknown"
	}
}

// AccessListEntry is an EIP-2930 (address, storage-keys) pre-warming entry.
type AccessListEntry struct {
	Address     Address
	StorageKeys []Hash
}

// Transaction is the EIP-1559 transaction envelope this core executes.
// PublicKey and Signature carry post-quantum signature material: they are
// opaque bytes never interpreted by this package (see package pqsig for
// descriptive-only size checks; verification is a trusted external input).
type Transaction struct {
	Kind                TxKind
	ChainID             *uint256.Int
	Nonce               uint64
	MaxPriorityGasPrice *uint256.Int
	MaxGasPrice         *uint256.Int
	GasLimit            int64
	To                  *Address // nil means contract creation
	Value               *uint256.Int
	Data                []byte
	AccessList          []AccessListEntry
	Sender              Address
	PublicKey           []byte
	Signature           []byte
}

// IsCreation reports whether this transaction creates a new contract.
func (tx *Transaction) IsCreation() bool { return tx.To == nil }
