package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core"
	"github.com/rgeraldes24/evmone/core/state"
	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/core/vm"
)

// hexBytes decodes/encodes a byte slice as a 0x-prefixed hex string in
// fixture JSON, since []byte's default JSON encoding is base64.
type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", "0x"+hex.EncodeToString(h))), nil
}

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("fixture: invalid hex byte string %q: %w", s, err)
	}
	*h = b
	return nil
}

func unquote(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("fixture: expected JSON string: %w", err)
	}
	return s, nil
}

// storageEntryFixture is one pre-state storage slot, expressed as a pair
// rather than a map so its key can be an arbitrary 32-byte hash: JSON
// object keys must be strings, and types.Hash implements json.Marshaler
// rather than encoding.TextMarshaler, so it cannot serve as a map key.
type storageEntryFixture struct {
	Key   types.Hash `json:"key"`
	Value types.Hash `json:"value"`
}

type accountFixture struct {
	Address types.Address         `json:"address"`
	Nonce   uint64                `json:"nonce"`
	Balance *uint256.Int          `json:"balance"`
	Code    hexBytes              `json:"code"`
	Storage []storageEntryFixture `json:"storage"`
}

type accessListEntryFixture struct {
	Address     types.Address `json:"address"`
	StorageKeys []types.Hash  `json:"storage_keys"`
}

type transactionFixture struct {
	Nonce               uint64                   `json:"nonce"`
	MaxPriorityGasPrice *uint256.Int             `json:"max_priority_gas_price"`
	MaxGasPrice         *uint256.Int             `json:"max_gas_price"`
	GasLimit            int64                    `json:"gas_limit"`
	To                  *types.Address           `json:"to,omitempty"`
	Value               *uint256.Int             `json:"value"`
	Data                hexBytes                 `json:"data"`
	AccessList          []accessListEntryFixture `json:"access_list"`
	Sender              types.Address            `json:"sender"`
	PublicKey           hexBytes                 `json:"public_key"`
	Signature           hexBytes                 `json:"signature"`
}

type withdrawalFixture struct {
	Index          uint64        `json:"index"`
	ValidatorIndex uint64        `json:"validator_index"`
	Recipient      types.Address `json:"recipient"`
	Amount         uint64        `json:"amount"`
}

type blockFixture struct {
	Number      int64         `json:"number"`
	Timestamp   int64         `json:"timestamp"`
	GasLimit    int64         `json:"gas_limit"`
	BaseFee     *uint256.Int  `json:"base_fee"`
	Coinbase    types.Address `json:"coinbase"`
	PrevRandao  types.Hash    `json:"prev_randao"`
}

// fixture is the CLI's minimal single-transaction input format: pre-state
// accounts, one block header, one transaction, and the revision to run
// it under. It is deliberately not the full EF state-test JSON schema;
// loading that format is out of scope here.
type fixture struct {
	ChainID     *uint256.Int        `json:"chain_id"`
	Revision    string              `json:"revision"`
	Block       blockFixture        `json:"block"`
	PreState    []accountFixture    `json:"pre_state"`
	Transaction transactionFixture  `json:"transaction"`
	Withdrawals []withdrawalFixture `json:"withdrawals,omitempty"`
}

var revisionNames = map[string]vm.Revision{
	"frontier":       vm.Frontier,
	"homestead":      vm.Homestead,
	"tangerine":      vm.Tangerine,
	"spurious":       vm.SpuriousDragon,
	"byzantium":      vm.Byzantium,
	"constantinople": vm.Constantinople,
	"petersburg":     vm.Petersburg,
	"istanbul":       vm.Istanbul,
	"berlin":         vm.Berlin,
	"london":         vm.London,
	"shanghai":       vm.Shanghai,
	"cancun":         vm.Cancun,
	"prague":         vm.Prague,
}

func parseRevision(name string) (vm.Revision, error) {
	if name == "" {
		return vm.Cancun, nil
	}
	rev, ok := revisionNames[name]
	if !ok {
		return 0, fmt.Errorf("fixture: unknown revision %q", name)
	}
	return rev, nil
}

// loadFixture parses JSON fixture bytes into a ready-to-run State,
// Transaction and BlockInfo.
func loadFixture(data []byte) (*state.State, *types.Transaction, core.BlockInfo, vm.Revision, []*types.Withdrawal, error) {
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, core.BlockInfo{}, 0, nil, fmt.Errorf("fixture: parse: %w", err)
	}

	rev, err := parseRevision(f.Revision)
	if err != nil {
		return nil, nil, core.BlockInfo{}, 0, nil, err
	}

	s := state.New()
	for _, af := range f.PreState {
		s.CreateAccount(af.Address)
		s.SetNonce(af.Address, af.Nonce)
		if af.Balance != nil {
			s.SetBalance(af.Address, af.Balance)
		}
		if len(af.Code) > 0 {
			s.SetCode(af.Address, af.Code)
		}
		for _, se := range af.Storage {
			s.SetStorage(af.Address, se.Key, se.Value)
		}
	}
	// Pre-state is not transaction activity: reset the journal and
	// transient per-account flags so the transition starts clean.
	s.ResetTransient()

	tf := f.Transaction
	tx := &types.Transaction{
		Kind:                types.TxKindEIP1559,
		ChainID:             f.ChainID,
		Nonce:               tf.Nonce,
		MaxPriorityGasPrice: tf.MaxPriorityGasPrice,
		MaxGasPrice:         tf.MaxGasPrice,
		GasLimit:            tf.GasLimit,
		To:                  tf.To,
		Value:               tf.Value,
		Data:                tf.Data,
		Sender:              tf.Sender,
		PublicKey:           tf.PublicKey,
		Signature:           tf.Signature,
	}
	if tx.Value == nil {
		tx.Value = new(uint256.Int)
	}
	for _, e := range tf.AccessList {
		tx.AccessList = append(tx.AccessList, types.AccessListEntry{
			Address:     e.Address,
			StorageKeys: e.StorageKeys,
		})
	}

	block := core.BlockInfo{
		Number:     f.Block.Number,
		Timestamp:  f.Block.Timestamp,
		GasLimit:   f.Block.GasLimit,
		BaseFee:    f.Block.BaseFee,
		Coinbase:   f.Block.Coinbase,
		PrevRandao: f.Block.PrevRandao,
	}
	if block.BaseFee == nil {
		block.BaseFee = new(uint256.Int)
	}

	withdrawals := make([]*types.Withdrawal, 0, len(f.Withdrawals))
	for _, w := range f.Withdrawals {
		withdrawals = append(withdrawals, &types.Withdrawal{
			Index:          w.Index,
			ValidatorIndex: w.ValidatorIndex,
			Recipient:      w.Recipient,
			Amount:         w.Amount,
		})
	}

	return s, tx, block, rev, withdrawals, nil
}
