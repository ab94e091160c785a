package core

import (
	"github.com/holiman/uint256"

	"github.com/rgeraldes24/evmone/core/state"
	"github.com/rgeraldes24/evmone/core/types"
	vmpkg "github.com/rgeraldes24/evmone/core/vm"
	"github.com/rgeraldes24/evmone/metrics"
	"github.com/rgeraldes24/evmone/zlog"
)

var transitionLog = zlog.Default().Module("core")

var (
	metricRejected = metrics.DefaultRegistry.Counter("core_transition_rejected_total")
	metricApplied  = metrics.DefaultRegistry.Counter("core_transition_applied_total")
	metricRefund   = metrics.DefaultRegistry.Counter("core_transition_refund_gas_total")
)

const (
	txGasCall           = 21000
	txGasCreate         = 53000
	txDataGasPerZero    = 4
	txDataGasPerNonZero = 16
	txAccessListAddress = 2400
	txAccessListSlot    = 1900
	txInitCodeWordGas   = 2
	txMaxInitCodeSize   = 2 * 0x6000

	maxRefundQuotient = 5
)

// firstPrecompileAddress..lastPrecompileAddress bound the always-warm
// precompile range (ECRECOVER through BLAKE2F); this core never executes a
// precompile itself, it only seeds their warmth per spec.
const (
	firstPrecompileAddress = 1
	lastPrecompileAddress  = 9
)

// intrinsicGas computes the up-front gas cost of a transaction: the base
// call/create cost, per-byte data cost, and access-list surcharges.
func intrinsicGas(tx *types.Transaction) int64 {
	var cost int64
	if tx.IsCreation() {
		cost = txGasCreate
	} else {
		cost = txGasCall
	}

	var zero, nonZero int64
	for _, b := range tx.Data {
		if b == 0 {
			zero++
		} else {
			nonZero++
		}
	}
	cost += zero*txDataGasPerZero + nonZero*txDataGasPerNonZero

	for _, entry := range tx.AccessList {
		cost += txAccessListAddress
		cost += int64(len(entry.StorageKeys)) * txAccessListSlot
	}

	if tx.IsCreation() {
		words := (int64(len(tx.Data)) + 31) / 32
		cost += words * txInitCodeWordGas
	}

	return cost
}

// effectiveGasPrice computes base_fee + min(max_priority, max_gas_price - base_fee).
func effectiveGasPrice(tx *types.Transaction, baseFee *uint256.Int) *uint256.Int {
	tip := new(uint256.Int).Sub(tx.MaxGasPrice, baseFee)
	if tx.MaxPriorityGasPrice.Cmp(tip) < 0 {
		tip = tx.MaxPriorityGasPrice
	}
	return new(uint256.Int).Add(baseFee, tip)
}

// validate runs the ordered validation checks, returning the first
// matching failure. No state is mutated whether or not validation passes.
func validate(s *state.State, block BlockInfo, tx *types.Transaction) *ValidationError {
	if tx.Kind != types.TxKindEIP1559 {
		return &ValidationError{Code: ErrUnsupportedTxKind}
	}
	if tx.MaxPriorityGasPrice.Cmp(tx.MaxGasPrice) > 0 {
		return &ValidationError{Code: ErrTipGtFeeCap}
	}
	if tx.GasLimit > block.GasLimit {
		return &ValidationError{Code: ErrGasLimitReached}
	}
	if tx.MaxGasPrice.Cmp(block.BaseFee) < 0 {
		return &ValidationError{Code: ErrFeeCapLessThanBlocks}
	}
	sender, senderExists := s.Find(tx.Sender)
	if senderExists && len(sender.Code) != 0 {
		return &ValidationError{Code: ErrSenderNotEOA}
	}
	if senderExists && sender.Nonce == state.NonceMax {
		return &ValidationError{Code: ErrNonceHasMaxValue}
	}
	if tx.IsCreation() && len(tx.Data) > txMaxInitCodeSize {
		return &ValidationError{Code: ErrInitCodeSizeLimitExceeded}
	}

	senderBalance := new(uint256.Int)
	if senderExists {
		senderBalance.Set(sender.Balance)
	}
	// gas_limit * max_gas_price + value can each approach the 256-bit max, so the
	// product/sum must be checked for overflow rather than trusted to wrap correctly.
	gasCost, gasCostOverflow := new(uint256.Int).MulOverflow(uint256.NewInt(uint64(tx.GasLimit)), tx.MaxGasPrice)
	required, requiredOverflow := new(uint256.Int).AddOverflow(gasCost, tx.Value)
	if gasCostOverflow || requiredOverflow || senderBalance.Cmp(required) < 0 {
		return &ValidationError{Code: ErrInsufficientFunds}
	}

	if intrinsicGas(tx) > tx.GasLimit {
		return &ValidationError{Code: ErrIntrinsicGasTooLow}
	}
	return nil
}

// warmSet pre-charges the EIP-2929/3651 access list before execution:
// sender, recipient, coinbase, every access-list address and its storage
// keys, and the always-warm precompile range.
func warmSet(s *state.State, tx *types.Transaction, coinbase types.Address) {
	s.Touch(tx.Sender)
	s.WarmAccount(tx.Sender)

	if tx.To != nil {
		s.Touch(*tx.To)
		s.WarmAccount(*tx.To)
	}

	s.Touch(coinbase)
	s.WarmAccount(coinbase)

	for _, entry := range tx.AccessList {
		s.Touch(entry.Address)
		s.WarmAccount(entry.Address)
		for _, key := range entry.StorageKeys {
			s.AccessStorage(entry.Address, key)
		}
	}

	for i := firstPrecompileAddress; i <= lastPrecompileAddress; i++ {
		addr := types.BytesToAddress([]byte{byte(i)})
		s.Touch(addr)
		s.WarmAccount(addr)
	}
}

// Transition executes one transaction against s, per the validate /
// intrinsic-cost / reserve / warm / invoke / refund / reap / receipt
// sequence. State is mutated only once validation has passed.
func Transition(s *state.State, block BlockInfo, tx *types.Transaction, rev vmpkg.Revision, vmImpl vmpkg.VM, hashes vmpkg.BlockHashes) (*types.Receipt, error) {
	if verr := validate(s, block, tx); verr != nil {
		metricRejected.Inc()
		transitionLog.Debug("transaction rejected", "code", verr.Code.String())
		return nil, verr
	}

	// Destructed/Erasable and warm/cold status are transaction-scoped; a
	// pre-state reused across transitions must not leak them into this one.
	s.ResetTransient()

	intrinsic := intrinsicGas(tx)
	executionGasLimit := tx.GasLimit - intrinsic
	gasPrice := effectiveGasPrice(tx, block.BaseFee)

	s.Touch(tx.Sender)
	gasCost := new(uint256.Int).Mul(uint256.NewInt(uint64(tx.GasLimit)), gasPrice)
	s.SubBalance(tx.Sender, gasCost)

	warmSet(s, tx, block.Coinbase)

	ctx := vmpkg.TxContext{
		GasPrice:   gasPrice,
		Origin:     tx.Sender,
		Coinbase:   block.Coinbase,
		Number:     block.Number,
		Timestamp:  block.Timestamp,
		GasLimit:   block.GasLimit,
		PrevRandao: block.PrevRandao,
		ChainID:    tx.ChainID,
		BaseFee:    block.BaseFee,
	}
	host := vmpkg.NewHost(s, vmImpl, rev, ctx, hashes)

	recipient := types.Address{}
	kind := vmpkg.Call
	if tx.To != nil {
		recipient = *tx.To
	} else {
		kind = vmpkg.Create
	}

	msg := vmpkg.Message{
		Kind:        kind,
		Gas:         executionGasLimit,
		Recipient:   recipient,
		Sender:      tx.Sender,
		Value:       tx.Value,
		Input:       tx.Data,
		CodeAddress: recipient,
	}

	result, execErr := host.Call(msg)

	gasUsed := tx.GasLimit - result.GasLeft
	refundCap := gasUsed / maxRefundQuotient
	refund := result.GasRefund
	if refund > refundCap {
		refund = refundCap
	}
	gasUsed -= refund
	metricRefund.Add(refund)

	senderCredit := new(uint256.Int).Mul(uint256.NewInt(uint64(tx.GasLimit-gasUsed)), gasPrice)
	s.AddBalance(tx.Sender, senderCredit)

	priorityPrice := new(uint256.Int).Sub(gasPrice, block.BaseFee)
	coinbaseCredit := new(uint256.Int).Mul(uint256.NewInt(uint64(gasUsed)), priorityPrice)
	s.AddBalance(block.Coinbase, coinbaseCredit)

	s.ReapDestructed()

	status := types.ReceiptSuccess
	switch {
	case result.StatusCode == vmpkg.StatusRevert:
		status = types.ReceiptRevert
	case !result.StatusCode.Succeeded():
		status = types.ReceiptFailure
	}

	logs := s.TakeLogs()
	receipt := &types.Receipt{
		Kind:    tx.Kind,
		Status:  status,
		GasUsed: uint64(gasUsed),
		Logs:    logs,
		Bloom:   types.LogsBloom(logs),
	}
	metricApplied.Inc()
	transitionLog.Debug("transaction applied", "status", status, "gas_used", receipt.GasUsed)
	return receipt, execErr
}

// Finalize runs end-of-block bookkeeping: reap empty-and-erasable
// accounts, then credit withdrawal recipients.
func Finalize(s *state.State, withdrawals []*types.Withdrawal) {
	s.ReapErasableEmpty()
	for _, w := range withdrawals {
		s.Touch(w.Recipient)
		s.AddBalance(w.Recipient, w.GetAmount())
	}
}
