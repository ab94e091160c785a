package types

// ReceiptStatus is the three-way execution outcome recorded in a receipt.
// Unlike the pre-execution validation errors (which abort the transition
// entirely), every ReceiptStatus value still produces a valid receipt.
type ReceiptStatus uint8

const (
	ReceiptSuccess ReceiptStatus = iota
	ReceiptRevert
	ReceiptFailure
)

func (s ReceiptStatus) Succeeded() bool { return s == ReceiptSuccess }

// Receipt is the outcome of one transaction's execution.
type Receipt struct {
	Kind     TxKind
	Status   ReceiptStatus
	GasUsed  uint64
	Logs     []*Log
	Bloom    Bloom
}
