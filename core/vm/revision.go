package vm

// Revision selects the protocol version in effect, which decides the
// instruction metadata table (for example, EIP-3855 PUSH0 is defined from
// Shanghai on). Transition applies EIP-3651 coinbase warming and the
// EIP-3860 init-code cap at every revision; neither is gated on it. Values
// are monotonically increasing.
type Revision int

const (
	Frontier Revision = iota
	Homestead
	Tangerine
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Shanghai
	Cancun
	Prague
)

// AtLeast reports whether rev is at or past target.
func (rev Revision) AtLeast(target Revision) bool { return rev >= target }
