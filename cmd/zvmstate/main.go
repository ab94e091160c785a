// Command zvmstate runs a single EIP-1559 transaction against a small
// JSON state fixture using an externally loaded VM implementation, and
// prints the resulting receipt and post-state root as JSON.
//
// Usage:
//
//	zvmstate [flags] MODULE
//
// Flags:
//
//	--fixture   path to the input JSON fixture (required)
//	--version   print version and exit
//	--help      print usage and exit
//
// MODULE is the path to a Go plugin (.so) exporting:
//
//	func NewVM() vm.VM
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgeraldes24/evmone/core"
	"github.com/rgeraldes24/evmone/core/statehash"
	"github.com/rgeraldes24/evmone/core/types"
	"github.com/rgeraldes24/evmone/core/vm"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
// Per spec, exit codes are 0 on success (or --help/--version), a positive
// code on a rejected or failed transaction, and a negative code when the
// VM module could not be loaded at all.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	fixtureData, err := os.ReadFile(cfg.fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zvmstate: reading fixture: %v\n", err)
		return 1
	}

	vmImpl, err := loadVM(cfg.modulePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zvmstate: %v\n", err)
		return -1
	}

	result, runErr := runFixture(vmImpl, fixtureData)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "zvmstate: %v\n", runErr)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "zvmstate: encoding result: %v\n", err)
		return 1
	}
	if !result.Receipt.Status.Succeeded() {
		return 1
	}
	return 0
}

// zeroHashes is the BlockHashes used when a fixture carries no history:
// BLOCKHASH always resolves to the zero hash.
type zeroHashes struct{}

func (zeroHashes) BlockHash(int64) types.Hash { return types.Hash{} }

// receiptOutput is the JSON shape printed to stdout: the transaction
// receipt plus the post-transition state root, since the receipt alone
// does not let a caller verify execution against the fixture's expected
// outcome.
type receiptOutput struct {
	Receipt   *types.Receipt `json:"receipt"`
	StateRoot types.Hash     `json:"state_root"`
}

// runFixture executes fixtureData's single transaction against vmImpl,
// separated from run so it can be exercised in tests without a real
// plugin .so on disk.
func runFixture(vmImpl vm.VM, fixtureData []byte) (*receiptOutput, error) {
	s, tx, block, rev, withdrawals, err := loadFixture(fixtureData)
	if err != nil {
		return nil, err
	}

	receipt, err := core.Transition(s, block, tx, rev, vmImpl, zeroHashes{})
	if receipt == nil {
		// Only a validation failure (core.ValidationError) leaves no
		// receipt; a failed/reverted execution still produces one.
		return nil, err
	}
	core.Finalize(s, withdrawals)

	return &receiptOutput{
		Receipt:   receipt,
		StateRoot: statehash.Accounts(s.Accounts()),
	}, nil
}
