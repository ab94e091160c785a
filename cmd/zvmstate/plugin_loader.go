package main

import (
	"fmt"
	"plugin"

	"github.com/rgeraldes24/evmone/core/vm"
)

// vmConstructorSymbol is the exported symbol a MODULE plugin must define:
//
//	func NewVM() vm.VM { return myvm.New() }
//
// mirroring the C ABI evmc_create_* entry point the original evmc loader
// resolves by name.
const vmConstructorSymbol = "NewVM"

// loadVM opens the .so at path and resolves its NewVM constructor. Go's
// plugin package is the only standard-library mechanism for loading an
// external implementation of an arbitrary interface at runtime; nothing in
// the example corpus supplies a third-party alternative.
func loadVM(path string) (vm.VM, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("zvmstate: opening module %s: %w", path, err)
	}
	sym, err := p.Lookup(vmConstructorSymbol)
	if err != nil {
		return nil, fmt.Errorf("zvmstate: module %s has no %s symbol: %w", path, vmConstructorSymbol, err)
	}
	ctor, ok := sym.(func() vm.VM)
	if !ok {
		return nil, fmt.Errorf("zvmstate: module %s's %s symbol has the wrong type", path, vmConstructorSymbol)
	}
	return ctor(), nil
}
