package core

import "github.com/holiman/uint256"

// ChainConfig holds the chain-level parameters a transition needs beyond
// the revision itself, which the caller selects explicitly in Transition's
// signature rather than deriving it here from fork timestamps.
type ChainConfig struct {
	ChainID *uint256.Int
}

// MainnetConfig is the chain config for Ethereum mainnet.
var MainnetConfig = &ChainConfig{ChainID: uint256.NewInt(1)}
