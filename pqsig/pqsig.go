// Package pqsig sizes post-quantum transaction signature material for
// diagnostics. It never verifies a signature (verification is a trusted
// external input); it only reports whether a given
// signature/public-key length is consistent with the claimed algorithm, the
// way a test harness would flag a malformed fixture before execution.
package pqsig

import "fmt"

// Algorithm identifies a post-quantum signature scheme.
type Algorithm uint8

const (
	Dilithium Algorithm = iota
	Falcon
	SPHINCSPlus
)

func (a Algorithm) String() string {
	switch a {
	case Dilithium:
		return "Dilithium"
	case Falcon:
		return "Falcon"
	case SPHINCSPlus:
		return "SPHINCS+"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// sizes holds the public-key and signature byte lengths Describe checks
// against. Only the Dilithium entry is a NIST level-3 set (Dilithium3); the
// Falcon entry pairs the Falcon-512 public-key size with the Falcon-1024
// signature size, and the SPHINCS+ entry pairs the 192-bit public-key size
// with the SPHINCS+-128f signature size.
var sizes = map[Algorithm]struct{ PublicKey, Signature int }{
	Dilithium:   {PublicKey: 1952, Signature: 3293},
	Falcon:      {PublicKey: 897, Signature: 1280},
	SPHINCSPlus: {PublicKey: 48, Signature: 17088},
}

// Description reports an algorithm's expected sizes and whether the
// observed public-key/signature lengths match them.
type Description struct {
	Algorithm           Algorithm
	ExpectedPublicKey   int
	ExpectedSignature   int
	ObservedPublicKey   int
	ObservedSignature   int
	PublicKeySizeOK     bool
	SignatureSizeOK     bool
}

// Describe reports whether pubKeyLen/sigLen match alg's expected sizes. An
// unrecognized algorithm yields a Description with both OK fields false.
func Describe(alg Algorithm, pubKeyLen, sigLen int) Description {
	expected, ok := sizes[alg]
	if !ok {
		return Description{Algorithm: alg, ObservedPublicKey: pubKeyLen, ObservedSignature: sigLen}
	}
	return Description{
		Algorithm:         alg,
		ExpectedPublicKey: expected.PublicKey,
		ExpectedSignature: expected.Signature,
		ObservedPublicKey: pubKeyLen,
		ObservedSignature: sigLen,
		PublicKeySizeOK:   pubKeyLen == expected.PublicKey,
		SignatureSizeOK:   sigLen == expected.Signature,
	}
}
