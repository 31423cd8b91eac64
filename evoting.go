// Package evoting implements the cryptographic core of a privacy-preserving
// electronic election: Schnorr signatures for voter authentication,
// exponential ElGamal for vote privacy, Sigma-protocols for vote integrity
// and a homomorphic tally with a publicly verifiable decryption.
//
// The package is organized bottom-up: lib holds the group primitives,
// sigma the non-interactive proofs, and this root package the vote
// containers, the aggregator and the election orchestrator.
package evoting

import (
	"go.dedis.ch/kyber/v3/suites"
)

// Suite is the Ed25519 group used by all operations of this module.
var Suite = suites.MustFind("Ed25519")
