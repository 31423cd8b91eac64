// Package sigma implements the three non-interactive proofs of the
// election core, all Fiat-Shamir transforms of 3-move Sigma-protocols:
// knowledge of a discrete log, well-formedness of an encrypted vote
// (an OR-composition) and correctness of a decryption.
//
// Challenges hash a domain tag, the statement and every commitment fixed
// before the challenge is used; verifiers always recompute them instead of
// trusting the transcript, so verification is a pure function of its
// inputs.
package sigma

import (
	"go.dedis.ch/kyber/v3"

	"go.dedis.ch/evoting/lib"
)

// Suite re-exports the capability set of lib so callers only deal with a
// single suite type.
type Suite = lib.Suite

// Domain-separation tags, one per protocol.
const (
	dlogTag    = "evoting/sigma/dlog"
	voteTag    = "evoting/sigma/vote"
	decryptTag = "evoting/sigma/decrypt"
)

// challenge derives a Fiat-Shamir challenge scalar from a domain tag and
// the given public elements, in order.
func challenge(suite Suite, tag string, elements ...kyber.Marshaling) kyber.Scalar {
	h := suite.Hash()
	h.Write([]byte(tag))
	for _, element := range elements {
		element.MarshalTo(h)
	}
	return suite.Scalar().SetBytes(h.Sum(nil))
}

// randomScalar draws a uniform non-zero scalar from the suite's stream.
func randomScalar(suite Suite) kyber.Scalar {
	zero := suite.Scalar().Zero()
	s := suite.Scalar().Pick(suite.RandomStream())
	for s.Equal(zero) {
		s = suite.Scalar().Pick(suite.RandomStream())
	}
	return s
}
