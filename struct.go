package evoting

import (
	"go.dedis.ch/kyber/v3"

	"go.dedis.ch/evoting/lib"
	"go.dedis.ch/evoting/sigma"
)

// Ballot is one cast vote: an encrypted choice, the voter's signature over
// the hash of the ciphertext, the well-formedness proof and the voter's
// public signing key. A ballot is immutable once cast and consumed exactly
// once by aggregation.
type Ballot struct {
	// Ciphertext is the ElGamal encryption of the vote encoding under the
	// election key.
	Ciphertext *lib.Ciphertext
	// Signature is the voter's Schnorr signature over the ciphertext
	// digest, binding the ballot to the voter.
	Signature *lib.Signature
	// Proof shows the ciphertext encrypts an allowed encoding.
	Proof *sigma.VoteProof
	// VoterKey is the voter's public signing key.
	VoterKey kyber.Point
}

// Digest is the message the ballot signature covers: the suite hash of the
// fixed-size ciphertext encoding. Transport must preserve the ciphertext
// byte-for-byte for this digest to verify on the receiving side.
func (b *Ballot) Digest(suite lib.Suite) []byte {
	h := suite.Hash()
	h.Write(b.Ciphertext.Encode())
	return h.Sum(nil)
}

// Result is the publicly verifiable outcome of an election, transmittable
// to a verifier that never had access to any secret key.
type Result struct {
	// Key is the election public key.
	Key kyber.Point
	// KeyProof shows the election manager knows the matching secret key.
	KeyProof *sigma.DlogProof
	// Aggregate is the homomorphic sum of all accepted ballots.
	Aggregate *lib.Ciphertext
	// Decrypted is the plaintext of Aggregate, still digit-encoded.
	Decrypted uint64
	// Tally holds the per-candidate counts decomposed from Decrypted.
	Tally []uint64
	// Proof shows Decrypted is the correct decryption of Aggregate.
	Proof *sigma.DecryptionProof
}

// Verify checks the key-knowledge proof and the decryption proof against
// the data carried by the result itself. It relies entirely on the
// soundness of the proofs and never re-derives the tally.
func (r *Result) Verify(suite lib.Suite) error {
	if err := r.KeyProof.Verify(suite, r.Key); err != nil {
		return err
	}
	return r.Proof.Verify(suite, r.Key, r.Aggregate, r.Decrypted)
}
