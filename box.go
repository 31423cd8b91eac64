package evoting

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"

	"go.dedis.ch/evoting/lib"
)

// Box is a container around the ballots submitted to an election.
type Box struct {
	Ballots []*Ballot
}

// BallotValidity reports the outcome of the two independent checks run on
// one ballot during aggregation. Rejected ballots are excluded from the
// sum but always reported, never silently dropped.
type BallotValidity struct {
	// Index of the ballot in the box, in casting order.
	Index int
	// SignatureOK is true if the voter's signature over the ciphertext
	// digest verified.
	SignatureOK bool
	// ProofOK is true if the well-formedness proof verified.
	ProofOK bool
}

// Accepted is true if the ballot passed both checks and entered the sum.
func (v BallotValidity) Accepted() bool {
	return v.SignatureOK && v.ProofOK
}

// Aggregate verifies every ballot independently and homomorphically sums
// the accepted ones in casting order. The per-ballot checks share no state
// and the sum is commutative, so the order only matters for reproducible
// reporting. With zero accepted ballots the sum is the identity
// ciphertext, an encryption of zero.
func (box *Box) Aggregate(suite lib.Suite, key kyber.Point, encodings []uint64) (
	*lib.Ciphertext, int, []BallotValidity) {

	sum := lib.NewCiphertext(suite)
	accepted := 0
	validity := make([]BallotValidity, len(box.Ballots))

	for i, ballot := range box.Ballots {
		v := BallotValidity{Index: i}
		if ballot == nil || !completeCiphertext(ballot.Ciphertext) {
			log.Lvl3("ballot", i, "rejected: no ciphertext")
			validity[i] = v
			continue
		}
		if err := lib.Verify(suite, ballot.VoterKey, ballot.Digest(suite), ballot.Signature); err != nil {
			log.Lvl3("ballot", i, "signature rejected:", err)
		} else {
			v.SignatureOK = true
		}
		if err := ballot.Proof.Verify(suite, key, ballot.Ciphertext, encodings); err != nil {
			log.Lvl3("ballot", i, "proof rejected:", err)
		} else {
			v.ProofOK = true
		}
		validity[i] = v

		if v.Accepted() {
			sum.Add(sum, ballot.Ciphertext)
			accepted++
		}
	}
	log.Lvl2("aggregated", accepted, "of", len(box.Ballots), "ballots")
	return sum, accepted, validity
}
