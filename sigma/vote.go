package sigma

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

// VoteProof shows that a ciphertext under the election key encrypts one of
// the allowed vote encodings, without revealing which. It is an
// OR-composition: the branch matching the actual vote runs the real
// Sigma-protocol for the encryption randomness, every other branch is
// simulated backwards from a chosen challenge and response, and the branch
// challenges are forced to sum to a single hash-derived overall challenge.
//
// Branch i of the transcript claims Alpha = r*G and
// Beta - encodings[i]*G = r*pk.
type VoteProof struct {
	// CommitsA holds the per-branch commitments against the generator.
	CommitsA []kyber.Point
	// CommitsB holds the per-branch commitments against the election key.
	CommitsB []kyber.Point
	// Challenges holds the per-branch challenges; their sum mod q must
	// equal the overall hash challenge.
	Challenges []kyber.Scalar
	// Responses holds the per-branch responses.
	Responses []kyber.Scalar
}

// branch is one disjunct of the OR-composition, selected as real or
// simulated exactly once and never mutated afterwards.
type branch struct {
	simulated bool
	commitA   kyber.Point
	commitB   kyber.Point
	challenge kyber.Scalar
	response  kyber.Scalar
	// w is the commitment scalar, only present on the real branch.
	w kyber.Scalar
}

// simulateBranch builds a transcript for a branch without its witness by
// choosing the challenge and response first and solving the verification
// equations backwards for the commitments.
func simulateBranch(suite Suite, public kyber.Point, ct *lib.Ciphertext, encoding uint64) *branch {
	e := randomScalar(suite)
	z := randomScalar(suite)

	// A = z*G - e*Alpha
	commitA := suite.Point().Mul(e, ct.Alpha)
	commitA.Sub(suite.Point().Mul(z, nil), commitA)

	// B = z*pk - e*(Beta - encoding*G)
	commitB := suite.Point().Mul(e, adjustedBeta(suite, ct, encoding))
	commitB.Sub(suite.Point().Mul(z, public), commitB)

	return &branch{
		simulated: true,
		commitA:   commitA,
		commitB:   commitB,
		challenge: e,
		response:  z,
	}
}

// realBranch commits to a fresh scalar; its challenge and response are
// fixed later, once the overall challenge is known.
func realBranch(suite Suite, public kyber.Point) *branch {
	w := randomScalar(suite)
	return &branch{
		commitA: suite.Point().Mul(w, nil),
		commitB: suite.Point().Mul(w, public),
		w:       w,
	}
}

// ProveVote proves that ct encrypts message, a member of encodings, using
// the encryption randomness r as witness. It fails with ErrInvalidWitness
// before emitting a transcript when message is not an allowed encoding or
// when (message, r) does not open the ciphertext.
func ProveVote(suite Suite, public kyber.Point, ct *lib.Ciphertext,
	message uint64, r kyber.Scalar, encodings []uint64) (*VoteProof, error) {

	realIdx := -1
	for i, encoding := range encodings {
		if encoding == message {
			realIdx = i
			break
		}
	}
	if realIdx < 0 {
		return nil, xerrors.Errorf("message %d is not an allowed encoding: %w",
			message, lib.ErrInvalidWitness)
	}
	if !suite.Point().Mul(r, nil).Equal(ct.Alpha) ||
		!suite.Point().Mul(r, public).Equal(adjustedBeta(suite, ct, message)) {
		return nil, xerrors.Errorf("randomness does not open the ciphertext: %w",
			lib.ErrInvalidWitness)
	}

	branches := make([]*branch, len(encodings))
	for i, encoding := range encodings {
		if i == realIdx {
			branches[i] = realBranch(suite, public)
			continue
		}
		branches[i] = simulateBranch(suite, public, ct, encoding)
	}

	total := overallChallenge(suite, public, ct, encodings, branches)

	// The real branch absorbs whatever challenge mass the simulated
	// branches left over.
	e := suite.Scalar().Set(total)
	for _, b := range branches {
		if b.simulated {
			e.Sub(e, b.challenge)
		}
	}
	z := suite.Scalar().Mul(e, r)
	z.Add(z, branches[realIdx].w)
	branches[realIdx].challenge = e
	branches[realIdx].response = z

	proof := &VoteProof{
		CommitsA:   make([]kyber.Point, len(branches)),
		CommitsB:   make([]kyber.Point, len(branches)),
		Challenges: make([]kyber.Scalar, len(branches)),
		Responses:  make([]kyber.Scalar, len(branches)),
	}
	for i, b := range branches {
		proof.CommitsA[i] = b.commitA
		proof.CommitsB[i] = b.commitB
		proof.Challenges[i] = b.challenge
		proof.Responses[i] = b.response
	}
	return proof, nil
}

// Verify checks the proof against the election key, the ciphertext and the
// allowed encodings. It recomputes the overall challenge, checks that the
// branch challenges sum to it and that both verification equations hold
// for every branch. Nil means accepted.
func (p *VoteProof) Verify(suite Suite, public kyber.Point, ct *lib.Ciphertext, encodings []uint64) error {
	if err := p.wellFormed(len(encodings)); err != nil {
		return err
	}
	if public == nil || ct == nil || ct.Alpha == nil || ct.Beta == nil {
		return xerrors.Errorf("vote statement: %w", lib.ErrDecode)
	}

	branches := make([]*branch, len(encodings))
	for i := range encodings {
		branches[i] = &branch{commitA: p.CommitsA[i], commitB: p.CommitsB[i]}
	}
	total := overallChallenge(suite, public, ct, encodings, branches)

	sum := suite.Scalar().Zero()
	for _, e := range p.Challenges {
		sum.Add(sum, e)
	}
	if !sum.Equal(total) {
		return xerrors.Errorf("branch challenges do not add up: %w", lib.ErrProofInvalid)
	}

	for i, encoding := range encodings {
		e, z := p.Challenges[i], p.Responses[i]

		// z*G == A + e*Alpha
		left := suite.Point().Mul(z, nil)
		right := suite.Point().Mul(e, ct.Alpha)
		right.Add(p.CommitsA[i], right)
		if !left.Equal(right) {
			return xerrors.Errorf("branch %d generator equation: %w", i, lib.ErrProofInvalid)
		}

		// z*pk == B + e*(Beta - encoding*G)
		left = suite.Point().Mul(z, public)
		right = suite.Point().Mul(e, adjustedBeta(suite, ct, encoding))
		right.Add(p.CommitsB[i], right)
		if !left.Equal(right) {
			return xerrors.Errorf("branch %d key equation: %w", i, lib.ErrProofInvalid)
		}
	}
	return nil
}

func (p *VoteProof) wellFormed(n int) error {
	if p == nil || len(p.CommitsA) != n || len(p.CommitsB) != n ||
		len(p.Challenges) != n || len(p.Responses) != n {
		return xerrors.Errorf("vote transcript wants %d branches: %w", n, lib.ErrDecode)
	}
	for i := 0; i < n; i++ {
		if p.CommitsA[i] == nil || p.CommitsB[i] == nil ||
			p.Challenges[i] == nil || p.Responses[i] == nil {
			return xerrors.Errorf("vote transcript branch %d incomplete: %w", i, lib.ErrDecode)
		}
	}
	return nil
}

// overallChallenge hashes the statement (key, ciphertext, encodings) and
// all commitment pairs. Nothing hashed here may be chosen after the result
// is known.
func overallChallenge(suite Suite, public kyber.Point, ct *lib.Ciphertext,
	encodings []uint64, branches []*branch) kyber.Scalar {

	elements := []kyber.Marshaling{public, ct.Alpha, ct.Beta}
	for _, encoding := range encodings {
		elements = append(elements, lib.IntToScalar(suite, encoding))
	}
	for _, b := range branches {
		elements = append(elements, b.commitA, b.commitB)
	}
	return challenge(suite, voteTag, elements...)
}

// adjustedBeta returns Beta - encoding*G, the point that equals r*pk
// exactly when ct encrypts encoding.
func adjustedBeta(suite Suite, ct *lib.Ciphertext, encoding uint64) kyber.Point {
	shift := suite.Point().Mul(lib.IntToScalar(suite, encoding), nil)
	return suite.Point().Sub(ct.Beta, shift)
}
