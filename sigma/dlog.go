package sigma

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

// DlogProof is a non-interactive proof of knowledge of x with X = x*G, the
// building block the other protocols elaborate on. The election manager
// publishes one for the election key so anyone can check the key was
// generated honestly.
type DlogProof struct {
	// Commit is A = w*G for the random commitment scalar w.
	Commit kyber.Point
	// Challenge is c = H(X, A); stored for transparency, always recomputed
	// during verification.
	Challenge kyber.Scalar
	// Response is z = w + c*x.
	Response kyber.Scalar
}

// ProveDlog proves knowledge of secret with public = secret*G. It fails
// with ErrInvalidWitness before producing any transcript if the key pair
// does not match.
func ProveDlog(suite Suite, secret kyber.Scalar, public kyber.Point) (*DlogProof, error) {
	if !suite.Point().Mul(secret, nil).Equal(public) {
		return nil, xerrors.Errorf("dlog statement: %w", lib.ErrInvalidWitness)
	}
	w := randomScalar(suite)
	A := suite.Point().Mul(w, nil)
	c := challenge(suite, dlogTag, public, A)
	z := suite.Scalar().Mul(c, secret)
	z.Add(z, w)
	return &DlogProof{Commit: A, Challenge: c, Response: z}, nil
}

// Verify checks the proof against public. Nil means accepted; any failure
// wraps ErrProofInvalid.
func (p *DlogProof) Verify(suite Suite, public kyber.Point) error {
	if p == nil || p.Commit == nil || p.Challenge == nil || p.Response == nil {
		return xerrors.Errorf("dlog transcript: %w", lib.ErrDecode)
	}
	if public == nil {
		return xerrors.Errorf("dlog statement: %w", lib.ErrDecode)
	}
	c := challenge(suite, dlogTag, public, p.Commit)
	if !c.Equal(p.Challenge) {
		return xerrors.Errorf("dlog challenge mismatch: %w", lib.ErrProofInvalid)
	}
	// z*G == A + c*X
	left := suite.Point().Mul(p.Response, nil)
	right := suite.Point().Mul(c, public)
	right.Add(p.Commit, right)
	if !left.Equal(right) {
		return xerrors.Errorf("dlog equation: %w", lib.ErrProofInvalid)
	}
	return nil
}
