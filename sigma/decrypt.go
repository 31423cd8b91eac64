package sigma

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

// DecryptionProof shows that message is the correct decryption of a
// ciphertext under the secret key matching public, i.e. pk = sk*G and
// Beta - message*G = sk*Alpha, without revealing sk. It is a proof of
// equality of the discrete logs of pk (base G) and Beta - message*G
// (base Alpha).
type DecryptionProof struct {
	// CommitG is A = w*G.
	CommitG kyber.Point
	// CommitAlpha is B = w*Alpha.
	CommitAlpha kyber.Point
	// Challenge is c = H(pk, Alpha, Beta, message, A, B); stored for
	// transparency, always recomputed during verification.
	Challenge kyber.Scalar
	// Response is z = w + c*sk.
	Response kyber.Scalar
}

// ProveDecryption proves that message is the decryption of ct under
// secret. It fails with ErrInvalidWitness before producing a transcript
// when the key pair does not match or the claimed message is wrong.
func ProveDecryption(suite Suite, secret kyber.Scalar, public kyber.Point,
	ct *lib.Ciphertext, message uint64) (*DecryptionProof, error) {

	if !suite.Point().Mul(secret, nil).Equal(public) {
		return nil, xerrors.Errorf("key pair mismatch: %w", lib.ErrInvalidWitness)
	}
	if !suite.Point().Mul(secret, ct.Alpha).Equal(adjustedBeta(suite, ct, message)) {
		return nil, xerrors.Errorf("message %d is not the decryption: %w",
			message, lib.ErrInvalidWitness)
	}

	w := randomScalar(suite)
	A := suite.Point().Mul(w, nil)
	B := suite.Point().Mul(w, ct.Alpha)
	c := decryptionChallenge(suite, public, ct, message, A, B)
	z := suite.Scalar().Mul(c, secret)
	z.Add(z, w)
	return &DecryptionProof{CommitG: A, CommitAlpha: B, Challenge: c, Response: z}, nil
}

// Verify checks the proof against the public key, the ciphertext and the
// claimed message. Both verification equations must hold; failing either
// rejects the proof. Nil means accepted.
func (p *DecryptionProof) Verify(suite Suite, public kyber.Point, ct *lib.Ciphertext, message uint64) error {
	if p == nil || p.CommitG == nil || p.CommitAlpha == nil ||
		p.Challenge == nil || p.Response == nil {
		return xerrors.Errorf("decryption transcript: %w", lib.ErrDecode)
	}
	if public == nil || ct == nil || ct.Alpha == nil || ct.Beta == nil {
		return xerrors.Errorf("decryption statement: %w", lib.ErrDecode)
	}
	c := decryptionChallenge(suite, public, ct, message, p.CommitG, p.CommitAlpha)
	if !c.Equal(p.Challenge) {
		return xerrors.Errorf("decryption challenge mismatch: %w", lib.ErrProofInvalid)
	}

	// z*G == A + c*pk
	left := suite.Point().Mul(p.Response, nil)
	right := suite.Point().Mul(c, public)
	right.Add(p.CommitG, right)
	if !left.Equal(right) {
		return xerrors.Errorf("decryption generator equation: %w", lib.ErrProofInvalid)
	}

	// z*Alpha == B + c*(Beta - message*G)
	left = suite.Point().Mul(p.Response, ct.Alpha)
	right = suite.Point().Mul(c, adjustedBeta(suite, ct, message))
	right.Add(p.CommitAlpha, right)
	if !left.Equal(right) {
		return xerrors.Errorf("decryption key equation: %w", lib.ErrProofInvalid)
	}
	return nil
}

func decryptionChallenge(suite Suite, public kyber.Point, ct *lib.Ciphertext,
	message uint64, A, B kyber.Point) kyber.Scalar {

	return challenge(suite, decryptTag,
		public, ct.Alpha, ct.Beta,
		lib.IntToScalar(suite, message), A, B)
}
