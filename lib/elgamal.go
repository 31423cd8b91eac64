package lib

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// Ciphertext is an ElGamal encryption with the plaintext in the exponent:
// Alpha = r*G, Beta = r*pk + m*G. Adding two ciphertexts component-wise
// yields an encryption of the sum of their plaintexts.
type Ciphertext struct {
	Alpha kyber.Point
	Beta  kyber.Point
}

// NewCiphertext returns the identity ciphertext, an encryption of zero
// under any key. It is the neutral element of Add.
func NewCiphertext(suite Suite) *Ciphertext {
	return &Ciphertext{
		Alpha: suite.Point().Null(),
		Beta:  suite.Point().Null(),
	}
}

// Encrypt encrypts the small integer message under public. The message
// must stay below max, the bound later handed to the decryption search.
// The encryption randomness is returned to the caller: the voter needs it
// to prove well-formedness, and it must never be transmitted.
func Encrypt(suite Suite, public kyber.Point, message, max uint64) (*Ciphertext, kyber.Scalar, error) {
	if message >= max {
		return nil, nil, xerrors.Errorf(
			"message %d outside recoverable range [0,%d)", message, max)
	}
	r, alpha := RandomKeyPair(suite)
	beta := suite.Point().Mul(r, public)
	beta.Add(beta, suite.Point().Mul(IntToScalar(suite, message), nil))
	return &Ciphertext{Alpha: alpha, Beta: beta}, r, nil
}

// Decrypt strips the shared secret off the ciphertext and recovers the
// plaintext by a bounded discrete-log search over [0, max]. It fails with
// ErrMessageNotFound when the search bound is exhausted.
func Decrypt(suite Suite, private kyber.Scalar, ct *Ciphertext, max uint64, solver DlogSolver) (uint64, error) {
	M := suite.Point().Mul(private, ct.Alpha)
	M.Sub(ct.Beta, M)
	return solver.Solve(suite, M, max)
}

// Add sets c to the component-wise sum of a and b and returns c. Both
// operands must be encrypted under the same public key for the result to
// be meaningful.
func (c *Ciphertext) Add(a, b *Ciphertext) *Ciphertext {
	c.Alpha = a.Alpha.Clone().Add(a.Alpha, b.Alpha)
	c.Beta = a.Beta.Clone().Add(a.Beta, b.Beta)
	return c
}

// Encode serializes the ciphertext into its fixed-size form, Alpha then
// Beta.
func (c *Ciphertext) Encode() []byte {
	ab, _ := c.Alpha.MarshalBinary()
	bb, _ := c.Beta.MarshalBinary()
	return append(ab, bb...)
}

// DecodeCiphertext reverses Encode, failing with ErrDecode on malformed
// input.
func DecodeCiphertext(suite Suite, data []byte) (*Ciphertext, error) {
	pointLen := suite.Point().MarshalSize()
	if len(data) != 2*pointLen {
		return nil, xerrors.Errorf("ciphertext wants %d bytes, got %d: %w",
			2*pointLen, len(data), ErrDecode)
	}
	alpha, err := UnmarshalPoint(suite, data[:pointLen])
	if err != nil {
		return nil, err
	}
	beta, err := UnmarshalPoint(suite, data[pointLen:])
	if err != nil {
		return nil, err
	}
	return &Ciphertext{Alpha: alpha, Beta: beta}, nil
}

// IntToScalar lifts the full uint64 range into the scalar field; a plain
// SetInt64 cast would flip the sign for values with the top bit set.
func IntToScalar(group kyber.Group, v uint64) kyber.Scalar {
	s := group.Scalar().SetInt64(int64(v >> 1))
	s.Add(s, s)
	if v&1 == 1 {
		s.Add(s, group.Scalar().One())
	}
	return s
}
