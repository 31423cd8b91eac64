package lib

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// schnorrTag domain-separates signature challenges from proof challenges.
const schnorrTag = "evoting/schnorr"

// Signature is a Schnorr signature (R, s) bound to exactly one message
// through the challenge c = H(R || message).
type Signature struct {
	R kyber.Point
	S kyber.Scalar
}

// Sign creates a Schnorr signature over msg. The nonce is drawn fresh from
// the suite's random stream on every call; reusing a nonce across two
// signatures leaks the secret key, so there is deliberately no way for a
// caller to supply one.
func Sign(suite Suite, private kyber.Scalar, msg []byte) *Signature {
	nonce, R := RandomKeyPair(suite)
	c := signatureChallenge(suite, R, msg)
	s := suite.Scalar().Mul(c, private)
	s.Add(s, nonce)
	return &Signature{R: R, S: s}
}

// Verify checks a Schnorr signature against a public key and message. It
// returns nil on acceptance and an error wrapping ErrSignatureInvalid
// otherwise.
func Verify(suite Suite, public kyber.Point, msg []byte, sig *Signature) error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return xerrors.Errorf("signature: %w", ErrDecode)
	}
	// Point.Mul treats a nil point as the base point, so a missing key
	// must be rejected before it stands in for the generator.
	if public == nil {
		return xerrors.Errorf("public key: %w", ErrDecode)
	}
	c := signatureChallenge(suite, sig.R, msg)
	// s*G == R + c*pk
	left := suite.Point().Mul(sig.S, nil)
	right := suite.Point().Mul(c, public)
	right.Add(sig.R, right)
	if !left.Equal(right) {
		return xerrors.Errorf("schnorr: %w", ErrSignatureInvalid)
	}
	return nil
}

// Encode serializes the signature into its fixed-size form, R then s.
func (sig *Signature) Encode() []byte {
	rb, _ := sig.R.MarshalBinary()
	sb, _ := sig.S.MarshalBinary()
	return append(rb, sb...)
}

// DecodeSignature reverses Encode, failing with ErrDecode on malformed
// input.
func DecodeSignature(suite Suite, data []byte) (*Signature, error) {
	pointLen := suite.Point().MarshalSize()
	scalarLen := suite.Scalar().MarshalSize()
	if len(data) != pointLen+scalarLen {
		return nil, xerrors.Errorf("signature wants %d bytes, got %d: %w",
			pointLen+scalarLen, len(data), ErrDecode)
	}
	R, err := UnmarshalPoint(suite, data[:pointLen])
	if err != nil {
		return nil, err
	}
	s, err := UnmarshalScalar(suite, data[pointLen:])
	if err != nil {
		return nil, err
	}
	return &Signature{R: R, S: s}, nil
}

func signatureChallenge(suite Suite, R kyber.Point, msg []byte) kyber.Scalar {
	h := suite.Hash()
	h.Write([]byte(schnorrTag))
	R.MarshalTo(h)
	h.Write(msg)
	return suite.Scalar().SetBytes(h.Sum(nil))
}
