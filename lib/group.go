package lib

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// Suite groups the capabilities the election primitives need: the
// prime-order group, a hash factory for Fiat-Shamir challenges and a
// cryptographically secure random stream. The Ed25519 suite of
// go.dedis.ch/kyber/v3/suites satisfies it.
type Suite interface {
	kyber.Group
	kyber.HashFactory
	kyber.Random
}

// RandomKeyPair creates a random key pair with a secret scalar in [1,q).
// Signing and encryption keys share this constructor but must never be
// reused across the two roles.
func RandomKeyPair(suite Suite) (secret kyber.Scalar, public kyber.Point) {
	zero := suite.Scalar().Zero()
	secret = suite.Scalar().Pick(suite.RandomStream())
	for secret.Equal(zero) {
		secret = suite.Scalar().Pick(suite.RandomStream())
	}
	public = suite.Point().Mul(secret, nil)
	return
}

// UnmarshalPoint decodes a group element from its fixed-size encoding.
func UnmarshalPoint(suite Suite, data []byte) (kyber.Point, error) {
	point := suite.Point()
	if len(data) != point.MarshalSize() {
		return nil, xerrors.Errorf("point wants %d bytes, got %d: %w",
			point.MarshalSize(), len(data), ErrDecode)
	}
	if err := point.UnmarshalBinary(data); err != nil {
		return nil, xerrors.Errorf("point: %v: %w", err, ErrDecode)
	}
	return point, nil
}

// UnmarshalScalar decodes a scalar from its fixed-size encoding.
func UnmarshalScalar(suite Suite, data []byte) (kyber.Scalar, error) {
	scalar := suite.Scalar()
	if len(data) != scalar.MarshalSize() {
		return nil, xerrors.Errorf("scalar wants %d bytes, got %d: %w",
			scalar.MarshalSize(), len(data), ErrDecode)
	}
	if err := scalar.UnmarshalBinary(data); err != nil {
		return nil, xerrors.Errorf("scalar: %v: %w", err, ErrDecode)
	}
	return scalar, nil
}
