package lib

import "errors"

// The error kinds of the election core. Each failure returned by this
// module wraps exactly one of them, so callers can branch with xerrors.Is.
var (
	// ErrDecode signals a malformed serialized group element, scalar,
	// signature, ciphertext or proof transcript. Always recoverable by
	// rejecting the input.
	ErrDecode = errors.New("malformed encoding")

	// ErrSignatureInvalid signals a failed signature verification. The
	// aggregator recovers by excluding the ballot.
	ErrSignatureInvalid = errors.New("invalid signature")

	// ErrProofInvalid signals a failed Sigma-proof verification. The
	// aggregator recovers by excluding the ballot.
	ErrProofInvalid = errors.New("invalid proof")

	// ErrMessageNotFound signals that the discrete-log recovery exhausted
	// its search bound: either the plaintext exceeded the encoding's
	// capacity or the wrong key was used. Fatal to that decryption.
	ErrMessageNotFound = errors.New("plaintext not found within search bound")

	// ErrInvalidWitness signals an attempt to prove a statement the prover
	// cannot satisfy. Provers fail with it before emitting any transcript.
	ErrInvalidWitness = errors.New("witness does not satisfy the statement")
)
