package evoting

import (
	"go.dedis.ch/onet/v3/network"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

// Wire encoding of the containers. Persistence and transport are external
// concerns; whatever carries these bytes must deliver them unmodified or
// the signature and proof hashes stop verifying.

// Marshal encodes the ballot for transmission.
func (b *Ballot) Marshal() ([]byte, error) {
	data, err := protobuf.Encode(b)
	if err != nil {
		return nil, xerrors.Errorf("encoding ballot: %v", err)
	}
	return data, nil
}

// UnmarshalBallot decodes a ballot, failing with ErrDecode on malformed
// input.
func UnmarshalBallot(data []byte) (*Ballot, error) {
	ballot := &Ballot{}
	err := protobuf.DecodeWithConstructors(data, ballot, network.DefaultConstructors(Suite))
	if err != nil {
		return nil, xerrors.Errorf("decoding ballot: %v: %w", err, lib.ErrDecode)
	}
	// protobuf leaves absent pointer fields nil instead of erroring.
	if !completeCiphertext(ballot.Ciphertext) || ballot.Signature == nil ||
		ballot.Proof == nil || ballot.VoterKey == nil {
		return nil, xerrors.Errorf("ballot misses required fields: %w", lib.ErrDecode)
	}
	return ballot, nil
}

// Marshal encodes the result for transmission to a verifier.
func (r *Result) Marshal() ([]byte, error) {
	data, err := protobuf.Encode(r)
	if err != nil {
		return nil, xerrors.Errorf("encoding result: %v", err)
	}
	return data, nil
}

// UnmarshalResult decodes a result, failing with ErrDecode on malformed
// input.
func UnmarshalResult(data []byte) (*Result, error) {
	result := &Result{}
	err := protobuf.DecodeWithConstructors(data, result, network.DefaultConstructors(Suite))
	if err != nil {
		return nil, xerrors.Errorf("decoding result: %v: %w", err, lib.ErrDecode)
	}
	if result.Key == nil || result.KeyProof == nil ||
		!completeCiphertext(result.Aggregate) || result.Proof == nil {
		return nil, xerrors.Errorf("result misses required fields: %w", lib.ErrDecode)
	}
	return result, nil
}

func completeCiphertext(ct *lib.Ciphertext) bool {
	return ct != nil && ct.Alpha != nil && ct.Beta != nil
}
