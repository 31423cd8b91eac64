package sigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

var voteEncodings = []uint64{1, 10, 100}

func encryptVote(t *testing.T, public kyber.Point, m uint64) (*lib.Ciphertext, kyber.Scalar) {
	ct, r, err := lib.Encrypt(testSuite, public, m, 1000)
	require.NoError(t, err)
	return ct, r
}

func TestVoteProof(t *testing.T) {
	_, public := lib.RandomKeyPair(testSuite)

	for _, m := range voteEncodings {
		ct, r := encryptVote(t, public, m)
		proof, err := ProveVote(testSuite, public, ct, m, r, voteEncodings)
		require.NoError(t, err)
		assert.NoError(t, proof.Verify(testSuite, public, ct, voteEncodings))
	}
}

func TestVoteProofInvalidWitness(t *testing.T) {
	_, public := lib.RandomKeyPair(testSuite)

	// 5 is not an allowed encoding: no transcript may be produced.
	ct, r := encryptVote(t, public, 5)
	_, err := ProveVote(testSuite, public, ct, 5, r, voteEncodings)
	assert.True(t, xerrors.Is(err, lib.ErrInvalidWitness))

	// Claiming an allowed encoding with randomness that does not open the
	// ciphertext must fail too.
	ct, _ = encryptVote(t, public, 10)
	badR, _ := lib.RandomKeyPair(testSuite)
	_, err = ProveVote(testSuite, public, ct, 10, badR, voteEncodings)
	assert.True(t, xerrors.Is(err, lib.ErrInvalidWitness))
}

func TestVoteProofWrongStatement(t *testing.T) {
	_, public := lib.RandomKeyPair(testSuite)

	ct, r := encryptVote(t, public, 10)
	proof, err := ProveVote(testSuite, public, ct, 10, r, voteEncodings)
	require.NoError(t, err)

	other, _ := encryptVote(t, public, 10)
	err = proof.Verify(testSuite, public, other, voteEncodings)
	assert.True(t, xerrors.Is(err, lib.ErrProofInvalid))

	_, otherKey := lib.RandomKeyPair(testSuite)
	err = proof.Verify(testSuite, otherKey, ct, voteEncodings)
	assert.True(t, xerrors.Is(err, lib.ErrProofInvalid))
}

// Tampering with any single transcript field must make verification fail.
func TestVoteProofTamper(t *testing.T) {
	_, public := lib.RandomKeyPair(testSuite)

	ct, r := encryptVote(t, public, 100)
	proof, err := ProveVote(testSuite, public, ct, 100, r, voteEncodings)
	require.NoError(t, err)

	one := testSuite.Scalar().One()
	shift := testSuite.Point().Base()

	for i := range voteEncodings {
		tampered := cloneVoteProof(proof)
		tampered.CommitsA[i] = testSuite.Point().Add(proof.CommitsA[i], shift)
		assert.Error(t, tampered.Verify(testSuite, public, ct, voteEncodings), "commitA %d", i)

		tampered = cloneVoteProof(proof)
		tampered.CommitsB[i] = testSuite.Point().Add(proof.CommitsB[i], shift)
		assert.Error(t, tampered.Verify(testSuite, public, ct, voteEncodings), "commitB %d", i)

		tampered = cloneVoteProof(proof)
		tampered.Challenges[i] = testSuite.Scalar().Add(proof.Challenges[i], one)
		assert.Error(t, tampered.Verify(testSuite, public, ct, voteEncodings), "challenge %d", i)

		tampered = cloneVoteProof(proof)
		tampered.Responses[i] = testSuite.Scalar().Add(proof.Responses[i], one)
		assert.Error(t, tampered.Verify(testSuite, public, ct, voteEncodings), "response %d", i)
	}
}

func TestVoteProofMalformed(t *testing.T) {
	_, public := lib.RandomKeyPair(testSuite)
	ct, r := encryptVote(t, public, 1)
	proof, err := ProveVote(testSuite, public, ct, 1, r, voteEncodings)
	require.NoError(t, err)

	truncated := cloneVoteProof(proof)
	truncated.Responses = truncated.Responses[:2]
	assert.True(t, xerrors.Is(
		truncated.Verify(testSuite, public, ct, voteEncodings), lib.ErrDecode))

	var nilProof *VoteProof
	assert.True(t, xerrors.Is(
		nilProof.Verify(testSuite, public, ct, voteEncodings), lib.ErrDecode))

	// An incomplete statement is rejected the same way.
	assert.True(t, xerrors.Is(
		proof.Verify(testSuite, public, nil, voteEncodings), lib.ErrDecode))
	assert.True(t, xerrors.Is(
		proof.Verify(testSuite, nil, ct, voteEncodings), lib.ErrDecode))
}

func cloneVoteProof(p *VoteProof) *VoteProof {
	clone := &VoteProof{
		CommitsA:   append([]kyber.Point{}, p.CommitsA...),
		CommitsB:   append([]kyber.Point{}, p.CommitsB...),
		Challenges: append([]kyber.Scalar{}, p.Challenges...),
		Responses:  append([]kyber.Scalar{}, p.Responses...),
	}
	return clone
}
