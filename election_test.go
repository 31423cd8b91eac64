package evoting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

func runToVoting(t *testing.T, cfg Config) *Election {
	election, err := NewElection(Suite, cfg)
	require.NoError(t, err)
	require.NoError(t, election.GenerateKeys())
	return election
}

func TestElectionRun(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)

	// Three voters: Alice, Bob, Alice.
	for _, choice := range []int{0, 1, 0} {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, choice)))
	}

	require.NoError(t, election.Aggregate())
	assert.Equal(t, 3, election.Accepted)

	require.NoError(t, election.DecryptAndProve())
	assert.Equal(t, []uint64{2, 1, 0}, election.Tally)

	require.NoError(t, election.VerifyResult())
	assert.Equal(t, Verified, election.Stage())
}

func TestElectionRejectsForgedBallot(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)

	for _, choice := range []int{0, 1, 0} {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, choice)))
	}

	// A forged ballot: honestly signed, but its ciphertext is copied and
	// comes without a valid well-formedness proof.
	forgerKey, _ := lib.RandomKeyPair(Suite)
	forged := &Ballot{
		Ciphertext: election.Box.Ballots[0].Ciphertext,
		Proof:      castBallot(t, election.Key, cfg, 2).Proof,
		VoterKey:   Suite.Point().Mul(forgerKey, nil),
	}
	forged.Signature = lib.Sign(Suite, forgerKey, forged.Digest(Suite))
	require.NoError(t, election.Cast(forged))

	require.NoError(t, election.Aggregate())
	assert.Equal(t, 3, election.Accepted)
	assert.False(t, election.Validity[3].Accepted())

	require.NoError(t, election.DecryptAndProve())
	assert.Equal(t, []uint64{2, 1, 0}, election.Tally)
	require.NoError(t, election.VerifyResult())
}

func TestElectionPhases(t *testing.T) {
	cfg := DefaultConfig()
	election, err := NewElection(Suite, cfg)
	require.NoError(t, err)

	// Nothing but key generation is allowed before keys exist.
	assert.Error(t, election.Aggregate())
	assert.Error(t, election.DecryptAndProve())
	assert.Error(t, election.VerifyResult())

	require.NoError(t, election.GenerateKeys())
	assert.Error(t, election.GenerateKeys()) // no phase is re-entrant

	require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, 1)))
	require.NoError(t, election.Aggregate())
	assert.Error(t, election.Cast(castBallot(t, election.Key, cfg, 1)))
	assert.Error(t, election.Aggregate())

	require.NoError(t, election.DecryptAndProve())
	assert.Error(t, election.DecryptAndProve())

	require.NoError(t, election.VerifyResult())
	assert.Error(t, election.VerifyResult())
}

// The digit encoding holds per-candidate counts below the base; flooding
// one slot silently corrupts the tally. Documented limitation, not a
// runtime check.
func TestElectionDigitOverflow(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)

	// Ten votes for Alice overflow her decimal digit.
	for i := 0; i < 10; i++ {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, 0)))
	}
	require.NoError(t, election.Aggregate())
	require.NoError(t, election.DecryptAndProve())

	// The sum 10 decodes as one vote for Bob and none for Alice.
	assert.Equal(t, []uint64{0, 1, 0}, election.Tally)

	// The decryption proof still verifies: the corruption is in the
	// encoding, not the cryptography.
	require.NoError(t, election.VerifyResult())
}

func TestElectionSolverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = "bsgs"
	election := runToVoting(t, cfg)

	for _, choice := range []int{2, 2, 1} {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, choice)))
	}
	require.NoError(t, election.Aggregate())
	require.NoError(t, election.DecryptAndProve())
	assert.Equal(t, []uint64{0, 1, 2}, election.Tally)
}

func TestResultRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)
	for _, choice := range []int{0, 1, 2} {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, choice)))
	}
	require.NoError(t, election.Aggregate())
	require.NoError(t, election.DecryptAndProve())

	// A verifier without any secret key checks the transmitted result.
	result0, err := election.Result()
	require.NoError(t, err)
	data, err := result0.Marshal()
	require.NoError(t, err)
	result, err := UnmarshalResult(data)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 1, 1}, result.Tally)
	assert.NoError(t, result.Verify(Suite))

	_, err = UnmarshalResult(data[:9])
	assert.Error(t, err)
}

func TestBallotRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)
	ballot := castBallot(t, election.Key, cfg, 1)

	data, err := ballot.Marshal()
	require.NoError(t, err)
	decoded, err := UnmarshalBallot(data)
	require.NoError(t, err)

	// The decoded ballot still verifies: transport preserved the bytes
	// entering the signature and proof hashes.
	require.NoError(t, lib.Verify(Suite, decoded.VoterKey, decoded.Digest(Suite), decoded.Signature))
	require.NoError(t, decoded.Proof.Verify(Suite, election.Key, decoded.Ciphertext, cfg.Encodings()))
}

func TestUnmarshalBallotMissingFields(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)
	ballot := castBallot(t, election.Key, cfg, 0)

	// Pointer fields are optional on the wire; a ballot stripped of its
	// ciphertext still encodes and must be rejected at decode time.
	ballot.Ciphertext = nil
	data, err := ballot.Marshal()
	require.NoError(t, err)
	_, err = UnmarshalBallot(data)
	assert.True(t, xerrors.Is(err, lib.ErrDecode))
}

func TestUnmarshalResultMissingFields(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)
	for _, choice := range []int{0, 1} {
		require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, choice)))
	}
	require.NoError(t, election.Aggregate())
	require.NoError(t, election.DecryptAndProve())

	result, err := election.Result()
	require.NoError(t, err)
	result.Aggregate = nil
	data, err := result.Marshal()
	require.NoError(t, err)
	_, err = UnmarshalResult(data)
	assert.True(t, xerrors.Is(err, lib.ErrDecode))

	// A hollow result handed straight to the verifier errors instead of
	// crashing.
	assert.Error(t, result.Verify(Suite))
}

func TestResultBeforeDecryption(t *testing.T) {
	cfg := DefaultConfig()
	election := runToVoting(t, cfg)
	require.NoError(t, election.Cast(castBallot(t, election.Key, cfg, 0)))

	_, err := election.Result()
	assert.Error(t, err)
	require.NoError(t, election.Aggregate())
	_, err = election.Result()
	assert.Error(t, err)

	require.NoError(t, election.DecryptAndProve())
	result, err := election.Result()
	require.NoError(t, err)
	assert.NoError(t, result.Verify(Suite))
}
