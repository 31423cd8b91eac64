package evoting

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
	"go.dedis.ch/evoting/sigma"
)

// Stage is the phase an election is in. Phases advance strictly forward
// and no phase is re-entrant.
type Stage uint32

const (
	// KeyGen depicts that the election keys are not yet generated.
	KeyGen Stage = iota + 1
	// Voting depicts that the election is open for ballot casting.
	Voting
	// Aggregated depicts that the ballots have been verified and summed.
	Aggregated
	// Decrypted depicts that the tally has been decrypted and proven.
	Decrypted
	// Verified depicts that the result proofs have been checked.
	Verified
)

// Election sequences key generation, voting, aggregation, decryption and
// result verification. It is the only stateful coordinator of the module;
// a single phase mutates it at a time.
type Election struct {
	cfg    Config
	suite  lib.Suite
	solver lib.DlogSolver
	stage  Stage

	// Key is the election public key under which all votes are encrypted.
	Key kyber.Point
	// secret is the manager's decryption key. It never leaves this
	// process boundary and is distinct from any signing key.
	secret kyber.Scalar
	// KeyProof shows the manager knows the secret behind Key.
	KeyProof *sigma.DlogProof

	// Box gathers the cast ballots in order.
	Box *Box
	// Sum, Accepted and Validity are set by Aggregate.
	Sum      *lib.Ciphertext
	Accepted int
	Validity []BallotValidity
	// Decrypted, Tally and DecProof are set by DecryptAndProve.
	Decrypted uint64
	Tally     []uint64
	DecProof  *sigma.DecryptionProof
}

// NewElection creates an election for the given configuration, ready for
// key generation.
func NewElection(suite lib.Suite, cfg Config) (*Election, error) {
	if err := cfg.valid(); err != nil {
		return nil, err
	}
	solver, err := lib.SolverByName(cfg.Solver)
	if err != nil {
		return nil, err
	}
	return &Election{
		cfg:    cfg,
		suite:  suite,
		solver: solver,
		stage:  KeyGen,
		Box:    &Box{},
	}, nil
}

// Stage returns the current phase.
func (e *Election) Stage() Stage {
	return e.stage
}

// Config returns the election configuration.
func (e *Election) Config() Config {
	return e.cfg
}

// GenerateKeys creates the election key pair and the proof that the
// manager knows the secret key, then opens the election for voting.
func (e *Election) GenerateKeys() error {
	if err := e.expect(KeyGen); err != nil {
		return err
	}
	e.secret, e.Key = lib.RandomKeyPair(e.suite)
	proof, err := sigma.ProveDlog(e.suite, e.secret, e.Key)
	if err != nil {
		return err
	}
	e.KeyProof = proof
	e.stage = Voting
	log.Lvl2("election key generated, voting open")
	return nil
}

// Cast appends a ballot. Ballots are only checked during aggregation;
// casting is independent across voters and free of shared state.
func (e *Election) Cast(ballot *Ballot) error {
	if err := e.expect(Voting); err != nil {
		return err
	}
	e.Box.Ballots = append(e.Box.Ballots, ballot)
	return nil
}

// Aggregate closes the voting phase, verifies every ballot and sums the
// accepted ciphertexts.
func (e *Election) Aggregate() error {
	if err := e.expect(Voting); err != nil {
		return err
	}
	e.Sum, e.Accepted, e.Validity = e.Box.Aggregate(e.suite, e.Key, e.cfg.Encodings())
	e.stage = Aggregated
	return nil
}

// DecryptAndProve decrypts the aggregated ciphertext, decomposes the
// digit-encoded sum into per-candidate counts and proves the decryption
// correct over the same ciphertext and recovered message.
func (e *Election) DecryptAndProve() error {
	if err := e.expect(Aggregated); err != nil {
		return err
	}
	decrypted, err := lib.Decrypt(e.suite, e.secret, e.Sum, e.cfg.MaxTally(), e.solver)
	if err != nil {
		return err
	}
	proof, err := sigma.ProveDecryption(e.suite, e.secret, e.Key, e.Sum, decrypted)
	if err != nil {
		return err
	}
	e.Decrypted = decrypted
	e.Tally = e.cfg.DecodeTally(decrypted)
	e.DecProof = proof
	e.stage = Decrypted
	log.Lvl2("tally decrypted:", e.Tally)
	return nil
}

// VerifyResult re-runs the proof verifications on the published result.
// It never re-derives the tally; trust rests on the proofs alone.
func (e *Election) VerifyResult() error {
	if err := e.expect(Decrypted); err != nil {
		return err
	}
	result, err := e.Result()
	if err != nil {
		return err
	}
	if err := result.Verify(e.suite); err != nil {
		return err
	}
	e.stage = Verified
	return nil
}

// Result exports the publicly verifiable outcome. Only available once the
// tally is decrypted.
func (e *Election) Result() (*Result, error) {
	if e.stage < Decrypted {
		return nil, xerrors.Errorf("election in stage %d, result needs stage %d",
			e.stage, Decrypted)
	}
	return &Result{
		Key:       e.Key,
		KeyProof:  e.KeyProof,
		Aggregate: e.Sum,
		Decrypted: e.Decrypted,
		Tally:     e.Tally,
		Proof:     e.DecProof,
	}, nil
}

func (e *Election) expect(stage Stage) error {
	if e.stage != stage {
		return xerrors.Errorf("election in stage %d, operation needs stage %d", e.stage, stage)
	}
	return nil
}

// NewBallot is the voter side of the protocol: it encodes the chosen
// candidate into its digit slot, encrypts it under the election key, signs
// the ciphertext digest with the voter's signing key and proves the
// ciphertext well-formed.
func NewBallot(suite lib.Suite, signingKey kyber.Scalar, electionKey kyber.Point,
	cfg Config, choice int) (*Ballot, error) {

	if choice < 0 || choice >= len(cfg.Candidates) {
		return nil, xerrors.Errorf("choice %d outside candidates [0,%d)",
			choice, len(cfg.Candidates))
	}
	encoding := cfg.Encodings()[choice]

	ct, r, err := lib.Encrypt(suite, electionKey, encoding, cfg.MaxTally()+1)
	if err != nil {
		return nil, err
	}
	proof, err := sigma.ProveVote(suite, electionKey, ct, encoding, r, cfg.Encodings())
	if err != nil {
		return nil, err
	}

	ballot := &Ballot{
		Ciphertext: ct,
		Proof:      proof,
		VoterKey:   suite.Point().Mul(signingKey, nil),
	}
	ballot.Signature = lib.Sign(suite, signingKey, ballot.Digest(suite))
	return ballot, nil
}
