package evoting

import (
	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"go.dedis.ch/evoting/lib"
)

// Config describes an election: the candidate slots, the digit base of the
// tally encoding and the discrete-log solver used during decryption.
type Config struct {
	// Candidates lists the candidate names; candidate i is encoded as
	// Base^i.
	Candidates []string
	// Base is the digit base of the tally encoding. Every per-candidate
	// count must stay below it or the tally silently corrupts.
	Base uint64
	// Solver selects the discrete-log search: "linear" or "bsgs".
	Solver string
}

// DefaultConfig is the three-candidate reference election with decimal
// digits and the linear solver.
func DefaultConfig() Config {
	return Config{
		Candidates: []string{"Alice", "Bob", "Charlie"},
		Base:       10,
		Solver:     "linear",
	}
}

// LoadConfig reads a TOML election configuration, filling absent fields
// from the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, xerrors.Errorf("reading config %s: %v", path, err)
	}
	if err := cfg.valid(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encodings returns the valid vote encodings, one disjoint digit slot per
// candidate: Base^0, Base^1, ...
func (c Config) Encodings() []uint64 {
	encodings := make([]uint64, len(c.Candidates))
	value := uint64(1)
	for i := range encodings {
		encodings[i] = value
		value *= c.Base
	}
	return encodings
}

// MaxTally is the decryption search bound: the largest digit-encoded sum
// the tally can reach before a slot overflows, Base^candidates - 1.
func (c Config) MaxTally() uint64 {
	max := uint64(1)
	for range c.Candidates {
		max *= c.Base
	}
	return max - 1
}

// DecodeTally decomposes a digit-encoded sum into per-candidate counts.
// The decomposition is only faithful while every count stayed below Base.
func (c Config) DecodeTally(sum uint64) []uint64 {
	tally := make([]uint64, len(c.Candidates))
	for i := range tally {
		tally[i] = sum % c.Base
		sum /= c.Base
	}
	return tally
}

func (c Config) valid() error {
	if len(c.Candidates) == 0 {
		return xerrors.New("config: no candidates")
	}
	if c.Base < 2 {
		return xerrors.Errorf("config: base %d too small", c.Base)
	}
	// MaxTally must stay within the bounded-dlog comfort zone; the digit
	// encoding, not the solver, is what keeps searches small.
	if c.MaxTally() > 1<<20 {
		return xerrors.Errorf("config: %d candidates in base %d exceed the tally search bound",
			len(c.Candidates), c.Base)
	}
	if _, err := lib.SolverByName(c.Solver); err != nil {
		return err
	}
	return nil
}
