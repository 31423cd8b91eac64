package lib

import (
	"math"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// DlogSolver recovers the exponent m of a group element M = m*G within
// [0, max]. The search is the dominant cost of decryption; the message
// encoding keeps max small by construction, the solver does not.
type DlogSolver interface {
	Solve(group kyber.Group, target kyber.Point, max uint64) (uint64, error)
}

// SolverByName maps a configuration string to a solver implementation.
func SolverByName(name string) (DlogSolver, error) {
	switch name {
	case "", "linear":
		return LinearSolver{}, nil
	case "bsgs":
		return BabyStepGiantStep{}, nil
	default:
		return nil, xerrors.Errorf("unknown dlog solver %q", name)
	}
}

// LinearSolver walks 0*G, 1*G, 2*G, ... by repeated addition until it hits
// the target. O(max) group additions.
type LinearSolver struct{}

// Solve implements DlogSolver.
func (LinearSolver) Solve(group kyber.Group, target kyber.Point, max uint64) (uint64, error) {
	acc := group.Point().Null()
	base := group.Point().Base()
	for m := uint64(0); m <= max; m++ {
		if acc.Equal(target) {
			return m, nil
		}
		acc.Add(acc, base)
	}
	return 0, xerrors.Errorf("linear search up to %d: %w", max, ErrMessageNotFound)
}

// BabyStepGiantStep trades O(sqrt(max)) memory for O(sqrt(max)) time: a
// table of baby steps j*G is probed while the target is walked backwards
// in giant steps of ceil(sqrt(max+1)).
type BabyStepGiantStep struct{}

// Solve implements DlogSolver.
func (BabyStepGiantStep) Solve(group kyber.Group, target kyber.Point, max uint64) (uint64, error) {
	m := uint64(math.Ceil(math.Sqrt(float64(max + 1))))
	if m == 0 {
		m = 1
	}

	babySteps := make(map[string]uint64, m)
	acc := group.Point().Null()
	base := group.Point().Base()
	for j := uint64(0); j < m; j++ {
		key, _ := acc.MarshalBinary()
		babySteps[string(key)] = j
		acc.Add(acc, base)
	}

	// giant = -m*G
	giant := group.Point().Mul(group.Scalar().SetInt64(int64(m)), nil)
	giant.Neg(giant)

	gamma := target.Clone()
	for i := uint64(0); i*m <= max; i++ {
		key, _ := gamma.MarshalBinary()
		if j, ok := babySteps[string(key)]; ok {
			value := i*m + j
			if value <= max {
				return value, nil
			}
		}
		gamma.Add(gamma, giant)
	}
	return 0, xerrors.Errorf("baby-step giant-step up to %d: %w", max, ErrMessageNotFound)
}
