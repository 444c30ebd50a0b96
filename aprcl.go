// Package aprcl implements the APR-CL (Adleman-Pomerance-Rumely-Cohen-
// Lenstra) deterministic primality test. IsPrime is the sole exported
// entry point; every other package under internal/ is a building block
// (cyclotomic ring arithmetic, Jacobi/Gauss sum construction, engine
// decision logic) consumed only from here.
package aprcl

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/takakv/aprcl/internal/bignum"
	"github.com/takakv/aprcl/internal/config"
	"github.com/takakv/aprcl/internal/engine"
)

// Status classifies why IsPrime returned the error it did.
type Status int

const (
	// StatusComposite: n is below 2, has a non-trivial factor, or an
	// engine check equation failed. Terminal — n is not prime.
	StatusComposite Status = iota
	// StatusInconclusive: some λ_p could not be established. IsPrime
	// handles this case by retrying and never returns this status.
	StatusInconclusive
	// StatusHardError: IsPrime reached no verdict — n is negative, the
	// retry schedule was exhausted, or the engine returned an unexpected
	// verdict. The caller cannot conclude PRIME or COMPOSITE from it.
	StatusHardError
)

func (s Status) String() string {
	switch s {
	case StatusComposite:
		return "composite"
	case StatusInconclusive:
		return "inconclusive"
	case StatusHardError:
		return "hard_error"
	default:
		return "unknown"
	}
}

// Error is the single error type IsPrime returns on a non-PRIME
// outcome.
type Error struct {
	Status  Status
	Witness string // human-readable witness: failing cell, divisor, retry budget
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Witness + ": " + e.cause.Error()
	}
	return e.Witness
}

func (e *Error) Unwrap() error { return e.cause }

func newError(status Status, witness string, cause error) *Error {
	return &Error{Status: status, Witness: witness, cause: cause}
}

// retryMultipliers is the Jacobi retry schedule: after the tabulated R
// proves Inconclusive, retry at R scaled by ×2, then ×3, then ×5 (each
// applied to the ORIGINAL tabulated R, not compounded) before giving
// up.
var retryMultipliers = []uint64{2, 3, 5}

// InvariantFailure is the message for a failure that theory guarantees
// cannot happen (e.g. an xgcd inversion inside a ring the caller has
// already established is coprime to n). Nothing in this package panics
// with it: such checks panic where they occur, with their own message
// (internal/cyclotomic's montContext is one).
const InvariantFailure = "aprcl: invariant violated"

// IsPrime reports whether n is prime, using the Jacobi-sum APR-CL
// engine with retries at a progressively larger R. A non-nil error is
// always of dynamic type *Error; callers should type-assert to read
// Status and Witness.
func IsPrime(n *big.Int) (bool, error) {
	logger := log.With().Str("component", "aprcl").Int("bits", n.BitLen()).Logger()

	if n.Sign() < 0 {
		return false, newError(StatusHardError, "n must be non-negative", nil)
	}

	switch {
	case n.Cmp(big.NewInt(2)) < 0:
		return false, newError(StatusComposite, "n < 2 is not prime", nil)
	case n.Cmp(big.NewInt(4)) < 0: // n ∈ {2, 3}
		return true, nil
	}

	if n.Bit(0) == 0 {
		return false, newError(StatusComposite, "n is even", nil)
	}

	cfg := config.NewJacobi(n)

	// The engine reads gcd(p·q, n) != 1 as a composite witness, which is
	// wrong when n is itself one of the primes q | s or p | q-1. Every
	// such prime is at most the largest q any retry uses (5·R+1), so n up
	// to that bound is decided by trial division instead.
	if n.IsUint64() && n.Uint64() <= cfg.R*retryMultipliers[len(retryMultipliers)-1]+1 {
		if bignum.IsPrimeUint(n.Uint64()) {
			return true, nil
		}
		return false, newError(StatusComposite, "n has a small factor", nil)
	}

	verdict := runJacobi(n, cfg, logger)
	if verdict != engine.Inconclusive {
		return verdictResult(verdict)
	}

	for _, mult := range retryMultipliers {
		r := cfg.R * mult
		logger.Debug().Uint64("r", r).Msg("retrying with scaled R")
		retryCfg := config.NewJacobiAtR(r)
		verdict = runJacobi(n, retryCfg, logger)
		if verdict != engine.Inconclusive {
			return verdictResult(verdict)
		}
	}

	return false, newError(StatusHardError, "exhausted retry schedule", errors.Errorf("no R up to %d×tabulated proved every λ_p", retryMultipliers[len(retryMultipliers)-1]))
}

func runJacobi(n *big.Int, cfg *config.Config, logger zerolog.Logger) engine.Verdict {
	logger.Debug().Uint64("r", cfg.R).Msg("running Jacobi engine")
	return engine.Jacobi(n, cfg)
}

func verdictResult(v engine.Verdict) (bool, error) {
	switch v {
	case engine.Proved:
		return true, nil
	case engine.Composite:
		return false, newError(StatusComposite, "engine check failed", nil)
	default:
		return false, newError(StatusHardError, "unexpected verdict", nil)
	}
}
