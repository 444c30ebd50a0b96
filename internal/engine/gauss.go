package engine

import (
	"math/big"

	"github.com/takakv/aprcl/internal/bignum"
	"github.com/takakv/aprcl/internal/config"
	"github.com/takakv/aprcl/internal/cyclogauss"
	"github.com/takakv/aprcl/internal/cyclotomic"
	"github.com/takakv/aprcl/internal/findiv"
	"github.com/takakv/aprcl/internal/gausssum"
)

// differByPUnity searches for i in [0, r) such that tauSigma * ζ_r^i =
// tauN, avoiding any need for a ring inverse (n's primality, and hence
// invertibility mod n, is exactly what is being decided). Returns -1 if
// no such i exists.
func differByPUnity(tauN, tauSigma *cyclogauss.Element, r uint64) int64 {
	candidate := new(cyclogauss.Element)
	for i := uint64(0); i < r; i++ {
		candidate.MulUnityPPow(tauSigma, i)
		if candidate.Equal(tauN) {
			return int64(i)
		}
	}
	return -1
}

// Gauss runs the Gauss-sum variant of APR-CL for modulus n at
// configuration cfg: for each prime power p^k dividing q-1, it recovers
// i such that τ^n = σ(τ) * ζ_{p^k}^i and establishes λ_p whenever i
// generates ⟨ζ_{p^k}⟩.
func Gauss(n *big.Int, cfg *config.Config) Verdict {
	lambda := make(map[uint64]bool)
	primes := make(map[uint64]bool)

	nMod4 := new(big.Int).Mod(n, big.NewInt(4)).Uint64()

	for _, qf := range cfg.Qs {
		q := qf.Prime
		factors := bignum.FactorUint(q - 1)

		for _, pf := range factors {
			p := pf.Prime
			primes[p] = true

			for k := uint64(1); k <= pf.Exp; k++ {
				r := cyclotomic.IPow(p, k)

				if !mulCoprime(q, r, n) {
					return Composite
				}

				tau := gausssum.CharacterPow(q, r, 1, n)
				tauSigma := gausssum.SigmaPow(q, r, n)
				tauN := new(cyclogauss.Element)
				tauN.Pow(tau, n)

				i := differByPUnity(tauN, tauSigma, r)
				if i < 0 {
					return Composite
				}

				switch {
				case p == 2 && nMod4 == 1:
					// χ(-1) = -1 identically for any character of
					// even order, so this case reduces to the same
					// (-q)^((n-1)/2) ≡ -1 test as check21.
					ok, setLambda := check21(n, q)
					if !ok {
						return Composite
					}
					if setLambda {
						lambda[2] = true
					}

				case p == 2:
					if qPowHalfIsMinusOne(n, q) && cyclogauss.IsPUnityGenerator(uint64(i), r) {
						lambda[2] = true
					}

				default:
					if cyclogauss.IsPUnityGenerator(uint64(i), r) {
						lambda[p] = true
					}
				}
			}
		}
	}

	for p := range primes {
		if !lambda[p] {
			return Inconclusive
		}
	}

	if !findiv.Check(n, cfg.S, cfg.R) {
		return Composite
	}
	return Proved
}
