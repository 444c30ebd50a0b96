// Package config selects the smooth parameter pair (R, s) that drives
// an APR-CL run, grounded on
// original_source/aprcl/config.c, config_jacobi.c and config_gauss.c.
package config

import (
	"math/big"

	"github.com/takakv/aprcl/internal/bignum"
)

// Config holds the smooth selection (R, s = Π q^(e_q)) for one APR-CL
// run: R is chosen so that s^2 > n, and s is the product, over primes q
// with (q-1) | R, of q raised to its multiplicity in the factorization
// used by the active flavor.
type Config struct {
	R  uint64
	S  *big.Int
	Qs []bignum.PrimeFactor // prime power factors making up s
	Rs []bignum.PrimeFactor // factorization of R itself
}

// rValueTable mirrors _R_value: the smallest tabulated R (a smooth,
// highly-composite number) sufficient for the given bit length of n.
// Entries past the table's range use the largest tabulated R.
var rValueTable = []struct {
	maxBits uint64
	r       uint64
}{
	{101, 180},
	{152, 720},
	{204, 1260},
	{268, 2520},
	{344, 5040},
	{525, 27720},
	{774, 98280},
	{1035, 166320},
	{1566, 720720},
	{2082, 1663200},
	{3491, 8648640},
}

// rValue returns _R_value(n).
func rValue(n *big.Int) uint64 {
	bits := uint64(n.BitLen())
	for _, e := range rValueTable {
		if bits <= e.maxBits {
			return e.r
		}
	}
	return 6983776800
}

// powerInDividing returns the largest k such that prime^k divides m,
// mirroring p_power_in_q.c.
func powerInDividing(m, prime uint64) uint64 {
	k := uint64(0)
	for m%prime == 0 {
		m /= prime
		k++
	}
	return k
}

// jacobiUpdate builds s for the Jacobi flavor, per _jacobi_config_update:
// 2 gets exponent p_power_in_q(R,2)+2, every other prime q with
// (q-1)|R gets exponent p_power_in_q(R,q)+1, and R+1 itself (if prime)
// is folded in with exponent 1.
func jacobiUpdate(r uint64) (s *big.Int, qs []bignum.PrimeFactor) {
	s = big.NewInt(1)

	e2 := powerInDividing(r, 2) + 2
	qs = append(qs, bignum.PrimeFactor{Prime: 2, Exp: e2})
	s.Mul(s, new(big.Int).Exp(big.NewInt(2), new(big.Int).SetUint64(e2), nil))

	prime := uint64(3)
	for 2*(prime-1) <= r {
		if r%(prime-1) == 0 {
			e := powerInDividing(r, prime) + 1
			qs = append(qs, bignum.PrimeFactor{Prime: prime, Exp: e})
			s.Mul(s, new(big.Int).Exp(new(big.Int).SetUint64(prime), new(big.Int).SetUint64(e), nil))
		}
		prime = bignum.NextPrimeUint(prime)
	}

	if bignum.IsPrimeUint(r + 1) {
		qs = append(qs, bignum.PrimeFactor{Prime: r + 1, Exp: 1})
		s.Mul(s, new(big.Int).SetUint64(r+1))
	}
	return s, qs
}

// gaussUpdate builds s for the Gauss flavor, per _config_gauss_update:
// every prime q (including 2) with (q-1)|R and 2(q-1) <= R contributes
// exactly one factor of q; R+1 itself is therefore never included.
func gaussUpdate(r uint64) (s *big.Int, qs []bignum.PrimeFactor) {
	s = big.NewInt(1)
	prime := uint64(2)
	for 2*(prime-1) <= r {
		if r%(prime-1) == 0 {
			qs = append(qs, bignum.PrimeFactor{Prime: prime, Exp: 1})
			s.Mul(s, new(big.Int).SetUint64(prime))
		}
		prime = bignum.NextPrimeUint(prime)
	}
	return s, qs
}

// NewJacobi builds the Jacobi-flavor configuration for n: R is looked
// up from the tabulated smooth values, per jacobi_config_init.
func NewJacobi(n *big.Int) *Config {
	return NewJacobiAtR(rValue(n))
}

// NewJacobiAtR builds the Jacobi-flavor configuration at an explicit R,
// bypassing the tabulated lookup. IsPrime's retry schedule (scale R by
// ×2, ×3, ×5 on an Inconclusive verdict) uses this directly instead of
// re-deriving R from n's bit length.
func NewJacobiAtR(r uint64) *Config {
	s, qs := jacobiUpdate(r)
	return &Config{R: r, S: s, Qs: qs, Rs: bignum.FactorUint(r)}
}

// NewGauss builds the Gauss-flavor configuration for n: R grows one
// step at a time, starting from minR-1, until s^2 > n, per
// config_gauss_init / config_gauss_init_min_R. minR=1 reproduces
// config_gauss_init's unconstrained search.
func NewGauss(n *big.Int, minR uint64) *Config {
	if minR == 0 {
		minR = 1
	}
	r := minR - 1
	var s *big.Int
	var qs []bignum.PrimeFactor
	s2 := big.NewInt(0)
	for s2.Cmp(n) <= 0 {
		r++
		s, qs = gaussUpdate(r)
		s2 = new(big.Int).Mul(s, s)
	}
	return &Config{R: r, S: s, Qs: qs, Rs: bignum.FactorUint(r)}
}
