// Package bignum provides arbitrary-precision arithmetic and the small
// set of number-theoretic helpers (primitive roots, discrete logs,
// trial division) the APR-CL engine needs on top of math/big. Every
// other package in this module talks to *big.Int exclusively through
// this package, keeping the number-theoretic primitives in one place.
package bignum

import (
	"math/big"
)

// PrimeFactor is one (prime, exponent) pair of a factorization.
type PrimeFactor struct {
	Prime uint64
	Exp   uint64
}

// GCD returns gcd(a, b) for non-negative a, b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// ExtGCD returns g, x, y such that a*x + b*y = g = gcd(a, b).
func ExtGCD(a, b *big.Int) (g, x, y *big.Int) {
	g, x, y = new(big.Int), new(big.Int), new(big.Int)
	g.GCD(x, y, a, b)
	return
}

// InvMod returns a^-1 mod m, and false if a is not invertible mod m.
func InvMod(a, m *big.Int) (*big.Int, bool) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, false
	}
	return inv, true
}

// PowMod returns base^exp mod m.
func PowMod(base, exp, mod *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, mod)
}

// Mod returns a mod m, always in [0, m).
func Mod(a, m *big.Int) *big.Int {
	r := new(big.Int).Mod(a, m)
	return r
}

// TDivUint returns n mod d for a small uint64 divisor d.
func TDivUint(n *big.Int, d uint64) uint64 {
	bd := new(big.Int).SetUint64(d)
	r := new(big.Int).Mod(n, bd)
	return r.Uint64()
}

// BitLen returns the number of bits needed to represent n.
func BitLen(n *big.Int) int {
	return n.BitLen()
}

// GetBit returns bit i of n (0 or 1).
func GetBit(n *big.Int, i uint) uint {
	return n.Bit(int(i))
}

// IsPrimeUint reports whether p is prime, using trial division for small
// values (the APR-CL config step only ever calls this on primes that fit
// comfortably in a machine word, e.g. candidate factors of R).
func IsPrimeUint(p uint64) bool {
	if p < 2 {
		return false
	}
	if p < 4 {
		return true
	}
	if p%2 == 0 {
		return false
	}
	for d := uint64(3); d*d <= p; d += 2 {
		if p%d == 0 {
			return false
		}
	}
	return true
}

// NextPrimeUint returns the smallest prime strictly greater than p.
func NextPrimeUint(p uint64) uint64 {
	c := p + 1
	if c <= 2 {
		return 2
	}
	if c%2 == 0 {
		c++
	}
	for !IsPrimeUint(c) {
		c += 2
	}
	return c
}

// FactorUint returns the prime factorization of n (n > 0) by trial
// division, sufficient for the machine-word-sized, highly-composite R
// values APR-CL selects (the largest tabulated R is 6983776800).
func FactorUint(n uint64) []PrimeFactor {
	var factors []PrimeFactor
	for _, p := range []uint64{2, 3, 5} {
		e := uint64(0)
		for n%p == 0 {
			n /= p
			e++
		}
		if e > 0 {
			factors = append(factors, PrimeFactor{Prime: p, Exp: e})
		}
	}
	for p := uint64(7); p*p <= n; p += 30 {
		for _, inc := range []uint64{0, 4, 6, 10, 12, 16, 22, 24} {
			q := p + inc
			if q*q > n {
				break
			}
			e := uint64(0)
			for n%q == 0 {
				n /= q
				e++
			}
			if e > 0 {
				factors = append(factors, PrimeFactor{Prime: q, Exp: e})
			}
		}
	}
	if n > 1 {
		factors = append(factors, PrimeFactor{Prime: n, Exp: 1})
	}
	return factors
}

// PrimitiveRootPrime returns a generator of (Z/qZ)*, q prime.
func PrimitiveRootPrime(q uint64) uint64 {
	if q == 2 {
		return 1
	}
	phi := q - 1
	factors := FactorUint(phi)
	for g := uint64(2); g < q; g++ {
		ok := true
		for _, f := range factors {
			if powModUint(g, phi/f.Prime, q) == 1 {
				ok = false
				break
			}
		}
		if ok {
			return g
		}
	}
	panic("bignum: no primitive root found for prime q")
}

func powModUint(base, exp, mod uint64) uint64 {
	result := uint64(1)
	base %= mod
	for exp > 0 {
		if exp&1 == 1 {
			result = mulModUint(result, base, mod)
		}
		exp >>= 1
		base = mulModUint(base, base, mod)
	}
	return result
}

func mulModUint(a, b, mod uint64) uint64 {
	var bm big.Int
	bm.Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	bm.Mod(&bm, new(big.Int).SetUint64(mod))
	return bm.Uint64()
}

// DiscreteLogBSGS returns x such that g^x = c (mod q), using baby-step
// giant-step over the cyclic group (Z/qZ)*. q must be prime and g a
// generator of that group; x is returned in [0, q-2].
func DiscreteLogBSGS(c, g, q uint64) uint64 {
	n := q - 1
	m := isqrtCeil(n)

	// baby steps: table[g^j] = j for j in [0, m)
	table := make(map[uint64]uint64, m)
	cur := uint64(1)
	for j := uint64(0); j < m; j++ {
		if _, exists := table[cur]; !exists {
			table[cur] = j
		}
		cur = mulModUint(cur, g, q)
	}

	// giant steps: c * (g^-m)^i
	gInvM := powModUint(modInvUint(g, q), m, q)
	gamma := c % q
	for i := uint64(0); i < m+1; i++ {
		if j, ok := table[gamma]; ok {
			x := i*m + j
			if x < n {
				return x
			}
		}
		gamma = mulModUint(gamma, gInvM, q)
	}
	panic("bignum: discrete log not found")
}

func modInvUint(a, m uint64) uint64 {
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(a), new(big.Int).SetUint64(m))
	return inv.Uint64()
}

func isqrtCeil(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	r := new(big.Int).Sqrt(new(big.Int).SetUint64(n))
	root := r.Uint64()
	if root*root < n {
		root++
	}
	if root == 0 {
		root = 1
	}
	return root
}

// DivisorInResidueClassLenstra is the stricter variant of the final
// trial-division pass: it returns true if it finds a proper divisor of
// n congruent to a power of n modulo s, searching up to r-1 powers.
// Grounded on original_source/aprcl/is_prime_final_division.c, exposed
// here as a general-purpose number-theoretic primitive rather than
// tied to the engine's own FinalDivision loop.
func DivisorInResidueClassLenstra(n, s *big.Int, r uint64) (divisorFound bool) {
	npow := new(big.Int).Mod(n, s)
	nmul := new(big.Int).Set(npow)
	rem := new(big.Int)

	for i := uint64(1); i < r; i++ {
		rem.Mod(n, npow)
		if rem.Sign() == 0 {
			if npow.Cmp(big.NewInt(1)) != 0 && npow.Cmp(n) != 0 {
				return true
			}
		}
		if rem.Cmp(big.NewInt(1)) == 0 {
			return false
		}
		npow.Mul(npow, nmul)
		npow.Mod(npow, s)
	}
	return false
}
