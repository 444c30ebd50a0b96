// Package findiv implements the final trial-division step of APR-CL:
// having proved n has no prime factor below r in the relevant residue
// classes mod s, decide whether n itself is prime. Grounded on
// original_source/aprcl/is_prime_final_division.c.
package findiv

import "math/big"

// Check returns true if no proper divisor of n was found among the
// powers n^i mod s for i in [1, r], i.e. n is not ruled out by this
// step alone — the caller still needs the Jacobi/Gauss engine's
// verdict to conclude primality. Check returns false the moment n^i
// mod s divides n properly, proving n composite outright.
func Check(n, s *big.Int, r uint64) bool {
	one := big.NewInt(1)

	npow := new(big.Int).Mod(n, s)
	nmul := new(big.Int).Set(npow)
	rem := new(big.Int)

	for i := uint64(1); i <= r; i++ {
		rem.Mod(n, npow)

		if rem.Cmp(one) == 0 {
			break
		}

		if rem.Sign() == 0 {
			if n.Cmp(npow) != 0 && npow.Cmp(one) != 0 {
				return false
			}
		}

		npow.Mul(npow, nmul)
		npow.Mod(npow, s)
	}

	return true
}
