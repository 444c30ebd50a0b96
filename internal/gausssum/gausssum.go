// Package gausssum computes Gauss sums as cyclogauss.Element values,
// grounded on
// original_source/aprcl/unity_zpq_gauss_sum_character_pow.c.
package gausssum

import (
	"math/big"

	"github.com/takakv/aprcl/internal/bignum"
	"github.com/takakv/aprcl/internal/cyclogauss"
)

// CharacterPow computes the Gauss sum for the character χ^pow of
// (Z/qZ)*, as an element of (Z/nZ)[Y,X]/(Y^q-1, Φ_p(X)): for a
// primitive root g of q, coefficient (ζ_q^(g^i), ζ_p^(i*pow mod p)) is
// incremented by 1 for each i in [1, q-1]. Grounded verbatim on
// unity_zpq_gauss_sum_character_pow.
func CharacterPow(q, p, pow uint64, n *big.Int) *cyclogauss.Element {
	g := bignum.PrimitiveRootPrime(q)
	f := cyclogauss.New(q, p, n)

	qpow := uint64(1)
	for i := uint64(1); i < q; i++ {
		qpow = (qpow * g) % q
		ppow := (i * pow) % p
		f.CoeffAdd(qpow, ppow, 1)
	}
	return f
}

// SigmaPow computes the Gauss sum for the character corresponding to n
// mod p, per unity_zpq_gauss_sum_sigma_pow.
func SigmaPow(q, p uint64, n *big.Int) *cyclogauss.Element {
	rem := new(big.Int).Mod(n, new(big.Int).SetUint64(p))
	return CharacterPow(q, p, rem.Uint64(), n)
}
