// Package jacobisum computes Jacobi sums J(p,q) as elements of
// Z[ζ_{p^k}]/n, grounded on
// original_source/aprcl/unity_zp_jacobi_sum.c.
package jacobisum

import (
	"math/big"

	"github.com/takakv/aprcl/internal/cyclotomic"
	"github.com/takakv/aprcl/internal/ftable"
)

// pPowerInQ returns the largest k such that p^k divides m (m is
// typically q-1), mirroring p_power_in_q.c.
func pPowerInQ(m, p uint64) uint64 {
	k := uint64(0)
	for m%p == 0 {
		m /= p
		k++
	}
	return k
}

// general builds the Jacobi-sum element via the weighted table walk
// from _jacobi_pq_general: each residue i in [1, q-2] contributes a
// coefficient increment at index (a*i + b*table[i]) mod p^k, folded
// back into [0, size) via the Φ_{p^k} relation when it lands in the
// redundant high range.
func general(tbl *ftable.Table, p, k, a, b uint64, n *big.Int) *cyclotomic.Element {
	f := cyclotomic.New(p, k, n)

	powDec := cyclotomic.PPow(p, k-1)
	size := (p - 1) * powDec
	pow := powDec * p
	q := tbl.Q

	for i := uint64(1); i < q-1; i++ {
		ti := tbl.Table[i-1]
		l := (a*i + b*ti) % pow
		if l < size {
			f.CoeffInc(l)
		} else {
			for j := uint64(0); j < p-1; j++ {
				l -= powDec
				f.CoeffDec(l)
			}
		}
	}
	return f
}

// JacobiSumPQ computes J(p,q) for an odd prime p dividing q-1, per
// jacobi_pq in unity_zp_jacobi_sum.c.
func JacobiSumPQ(tbl *ftable.Table, p uint64, n *big.Int) *cyclotomic.Element {
	k := pPowerInQ(tbl.Q-1, p)
	return general(tbl, p, k, 1, 1, n)
}

// JacobiSum2QOne computes the first of the two Jacobi sums FLINT uses
// for p=2, per jacobi_2q_one.
func JacobiSum2QOne(tbl *ftable.Table, n *big.Int) *cyclotomic.Element {
	k := pPowerInQ(tbl.Q-1, 2)
	return general(tbl, 2, k, 2, 1, n)
}

// JacobiSum2QTwo computes the second of the two Jacobi sums FLINT uses
// for p=2, per jacobi_2q_two.
func JacobiSum2QTwo(tbl *ftable.Table, n *big.Int) *cyclotomic.Element {
	k := pPowerInQ(tbl.Q-1, 2)
	b := cyclotomic.IPow(2, k-3)
	a := 3 * b
	return general(tbl, 2, k, a, b, n)
}
