// Package ftable builds the discrete-log table f(x) on F_q used by the
// Jacobi- and Gauss-sum constructors, grounded on
// original_source/aprcl/f_table.c.
package ftable

import "github.com/takakv/aprcl/internal/bignum"

// Table holds f(q), a length q-2 array such that for a fixed primitive
// root g of q:
//
//	g^(i+1) + g^table[i] ≡ 1 (mod q)
type Table struct {
	Q     uint64
	Gen   uint64
	Table []uint64
}

// Build constructs the f-table for prime q. A primitive root g always
// exists for prime q, and 1 - g^(i+1) mod q is always nonzero (g^(i+1)
// is a nonzero residue), so DiscreteLogBSGS always finds a match.
func Build(q uint64) *Table {
	g := bignum.PrimitiveRootPrime(q)

	table := make([]uint64, q-2)
	gPow := g
	for i := uint64(0); i < q-2; i++ {
		// gComp = 1 - g^(i+1), folded into [1, q-1].
		gComp := (1 + q - gPow%q) % q
		if gComp == 0 {
			gComp = q
		}
		table[i] = bignum.DiscreteLogBSGS(gComp, g, q)
		gPow = (gPow * g) % q
	}

	return &Table{Q: q, Gen: g, Table: table}
}
