package jacobisum

import (
	"math/big"
	"testing"

	"github.com/takakv/aprcl/internal/cyclotomic"
	"github.com/takakv/aprcl/internal/ftable"
)

func testModulus() *big.Int {
	return big.NewInt(1000000007)
}

// TestJacobiSumNormIdentity checks the classical norm identity
// J(p,q) * conj(J(p,q)) = q, an integer identity that must survive
// reduction mod n for any modulus. Complex conjugation is the
// automorphism sending ζ -> ζ^-1, i.e. x = p^k - 1.
func TestJacobiSumNormIdentity(t *testing.T) {
	n := testModulus()
	cases := []struct{ q, p uint64 }{{7, 3}, {13, 3}, {11, 5}}
	for _, c := range cases {
		tbl := ftable.Build(c.q)
		j := JacobiSumPQ(tbl, c.p, n)

		k := pPowerInQ(c.q-1, c.p)
		size := cyclotomic.PPow(c.p, k)

		conj := cyclotomic.New(c.p, k, n)
		conj.Aut(j, size-1)

		norm := cyclotomic.New(c.p, k, n)
		norm.Mul(j, conj)

		want := cyclotomic.New(c.p, k, n)
		want.Set(0, new(big.Int).SetUint64(c.q))
		want.Reduce()

		if !norm.Equal(want) {
			t.Errorf("q=%d p=%d: J*conj(J) != q (mod n)", c.q, c.p)
		}
	}
}

func TestJacobiSum2QOneAndTwoAreDeterministic(t *testing.T) {
	n := testModulus()
	// q=17: q-1=16=2^4, so k=4 >= 3, satisfying jacobi_2q_two's
	// precondition that b=2^(k-3) be well defined.
	const q = 17
	tbl := ftable.Build(q)

	a := JacobiSum2QOne(tbl, n)
	b := JacobiSum2QOne(tbl, n)
	if !a.Equal(b) {
		t.Error("JacobiSum2QOne is not deterministic")
	}

	c := JacobiSum2QTwo(tbl, n)
	d := JacobiSum2QTwo(tbl, n)
	if !c.Equal(d) {
		t.Error("JacobiSum2QTwo is not deterministic")
	}
}

func TestPPowerInQ(t *testing.T) {
	cases := []struct {
		m, p uint64
		want uint64
	}{
		{6, 3, 1},
		{12, 3, 1},
		{16, 2, 4},
		{10, 5, 1},
		{9, 3, 2},
	}
	for _, c := range cases {
		if got := pPowerInQ(c.m, c.p); got != c.want {
			t.Errorf("pPowerInQ(%d,%d) = %d, want %d", c.m, c.p, got, c.want)
		}
	}
}
