package cyclotomic

import (
	"math/big"
	"testing"
)

func testModulus() *big.Int {
	// A modest odd modulus, large enough that coefficient arithmetic
	// wraps non-trivially.
	return big.NewInt(1000000007)
}

// TestReduceLength checks invariant I2: for p=3, k=1, reduce(f) has
// logical length <= 2 (coefficients at index >= phi(3)=2 are zero).
func TestReduceLength(t *testing.T) {
	n := testModulus()
	f := New(3, 1, n)
	f.coeffs[0].SetInt64(5)
	f.coeffs[1].SetInt64(7)
	f.coeffs[2].SetInt64(11)
	f.Reduce()
	if f.coeffs[2].Sign() != 0 {
		t.Fatalf("expected coeff[2] == 0 after reduce, got %v", f.coeffs[2])
	}
}

// TestMulEqualsSqr checks invariant I4: sqr(g) == mul(g,g) after reduce.
func TestMulEqualsSqr(t *testing.T) {
	n := testModulus()
	for _, pk := range [][2]uint64{{3, 1}, {2, 2}, {5, 1}, {7, 1}, {2, 3}, {3, 2}, {11, 1}, {2, 4}} {
		p, k := pk[0], pk[1]
		g := New(p, k, n)
		size := PPow(p, k)
		for i := uint64(0); i < size; i++ {
			g.coeffs[i].SetInt64(int64(i*3 + 1))
		}
		g.Reduce()

		viaMul := New(p, k, n)
		viaMul.Mul(g, g)

		viaSqr := New(p, k, n)
		viaSqr.Sqr(g)

		if !viaMul.Equal(viaSqr) {
			t.Errorf("p^k=%d: sqr(g) != mul(g,g)", PPow(p, k))
		}
	}
}

// TestAutInvRoundTrip checks invariant I3: aut(aut_inv(g,x),x) == g for
// x coprime to p^k.
func TestAutInvRoundTrip(t *testing.T) {
	n := testModulus()
	p, k := uint64(5), uint64(1)
	g := New(p, k, n)
	for i := uint64(0); i < Phi(p, k); i++ {
		g.coeffs[i].SetInt64(int64(i + 2))
	}

	for _, x := range []uint64{1, 2, 3, 4} {
		inv := New(p, k, n)
		inv.AutInv(g, x)

		back := New(p, k, n)
		back.Aut(inv, x)

		if !back.Equal(g) {
			t.Errorf("x=%d: aut(aut_inv(g,x),x) != g", x)
		}
	}
}

// TestPowIdentities checks invariant I5: pow(g,2)=sqr(g); pow(g,0)=1;
// pow(g,1)=g.
func TestPowIdentities(t *testing.T) {
	n := testModulus()
	p, k := uint64(3), uint64(1)
	g := New(p, k, n)
	g.coeffs[0].SetInt64(3)
	g.coeffs[1].SetInt64(5)
	g.Reduce()

	pow0 := New(p, k, n)
	pow0.PowSliding(g, big.NewInt(0))
	one := New(p, k, n)
	one.One()
	if !pow0.Equal(one) {
		t.Error("pow(g,0) != 1")
	}

	pow1 := New(p, k, n)
	pow1.PowSliding(g, big.NewInt(1))
	if !pow1.Equal(g) {
		t.Error("pow(g,1) != g")
	}

	pow2 := New(p, k, n)
	pow2.PowSliding(g, big.NewInt(2))
	sqr := New(p, k, n)
	sqr.Sqr(g)
	if !pow2.Equal(sqr) {
		t.Error("pow(g,2) != sqr(g)")
	}
}

// TestPowSlidingMatchesRepeatedMul checks invariant I6 against a naive
// repeated-multiplication reference, across several exponents and the
// two dispatch paths (fast-kernel PowSliding and PowMont).
func TestPowSlidingMatchesRepeatedMul(t *testing.T) {
	n := testModulus()
	cases := []struct{ p, k uint64 }{{3, 1}, {7, 1}, {13, 1}}
	for _, c := range cases {
		g := New(c.p, c.k, n)
		size := PPow(c.p, c.k)
		for i := uint64(0); i < size; i++ {
			g.coeffs[i].SetInt64(int64(2*i + 3))
		}
		g.Reduce()

		for _, e := range []uint64{3, 7, 20, 31} {
			naive := New(c.p, c.k, n)
			naive.One()
			for i := uint64(0); i < e; i++ {
				naive.Mul(naive, g)
			}

			fast := New(c.p, c.k, n)
			fast.Pow(g, new(big.Int).SetUint64(e))

			if !fast.Equal(naive) {
				t.Errorf("p^k=%d e=%d: Pow != repeated Mul", PPow(c.p, c.k), e)
			}
		}
	}
}

func TestIsUnity(t *testing.T) {
	n := testModulus()
	p, k := uint64(5), uint64(1)
	zeta := New(p, k, n)
	zeta.coeffs[2].SetInt64(1)
	zeta.Reduce()

	if h := zeta.IsUnity(); h != 2 {
		t.Errorf("expected IsUnity() = 2, got %d", h)
	}

	notUnity := New(p, k, n)
	notUnity.coeffs[0].SetInt64(2)
	notUnity.coeffs[1].SetInt64(3)
	notUnity.Reduce()
	if h := notUnity.IsUnity(); h != -1 {
		t.Errorf("expected IsUnity() = -1, got %d", h)
	}
}

func TestFastKernelsMatchGeneric(t *testing.T) {
	table := map[uint64][2]uint64{3: {3, 1}, 4: {2, 2}, 5: {5, 1}, 7: {7, 1}, 8: {2, 3}, 9: {3, 2}, 11: {11, 1}, 16: {2, 4}}
	n := testModulus()
	for ppow, pk := range table {
		if !IsFastKernel(pk[0], pk[1]) {
			t.Fatalf("expected p^k=%d to be in the fast kernel set", ppow)
		}

		g := New(pk[0], pk[1], n)
		size := PPow(pk[0], pk[1])
		for i := uint64(0); i < size; i++ {
			g.coeffs[i].SetInt64(int64(5*i + 2))
		}
		g.Reduce()

		viaFast := New(pk[0], pk[1], n)
		viaFast.Mul(g, g)

		raw := convolve(g.coeffs, g.coeffs, n)
		reduceBuffer(raw, pk[0], pk[1], n)
		viaGeneric := New(pk[0], pk[1], n)
		for i := uint64(0); i < size; i++ {
			viaGeneric.coeffs[i].Set(raw[i])
		}

		if !viaFast.Equal(viaGeneric) {
			t.Errorf("p^k=%d: fast-kernel Mul disagrees with generic convolution", ppow)
		}
	}
}
