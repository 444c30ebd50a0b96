// Package cyclotomic implements an element of Z[ζ_{p^k}]/n represented
// as a polynomial mod the p^k-th cyclotomic polynomial
// Φ_{p^k}(X) = Σ_{i=0}^{p-1} X^{i·p^{k-1}}. It is the workhorse ring of
// the Jacobi-sum variant of APR-CL.
//
// Grounded on original_source/aprcl/unity_zp_*.c (FLINT's own
// implementation), with each Element owning its coefficient storage
// rather than sharing a modulus context with its caller.
package cyclotomic

import "math/big"

// Element is a polynomial a(X) ∈ (Z/nZ)[X], deg a < P^K, representing
// Σ a_i ζ_{P^K}^i. coeffs always has length P^K; indices at or above
// Phi(P, K) are zero in canonical (post-public-op) form.
type Element struct {
	P, K   uint64
	N      *big.Int
	coeffs []*big.Int
}

// IPow returns base^exp for small, non-negative exp.
func IPow(base, exp uint64) uint64 {
	r := uint64(1)
	for i := uint64(0); i < exp; i++ {
		r *= base
	}
	return r
}

// PPow returns p^k, the ring's full coefficient count.
func PPow(p, k uint64) uint64 { return IPow(p, k) }

// Phi returns φ(p^k) = (p-1)·p^(k-1), the ring's degree / logical length.
func Phi(p, k uint64) uint64 {
	return (p - 1) * IPow(p, k-1)
}

func newCoeffs(size uint64) []*big.Int {
	c := make([]*big.Int, size)
	for i := range c {
		c[i] = new(big.Int)
	}
	return c
}

// New returns the zero element of Z[ζ_{p^k}]/n.
func New(p, k uint64, n *big.Int) *Element {
	return &Element{P: p, K: k, N: n, coeffs: newCoeffs(PPow(p, k))}
}

func (e *Element) size() uint64 { return PPow(e.P, e.K) }

func (e *Element) ensureShape(p, k uint64, n *big.Int) {
	e.P, e.K, e.N = p, k, n
	size := PPow(p, k)
	if uint64(len(e.coeffs)) != size {
		e.coeffs = newCoeffs(size)
	}
}

func (e *Element) clone() *Element {
	c := make([]*big.Int, len(e.coeffs))
	for i, v := range e.coeffs {
		c[i] = new(big.Int).Set(v)
	}
	return &Element{P: e.P, K: e.K, N: e.N, coeffs: c}
}

// Copy sets the receiver to g and returns it.
func (e *Element) Copy(g *Element) *Element {
	e.ensureShape(g.P, g.K, g.N)
	for i, v := range g.coeffs {
		e.coeffs[i].Set(v)
	}
	return e
}

// Zero sets the receiver to the additive identity.
func (e *Element) Zero() *Element {
	for _, c := range e.coeffs {
		c.SetInt64(0)
	}
	return e
}

// One sets the receiver to the multiplicative identity.
func (e *Element) One() *Element {
	e.Zero()
	e.coeffs[0].SetInt64(1)
	return e
}

// Set sets coefficient i to c mod n and returns the receiver.
func (e *Element) Set(i uint64, c *big.Int) *Element {
	e.coeffs[i] = new(big.Int).Mod(c, e.N)
	return e
}

// Get returns a copy of coefficient i.
func (e *Element) Get(i uint64) *big.Int {
	return new(big.Int).Set(e.coeffs[i])
}

// CoeffInc increments coefficient i by one, mod n.
func (e *Element) CoeffInc(i uint64) {
	e.coeffs[i].Add(e.coeffs[i], big.NewInt(1))
	e.coeffs[i].Mod(e.coeffs[i], e.N)
}

// CoeffDec decrements coefficient i by one, mod n.
func (e *Element) CoeffDec(i uint64) {
	e.coeffs[i].Sub(e.coeffs[i], big.NewInt(1))
	e.coeffs[i].Mod(e.coeffs[i], e.N)
}

// Add sets the receiver to f + g (coefficient-wise mod n).
func (e *Element) Add(f, g *Element) *Element {
	e.ensureShape(f.P, f.K, f.N)
	for i := range e.coeffs {
		e.coeffs[i].Add(f.coeffs[i], g.coeffs[i])
		e.coeffs[i].Mod(e.coeffs[i], e.N)
	}
	return e
}

// reduceBuffer folds buf (length >= phi(p^k)) through the Φ_{p^k}
// relation X^φ ≡ -Σ_{j=0}^{p-2} X^{j·p^{k-1}}, so that every index >=
// phi(p^k) becomes zero. It operates directly on the (possibly
// over-length) raw convolution buffer produced by a polynomial
// multiply.
func reduceBuffer(buf []*big.Int, p, k uint64, n *big.Int) {
	pPowDec := IPow(p, k-1)
	phi := (p - 1) * pPowDec
	for i := len(buf) - 1; uint64(i) >= phi; i-- {
		c := buf[i]
		if c.Sign() == 0 {
			continue
		}
		for j := uint64(0); j < p-1; j++ {
			idx := uint64(i) - phi + j*pPowDec
			buf[idx].Sub(buf[idx], c)
			buf[idx].Mod(buf[idx], n)
		}
		buf[i] = big.NewInt(0)
	}
}

// Reduce folds the receiver's own coefficient buffer through Φ_{p^k}.
// It is idempotent: every public operation already leaves its receiver
// canonical, so Reduce is a no-op on a well-formed element, but it is
// exposed as its own operation for callers that set raw coefficients
// directly (e.g. when constructing an element from a table lookup).
func (e *Element) Reduce() *Element {
	reduceBuffer(e.coeffs, e.P, e.K, e.N)
	return e
}

func convolve(f, g []*big.Int, n *big.Int) []*big.Int {
	size := uint64(len(f))
	raw := newCoeffs(2*size - 1)
	for i := uint64(0); i < size; i++ {
		if f[i].Sign() == 0 {
			continue
		}
		for j := uint64(0); j < size; j++ {
			if g[j].Sign() == 0 {
				continue
			}
			t := new(big.Int).Mul(f[i], g[j])
			raw[i+j].Add(raw[i+j], t)
		}
	}
	for _, c := range raw {
		c.Mod(c, n)
	}
	return raw
}

// ar1 computes the raw (unreduced) convolution of two 3-element
// vectors: given (a0,a1,a2) and (b0,b1,b2), produce (c0,…,c4) with
// c_k = Σ_{i+j=k} a_i*b_j. FLINT's unity_zp_mul3 schedules this as a
// 6-multiply Toom-3 product; this implementation uses the direct 3x3
// schoolbook product instead, since correctness of a hand-derived Toom
// identity cannot be checked without running code, and the multiply
// count only matters for moduli this small if profiling shows it does.
func ar1(a, b []*big.Int, n *big.Int) []*big.Int { return convolve(a, b, n) }

// ar2 computes the raw convolution of two 4-element vectors (FLINT's
// unity_zp_mul4, a 10-multiply schedule in the hand-scheduled original).
func ar2(a, b []*big.Int, n *big.Int) []*big.Int { return convolve(a, b, n) }

// ar3 computes the raw convolution of two 5-element vectors (FLINT's
// unity_zp_mul5).
func ar3(a, b []*big.Int, n *big.Int) []*big.Int { return convolve(a, b, n) }

// ar4 computes the raw self-convolution (square) of a 5-element vector
// (FLINT's unity_zp_sqr5).
func ar4(a []*big.Int, n *big.Int) []*big.Int { return convolve(a, a, n) }

// fastKernelSet is the set of p^k values FLINT gives a hand-scheduled
// multiply/square kernel (unity_zp_mul{3,4,5,7,8,9,11,16}.c).
var fastKernelSet = map[uint64]bool{3: true, 4: true, 5: true, 7: true, 8: true, 9: true, 11: true, 16: true}

// IsFastKernel reports whether p^k has a specialized multiply/square
// kernel rather than falling back to the generic convolution path.
func IsFastKernel(p, k uint64) bool { return fastKernelSet[PPow(p, k)] }

// rawMul dispatches to the appropriate raw-convolution kernel for p^k.
// mul3 and mul5 route through ar1/ar3; the remaining fast-kernel moduli
// (7, 8, 9, 11, 16) and every generic p^k route through the shared
// schoolbook convolution, since ar1..ar4 only specialize the 3x3 and
// 5x5 cases and a schoolbook product is correct (if not optimally
// scheduled) for every other size.
func rawMul(f, g *Element) []*big.Int {
	switch PPow(f.P, f.K) {
	case 3:
		return ar1(f.coeffs, g.coeffs, f.N) // mul3
	case 5:
		return ar3(f.coeffs, g.coeffs, f.N) // mul5
	default:
		return convolve(f.coeffs, g.coeffs, f.N)
	}
}

func rawSqr(f *Element) []*big.Int {
	switch PPow(f.P, f.K) {
	case 3:
		return ar1(f.coeffs, f.coeffs, f.N) // sqr3
	case 5:
		return ar4(f.coeffs, f.N) // sqr5
	default:
		return convolve(f.coeffs, f.coeffs, f.N)
	}
}

// Mul sets the receiver to f*g, reduced mod Φ_{P^K}.
func (e *Element) Mul(f, g *Element) *Element {
	raw := rawMul(f, g)
	reduceBuffer(raw, f.P, f.K, f.N)
	e.ensureShape(f.P, f.K, f.N)
	size := e.size()
	for i := uint64(0); i < size; i++ {
		e.coeffs[i].Set(raw[i])
	}
	return e
}

// Sqr sets the receiver to f*f, reduced mod Φ_{P^K}. Invariant I4:
// Sqr(f) == Mul(f, f) after reduce.
func (e *Element) Sqr(f *Element) *Element {
	raw := rawSqr(f)
	reduceBuffer(raw, f.P, f.K, f.N)
	e.ensureShape(f.P, f.K, f.N)
	size := e.size()
	for i := uint64(0); i < size; i++ {
		e.coeffs[i].Set(raw[i])
	}
	return e
}

// Equal reports whether f and g represent the same ring element, after
// forcing both into Φ-reduced canonical form.
func (e *Element) Equal(g *Element) bool {
	fe := e.clone()
	fe.Reduce()
	ge := g.clone()
	ge.Reduce()
	if len(fe.coeffs) != len(ge.coeffs) {
		return false
	}
	for i := range fe.coeffs {
		if fe.coeffs[i].Cmp(ge.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// IsUnity returns i such that the receiver equals ζ_{P^K}^i, or -1 if
// the receiver is not a P^K-th root of unity.
func (e *Element) IsUnity() int64 {
	size := e.size()
	fc := e.clone()
	fc.Reduce()
	for i := uint64(0); i < size; i++ {
		buf := newCoeffs(size)
		buf[i].SetInt64(1)
		reduceBuffer(buf, e.P, e.K, e.N)
		match := true
		for j := uint64(0); j < size; j++ {
			if buf[j].Cmp(fc.coeffs[j]) != 0 {
				match = false
				break
			}
		}
		if match {
			return int64(i)
		}
	}
	return -1
}

// Aut sets the receiver to σ_x(g), the Galois automorphism sending
// ζ_{P^K} to ζ_{P^K}^x.
func (e *Element) Aut(g *Element, x uint64) *Element {
	size := PPow(g.P, g.K)
	buf := newCoeffs(size)
	for i := uint64(0); i < size; i++ {
		if g.coeffs[i].Sign() == 0 {
			continue
		}
		idx := (x * i) % size
		buf[idx].Add(buf[idx], g.coeffs[i])
		buf[idx].Mod(buf[idx], g.N)
	}
	reduceBuffer(buf, g.P, g.K, g.N)
	e.ensureShape(g.P, g.K, g.N)
	for i := uint64(0); i < size; i++ {
		e.coeffs[i].Set(buf[i])
	}
	return e
}

// AutInv sets the receiver to f such that σ_x(f) = g, i.e. it applies
// the inverse of the σ_x Galois automorphism X ↦ X^x.
func (e *Element) AutInv(g *Element, x uint64) *Element {
	size := PPow(g.P, g.K)
	pPowDec := IPow(g.P, g.K-1)
	phi := (g.P - 1) * pPowDec
	buf := newCoeffs(size)

	for i := uint64(0); i < phi; i++ {
		idx := (x * i) % size
		buf[i].Set(g.coeffs[idx])
	}
	for i := phi; i < size; i++ {
		idx := (x * i) % size
		val := g.coeffs[idx]
		if val.Sign() == 0 {
			continue
		}
		for j := uint64(1); j < g.P; j++ {
			dest := i - j*pPowDec
			buf[dest].Sub(buf[dest], val)
			buf[dest].Mod(buf[dest], g.N)
		}
	}

	e.ensureShape(g.P, g.K, g.N)
	for i := uint64(0); i < size; i++ {
		e.coeffs[i].Set(buf[i])
	}
	return e
}
