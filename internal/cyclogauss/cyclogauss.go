// Package cyclogauss implements an element of
// (Z/nZ)[Y,X]/(Y^q - 1, Φ_p(X)) stored as a p-indexed array of
// polynomials in Y. It backs the Gauss-sum variant of APR-CL.
package cyclogauss

import "math/big"

// Element is a p x q grid of coefficients mod n: polys[j][i] is the
// coefficient of ζ_q^i ζ_p^j.
type Element struct {
	Q, P  uint64
	N     *big.Int
	polys [][]*big.Int
}

func zeroVec(q uint64, n *big.Int) []*big.Int {
	v := make([]*big.Int, q)
	for i := range v {
		v[i] = new(big.Int)
	}
	return v
}

func zeroGrid(p, q uint64, n *big.Int) [][]*big.Int {
	g := make([][]*big.Int, p)
	for j := range g {
		g[j] = zeroVec(q, n)
	}
	return g
}

// New returns the zero element of (Z/nZ)[Y,X]/(Y^q-1, Φ_p(X)).
func New(q, p uint64, n *big.Int) *Element {
	return &Element{Q: q, P: p, N: n, polys: zeroGrid(p, q, n)}
}

func (e *Element) ensureShape(q, p uint64, n *big.Int) {
	e.Q, e.P, e.N = q, p, n
	if uint64(len(e.polys)) != p || (p > 0 && uint64(len(e.polys[0])) != q) {
		e.polys = zeroGrid(p, q, n)
	}
}

// Set sets the coefficient of ζ_q^i ζ_p^j to c mod n.
func (e *Element) Set(i, j uint64, c *big.Int) *Element {
	e.polys[j][i] = new(big.Int).Mod(c, e.N)
	return e
}

// CoeffAdd adds x to the coefficient of ζ_q^i ζ_p^j, mod n.
func (e *Element) CoeffAdd(i, j uint64, x int64) {
	e.polys[j][i].Add(e.polys[j][i], big.NewInt(x))
	e.polys[j][i].Mod(e.polys[j][i], e.N)
}

// Zero sets the receiver to the additive identity.
func (e *Element) Zero() *Element {
	for j := range e.polys {
		for i := range e.polys[j] {
			e.polys[j][i].SetInt64(0)
		}
	}
	return e
}

// Copy sets the receiver to g and returns it.
func (e *Element) Copy(g *Element) *Element {
	e.ensureShape(g.Q, g.P, g.N)
	for j := range g.polys {
		for i := range g.polys[j] {
			e.polys[j][i].Set(g.polys[j][i])
		}
	}
	return e
}

// Add sets the receiver to f + g, componentwise mod n.
func (e *Element) Add(f, g *Element) *Element {
	e.ensureShape(f.Q, f.P, f.N)
	for j := range f.polys {
		for i := range f.polys[j] {
			e.polys[j][i].Add(f.polys[j][i], g.polys[j][i])
			e.polys[j][i].Mod(e.polys[j][i], e.N)
		}
	}
	return e
}

func isZeroVec(v []*big.Int) bool {
	for _, c := range v {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// yConvolve computes the cyclic convolution of a and b mod Y^q - 1 via
// shift-and-add.
func yConvolve(a, b []*big.Int, q uint64, n *big.Int) []*big.Int {
	res := zeroVec(q, n)
	for i := uint64(0); i < q; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := uint64(0); j < q; j++ {
			if b[j].Sign() == 0 {
				continue
			}
			idx := (i + j) % q
			t := new(big.Int).Mul(a[i], b[j])
			res[idx].Add(res[idx], t)
		}
	}
	for i := range res {
		res[i].Mod(res[i], n)
	}
	return res
}

// Mul sets the receiver to f*g: the p-index combines by the identity
// ζ_p^p = 1 (a cyclic rotation of the target slot), and each pairing's Y
// component combines by cyclic convolution mod Y^q-1.
func (e *Element) Mul(f, g *Element) *Element {
	p, q, n := f.P, f.Q, f.N
	result := zeroGrid(p, q, n)
	for j1 := uint64(0); j1 < p; j1++ {
		if isZeroVec(f.polys[j1]) {
			continue
		}
		for j2 := uint64(0); j2 < p; j2++ {
			if isZeroVec(g.polys[j2]) {
				continue
			}
			conv := yConvolve(f.polys[j1], g.polys[j2], q, n)
			target := (j1 + j2) % p
			for i := uint64(0); i < q; i++ {
				result[target][i].Add(result[target][i], conv[i])
				result[target][i].Mod(result[target][i], n)
			}
		}
	}
	e.ensureShape(q, p, n)
	e.polys = result
	return e
}

// MulUnityPPow sets the receiver to g * ζ_p^k: since ζ_p^p = 1, this is
// just a cyclic rotation of the p-indexed slots.
func (e *Element) MulUnityPPow(g *Element, k uint64) *Element {
	p := g.P
	result := zeroGrid(p, g.Q, g.N)
	for j := uint64(0); j < p; j++ {
		target := (j + k) % p
		for i := range g.polys[j] {
			result[target][i].Set(g.polys[j][i])
		}
	}
	e.ensureShape(g.Q, g.P, g.N)
	e.polys = result
	return e
}

// Pow sets the receiver to g^exp by binary square-and-multiply.
func (e *Element) Pow(g *Element, exp *big.Int) *Element {
	result := New(g.Q, g.P, g.N)
	result.polys[0][0].SetInt64(1)

	base := New(g.Q, g.P, g.N)
	base.Copy(g)

	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
	}
	return e.Copy(result)
}

// Equal reports whether f and g represent the same grid.
func (e *Element) Equal(g *Element) bool {
	if e.P != g.P || e.Q != g.Q {
		return false
	}
	for j := range e.polys {
		for i := range e.polys[j] {
			if e.polys[j][i].Cmp(g.polys[j][i]) != 0 {
				return false
			}
		}
	}
	return true
}

// IsPUnityGenerator reports whether i generates the cyclic group ⟨ζ_p⟩,
// i.e. gcd(i, p) = 1.
func IsPUnityGenerator(i, p uint64) bool {
	if i == 0 {
		return p == 1
	}
	a, b := i, p
	for b != 0 {
		a, b = b, a%b
	}
	return a == 1
}
