package engine

import (
	"context"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/takakv/aprcl/internal/bignum"
	"github.com/takakv/aprcl/internal/config"
	"github.com/takakv/aprcl/internal/cyclotomic"
	"github.com/takakv/aprcl/internal/findiv"
	"github.com/takakv/aprcl/internal/ftable"
	"github.com/takakv/aprcl/internal/jacobisum"
)

// checkPK implements check_pk(J, u, v): J1 and J2 are products of
// σ_i^-1(J^i) and σ_i^-1(J^floor(v*i/p^k)) over i in [1,p^k] with p∤i
// (FLINT's _is_prime_jacobi_check_pk uses unity_zp_mul throughout, so
// these accumulate multiplicatively over the roots of unity J
// represents, not additively), and the result is J2 * J1^u.
func checkPK(p, k uint64, J *cyclotomic.Element, u, v *big.Int, n *big.Int) int64 {
	pPow := cyclotomic.PPow(p, k)

	j1 := cyclotomic.New(p, k, n)
	j1.One()
	j2 := cyclotomic.New(p, k, n)
	j2.One()

	pPowBig := new(big.Int).SetUint64(pPow)

	for i := uint64(1); i <= pPow; i++ {
		if i%p == 0 {
			continue
		}

		jPow := cyclotomic.New(p, k, n)
		jPow.Pow(J, new(big.Int).SetUint64(i))
		aut := cyclotomic.New(p, k, n)
		aut.AutInv(jPow, i)
		j1.Mul(j1, aut)

		vi := new(big.Int).Mul(v, new(big.Int).SetUint64(i))
		floorExp := new(big.Int).Div(vi, pPowBig)
		jPow2 := cyclotomic.New(p, k, n)
		jPow2.Pow(J, floorExp)
		aut2 := cyclotomic.New(p, k, n)
		aut2.AutInv(jPow2, i)
		j2.Mul(j2, aut2)
	}

	j1u := cyclotomic.New(p, k, n)
	j1u.Pow(j1, u)
	result := cyclotomic.New(p, k, n)
	result.Mul(j2, j1u)

	return result.IsUnity()
}

// check21 implements the p=2, k=1 cell: require (-q)^((n-1)/2) ≡ ±1
// (mod n). Returns ok=false on any other value (fatal, n is
// composite); on -1, lambda should be set to true.
func check21(n *big.Int, q uint64) (ok, setLambda bool) {
	half := halfOfNMinusOne(n)
	base := new(big.Int).Mod(new(big.Int).Neg(new(big.Int).SetUint64(q)), n)
	t := bignum.PowMod(base, half, n)

	one := big.NewInt(1)
	nMinusOne := new(big.Int).Sub(n, one)

	if t.Cmp(one) == 0 {
		return true, false
	}
	if t.Cmp(nMinusOne) == 0 {
		return true, true
	}
	return false, false
}

// qPowHalfIsMinusOne checks q^((n-1)/2) ≡ -1 (mod n), the extra
// condition check_22 and L_p.b require.
func qPowHalfIsMinusOne(n *big.Int, q uint64) bool {
	half := halfOfNMinusOne(n)
	t := bignum.PowMod(new(big.Int).SetUint64(q), half, n)
	return t.Cmp(new(big.Int).Sub(n, big.NewInt(1))) == 0
}

// errComposite signals a fatal cell failure out of a jacobiCell call;
// its only job is to be non-nil for errgroup.Wait to report.
var errComposite = errors.New("jacobi cell: composite witness")

// Jacobi runs the Jacobi-sum variant of APR-CL for modulus n at
// configuration cfg, sequentially. It returns Proved if every λ_p is
// established and the final trial-division pass passes, Composite on
// any fatal cell failure, and Inconclusive if some λ_p could not be
// established (the caller should retry with a larger R).
func Jacobi(n *big.Int, cfg *config.Config) Verdict {
	return jacobiRun(n, cfg, 1)
}

// JacobiConcurrent is Jacobi, but fans the per-q cells out over up to
// concurrency goroutines: cells are read-only on n and trivially
// parallelizable, and the verdict is Composite whenever any cell fails,
// as errgroup.Wait reports the first cell error. Cells do not watch the
// group's context, so cells already queued still run after a failure.
// concurrency <= 1 runs sequentially, identically to Jacobi.
func JacobiConcurrent(n *big.Int, cfg *config.Config, concurrency int) Verdict {
	return jacobiRun(n, cfg, concurrency)
}

func jacobiRun(n *big.Int, cfg *config.Config, concurrency int) Verdict {
	lambda := make(map[uint64]bool, len(cfg.Rs))
	var mu sync.Mutex
	for _, rf := range cfg.Rs {
		p := rf.Prime
		if p < 3 {
			lambda[p] = false
			continue
		}
		p2 := new(big.Int).SetUint64(p * p)
		t := bignum.PowMod(n, new(big.Int).SetUint64(p-1), p2)
		lambda[p] = t.Cmp(big.NewInt(1)) != 0
	}

	var cellErr error
	if concurrency <= 1 {
		for _, qf := range cfg.Qs {
			if err := jacobiCell(n, qf.Prime, lambda, &mu); err != nil {
				cellErr = err
				break
			}
		}
	} else {
		g, _ := errgroup.WithContext(context.Background())
		g.SetLimit(concurrency)
		for _, qf := range cfg.Qs {
			q := qf.Prime
			g.Go(func() error { return jacobiCell(n, q, lambda, &mu) })
		}
		cellErr = g.Wait()
	}
	if cellErr != nil {
		return Composite
	}

	for _, rf := range cfg.Rs {
		if !lambda[rf.Prime] {
			return Inconclusive
		}
	}

	if !findiv.Check(n, cfg.S, cfg.R) {
		return Composite
	}
	return Proved
}

// jacobiCell runs every (p, k) cell for a single q | s, writing
// established λ_p values into the shared lambda map under mu.
func jacobiCell(n *big.Int, q uint64, lambda map[uint64]bool, mu *sync.Mutex) error {
	if q < 3 {
		return nil
	}
	factors := bignum.FactorUint(q - 1)
	if len(factors) == 0 {
		return nil
	}

	tbl := ftable.Build(q)

	for _, pf := range factors {
		p, k := pf.Prime, pf.Exp
		if !mulCoprime(p, q, n) {
			return errComposite
		}

		pPow := cyclotomic.PPow(p, k)
		pPowBig := new(big.Int).SetUint64(pPow)
		u := new(big.Int).Div(n, pPowBig)
		v := new(big.Int).Mod(n, pPowBig)

		J := jacobisum.JacobiSumPQ(tbl, p, n)

		switch {
		case p >= 3:
			h := checkPK(p, k, J, u, v, n)
			if h < 0 {
				return errComposite
			}
			if gcdUint64(uint64(h), p) == 1 {
				mu.Lock()
				lambda[p] = true
				mu.Unlock()
			}

		case k == 1:
			ok, setLambda := check21(n, q)
			if !ok {
				return errComposite
			}
			if setLambda {
				mu.Lock()
				lambda[2] = true
				mu.Unlock()
			}

		case k == 2:
			h := checkPK(2, 2, J, u, v, n)
			if h < 0 {
				return errComposite
			}
			if gcdUint64(uint64(h), 2) == 1 || qPowHalfIsMinusOne(n, q) {
				mu.Lock()
				lambda[2] = true
				mu.Unlock()
			}

		default: // p == 2, k >= 3
			J2_1 := jacobisum.JacobiSum2QOne(tbl, n)
			J2_2 := jacobisum.JacobiSum2QTwo(tbl, n)

			combined := cyclotomic.New(2, k, n)
			combined.Mul(J, J2_1)
			combinedU := cyclotomic.New(2, k, n)
			combinedU.Pow(combined, u)
			delta := cyclotomic.New(2, k, n)
			delta.Mul(combinedU, J2_2)

			h := delta.IsUnity()
			if h < 0 {
				return errComposite
			}
			if gcdUint64(uint64(h), 2) == 1 {
				mu.Lock()
				lambda[2] = true
				mu.Unlock()
			}
		}
	}
	return nil
}
