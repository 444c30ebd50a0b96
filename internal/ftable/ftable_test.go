package ftable

import "testing"

// TestBuildSatisfiesIdentity checks invariant I1: for all i,
// g^(i+1) + g^table[i] ≡ 1 (mod q).
func TestBuildSatisfiesIdentity(t *testing.T) {
	const q = 11
	tbl := Build(q)
	if len(tbl.Table) != q-2 {
		t.Fatalf("expected table of length %d, got %d", q-2, len(tbl.Table))
	}

	g := tbl.Gen
	gPow := make([]uint64, q)
	p := uint64(1)
	for i := uint64(0); i < q; i++ {
		gPow[i] = p
		p = (p * g) % q
	}

	for i, ti := range tbl.Table {
		lhs := (gPow[(uint64(i)+1)%q] + gPow[ti%q]) % q
		if lhs != 1 {
			t.Errorf("i=%d: g^(i+1)+g^table[i] = %d mod %d, want 1", i, lhs, q)
		}
	}
}

func TestBuildDifferentPrimeStillHolds(t *testing.T) {
	const q = 23
	tbl := Build(q)
	g := tbl.Gen
	gPow := make([]uint64, q)
	p := uint64(1)
	for i := uint64(0); i < q; i++ {
		gPow[i] = p
		p = (p * g) % q
	}
	for i, ti := range tbl.Table {
		lhs := (gPow[(uint64(i)+1)%q] + gPow[ti%q]) % q
		if lhs != 1 {
			t.Errorf("i=%d: identity failed mod %d", i, q)
		}
	}
}
