package aprcl

import (
	"math/big"
	"testing"
)

// TestEndToEndScenarios drives IsPrime end to end on the scenario
// numbers. Skipped under -short since each case runs the Jacobi engine
// on 19- to 40-digit (the perfect-power case below: ~140-digit) numbers.
func TestEndToEndScenarios(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end APR-CL scenarios in -short mode")
	}

	mustParse := func(s string) *big.Int {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("bad literal: %s", s)
		}
		return n
	}

	cases := []struct {
		name string
		n    *big.Int
		want bool
	}{
		{"S1", mustParse("40206835204840513073"), true},
		{"S2_3mod4", mustParse("521419622856657689423872613771"), true},
		{"S3_1mod4", mustParse("5991810554633396517767024967580894321153"), true},
		{"S4", mustParse("8876044532898802067"), false}, // 1500450271 * 5915587277
		{"S5", mustParse("323424426232167763068694468589"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, err := IsPrime(c.n)
			if ok != c.want {
				t.Errorf("IsPrime(%s) = (%v, %v), want prime=%v", c.name, ok, err, c.want)
			}
			if c.want && err != nil {
				t.Errorf("IsPrime(%s) unexpected error: %v", c.name, err)
			}
		})
	}
}

// TestEndToEndScenarioS6PerfectPowerIsComposite checks S6: the S1
// prime raised to the 7th power must be detected as composite.
func TestEndToEndScenarioS6PerfectPowerIsComposite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end APR-CL scenario in -short mode")
	}

	s1Prime, ok := new(big.Int).SetString("40206835204840513073", 10)
	if !ok {
		t.Fatal("bad S1 literal")
	}
	n := new(big.Int).Exp(s1Prime, big.NewInt(7), nil)

	prime, err := IsPrime(n)
	if prime {
		t.Fatalf("IsPrime(S1^7) = true, want composite")
	}
	if err == nil {
		t.Fatal("expected a non-nil error for a composite verdict")
	}
}
