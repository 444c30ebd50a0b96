package engine

import (
	"math/big"
	"testing"
)

func TestMulCoprimeRejectsSharedFactor(t *testing.T) {
	n := big.NewInt(21) // 3*7
	if mulCoprime(3, 5, n) {
		t.Fatal("expected gcd(3*5, 21) != 1")
	}
	if !mulCoprime(2, 5, n) {
		t.Fatal("expected gcd(2*5, 21) == 1")
	}
}

func TestHalfOfNMinusOneIsExactForOddN(t *testing.T) {
	n := big.NewInt(15)
	got := halfOfNMinusOne(n)
	if got.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("(15-1)/2 = %s, want 7", got)
	}
}

func TestGcdUint64(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{12, 18, 6},
		{7, 5, 1},
		{0, 9, 9},
	}
	for _, c := range cases {
		if got := gcdUint64(c.a, c.b); got != c.want {
			t.Errorf("gcd(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
