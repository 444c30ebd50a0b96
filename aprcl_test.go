package aprcl

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrimeBoundaryCases(t *testing.T) {
	cases := []struct {
		n    int64
		want bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, c := range cases {
		ok, err := IsPrime(big.NewInt(c.n))
		assert.Equal(t, c.want, ok, "IsPrime(%d)", c.n)
		if !c.want {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestIsPrimeRejectsEvenComposite(t *testing.T) {
	ok, err := IsPrime(big.NewInt(100))
	assert.False(t, ok)
	var aprclErr *Error
	if assert.ErrorAs(t, err, &aprclErr) {
		assert.Equal(t, StatusComposite, aprclErr.Status)
	}
}

func TestIsPrimeRejectsOddComposite(t *testing.T) {
	ok, _ := IsPrime(big.NewInt(91)) // 7 * 13
	assert.False(t, ok)
}

func TestIsPrimeProvesSmallPrimes(t *testing.T) {
	for _, n := range []int64{5, 7, 11, 13, 101, 10007} {
		ok, err := IsPrime(big.NewInt(n))
		assert.NoError(t, err, "n=%d", n)
		assert.True(t, ok, "n=%d", n)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "composite", StatusComposite.String())
	assert.Equal(t, "inconclusive", StatusInconclusive.String())
	assert.Equal(t, "hard_error", StatusHardError.String())
}
