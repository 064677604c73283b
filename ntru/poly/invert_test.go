package poly

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertModPowerOfTwo(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for _, tc := range []struct {
		n int
		q int64
	}{{11, 32}, {107, 2048}, {439, 2048}, {1087, 2048}} {
		found := 0
		for tries := 0; found < 3 && tries < 50; tries++ {
			src := mathRandSource{rng: rng, n: tc.n}
			tern, err := RandomDense(tc.n, tc.n/3, tc.n/3-1, src)
			require.NoError(t, err)
			// f = 1 + 3t is always odd at X = 1
			f := tern.MulScalar(3)
			f.Coeffs[0]++
			inv, ok := InvertModPowerOfTwo(f, tc.q)
			if !ok {
				continue
			}
			found++
			assert.True(t, Mul(f, inv, tc.q).IsOne(tc.q), "n=%d", tc.n)
		}
		require.Positive(t, found, "no invertible candidate for n=%d", tc.n)
	}
}

func TestInvertModPrime(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	for _, n := range []int{11, 107, 439} {
		src := mathRandSource{rng: rng, n: n}
		found := false
		for tries := 0; !found && tries < 50; tries++ {
			tern, err := RandomDense(n, n/3, n/3-1, src)
			require.NoError(t, err)
			inv, ok := InvertModPrime(tern.Poly, 3)
			if !ok {
				continue
			}
			found = true
			assert.True(t, MulSchoolbook(tern.Poly, inv, 3).IsOne(3))
		}
		require.True(t, found, "no invertible candidate for n=%d", n)
	}
}

func TestNonInvertible(t *testing.T) {
	// f(1) = 0 mod p means X - 1 divides f
	f := FromCoeffs([]int64{1, -1, 0, 0, 0, 0, 0})
	_, ok := InvertModPrime(f, 3)
	assert.False(t, ok)
	_, ok = InvertModPowerOfTwo(f, 2048)
	assert.False(t, ok)
	_, ok = InvertModPrime(New(7), 3)
	assert.False(t, ok)
	// all-ones is Phi_7 * 1 mod 2, a zero divisor
	_, ok = InvertModPowerOfTwo(FromCoeffs([]int64{1, 1, 1, 1, 1, 1, 1}), 32)
	assert.False(t, ok)
}
