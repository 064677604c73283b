package ntru

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntruencrypt/ntru/poly"
)

// f*h = 3g mod q with g ternary of weight Dg/Dg-1.
func checkKeyRelation(t *testing.T, key *PrivateKey) {
	p := key.Params
	g3 := poly.Mul(key.F(), key.H, p.Q).Center(p.Q)
	for i, v := range g3.Coeffs {
		require.Zero(t, v%3, "coefficient %d of f*h is %d", i, v)
	}
	g := g3.MulScalar(1)
	for i := range g.Coeffs {
		g.Coeffs[i] /= 3
	}
	assert.LessOrEqual(t, g.MaxAbs(), int64(1))
	assert.Equal(t, p.Dg(), g.Count(1))
	assert.Equal(t, p.Dg()-1, g.Count(-1))

	if p.FastFp {
		assert.Equal(t, poly.Poly{}, key.Fp)
	} else {
		assert.True(t, poly.Mul(key.F(), key.Fp, 3).IsOne(3))
	}
}

func TestGenerateKeyRelation(t *testing.T) {
	for _, name := range []string{Toy11, APR2011439, APR2011439Fast, APR2011743} {
		p := mustParams(t, name)
		if testing.Short() && p.N > 500 {
			continue
		}
		key, err := GenerateKey(p, seeded(t, name))
		require.NoError(t, err)
		checkKeyRelation(t, key)
	}
}

func TestGenerateKeyRepresentations(t *testing.T) {
	cases := map[string]any{
		APR2011439:     &poly.SparseTernary{},
		APR2011439Fast: &poly.ProductForm{},
		APR2011743:     &poly.DenseTernary{},
	}
	for name, want := range cases {
		p := mustParams(t, name)
		if testing.Short() && p.N > 500 {
			continue
		}
		key, err := GenerateKey(p, seeded(t, name))
		require.NoError(t, err)
		assert.IsType(t, want, key.T, name)
	}
}

func TestGenerateKeyFromSeedDeterministic(t *testing.T) {
	p := mustParams(t, APR2011439)
	a, err := GenerateKeyFromSeed(p, []byte("seed"))
	require.NoError(t, err)
	b, err := GenerateKeyFromSeed(p, []byte("seed"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := GenerateKeyFromSeed(p, []byte("other seed"))
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestGenerateKeyRejectsBadParams(t *testing.T) {
	p := mustParams(t, Toy11)
	p.N = 12
	_, err := GenerateKey(p, nil)
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestRetryExhausts(t *testing.T) {
	calls := 0
	_, err := retry(5, "never", func() (int, bool, error) {
		calls++
		return 0, false, nil
	})
	assert.True(t, errors.Is(err, ErrKeyGenExhausted))
	assert.Equal(t, 5, calls)

	boom := errors.New("boom")
	_, err = retry(5, "fails", func() (int, bool, error) { return 0, false, boom })
	assert.Equal(t, boom, err)

	v, err := retry(5, "third", func() (int, bool, error) {
		calls++
		return calls, calls == 8, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}

func TestZeroWipesSecret(t *testing.T) {
	key, err := GenerateKey(mustParams(t, APR2011439), seeded(t, "zero"))
	require.NoError(t, err)
	pub := key.Public()
	key.Zero()
	assert.Equal(t, 0, key.T.Dense().Count(1))
	assert.Equal(t, 0, key.Fp.Count(1)+key.Fp.Count(-1))
	assert.NotZero(t, pub.H.MaxAbs())
}
