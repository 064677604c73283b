package bigint

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(x Int) *big.Int {
	words := make([]big.Word, len(x.abs))
	for i, w := range x.abs {
		words[i] = big.Word(w)
	}
	b := new(big.Int).SetBits(words)
	if x.neg {
		b.Neg(b)
	}
	return b
}

func randInt(rng *rand.Rand, words int) Int {
	w := make([]uint64, words)
	for i := range w {
		w[i] = rng.Uint64()
	}
	if words > 0 && rng.Intn(4) == 0 {
		// sparse top word exercises normalization paths
		w[words-1] &= 0xff
	}
	return FromWords(rng.Intn(2) == 0, w)
}

func TestZeroValue(t *testing.T) {
	var z Int
	assert.Equal(t, 0, z.Sign())
	assert.Equal(t, "0", z.String())
	assert.Equal(t, []byte{0}, z.Bytes())
	assert.True(t, NewInt(0).Equal(z))
	assert.True(t, NewInt(5).Sub(NewInt(5)).Equal(z))
	assert.False(t, NewInt(-3).Add(NewInt(3)).neg, "zero must never carry a sign")
}

func TestNewIntExtremes(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64} {
		x := NewInt(v)
		require.True(t, x.IsInt64())
		require.Equal(t, v, x.Int64())
		require.Equal(t, big.NewInt(v).String(), x.String())
	}
}

func TestBytesRoundTrip(t *testing.T) {
	cases := map[int64][]byte{
		0:    {0x00},
		1:    {0x01},
		127:  {0x7f},
		128:  {0x00, 0x80},
		255:  {0x00, 0xff},
		-1:   {0xff},
		-128: {0x80},
		-129: {0xff, 0x7f},
		-256: {0xff, 0x00},
	}
	for v, enc := range cases {
		require.Equal(t, enc, NewInt(v).Bytes(), "encode %d", v)
		require.Equal(t, v, FromBytes(enc).Int64(), "decode %x", enc)
	}
	// sign extension
	require.Equal(t, int64(-1), FromBytes([]byte{0xff, 0xff, 0xff}).Int64())
	require.Equal(t, int64(0x7fff), FromBytes([]byte{0x00, 0x00, 0x7f, 0xff}).Int64())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		x := randInt(rng, rng.Intn(6))
		require.True(t, x.Equal(FromBytes(x.Bytes())), "round trip %s", x)
	}
}

func TestAddSubAgainstBig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		x, y := randInt(rng, rng.Intn(5)), randInt(rng, rng.Intn(5))
		bx, by := toBig(x), toBig(y)
		require.Equal(t, new(big.Int).Add(bx, by).String(), x.Add(y).String())
		require.Equal(t, new(big.Int).Sub(bx, by).String(), x.Sub(y).String())
		require.Equal(t, bx.Cmp(by), x.Cmp(y))
	}
}

func TestShifts(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		x := randInt(rng, rng.Intn(4))
		s := uint(rng.Intn(200))
		bx := toBig(x)
		require.Equal(t, new(big.Int).Lsh(bx, s).String(), x.Lsh(s).String())
		// big.Int.Rsh is arithmetic (floor) for negative values too
		require.Equal(t, new(big.Int).Rsh(bx, s).String(), x.Rsh(s).String(), "x=%s s=%d", x, s)
	}
}

func TestStringAndBitLen(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		x := randInt(rng, rng.Intn(8))
		bx := toBig(x)
		require.Equal(t, bx.String(), x.String())
		require.Equal(t, bx.BitLen(), x.BitLen())
	}
}

func TestPow(t *testing.T) {
	require.Equal(t, "1", NewInt(7).Pow(0).String())
	require.Equal(t, new(big.Int).Exp(big.NewInt(3), big.NewInt(200), nil).String(), NewInt(3).Pow(200).String())
	require.Equal(t, "-2187", NewInt(-3).Pow(7).String())
}

func TestParse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		x := randInt(rng, rng.Intn(12))
		got, err := Parse(x.String())
		require.NoError(t, err)
		require.True(t, got.Equal(x), "%s", x)
	}
	for _, s := range []string{"+42", "0000000000000000000000000000042"} {
		got, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Int64())
	}
	for _, s := range []string{"", "-", "12a", "1-2", "1 2"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrSyntax, s)
	}
}
