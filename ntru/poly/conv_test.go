package poly

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randPoly(rng *rand.Rand, n int, q int64) Poly {
	p := New(n)
	for i := range p.Coeffs {
		p.Coeffs[i] = rng.Int63n(q)
	}
	return p
}

type mathRandSource struct {
	rng *rand.Rand
	n   int
}

func (s mathRandSource) NextIndex() (int, error) { return s.rng.Intn(s.n), nil }

func TestSchoolbookSmall(t *testing.T) {
	// (1 + X) * (1 + X^2) mod X^3 - 1 = 1 + X + X^2 + X^3 = 2 + X + X^2
	a := FromCoeffs([]int64{1, 1, 0})
	b := FromCoeffs([]int64{1, 0, 1})
	assert.Equal(t, []int64{2, 1, 1}, MulSchoolbook(a, b, 0).Coeffs)
	assert.Equal(t, []int64{0, 1, 1}, MulSchoolbook(a, b, 2).Coeffs)
}

func TestKroneckerMatchesSchoolbook(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 11, 97, 439, 1087, 1499} {
		a, b := randPoly(rng, n, 2048), randPoly(rng, n, 2048)
		want := MulSchoolbook(a, b, 2048)
		require.Equal(t, want.Coeffs, MulKronecker(a, b, 2048).Coeffs, "n=%d mod", n)
		require.Equal(t, want.Coeffs, Mul(a, b, 2048).Coeffs, "n=%d dispatch", n)

		// signed, unreduced operands
		sa, sb := a.Center(2048), b.Center(7)
		require.Equal(t, MulSchoolbook(sa, sb, 0).Coeffs, MulKronecker(sa, sb, 0).Coeffs, "n=%d signed", n)
	}
}

func TestKroneckerZeroOperand(t *testing.T) {
	a := New(5)
	b := FromCoeffs([]int64{1, 2, 3, 4, 5})
	assert.Equal(t, New(5).Coeffs, MulKronecker(a, b, 0).Coeffs)
}

func TestTernaryRepresentationsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const q = 2048
	for _, n := range []int{11, 439, 743} {
		src := mathRandSource{rng: rng, n: n}
		b := randPoly(rng, n, q)

		dense, err := RandomDense(n, n/5, n/5-1, src)
		require.NoError(t, err)
		sparse, err := SparseFromDense(dense.Poly)
		require.NoError(t, err)
		want := MulSchoolbook(dense.Poly, b, q)
		require.Equal(t, want.Coeffs, dense.Mul(b, q).Coeffs)
		require.Equal(t, want.Coeffs, sparse.Mul(b, q).Coeffs)
		require.Equal(t, dense.Poly.Coeffs, sparse.Dense().Coeffs)

		pf, err := RandomProductForm(n, 2, 2, 3, 3, src)
		require.NoError(t, err)
		require.Equal(t, MulSchoolbook(pf.Dense(), b, q).Coeffs, pf.Mul(b, q).Coeffs)
	}
}

func TestRandomWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	src := mathRandSource{rng: rng, n: 101}
	d, err := RandomDense(101, 30, 29, src)
	require.NoError(t, err)
	assert.Equal(t, 30, d.Count(1))
	assert.Equal(t, 29, d.Count(-1))

	s, err := RandomSparse(101, 5, 7, src)
	require.NoError(t, err)
	assert.Len(t, s.Ones, 5)
	assert.Len(t, s.NegOnes, 7)
	assert.IsIncreasing(t, s.Ones)

	_, err = RandomDense(4, 3, 3, src)
	assert.ErrorIs(t, err, ErrNotTernary)
}

func TestSparseValidation(t *testing.T) {
	_, err := NewSparseTernary(5, []int{1, 2}, []int{2})
	assert.ErrorIs(t, err, ErrNotTernary)
	_, err = NewSparseTernary(5, []int{5}, nil)
	assert.ErrorIs(t, err, ErrNotTernary)
	_, err = SparseFromDense(FromCoeffs([]int64{0, 2}))
	assert.ErrorIs(t, err, ErrNotTernary)
	_, err = NewDenseTernary(FromCoeffs([]int64{1, -2}))
	assert.ErrorIs(t, err, ErrNotTernary)
	_, err = NewProductForm(&SparseTernary{n: 5}, &SparseTernary{n: 5}, &SparseTernary{n: 7})
	assert.ErrorIs(t, err, ErrNotTernary)
}

func TestReaderSourceShortRead(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte{1}), 11)
	_, err := RandomDense(11, 2, 2, src)
	require.Error(t, err)
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
	assert.Contains(t, err.Error(), "poly: read randomness")
}

func TestRingSizeMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { New(3).Add(New(4)) })
	assert.Panics(t, func() { Mul(New(3), New(4), 0) })
}

func BenchmarkConvolution(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	const n, q = 1499, 2048
	x, y := randPoly(rng, n, q), randPoly(rng, n, q)
	src := mathRandSource{rng: rng, n: n}
	sparse, _ := RandomSparse(n, 79, 79, src)
	pf, _ := RandomProductForm(n, 10, 9, 8, 8, src)
	b.Run("schoolbook", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			MulSchoolbook(x, y, q)
		}
	})
	b.Run("kronecker", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			MulKronecker(x, y, q)
		}
	})
	b.Run("sparse", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sparse.Mul(y, q)
		}
	})
	b.Run("product", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pf.Mul(y, q)
		}
	})
}
