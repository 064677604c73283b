package poly

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// IndexSource yields indices in [0, N) for building random ternary
// polynomials.
type IndexSource interface {
	NextIndex() (int, error)
}

type readerSource struct {
	r         io.Reader
	n         uint32
	threshold uint32
	buf       [4]byte
}

// NewReaderSource draws uniform indices in [0, n) from r by rejection
// sampling 32-bit little-endian words.
func NewReaderSource(r io.Reader, n int) IndexSource {
	un := uint32(n)
	return &readerSource{r: r, n: un, threshold: ^uint32(0) - (^uint32(0)%un+1)%un}
}

func (s *readerSource) NextIndex() (int, error) {
	for {
		if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
			return 0, errors.Wrap(err, "poly: read randomness")
		}
		v := binary.LittleEndian.Uint32(s.buf[:])
		if v <= s.threshold {
			return int(v % s.n), nil
		}
	}
}

// randomCoeffs places negOnes -1s and then ones +1s at free positions.
func randomCoeffs(n, ones, negOnes int, src IndexSource) ([]int64, error) {
	if ones+negOnes > n {
		return nil, errors.Wrapf(ErrNotTernary, "weight %d+%d exceeds ring size %d", ones, negOnes, n)
	}
	c := make([]int64, n)
	for _, step := range []struct {
		val   int64
		count int
	}{{-1, negOnes}, {1, ones}} {
		for placed := 0; placed < step.count; {
			i, err := src.NextIndex()
			if err != nil {
				return nil, err
			}
			if c[i] == 0 {
				c[i] = step.val
				placed++
			}
		}
	}
	return c, nil
}

// RandomDense draws a dense ternary polynomial with exactly ones +1s and
// negOnes -1s.
func RandomDense(n, ones, negOnes int, src IndexSource) (*DenseTernary, error) {
	c, err := randomCoeffs(n, ones, negOnes, src)
	if err != nil {
		return nil, err
	}
	return &DenseTernary{Poly: Poly{Coeffs: c}}, nil
}

// RandomSparse is RandomDense with a sparse result.
func RandomSparse(n, ones, negOnes int, src IndexSource) (*SparseTernary, error) {
	c, err := randomCoeffs(n, ones, negOnes, src)
	if err != nil {
		return nil, err
	}
	return SparseFromDense(Poly{Coeffs: c})
}

// RandomProductForm draws F1 and F2 with d1 and d2 coefficients of each sign
// and F3 with d3Ones +1s and d3NegOnes -1s.
func RandomProductForm(n, d1, d2, d3Ones, d3NegOnes int, src IndexSource) (*ProductForm, error) {
	f1, err := RandomSparse(n, d1, d1, src)
	if err != nil {
		return nil, err
	}
	f2, err := RandomSparse(n, d2, d2, src)
	if err != nil {
		return nil, err
	}
	f3, err := RandomSparse(n, d3Ones, d3NegOnes, src)
	if err != nil {
		return nil, err
	}
	return NewProductForm(f1, f2, f3)
}
