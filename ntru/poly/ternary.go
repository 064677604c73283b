package poly

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Ternary is a polynomial with coefficients in {-1, 0, 1} (or, for
// ProductForm, an expression built from such polynomials). The set of
// implementations is closed: DenseTernary, SparseTernary and ProductForm.
type Ternary interface {
	N() int
	// Mul returns the convolution with b, reduced into [0, mod) if mod > 0.
	Mul(b Poly, mod int64) Poly
	// Dense expands the value into a dense polynomial.
	Dense() Poly
	// Zero overwrites the coefficients.
	Zero()
	isTernary()
}

// DenseTernary stores every coefficient.
type DenseTernary struct {
	Poly
}

// NewDenseTernary wraps p after checking its coefficients.
func NewDenseTernary(p Poly) (*DenseTernary, error) {
	for i, v := range p.Coeffs {
		if v < -1 || v > 1 {
			return nil, errors.Wrapf(ErrNotTernary, "coefficient %d at index %d is not ternary", v, i)
		}
	}
	return &DenseTernary{Poly: p.Clone()}, nil
}

func (t *DenseTernary) Mul(b Poly, mod int64) Poly { return MulSchoolbook(t.Poly, b, mod) }

func (t *DenseTernary) Dense() Poly { return t.Poly.Clone() }

func (t *DenseTernary) isTernary() {}

// SparseTernary stores the sorted positions of the +1 and -1 coefficients.
type SparseTernary struct {
	n       int
	Ones    []int
	NegOnes []int
}

// NewSparseTernary validates and sorts the index sets.
func NewSparseTernary(n int, ones, negOnes []int) (*SparseTernary, error) {
	seen := make([]bool, n)
	for _, set := range [][]int{ones, negOnes} {
		for _, i := range set {
			if i < 0 || i >= n {
				return nil, errors.Wrapf(ErrNotTernary, "index %d outside [0,%d)", i, n)
			}
			if seen[i] {
				return nil, errors.Wrapf(ErrNotTernary, "index %d repeated", i)
			}
			seen[i] = true
		}
	}
	t := &SparseTernary{
		n:       n,
		Ones:    append([]int(nil), ones...),
		NegOnes: append([]int(nil), negOnes...),
	}
	sort.Ints(t.Ones)
	sort.Ints(t.NegOnes)
	return t, nil
}

// SparseFromDense converts a ternary dense polynomial.
func SparseFromDense(p Poly) (*SparseTernary, error) {
	var ones, neg []int
	for i, v := range p.Coeffs {
		switch v {
		case 0:
		case 1:
			ones = append(ones, i)
		case -1:
			neg = append(neg, i)
		default:
			return nil, errors.Wrapf(ErrNotTernary, "coefficient %d at index %d is not ternary", v, i)
		}
	}
	return NewSparseTernary(p.N(), ones, neg)
}

func (t *SparseTernary) N() int { return t.n }

// Mul adds a rotated copy of b for every +1 and subtracts one for every -1,
// costing O(N * weight).
func (t *SparseTernary) Mul(b Poly, mod int64) Poly {
	if b.N() != t.n {
		panic(fmt.Sprintf("poly: ring size mismatch %d != %d", t.n, b.N()))
	}
	n := t.n
	out := New(n)
	c := out.Coeffs
	for _, i := range t.Ones {
		for j := 0; j < n-i; j++ {
			c[i+j] += b.Coeffs[j]
		}
		for j := n - i; j < n; j++ {
			c[i+j-n] += b.Coeffs[j]
		}
	}
	for _, i := range t.NegOnes {
		for j := 0; j < n-i; j++ {
			c[i+j] -= b.Coeffs[j]
		}
		for j := n - i; j < n; j++ {
			c[i+j-n] -= b.Coeffs[j]
		}
	}
	if mod > 0 {
		reduceInPlace(c, mod)
	}
	return out
}

func (t *SparseTernary) Dense() Poly {
	out := New(t.n)
	for _, i := range t.Ones {
		out.Coeffs[i] = 1
	}
	for _, i := range t.NegOnes {
		out.Coeffs[i] = -1
	}
	return out
}

func (t *SparseTernary) Zero() {
	for i := range t.Ones {
		t.Ones[i] = 0
	}
	for i := range t.NegOnes {
		t.NegOnes[i] = 0
	}
	t.Ones, t.NegOnes = nil, nil
}

func (t *SparseTernary) isTernary() {}

// ProductForm represents F1*F2 + F3.
type ProductForm struct {
	F1, F2, F3 *SparseTernary
}

// NewProductForm checks that the three factors share a ring size.
func NewProductForm(f1, f2, f3 *SparseTernary) (*ProductForm, error) {
	if f1.n != f2.n || f1.n != f3.n {
		return nil, errors.Wrapf(ErrNotTernary, "product form factors have ring sizes %d, %d, %d", f1.n, f2.n, f3.n)
	}
	return &ProductForm{F1: f1, F2: f2, F3: f3}, nil
}

func (t *ProductForm) N() int { return t.F1.n }

// Mul computes F1*(F2*b) + F3*b with three sparse passes.
func (t *ProductForm) Mul(b Poly, mod int64) Poly {
	c := t.F1.Mul(t.F2.Mul(b, mod), mod)
	c = c.Add(t.F3.Mul(b, mod))
	if mod > 0 {
		reduceInPlace(c.Coeffs, mod)
	}
	return c
}

func (t *ProductForm) Dense() Poly {
	return t.F1.Mul(t.F2.Dense(), 0).Add(t.F3.Dense())
}

func (t *ProductForm) Zero() {
	t.F1.Zero()
	t.F2.Zero()
	t.F3.Zero()
}

func (t *ProductForm) isTernary() {}
