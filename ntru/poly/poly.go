// Package poly implements arithmetic in the truncated polynomial ring
// Z[X]/(X^N - 1): dense polynomials, ternary polynomials in dense, sparse and
// product form, cyclic convolution, inversion and the byte encodings used by
// keys and ciphertexts.
//
// Mixing polynomials of different ring sizes is a programming error and
// panics.
package poly

import "fmt"

// Poly is a dense polynomial; Coeffs[i] is the coefficient of X^i.
type Poly struct {
	Coeffs []int64
}

// New returns the zero polynomial of ring size n.
func New(n int) Poly {
	return Poly{Coeffs: make([]int64, n)}
}

// FromCoeffs copies c into a new polynomial.
func FromCoeffs(c []int64) Poly {
	out := New(len(c))
	copy(out.Coeffs, c)
	return out
}

// N returns the ring size.
func (p Poly) N() int { return len(p.Coeffs) }

func (p Poly) Clone() Poly { return FromCoeffs(p.Coeffs) }

func mustMatch(a, b Poly) {
	if len(a.Coeffs) != len(b.Coeffs) {
		panic(fmt.Sprintf("poly: ring size mismatch %d != %d", len(a.Coeffs), len(b.Coeffs)))
	}
}

func modPos(v, m int64) int64 {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

func (p Poly) Add(b Poly) Poly {
	mustMatch(p, b)
	out := New(p.N())
	for i := range out.Coeffs {
		out.Coeffs[i] = p.Coeffs[i] + b.Coeffs[i]
	}
	return out
}

func (p Poly) Sub(b Poly) Poly {
	mustMatch(p, b)
	out := New(p.N())
	for i := range out.Coeffs {
		out.Coeffs[i] = p.Coeffs[i] - b.Coeffs[i]
	}
	return out
}

// AddMod returns p+b with coefficients in [0, m).
func (p Poly) AddMod(b Poly, m int64) Poly { return p.Add(b).Mod(m) }

// SubMod returns p-b with coefficients in [0, m).
func (p Poly) SubMod(b Poly, m int64) Poly { return p.Sub(b).Mod(m) }

func (p Poly) MulScalar(c int64) Poly {
	out := New(p.N())
	for i, v := range p.Coeffs {
		out.Coeffs[i] = v * c
	}
	return out
}

// Mod reduces every coefficient into [0, m).
func (p Poly) Mod(m int64) Poly {
	out := New(p.N())
	for i, v := range p.Coeffs {
		out.Coeffs[i] = modPos(v, m)
	}
	return out
}

// Center maps coefficients mod q to the symmetric interval (-q/2, q/2].
func (p Poly) Center(q int64) Poly {
	out := New(p.N())
	half := q / 2
	for i, v := range p.Coeffs {
		v = modPos(v, q)
		if v > half {
			v -= q
		}
		out.Coeffs[i] = v
	}
	return out
}

// CenterMod3 reduces mod 3 into {-1, 0, 1}.
func (p Poly) CenterMod3() Poly { return p.Center(3) }

func (p Poly) Equal(b Poly) bool {
	if len(p.Coeffs) != len(b.Coeffs) {
		return false
	}
	for i, v := range p.Coeffs {
		if b.Coeffs[i] != v {
			return false
		}
	}
	return true
}

// Count returns how many coefficients equal v.
func (p Poly) Count(v int64) int {
	n := 0
	for _, c := range p.Coeffs {
		if c == v {
			n++
		}
	}
	return n
}

// IsOne reports whether p is the multiplicative identity mod m.
func (p Poly) IsOne(m int64) bool {
	for i, v := range p.Coeffs {
		want := int64(0)
		if i == 0 {
			want = 1 % m
		}
		if modPos(v, m) != want {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute coefficient.
func (p Poly) MaxAbs() int64 {
	var m int64
	for _, v := range p.Coeffs {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// Zero overwrites every coefficient with 0.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}
