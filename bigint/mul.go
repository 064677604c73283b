package bigint

import "math/bits"

const (
	// KaratsubaThreshold is the operand size in words at which Mul switches
	// from schoolbook to Karatsuba multiplication.
	KaratsubaThreshold = 40
	// FourierThreshold is the operand size in words at which Mul switches to
	// the NTT-based multiplier.
	FourierThreshold = 512
)

// Mul returns x*y, choosing the multiplication strategy from the size of
// the smaller operand.
func (x Int) Mul(y Int) Int {
	return mk(x.neg != y.neg, natMul(x.abs, y.abs))
}

// MulSchoolbook returns x*y using column multiplication only.
func MulSchoolbook(x, y Int) Int {
	return mk(x.neg != y.neg, natMulSchoolbook(x.abs, y.abs))
}

// MulKaratsuba returns x*y using recursive Karatsuba multiplication down to
// KaratsubaThreshold words.
func MulKaratsuba(x, y Int) Int {
	return mk(x.neg != y.neg, natMulKaratsuba(x.abs, y.abs))
}

// MulFourier returns x*y using the NTT-based multiplier. Operands whose
// product exceeds the largest supported transform fall back to Karatsuba.
func MulFourier(x, y Int) Int {
	return mk(x.neg != y.neg, natMulFourier(x.abs, y.abs))
}

func natMul(x, y nat) nat {
	n := min(len(x), len(y))
	switch {
	case n == 0:
		return nil
	case n >= FourierThreshold && fourierFits(len(x), len(y)):
		return natMulFourier(x, y)
	case n >= KaratsubaThreshold:
		return natMulKaratsuba(x, y)
	}
	return natMulSchoolbook(x, y)
}

func natMulSchoolbook(x, y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(nat, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var carry uint64
		for j, yj := range y {
			hi, lo := bits.Mul64(xi, yj)
			var c uint64
			lo, c = bits.Add64(lo, z[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			z[i+j] = lo
			carry = hi
		}
		z[i+len(y)] = carry
	}
	return z.norm()
}

func natMulKaratsuba(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) < KaratsubaThreshold {
		return natMulSchoolbook(x, y)
	}
	m := (len(x) + 1) / 2
	z := make(nat, len(x)+len(y)+1)
	x0, x1 := x[:m].norm(), x[m:]
	if len(y) <= m {
		// unbalanced: split the longer operand only
		addAt(z, natMulKaratsuba(x0, y), 0)
		addAt(z, natMulKaratsuba(x1, y), m)
		return z.norm()
	}
	y0, y1 := y[:m].norm(), y[m:]
	z0 := natMulKaratsuba(x0, y0)
	z2 := natMulKaratsuba(x1, y1)
	z1 := natMulKaratsuba(natAdd(x0, x1), natAdd(y0, y1))
	z1 = natSub(natSub(z1, z0), z2)
	addAt(z, z0, 0)
	addAt(z, z1, m)
	addAt(z, z2, 2*m)
	return z.norm()
}
