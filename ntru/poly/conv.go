package poly

import (
	"math/bits"

	"ntruencrypt/bigint"
)

// KroneckerThreshold is the ring size from which Mul packs operands into big
// integers instead of convolving coefficient by coefficient.
const KroneckerThreshold = 768

// Mul returns the cyclic convolution a*b mod (X^N - 1). When mod > 0 the
// result is reduced into [0, mod); otherwise it is exact.
func Mul(a, b Poly, mod int64) Poly {
	mustMatch(a, b)
	if a.N() >= KroneckerThreshold {
		return MulKronecker(a, b, mod)
	}
	return MulSchoolbook(a, b, mod)
}

// MulSchoolbook is the O(N^2) reference convolution.
func MulSchoolbook(a, b Poly, mod int64) Poly {
	mustMatch(a, b)
	if mod > 0 {
		a, b = a.Mod(mod), b.Mod(mod)
	}
	n := a.N()
	out := New(n)
	c := out.Coeffs
	for i, ai := range a.Coeffs {
		if ai == 0 {
			continue
		}
		// k = i+j wraps once at n
		for j := 0; j < n-i; j++ {
			c[i+j] += ai * b.Coeffs[j]
		}
		for j := n - i; j < n; j++ {
			c[i+j-n] += ai * b.Coeffs[j]
		}
		if mod > 0 && i%1024 == 1023 {
			reduceInPlace(c, mod)
		}
	}
	if mod > 0 {
		reduceInPlace(c, mod)
	}
	return out
}

func reduceInPlace(c []int64, mod int64) {
	for i, v := range c {
		c[i] = modPos(v, mod)
	}
}

// MulKronecker evaluates both operands at X = 2^w, multiplies the resulting
// integers once with the bigint multiplier and reads the linear product's
// coefficients back out of w-bit slots before folding them mod X^N - 1.
// w is chosen so every signed slot fits; if that needs more than 62 bits the
// schoolbook path is used instead.
func MulKronecker(a, b Poly, mod int64) Poly {
	mustMatch(a, b)
	if mod > 0 {
		a, b = a.Mod(mod), b.Mod(mod)
	}
	n := a.N()
	maxA, maxB := a.MaxAbs(), b.MaxAbs()
	if maxA == 0 || maxB == 0 {
		return New(n)
	}
	hi, bound := bits.Mul64(uint64(maxA), uint64(maxB))
	hi2, bound2 := bits.Mul64(bound, uint64(n))
	if hi != 0 || hi2 != 0 || bits.Len64(bound2) > 61 {
		return MulSchoolbook(a, b, mod)
	}
	w := uint(bits.Len64(bound2) + 1)

	x := packSigned(a.Coeffs, w)
	y := packSigned(b.Coeffs, w)
	prod := x.Mul(y)

	slots := unpackSigned(prod, w, 2*n-1)
	out := New(n)
	for k, v := range slots {
		if k < n {
			out.Coeffs[k] += v
		} else {
			out.Coeffs[k-n] += v
		}
	}
	if mod > 0 {
		reduceInPlace(out.Coeffs, mod)
	}
	return out
}

func packSigned(c []int64, w uint) bigint.Int {
	size := (len(c)*int(w)+63)/64 + 1
	pos := make([]uint64, size)
	neg := make([]uint64, size)
	for i, v := range c {
		switch {
		case v > 0:
			putSlot(pos, uint(i)*w, w, uint64(v))
		case v < 0:
			putSlot(neg, uint(i)*w, w, uint64(-v))
		}
	}
	return bigint.FromWords(false, pos).Sub(bigint.FromWords(false, neg))
}

// unpackSigned recovers count balanced digits in [-2^(w-1), 2^(w-1)).
func unpackSigned(x bigint.Int, w uint, count int) []int64 {
	words := x.Words()
	neg := x.Sign() < 0
	out := make([]int64, count)
	half := int64(1) << (w - 1)
	var carry int64
	for k := range out {
		v := int64(getSlot(words, uint(k)*w, w)) + carry
		carry = 0
		if v >= half {
			v -= int64(1) << w
			carry = 1
		}
		if neg {
			v = -v
		}
		out[k] = v
	}
	return out
}

func putSlot(words []uint64, pos, w uint, v uint64) {
	idx, off := pos/64, pos%64
	words[idx] |= v << off
	if off+w > 64 {
		words[idx+1] |= v >> (64 - off)
	}
}

func getSlot(words []uint64, pos, w uint) uint64 {
	idx, off := int(pos/64), pos%64
	if idx >= len(words) {
		return 0
	}
	v := words[idx] >> off
	if off+w > 64 && idx+1 < len(words) {
		v |= words[idx+1] << (64 - off)
	}
	return v & (1<<w - 1)
}
