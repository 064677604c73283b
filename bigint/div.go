package bigint

import "math/bits"

// QuoRem returns the truncated quotient and remainder of x/y: q is rounded
// toward zero and r has the sign of x. It panics if y == 0.
func (x Int) QuoRem(y Int) (q, r Int) {
	qa, ra := natDivMod(x.abs, y.abs)
	return mk(x.neg != y.neg, qa), mk(x.neg, ra)
}

// Mod returns the Euclidean remainder of x/y, in [0, |y|). It panics if y == 0.
func (x Int) Mod(y Int) Int {
	_, r := x.QuoRem(y)
	if r.neg {
		r = r.Add(y.Abs())
	}
	return r
}

// Div returns the Euclidean quotient matching Mod. It panics if y == 0.
func (x Int) Div(y Int) Int {
	q, r := x.QuoRem(y)
	if r.neg {
		if y.neg {
			q = q.Add(NewInt(1))
		} else {
			q = q.Sub(NewInt(1))
		}
	}
	return q
}

// natDivMod divides u by v with Knuth's algorithm D.
func natDivMod(u, v nat) (q, r nat) {
	if len(v) == 0 {
		panic("bigint: division by zero")
	}
	if natCmp(u, v) < 0 {
		return nil, u
	}
	if len(v) == 1 {
		qw, rw := natDivWord(u, v[0])
		return qw, nat{rw}.norm()
	}

	s := uint(bits.LeadingZeros64(v[len(v)-1]))
	vn := shiftInto(v, s, len(v))
	un := shiftInto(u, s, len(u)+1)
	n, m := len(v), len(u)-len(v)
	q = make(nat, m+1)

	for j := m; j >= 0; j-- {
		qhat := ^uint64(0)
		if un[j+n] < vn[n-1] {
			var rhat uint64
			qhat, rhat = bits.Div64(un[j+n], un[j+n-1], vn[n-1])
			for {
				hi, lo := bits.Mul64(qhat, vn[n-2])
				if hi < rhat || (hi == rhat && lo <= un[j+n-2]) {
					break
				}
				qhat--
				prev := rhat
				rhat += vn[n-1]
				if rhat < prev {
					break
				}
			}
		}

		var borrow, carry uint64
		for i := 0; i < n; i++ {
			hi, lo := bits.Mul64(qhat, vn[i])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			carry = hi + c
			un[i+j], borrow = bits.Sub64(un[i+j], lo, borrow)
		}
		un[j+n], borrow = bits.Sub64(un[j+n], carry, borrow)

		for borrow != 0 {
			qhat--
			var c uint64
			for i := 0; i < n; i++ {
				un[i+j], c = bits.Add64(un[i+j], vn[i], c)
			}
			un[j+n], c = bits.Add64(un[j+n], 0, c)
			if c != 0 {
				borrow = 0
			}
		}
		q[j] = qhat
	}
	return q.norm(), natRsh(un[:n], s)
}

// shiftInto returns x << s (s < 64) in a fresh buffer of the given size.
func shiftInto(x nat, s uint, size int) nat {
	z := make(nat, size)
	if s == 0 {
		copy(z, x)
		return z
	}
	var carry uint64
	for i, w := range x {
		z[i] = w<<s | carry
		carry = w >> (64 - s)
	}
	if len(x) < size {
		z[len(x)] = carry
	}
	return z
}
