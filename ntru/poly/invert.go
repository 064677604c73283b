package poly

import "math/bits"

// InvertModPrime returns f^-1 in Z_p[X]/(X^N - 1) with coefficients in
// [0, p), found with the extended Euclidean algorithm. ok is false when f is
// not a unit.
func InvertModPrime(f Poly, p int64) (Poly, bool) {
	n := f.N()
	q := uint64(p)
	fp := polyP{coeffs: make([]uint64, n), q: q}
	for i, v := range f.Coeffs {
		fp.coeffs[i] = uint64(modPos(v, p))
	}
	g, ok := invertPoly(fp, n)
	if !ok {
		return Poly{}, false
	}
	inv := New(n)
	for i, v := range g.coeffs {
		inv.Coeffs[i] = int64(v)
	}
	if !MulSchoolbook(f, inv, p).IsOne(p) {
		return Poly{}, false
	}
	return inv, true
}

// InvertModPowerOfTwo returns f^-1 mod (q, X^N - 1) for a power of two q by
// inverting mod 2 and then lifting with Newton steps b <- b(2 - f b), which
// square the modulus each round.
func InvertModPowerOfTwo(f Poly, q int64) (Poly, bool) {
	if q < 2 || q&(q-1) != 0 {
		panic("poly: modulus is not a power of two")
	}
	b, ok := InvertModPrime(f, 2)
	if !ok {
		return Poly{}, false
	}
	for v := int64(2); v < q; {
		if v > q/v {
			v = q
		} else {
			v *= v
		}
		fb := Mul(f, b, v)
		two := New(f.N())
		two.Coeffs[0] = 2
		b = Mul(b, two.SubMod(fb, v), v)
	}
	if !Mul(f, b, q).IsOne(q) {
		return Poly{}, false
	}
	return b, true
}

// polyP is a polynomial over Z_q of variable length used by the Euclidean
// algorithm before reduction mod X^N - 1.
type polyP struct {
	coeffs []uint64
	q      uint64
}

func (p polyP) degree() int { return degreeSlice(p.coeffs) }

func polySub(a, b polyP) polyP {
	n := max(len(a.coeffs), len(b.coeffs))
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var ai, bi uint64
		if i < len(a.coeffs) {
			ai = a.coeffs[i]
		}
		if i < len(b.coeffs) {
			bi = b.coeffs[i]
		}
		out[i] = modSub(ai, bi, a.q)
	}
	return polyP{coeffs: trimSlice(out), q: a.q}
}

func polyScalarMul(a polyP, c uint64) polyP {
	out := make([]uint64, len(a.coeffs))
	for i := range a.coeffs {
		out[i] = modMul(a.coeffs[i], c, a.q)
	}
	return polyP{coeffs: out, q: a.q}
}

func polyMul(a, b polyP) polyP {
	if len(a.coeffs) == 0 || len(b.coeffs) == 0 {
		return polyP{q: a.q}
	}
	out := make([]uint64, len(a.coeffs)+len(b.coeffs)-1)
	for i, ai := range a.coeffs {
		if ai == 0 {
			continue
		}
		for j, bj := range b.coeffs {
			if bj == 0 {
				continue
			}
			out[i+j] = modAdd(out[i+j], modMul(ai, bj, a.q), a.q)
		}
	}
	return polyP{coeffs: trimSlice(out), q: a.q}
}

func polyDiv(a, b polyP) (polyP, polyP, bool) {
	db := b.degree()
	if db < 0 {
		return polyP{}, polyP{}, false
	}
	q := a.q
	r := make([]uint64, len(a.coeffs))
	copy(r, a.coeffs)
	da := degreeSlice(r)
	var qcoeffs []uint64
	inv, ok := modInv(b.coeffs[db], q)
	if !ok {
		return polyP{}, polyP{}, false
	}
	for da >= db {
		coef := modMul(r[da], inv, q)
		shift := da - db
		if shift >= len(qcoeffs) {
			tmp := make([]uint64, shift+1)
			copy(tmp, qcoeffs)
			qcoeffs = tmp
		}
		qcoeffs[shift] = modAdd(qcoeffs[shift], coef, q)
		for i := 0; i <= db; i++ {
			r[i+shift] = modSub(r[i+shift], modMul(coef, b.coeffs[i], q), q)
		}
		da = degreeSlice(r[:da])
	}
	return polyP{coeffs: trimSlice(qcoeffs), q: q}, polyP{coeffs: trimSlice(r), q: q}, true
}

func degreeSlice(a []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i
		}
	}
	return -1
}

func trimSlice(a []uint64) []uint64 {
	return a[:degreeSlice(a)+1]
}

// reduceCyclic folds a mod X^N - 1.
func reduceCyclic(a polyP, n int) polyP {
	out := make([]uint64, n)
	for i, c := range a.coeffs {
		out[i%n] = modAdd(out[i%n], c%a.q, a.q)
	}
	return polyP{coeffs: out, q: a.q}
}

func invertPoly(f polyP, n int) (polyP, bool) {
	q := f.q
	// R0 = X^N - 1
	R0 := polyP{coeffs: make([]uint64, n+1), q: q}
	R0.coeffs[0] = q - 1
	R0.coeffs[n] = 1
	R1 := polyP{coeffs: trimSlice(append([]uint64(nil), f.coeffs...)), q: q}
	T0 := polyP{q: q}
	T1 := polyP{coeffs: []uint64{1}, q: q}
	for R1.degree() >= 0 {
		qhat, r2, ok := polyDiv(R0, R1)
		if !ok {
			return polyP{}, false
		}
		R0, R1 = R1, r2
		T0, T1 = T1, polySub(T0, polyMul(qhat, T1))
	}
	if R0.degree() != 0 {
		return polyP{}, false
	}
	invConst, ok := modInv(R0.coeffs[0], q)
	if !ok {
		return polyP{}, false
	}
	return reduceCyclic(polyScalarMul(T0, invConst), n), true
}

func modAdd(x, y, q uint64) uint64 {
	z := x + y
	if z < x || z >= q {
		z -= q
	}
	return z
}

func modSub(x, y, q uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + (q - y)
}

func modMul(x, y, q uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	_, r := bits.Div64(hi, lo, q)
	return r
}

func modInv(a, q uint64) (uint64, bool) {
	t, newT := int64(0), int64(1)
	r, newR := int64(q), int64(a%q)
	for newR != 0 {
		quo := r / newR
		t, newT = newT, t-quo*newT
		r, newR = newR, r-quo*newR
	}
	if r != 1 {
		return 0, false
	}
	if t < 0 {
		t += int64(q)
	}
	return uint64(t), true
}
