package bigint

import (
	"fmt"
	"sync"

	"github.com/tuneinsight/lattigo/v4/ring"
)

const (
	// fourierPrime is 2^61 - 2^21 + 1: prime, and 1 mod 2^21, so it admits
	// negacyclic NTTs up to degree 2^20.
	fourierPrime     = 0x1fffffffffe00001
	fourierPieceBits = 16
	fourierMinDegree = 16
	fourierMaxDegree = 1 << 20
)

var (
	fourierMu    sync.Mutex
	fourierRings = map[int]*ring.Ring{}
)

// fourierRing returns the cached NTT ring of the given power-of-two degree.
func fourierRing(degree int) *ring.Ring {
	fourierMu.Lock()
	defer fourierMu.Unlock()
	if r, ok := fourierRings[degree]; ok {
		return r
	}
	r, err := ring.NewRing(degree, []uint64{fourierPrime})
	if err != nil {
		panic(fmt.Sprintf("bigint: NTT ring of degree %d: %v", degree, err))
	}
	fourierRings[degree] = r
	return r
}

func fourierDegree(xWords, yWords int) int {
	pieces := (xWords + yWords) * (64 / fourierPieceBits)
	d := fourierMinDegree
	for d < pieces {
		d <<= 1
	}
	return d
}

func fourierFits(xWords, yWords int) bool {
	return fourierDegree(xWords, yWords) <= fourierMaxDegree
}

// natMulFourier splits both magnitudes into 16-bit pieces, convolves the
// piece vectors with an NTT whose degree exceeds the product length (so the
// negacyclic wrap never triggers), and recombines with carry propagation.
// Each convolution term is below min(len)*2^32 < 2^61, so nothing is lost mod
// fourierPrime.
func natMulFourier(x, y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	if !fourierFits(len(x), len(y)) {
		return natMulKaratsuba(x, y)
	}
	r := fourierRing(fourierDegree(len(x), len(y)))

	a, b := r.NewPoly(), r.NewPoly()
	splitPieces(a.Coeffs[0], x)
	splitPieces(b.Coeffs[0], y)

	r.MForm(a, a)
	r.MForm(b, b)
	r.NTT(a, a)
	r.NTT(b, b)
	c := r.NewPoly()
	r.MulCoeffsMontgomery(a, b, c)
	r.InvNTT(c, c)
	r.InvMForm(c, c)

	return joinPieces(c.Coeffs[0], len(x)+len(y))
}

func splitPieces(dst []uint64, x nat) {
	const per = 64 / fourierPieceBits
	for i, w := range x {
		for k := 0; k < per; k++ {
			dst[i*per+k] = (w >> (fourierPieceBits * uint(k))) & (1<<fourierPieceBits - 1)
		}
	}
}

func joinPieces(src []uint64, words int) nat {
	const per = 64 / fourierPieceBits
	z := make(nat, words)
	var carry uint64
	for i := 0; i < words*per; i++ {
		v := carry
		if i < len(src) {
			v += src[i]
		}
		z[i/per] |= (v & (1<<fourierPieceBits - 1)) << (fourierPieceBits * uint(i%per))
		carry = v >> fourierPieceBits
	}
	return z.norm()
}
