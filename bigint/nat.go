package bigint

import "math/bits"

// nat is an unsigned magnitude stored as little-endian 64-bit words.
// A normalized nat has no zero word at the top; zero is the empty slice.
type nat []uint64

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

func (z nat) bitLen() int {
	if len(z) == 0 {
		return 0
	}
	return (len(z)-1)*64 + bits.Len64(z[len(z)-1])
}

func natCmp(x, y nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func natAdd(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x)+1)
	var c uint64
	for i := range y {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	for i := len(y); i < len(x); i++ {
		z[i], c = bits.Add64(x[i], 0, c)
	}
	z[len(x)] = c
	return z.norm()
}

// natSub returns x-y. It requires x >= y.
func natSub(x, y nat) nat {
	z := make(nat, len(x))
	var b uint64
	for i := range y {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	for i := len(y); i < len(x); i++ {
		z[i], b = bits.Sub64(x[i], 0, b)
	}
	if b != 0 {
		panic("bigint: magnitude underflow")
	}
	return z.norm()
}

// addAt adds x into the scratch accumulator z starting at word off.
// z must be long enough to absorb the final carry.
func addAt(z, x nat, off int) {
	var c uint64
	for i, v := range x {
		z[off+i], c = bits.Add64(z[off+i], v, c)
	}
	for i := off + len(x); c != 0; i++ {
		z[i], c = bits.Add64(z[i], 0, c)
	}
}

func natLsh(x nat, s uint) nat {
	if len(x) == 0 {
		return nil
	}
	w, b := int(s/64), s%64
	z := make(nat, len(x)+w+1)
	if b == 0 {
		copy(z[w:], x)
		return z.norm()
	}
	var carry uint64
	for i, v := range x {
		z[i+w] = v<<b | carry
		carry = v >> (64 - b)
	}
	z[len(x)+w] = carry
	return z.norm()
}

func natRsh(x nat, s uint) nat {
	w, b := int(s/64), s%64
	if w >= len(x) {
		return nil
	}
	n := len(x) - w
	z := make(nat, n)
	if b == 0 {
		copy(z, x[w:])
		return z.norm()
	}
	for i := 0; i < n; i++ {
		z[i] = x[i+w] >> b
		if i+w+1 < len(x) {
			z[i] |= x[i+w+1] << (64 - b)
		}
	}
	return z.norm()
}

// lowBitsSet reports whether any of the s least significant bits of x is set.
func lowBitsSet(x nat, s uint) bool {
	w, b := int(s/64), s%64
	for i := 0; i < w && i < len(x); i++ {
		if x[i] != 0 {
			return true
		}
	}
	if b != 0 && w < len(x) {
		return x[w]&(1<<b-1) != 0
	}
	return false
}

// natFromBytes reads a big-endian unsigned magnitude.
func natFromBytes(buf []byte) nat {
	z := make(nat, (len(buf)+7)/8)
	for i := 0; i < len(buf); i++ {
		v := uint64(buf[len(buf)-1-i])
		z[i/8] |= v << (8 * uint(i%8))
	}
	return z.norm()
}

// natPutBytes writes x big-endian into exactly size bytes. x must fit.
func natPutBytes(x nat, size int) []byte {
	out := make([]byte, size)
	for i := 0; i < size && i/8 < len(x); i++ {
		out[size-1-i] = byte(x[i/8] >> (8 * uint(i%8)))
	}
	return out
}

func natDivWord(x nat, d uint64) (nat, uint64) {
	q := make(nat, len(x))
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, x[i], d)
	}
	return q.norm(), r
}
