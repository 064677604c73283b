package poly

// Message blocks are mapped to trits three bits at a time: each 3-bit group
// (read most significant bit first) becomes two trits through bitToTrits.
// A trailing group of one bit becomes a single trit equal to the bit; a
// trailing group of two bits is padded with a zero bit.

var bitToTrits = [8][2]int64{
	{0, 0}, {0, 1}, {0, -1}, {1, 0}, {1, 1}, {1, -1}, {-1, 0}, {-1, 1},
}

func tritsToBits(t1, t2 int64) (uint64, bool) {
	for v, pair := range bitToTrits {
		if pair[0] == t1 && pair[1] == t2 {
			return uint64(v), true
		}
	}
	return 0, false
}

// TritsNeeded returns how many trits a block of nBytes occupies.
func TritsNeeded(nBytes int) int {
	nbits := 8 * nBytes
	return 2*(nbits/3) + [3]int{0, 1, 2}[nbits%3]
}

// TritsFromBytes maps data to the first TritsNeeded(len(data)) coefficients
// of a ring-size-n polynomial; the rest are zero. It panics if the block does
// not fit.
func TritsFromBytes(data []byte, n int) Poly {
	if TritsNeeded(len(data)) > n {
		panic("poly: message block does not fit the ring")
	}
	out := New(n)
	r := NewBitReader(data)
	k := 0
	for {
		v, ok := r.ReadBits(3)
		if !ok {
			break
		}
		out.Coeffs[k], out.Coeffs[k+1] = bitToTrits[v][0], bitToTrits[v][1]
		k += 2
	}
	switch 8 * len(data) % 3 {
	case 1:
		v, _ := r.ReadBits(1)
		out.Coeffs[k] = int64(v)
	case 2:
		v, _ := r.ReadBits(2)
		out.Coeffs[k], out.Coeffs[k+1] = bitToTrits[v<<1][0], bitToTrits[v<<1][1]
	}
	return out
}

// BytesFromTrits inverts TritsFromBytes for a block of nBytes. ok is false if
// any trit pair has no bit image; trits past the block are not inspected.
func BytesFromTrits(p Poly, nBytes int) ([]byte, bool) {
	if TritsNeeded(nBytes) > p.N() {
		return nil, false
	}
	w := &BitWriter{buf: make([]byte, 0, nBytes)}
	ok := true
	nbits := 8 * nBytes
	k := 0
	for i := 0; i < nbits/3; i++ {
		v, valid := tritsToBits(p.Coeffs[k], p.Coeffs[k+1])
		ok = ok && valid
		w.WriteBits(v, 3)
		k += 2
	}
	switch nbits % 3 {
	case 1:
		t := p.Coeffs[k]
		ok = ok && (t == 0 || t == 1)
		w.WriteBits(uint64(t&1), 1)
	case 2:
		v, valid := tritsToBits(p.Coeffs[k], p.Coeffs[k+1])
		ok = ok && valid && v&1 == 0
		w.WriteBits(v>>1, 2)
	}
	return w.Bytes(), ok
}
