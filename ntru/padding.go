package ntru

import (
	"ntruencrypt/ntru/expand"
	"ntruencrypt/ntru/poly"
)

// The message block is b | len | m | zero padding, BlockLen bytes in all.

func formatBlock(p Params, m, b []byte) []byte {
	block := make([]byte, p.BlockLen())
	n := copy(block, b)
	block[n] = byte(len(m))
	copy(block[n+p.LLen():], m)
	return block
}

// parseBlock splits a block into its random prefix and message. ok is false
// if the length field is out of range or the padding is not zero; the
// returned slices are still usable so callers can keep going.
func parseBlock(p Params, block []byte) (b, m []byte, ok bool) {
	dbBytes := p.Db / 8
	b = block[:dbBytes]
	l := int(block[dbBytes])
	ok = l <= p.MaxMsgLen()
	if !ok {
		l = 0
	}
	start := dbBytes + p.LLen()
	m = block[start : start+l]
	for _, v := range block[start+l:] {
		if v != 0 {
			ok = false
		}
	}
	return b, m, ok
}

// truncatedKey returns the first PkLen bits of the packed public key.
func truncatedKey(pub *PublicKey) []byte {
	return poly.PackBits(pub.H, pub.Params.Q)[:pub.Params.PkLen()/8]
}

// seedData is OID | m | b | hTrunc, the seed of the blinding polynomial.
func seedData(p Params, m, b, hTrunc []byte) []byte {
	s := make([]byte, 0, len(p.OID)+len(m)+len(b)+len(hTrunc))
	s = append(s, p.OID[:]...)
	s = append(s, m...)
	s = append(s, b...)
	return append(s, hTrunc...)
}

// blindingPoly derives r from sData.
func blindingPoly(p Params, sData []byte) (poly.Ternary, error) {
	ig := expand.NewIndexGenerator(sData, p.N, p.C, p.MinCallsR, p.Digest)
	switch {
	case p.PolyType == Product:
		return poly.RandomProductForm(p.N, p.Df1, p.Df2, p.Df3, p.Df3, ig)
	case p.Sparse:
		return poly.RandomSparse(p.N, p.Dr(), p.Dr(), ig)
	default:
		return poly.RandomDense(p.N, p.Dr(), p.Dr(), ig)
	}
}

// maskFor derives the ternary mask from R = r*h mod q.
func maskFor(p Params, bigR poly.Poly) poly.Poly {
	return expand.TernaryMask(poly.Mod4Bytes(bigR), p.N, p.MinCallsMask, p.HashSeed, p.Digest)
}

// checkDm0 reports whether each of -1, 0 and 1 occurs at least Dm0 times.
func checkDm0(p Params, t poly.Poly) bool {
	return t.Count(-1) >= p.Dm0 && t.Count(0) >= p.Dm0 && t.Count(1) >= p.Dm0
}
