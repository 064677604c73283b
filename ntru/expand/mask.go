package expand

import "ntruencrypt/ntru/poly"

// TernaryMask derives an n-coefficient ternary polynomial from seed. If
// hashSeed is set the seed is first replaced by its digest. Blocks
// H(Z || BE32(counter)) are generated, minCalls of them up front; every byte
// below 243 = 3^5 yields five trits (least significant base-3 digit first,
// digit d mapped to d-1) and larger bytes are skipped.
func TernaryMask(seed []byte, n, minCalls int, hashSeed bool, d Digest) poly.Poly {
	z := seed
	if hashSeed {
		z = d.Sum(seed)
	}
	h := d.New()
	var counter uint32
	var buf []byte
	for ; int(counter) < minCalls; counter++ {
		buf = append(buf, counterBlock(h, z, counter)...)
	}

	out := poly.New(n)
	cur := 0
	for {
		for _, b := range buf {
			if b >= 243 {
				continue
			}
			o := int64(b)
			for k := 0; k < 5; k++ {
				out.Coeffs[cur] = o%3 - 1
				o /= 3
				cur++
				if cur == n {
					return out
				}
			}
		}
		buf = counterBlock(h, z, counter)
		counter++
	}
}
