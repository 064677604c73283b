package ntru

import "ntruencrypt/ntru/poly"

// PublicKey is h = 3*g*f^-1 mod q under a parameter set.
type PublicKey struct {
	Params Params
	H      poly.Poly
}

// PrivateKey holds t, where f = 1+3t for FastFp sets and f = t otherwise,
// together with the public key and, for non-FastFp sets, fp = f^-1 mod 3.
type PrivateKey struct {
	PublicKey
	T  poly.Ternary
	Fp poly.Poly
}

// Public returns the public half of k.
func (k *PrivateKey) Public() *PublicKey {
	pub := k.PublicKey
	pub.H = k.H.Clone()
	return &pub
}

// F returns the dense private polynomial f.
func (k *PrivateKey) F() poly.Poly {
	t := k.T.Dense()
	if !k.Params.FastFp {
		return t
	}
	f := t.MulScalar(3)
	f.Coeffs[0]++
	return f
}

// Zero overwrites the secret material held by k. The key is unusable
// afterwards.
func (k *PrivateKey) Zero() {
	if k.T != nil {
		k.T.Zero()
	}
	k.Fp.Zero()
}

// Equal reports whether two public keys use the same set and polynomial.
func (k *PublicKey) Equal(o *PublicKey) bool {
	return k.Params.Name == o.Params.Name && k.H.Equal(o.H)
}

// Equal compares private keys by their dense private polynomials.
func (k *PrivateKey) Equal(o *PrivateKey) bool {
	return k.PublicKey.Equal(&o.PublicKey) && k.T.Dense().Equal(o.T.Dense()) && k.Fp.Equal(o.Fp)
}
