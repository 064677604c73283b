package ntru

import (
	"github.com/pkg/errors"

	"ntruencrypt/ntru/poly"
)

// Decrypt recovers the message in ct. A ciphertext of the wrong length
// yields ErrInvalidCiphertext; every other failure yields ErrDecryption
// after all checks have run, so the error carries no hint of which one
// tripped.
func Decrypt(priv *PrivateKey, ct []byte) ([]byte, error) {
	p := priv.Params
	if len(ct) != p.CiphertextLen() {
		return nil, errors.Wrapf(ErrInvalidCiphertext, "got %d bytes, want %d", len(ct), p.CiphertextLen())
	}
	fail := false

	e, err := poly.UnpackBits(ct, p.N, p.Q)
	if err != nil {
		fail = true
		e = poly.New(p.N)
	}

	// a = f*e mod q, centered; for FastFp f*e = 3*(t*e) + e
	a := priv.T.Mul(e, p.Q)
	if p.FastFp {
		a = a.MulScalar(3).Add(e)
	}
	a = a.Center(p.Q)
	ci := a.CenterMod3()
	if !p.FastFp {
		ci = poly.Mul(ci, priv.Fp, p.P).CenterMod3()
	}
	a.Zero()

	if !checkDm0(p, ci) {
		fail = true
	}

	cR := e.Sub(ci).Mod(p.Q)
	cMtrin := ci.Sub(maskFor(p, cR)).CenterMod3()

	blockLen := p.BlockLen()
	block, ok := poly.BytesFromTrits(cMtrin, blockLen)
	if !ok {
		fail = true
		block = make([]byte, blockLen)
	}
	if !poly.TritsFromBytes(block, p.N).Equal(cMtrin) {
		fail = true
	}

	b, m, ok := parseBlock(p, block)
	if !ok {
		fail = true
	}

	r, err := blindingPoly(p, seedData(p, m, b, truncatedKey(&priv.PublicKey)))
	if err != nil {
		fail = true
	} else {
		if !r.Mul(priv.H, p.Q).Equal(cR) {
			fail = true
		}
		r.Zero()
	}

	if fail {
		logger.Debug().Str("params", p.Name).Msg("decryption check failed")
		return nil, ErrDecryption
	}
	return append([]byte(nil), m...), nil
}

// Decrypt is a convenience wrapper around the package-level Decrypt.
func (k *PrivateKey) Decrypt(ct []byte) ([]byte, error) {
	return Decrypt(k, ct)
}
