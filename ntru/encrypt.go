package ntru

import (
	crand "crypto/rand"
	"io"

	"github.com/pkg/errors"

	"ntruencrypt/ntru/poly"
)

// MaxEncryptAttempts bounds how many fresh b values Encrypt tries before
// giving up on the dm0 check.
const MaxEncryptAttempts = 1000

// Encrypt pads msg and encrypts it under pub. Randomness comes from rand, or
// from crypto/rand when rand is nil. The ciphertext is always
// CiphertextLen bytes.
func Encrypt(pub *PublicKey, msg []byte, rand io.Reader) ([]byte, error) {
	p := pub.Params
	if len(msg) > p.MaxMsgLen() {
		return nil, errors.Wrapf(ErrMessageTooLong, "%d bytes, %s allows %d", len(msg), p.Name, p.MaxMsgLen())
	}
	if pub.H.N() != p.N {
		return nil, errors.Wrap(ErrInvalidKey, "public polynomial has the wrong ring size")
	}
	if rand == nil {
		rand = crand.Reader
	}
	hTrunc := truncatedKey(pub)
	b := make([]byte, p.Db/8)

	for attempt := 1; attempt <= MaxEncryptAttempts; attempt++ {
		if _, err := io.ReadFull(rand, b); err != nil {
			return nil, errors.Wrap(err, "ntru: read randomness")
		}
		block := formatBlock(p, msg, b)
		mTrin := poly.TritsFromBytes(block, p.N)

		r, err := blindingPoly(p, seedData(p, msg, b, hTrunc))
		if err != nil {
			return nil, err
		}
		bigR := r.Mul(pub.H, p.Q)
		r.Zero()
		mPrime := mTrin.Add(maskFor(p, bigR)).CenterMod3()

		if !checkDm0(p, mPrime) {
			logger.Debug().Int("attempt", attempt).Msg("dm0 check failed, redrawing b")
			if p.Db == 0 {
				// without fresh randomness every retry is identical
				break
			}
			continue
		}
		return poly.PackBits(bigR.Add(mPrime), p.Q), nil
	}
	return nil, errors.Wrapf(ErrEncryptExhausted, "%s", p.Name)
}

// Encrypt is a convenience wrapper around the package-level Encrypt.
func (k *PublicKey) Encrypt(msg []byte, rand io.Reader) ([]byte, error) {
	return Encrypt(k, msg, rand)
}
