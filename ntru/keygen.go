package ntru

import (
	crand "crypto/rand"
	"io"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v4/utils"

	"ntruencrypt/ntru/poly"
)

// MaxKeyGenAttempts bounds the number of candidate f (and separately g)
// drawn before GenerateKey gives up.
const MaxKeyGenAttempts = 1000

// retry calls try until it reports success, fails, or attempts run out.
func retry[T any](attempts int, what string, try func() (T, bool, error)) (T, error) {
	var zero T
	for i := 0; i < attempts; i++ {
		v, ok, err := try()
		if err != nil {
			return zero, err
		}
		if ok {
			logger.Debug().Str("candidate", what).Int("attempts", i+1).Msg("keygen")
			return v, nil
		}
	}
	return zero, errors.Wrapf(ErrKeyGenExhausted, "%s after %d attempts", what, attempts)
}

// GenerateKey draws a key pair for params from rand, or from crypto/rand
// when rand is nil.
func GenerateKey(params Params, rand io.Reader) (*PrivateKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rand == nil {
		rand = crand.Reader
	}
	src := poly.NewReaderSource(rand, params.N)

	type fCandidate struct {
		t      poly.Ternary
		fp, fq poly.Poly
	}
	fc, err := retry(MaxKeyGenAttempts, "f", func() (fCandidate, bool, error) {
		t, err := privatePoly(params, src)
		if err != nil {
			return fCandidate{}, false, err
		}
		c := fCandidate{t: t}
		f := t.Dense()
		if params.FastFp {
			f = f.MulScalar(3)
			f.Coeffs[0]++
		} else {
			fp, ok := poly.InvertModPrime(f, params.P)
			if !ok {
				return c, false, nil
			}
			c.fp = fp.CenterMod3()
		}
		var ok bool
		c.fq, ok = poly.InvertModPowerOfTwo(f, params.Q)
		return c, ok, nil
	})
	if err != nil {
		return nil, err
	}

	g, err := retry(MaxKeyGenAttempts, "g", func() (*poly.DenseTernary, bool, error) {
		g, err := poly.RandomDense(params.N, params.Dg(), params.Dg()-1, src)
		if err != nil {
			return nil, false, err
		}
		_, ok := poly.InvertModPowerOfTwo(g.Poly, params.Q)
		return g, ok, nil
	})
	if err != nil {
		return nil, err
	}

	h := poly.Mul(g.Poly, fc.fq, params.Q).MulScalar(3).Mod(params.Q)
	g.Zero()
	fc.fq.Zero()

	logger.Debug().Str("params", params.Name).Msg("generated key pair")
	return &PrivateKey{
		PublicKey: PublicKey{Params: params, H: h},
		T:         fc.t,
		Fp:        fc.fp,
	}, nil
}

// GenerateKeyFromSeed derives a key pair deterministically from seed.
func GenerateKeyFromSeed(params Params, seed []byte) (*PrivateKey, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, errors.Wrap(err, "ntru: seeded prng")
	}
	return GenerateKey(params, prng)
}

// privatePoly draws t in the representation params ask for.
func privatePoly(params Params, src poly.IndexSource) (poly.Ternary, error) {
	if params.PolyType == Product {
		return poly.RandomProductForm(params.N, params.Df1, params.Df2, params.Df3, params.Df3, src)
	}
	ones, neg := params.privateWeights()
	if params.Sparse {
		return poly.RandomSparse(params.N, ones, neg, src)
	}
	return poly.RandomDense(params.N, ones, neg, src)
}
