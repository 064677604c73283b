package ntru

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"ntruencrypt/ntru/expand"
)

// Names of the catalogued parameter sets.
const (
	EES1087EP2      = "EES1087EP2"
	EES1087EP2Fast  = "EES1087EP2_FAST"
	EES1171EP1      = "EES1171EP1"
	EES1171EP1Fast  = "EES1171EP1_FAST"
	EES1499EP1      = "EES1499EP1"
	EES1499EP1Fast  = "EES1499EP1_FAST"
	APR2011439      = "APR2011_439"
	APR2011439Fast  = "APR2011_439_FAST"
	APR2011743      = "APR2011_743"
	APR2011743Fast  = "APR2011_743_FAST"
	Toy11           = "TOY11"
	DefaultParamSet = APR2011439Fast
)

func simpleSet(name string, oid [3]byte, n, df, dm0, db, c, minR, minMask int, sparse bool, d expand.Digest) Params {
	return Params{
		Name: name, OID: oid, N: n, Q: 2048, P: 3,
		Df: df, Dm0: dm0, Db: db, C: c, MinCallsR: minR, MinCallsMask: minMask,
		HashSeed: true, Sparse: sparse, PolyType: Simple, Digest: d,
	}
}

func productSet(name string, oid [3]byte, n, df1, df2, df3, dm0, db, c, minR, minMask int, d expand.Digest) Params {
	return Params{
		Name: name, OID: oid, N: n, Q: 2048, P: 3,
		Df1: df1, Df2: df2, Df3: df3, Dm0: dm0, Db: db, C: c, MinCallsR: minR, MinCallsMask: minMask,
		HashSeed: true, Sparse: true, FastFp: true, PolyType: Product, Digest: d,
	}
}

var catalog = sync.OnceValue(func() map[string]Params {
	sets := []Params{
		simpleSet(EES1087EP2, [3]byte{0, 6, 3}, 1087, 120, 120, 256, 13, 25, 14, true, expand.SHA512),
		productSet(EES1087EP2Fast, [3]byte{0, 6, 3}, 1087, 8, 8, 11, 120, 256, 13, 25, 14, expand.SHA512),
		simpleSet(EES1171EP1, [3]byte{0, 6, 4}, 1171, 106, 106, 256, 13, 20, 15, true, expand.SHA512),
		productSet(EES1171EP1Fast, [3]byte{0, 6, 4}, 1171, 8, 7, 11, 106, 256, 13, 20, 15, expand.SHA512),
		simpleSet(EES1499EP1, [3]byte{0, 6, 5}, 1499, 79, 79, 256, 13, 17, 19, true, expand.SHA512),
		productSet(EES1499EP1Fast, [3]byte{0, 6, 5}, 1499, 10, 9, 8, 79, 256, 13, 17, 19, expand.SHA512),
		simpleSet(APR2011439, [3]byte{0, 7, 101}, 439, 146, 130, 128, 9, 32, 9, true, expand.SHA256),
		productSet(APR2011439Fast, [3]byte{0, 7, 101}, 439, 9, 8, 5, 130, 128, 9, 32, 9, expand.SHA256),
		simpleSet(APR2011743, [3]byte{0, 7, 105}, 743, 248, 220, 256, 10, 27, 14, false, expand.SHA512),
		productSet(APR2011743Fast, [3]byte{0, 7, 105}, 743, 11, 11, 15, 220, 256, 10, 27, 14, expand.SHA512),
		{
			Name: Toy11, OID: [3]byte{0xff, 0x00, 0x0b}, N: 11, Q: 32, P: 3,
			Df: 1, Dm0: 0, Db: 0, C: 4, MinCallsR: 1, MinCallsMask: 1,
			HashSeed: true, FastFp: true, PolyType: Simple, Digest: expand.SHA256,
		},
	}
	m := make(map[string]Params, len(sets))
	for _, p := range sets {
		if err := p.Validate(); err != nil {
			panic(err)
		}
		m[p.Name] = p
	}
	return m
})

// Lookup returns the parameter set with the given name.
func Lookup(name string) (Params, error) {
	p, ok := catalog()[name]
	if !ok {
		return Params{}, errors.Wrapf(ErrUnknownParams, "%q", name)
	}
	return p, nil
}

// LookupOID returns the set identified by oid. Fast and regular variants
// share an OID; the key type byte of a blob tells them apart.
func LookupOID(oid [3]byte, product bool) (Params, error) {
	for _, p := range catalog() {
		if p.OID == oid && (p.PolyType == Product) == product {
			return p, nil
		}
	}
	return Params{}, errors.Wrapf(ErrUnknownParams, "oid %x", oid[:])
}

// Names lists the catalogued parameter sets in sorted order.
func Names() []string {
	out := make([]string, 0, len(catalog()))
	for name := range catalog() {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
