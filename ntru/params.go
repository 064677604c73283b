package ntru

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"

	"ntruencrypt/ntru/expand"
	"ntruencrypt/ntru/poly"
)

// PolyType selects how private and blinding polynomials are represented.
type PolyType int

const (
	// Simple polynomials are a single dense or sparse ternary polynomial.
	Simple PolyType = iota
	// Product polynomials have the form F1*F2 + F3.
	Product
)

func (t PolyType) String() string {
	if t == Product {
		return "product"
	}
	return "simple"
}

// Params is one concrete instantiation of the cryptosystem. Values are
// obtained from the catalog and never mutated.
type Params struct {
	Name string
	OID  [3]byte

	N int
	Q int64
	P int64

	// Df is the private/blinding weight for Simple sets.
	Df int
	// Df1, Df2, Df3 are the factor weights for Product sets.
	Df1, Df2, Df3 int

	Dm0          int // minimum count of each trit value in the masked message
	Db           int // bits of per-message randomness
	C            int // index generator chunk width
	MinCallsR    int
	MinCallsMask int
	HashSeed     bool
	Sparse       bool
	FastFp       bool // f = 1 + 3t, so f^-1 mod 3 = 1
	PolyType     PolyType
	Digest       expand.Digest
}

// Dg is the weight of g: Dg ones and Dg-1 minus ones.
func (p Params) Dg() int { return p.N / 3 }

// Dr is the blinding weight for Simple sets.
func (p Params) Dr() int { return p.Df }

// LLen is the size of the length field in the message block.
func (p Params) LLen() int { return 1 }

// PkLen is the number of bits of the packed public key mixed into sData.
func (p Params) PkLen() int { return p.Db }

// BlockLen is the byte size of the padded message block: the largest block
// whose trit image fits in N coefficients.
func (p Params) BlockLen() int {
	l := p.N*3/16 + 2
	for l > 0 && poly.TritsNeeded(l) > p.N {
		l--
	}
	return l
}

// MaxMsgLen is the largest plaintext Encrypt accepts.
func (p Params) MaxMsgLen() int { return p.BlockLen() - p.Db/8 - p.LLen() }

// CiphertextLen is the byte length of every ciphertext.
func (p Params) CiphertextLen() int { return poly.PackedLen(p.N, p.Q) }

// privateWeights returns the +1 / -1 counts of t for Simple sets.
func (p Params) privateWeights() (ones, negOnes int) {
	if p.FastFp {
		return p.Df, p.Df
	}
	return p.Df, p.Df - 1
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Validate checks the internal consistency of p.
func (p Params) Validate() error {
	bad := func(format string, a ...any) error {
		return errors.Wrapf(ErrInvalidParams, "%s: %s", p.Name, fmt.Sprintf(format, a...))
	}
	switch {
	case !isPrime(p.N):
		return bad("N=%d is not prime", p.N)
	case p.Q < 4 || p.Q&(p.Q-1) != 0:
		return bad("q=%d is not a power of two", p.Q)
	case p.P != 3:
		return bad("p=%d, only 3 is supported", p.P)
	case p.C < bits.Len(uint(p.N-1)) || p.C > 32:
		return bad("c=%d cannot index N=%d", p.C, p.N)
	case p.Db%8 != 0 || p.Db < 0:
		return bad("db=%d is not a whole number of bytes", p.Db)
	case p.MinCallsR < 1 || p.MinCallsMask < 1:
		return bad("minimum hash calls must be positive")
	case 2*p.Dg()-1 > p.N:
		return bad("dg=%d too large", p.Dg())
	case 3*p.Dm0 > p.N:
		return bad("dm0=%d too large", p.Dm0)
	case p.PkLen()/8 > poly.PackedLen(p.N, p.Q):
		return bad("pkLen=%d exceeds the packed public key", p.PkLen())
	case p.MaxMsgLen() < 1 || p.MaxMsgLen() > 255:
		return bad("max message length %d outside [1,255]", p.MaxMsgLen())
	}
	if _, ok := knownDigests()[p.Digest]; !ok {
		return bad("unknown digest %v", p.Digest)
	}
	switch p.PolyType {
	case Simple:
		ones, neg := p.privateWeights()
		if p.Df < 1 || ones+neg > p.N || 2*p.Dr() > p.N {
			return bad("df=%d does not fit N=%d", p.Df, p.N)
		}
	case Product:
		for _, d := range []int{p.Df1, p.Df2, p.Df3} {
			if d < 1 || 2*d > p.N {
				return bad("product weights %d/%d/%d do not fit N=%d", p.Df1, p.Df2, p.Df3, p.N)
			}
		}
	default:
		return bad("unknown polynomial type %d", p.PolyType)
	}
	return nil
}

func knownDigests() map[expand.Digest]bool {
	return map[expand.Digest]bool{
		expand.SHA256: true, expand.SHA512: true,
		expand.Keccak256: true, expand.Keccak512: true,
		expand.Blake2b256: true, expand.Blake2b512: true,
	}
}

func (p Params) String() string {
	return fmt.Sprintf("%s(N=%d q=%d %s fastFp=%t)", p.Name, p.N, p.Q, p.PolyType, p.FastFp)
}
