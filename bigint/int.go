// Package bigint implements signed arbitrary-precision integers with
// several multiplication strategies (schoolbook, Karatsuba and an
// NTT-based Fourier multiplier) that agree on every input.
//
// An Int is an immutable value: every operation returns a fresh result and
// never modifies its operands. The zero value is 0.
package bigint

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrSyntax is returned by Parse for malformed input.
var ErrSyntax = errors.New("bigint: invalid decimal number")

// Int is a signed integer of unbounded size.
type Int struct {
	neg bool
	abs nat
}

func mk(neg bool, abs nat) Int {
	abs = abs.norm()
	if len(abs) == 0 {
		return Int{}
	}
	return Int{neg: neg, abs: abs}
}

// NewInt returns v as an Int.
func NewInt(v int64) Int {
	if v < 0 {
		if v == math.MinInt64 {
			return Int{neg: true, abs: nat{1 << 63}}
		}
		return Int{neg: true, abs: nat{uint64(-v)}}
	}
	return mk(false, nat{uint64(v)})
}

// FromWords builds an Int from a sign and a little-endian magnitude.
func FromWords(neg bool, words []uint64) Int {
	abs := make(nat, len(words))
	copy(abs, words)
	return mk(neg, abs)
}

// FromUnsignedBytes interprets buf as a big-endian unsigned magnitude.
func FromUnsignedBytes(buf []byte) Int {
	return mk(false, natFromBytes(buf))
}

// FromBytes interprets buf as a big-endian two's complement integer.
// The empty slice decodes to zero.
func FromBytes(buf []byte) Int {
	if len(buf) == 0 || buf[0]&0x80 == 0 {
		return FromUnsignedBytes(buf)
	}
	inv := make([]byte, len(buf))
	for i, b := range buf {
		inv[i] = ^b
	}
	abs := natAdd(natFromBytes(inv), nat{1})
	return mk(true, abs)
}

// Bytes returns the minimal big-endian two's complement encoding of x.
func (x Int) Bytes() []byte {
	if len(x.abs) == 0 {
		return []byte{0}
	}
	if !x.neg {
		return natPutBytes(x.abs, x.abs.bitLen()/8+1)
	}
	size := natSub(x.abs, nat{1}).bitLen()/8 + 1
	out := natPutBytes(x.abs, size)
	// 2^(8*size) - |x|
	carry := 1
	for i := size - 1; i >= 0; i-- {
		v := int(^out[i]) + carry
		out[i] = byte(v)
		carry = v >> 8
	}
	return out
}

// Words returns a copy of the little-endian magnitude of x.
func (x Int) Words() []uint64 {
	out := make([]uint64, len(x.abs))
	copy(out, x.abs)
	return out
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return len(x.abs) == 0 }

// BitLen returns the bit length of |x|.
func (x Int) BitLen() int { return x.abs.bitLen() }

// IsInt64 reports whether x fits in an int64.
func (x Int) IsInt64() bool {
	switch len(x.abs) {
	case 0:
		return true
	case 1:
		if x.neg {
			return x.abs[0] <= 1<<63
		}
		return x.abs[0] < 1<<63
	}
	return false
}

// Int64 returns the low 64 bits of x as an int64 (two's complement).
func (x Int) Int64() int64 {
	if len(x.abs) == 0 {
		return 0
	}
	v := int64(x.abs[0])
	if x.neg {
		v = -v
	}
	return v
}

func (x Int) Neg() Int { return mk(!x.neg, x.abs) }

func (x Int) Abs() Int { return mk(false, x.abs) }

// Cmp returns -1, 0 or +1 as x <, ==, > y.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return -natCmp(x.abs, y.abs)
	}
	return natCmp(x.abs, y.abs)
}

// CmpAbs compares |x| and |y|.
func (x Int) CmpAbs(y Int) int { return natCmp(x.abs, y.abs) }

func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return mk(x.neg, natAdd(x.abs, y.abs))
	}
	if natCmp(x.abs, y.abs) >= 0 {
		return mk(x.neg, natSub(x.abs, y.abs))
	}
	return mk(y.neg, natSub(y.abs, x.abs))
}

func (x Int) Sub(y Int) Int { return x.Add(y.Neg()) }

// Lsh returns x * 2^s.
func (x Int) Lsh(s uint) Int { return mk(x.neg, natLsh(x.abs, s)) }

// Rsh returns floor(x / 2^s).
func (x Int) Rsh(s uint) Int {
	if !x.neg {
		return mk(false, natRsh(x.abs, s))
	}
	q := natRsh(x.abs, s)
	if lowBitsSet(x.abs, s) {
		q = natAdd(q, nat{1})
	}
	return mk(true, q)
}

// Pow returns x^e.
func (x Int) Pow(e uint) Int {
	result := NewInt(1)
	base := x
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// String returns the decimal representation of x.
func (x Int) String() string {
	if len(x.abs) == 0 {
		return "0"
	}
	const chunk = 10000000000000000000 // 10^19
	var parts []string
	q := x.abs
	for len(q) > 0 {
		var r uint64
		q, r = natDivWord(q, chunk)
		parts = append(parts, strconv.FormatUint(r, 10))
	}
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		sb.WriteString(strings.Repeat("0", 19-len(parts[i])))
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// Parse reads an optionally signed decimal number.
func Parse(s string) (Int, error) {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return Int{}, ErrSyntax
	}
	var acc nat
	for len(s) > 0 {
		k := min(len(s), 19)
		v, err := strconv.ParseUint(s[:k], 10, 64)
		if err != nil {
			return Int{}, errors.Wrapf(ErrSyntax, "%q", s[:k])
		}
		acc = natAdd(natMulSchoolbook(acc, nat{pow10(k)}), nat{v}.norm())
		s = s[k:]
	}
	return mk(neg, acc), nil
}

func pow10(k int) uint64 {
	p := uint64(1)
	for ; k > 0; k-- {
		p *= 10
	}
	return p
}

// FillBytes writes |x| big-endian into buf, zero-padded on the left, and
// returns buf. It panics if |x| does not fit.
func (x Int) FillBytes(buf []byte) []byte {
	if (x.abs.bitLen()+7)/8 > len(buf) {
		panic("bigint: buffer too small")
	}
	copy(buf, natPutBytes(x.abs, len(buf)))
	return buf
}
