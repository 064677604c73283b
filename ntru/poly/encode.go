package poly

import (
	"math/bits"

	"github.com/pkg/errors"

	"ntruencrypt/bigint"
)

// ErrEncoding is returned for byte strings that are not a valid encoding.
var ErrEncoding = errors.New("poly: invalid encoding")

// ErrNotTernary is returned when a ternary value is built from invalid
// coefficients or index sets.
var ErrNotTernary = errors.New("poly: not a ternary polynomial")

// BitWriter appends fixed-width fields, most significant bit first.
type BitWriter struct {
	buf  []byte
	nbit int
}

// WriteBits appends the low width bits of v.
func (w *BitWriter) WriteBits(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		if w.nbit%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[w.nbit/8] |= 0x80 >> uint(w.nbit%8)
		}
		w.nbit++
	}
}

// Bytes returns the written bits padded with zeros to a whole byte.
func (w *BitWriter) Bytes() []byte { return w.buf }

// BitReader reads fields written by BitWriter.
type BitReader struct {
	buf  []byte
	nbit int
}

func NewBitReader(buf []byte) *BitReader { return &BitReader{buf: buf} }

// ReadBits reads width bits; ok is false past the end of the buffer.
func (r *BitReader) ReadBits(width int) (uint64, bool) {
	if r.nbit+width > 8*len(r.buf) {
		return 0, false
	}
	var v uint64
	for i := 0; i < width; i++ {
		bit := r.buf[r.nbit/8] >> uint(7-r.nbit%8) & 1
		v = v<<1 | uint64(bit)
		r.nbit++
	}
	return v, true
}

// Finish reports whether the reader stopped inside the last byte with only
// zero padding left.
func (r *BitReader) Finish() bool {
	if (r.nbit+7)/8 != len(r.buf) {
		return false
	}
	for r.nbit%8 != 0 {
		if r.buf[r.nbit/8]>>uint(7-r.nbit%8)&1 != 0 {
			return false
		}
		r.nbit++
	}
	return true
}

// CoeffBits is the field width used for coefficients mod q.
func CoeffBits(q int64) int { return bits.Len64(uint64(q - 1)) }

// PackedLen is the byte length of PackBits for ring size n and modulus q.
func PackedLen(n int, q int64) int { return (n*CoeffBits(q) + 7) / 8 }

// PackBits writes every coefficient mod q in CoeffBits(q) bits, coefficient
// 0 first, each field big-endian.
func PackBits(p Poly, q int64) []byte {
	width := CoeffBits(q)
	w := &BitWriter{buf: make([]byte, 0, PackedLen(p.N(), q))}
	for _, v := range p.Coeffs {
		w.WriteBits(uint64(modPos(v, q)), width)
	}
	return w.Bytes()
}

// UnpackBits is the inverse of PackBits. The length must match exactly,
// padding bits must be zero and every field must be below q.
func UnpackBits(data []byte, n int, q int64) (Poly, error) {
	if len(data) != PackedLen(n, q) {
		return Poly{}, ErrEncoding
	}
	width := CoeffBits(q)
	r := NewBitReader(data)
	out := New(n)
	for i := range out.Coeffs {
		v, _ := r.ReadBits(width)
		if v >= uint64(q) {
			return Poly{}, ErrEncoding
		}
		out.Coeffs[i] = int64(v)
	}
	if !r.Finish() {
		return Poly{}, ErrEncoding
	}
	return out, nil
}

// Mod4Bytes packs p mod 4 at 2 bits per coefficient.
func Mod4Bytes(p Poly) []byte { return PackBits(p, 4) }

// EncodeTernary2 writes a ternary polynomial with 2 bits per coefficient:
// 00 for 0, 01 for +1, 10 for -1.
func EncodeTernary2(p Poly) []byte {
	w := &BitWriter{}
	for _, v := range p.Coeffs {
		switch v {
		case 1:
			w.WriteBits(1, 2)
		case -1:
			w.WriteBits(2, 2)
		default:
			w.WriteBits(0, 2)
		}
	}
	return w.Bytes()
}

// Ternary2Len is the byte length of EncodeTernary2 for ring size n.
func Ternary2Len(n int) int { return (2*n + 7) / 8 }

func DecodeTernary2(data []byte, n int) (Poly, error) {
	if len(data) != Ternary2Len(n) {
		return Poly{}, ErrEncoding
	}
	r := NewBitReader(data)
	out := New(n)
	for i := range out.Coeffs {
		v, _ := r.ReadBits(2)
		switch v {
		case 1:
			out.Coeffs[i] = 1
		case 2:
			out.Coeffs[i] = -1
		case 3:
			return Poly{}, ErrEncoding
		}
	}
	if !r.Finish() {
		return Poly{}, ErrEncoding
	}
	return out, nil
}

// TightLen is the byte length of EncodeTight for ring size n: the byte size
// of 3^n - 1.
func TightLen(n int) int {
	return (bigint.NewInt(3).Pow(uint(n)).Sub(bigint.NewInt(1)).BitLen() + 7) / 8
}

// EncodeTight writes a ternary polynomial as the base-3 integer
// sum (c_i + 1) * 3^i, big-endian in TightLen(n) bytes.
func EncodeTight(p Poly) []byte {
	acc := bigint.Int{}
	three := bigint.NewInt(3)
	for i := p.N() - 1; i >= 0; i-- {
		acc = acc.Mul(three).Add(bigint.NewInt(modPos(p.Coeffs[i]+1, 3)))
	}
	return acc.FillBytes(make([]byte, TightLen(p.N())))
}

func DecodeTight(data []byte, n int) (Poly, error) {
	if len(data) != TightLen(n) {
		return Poly{}, ErrEncoding
	}
	acc := bigint.FromUnsignedBytes(data)
	if acc.Cmp(bigint.NewInt(3).Pow(uint(n))) >= 0 {
		return Poly{}, ErrEncoding
	}
	three := bigint.NewInt(3)
	out := New(n)
	for i := range out.Coeffs {
		var d bigint.Int
		acc, d = acc.QuoRem(three)
		out.Coeffs[i] = d.Int64() - 1
	}
	return out, nil
}

// IndexBits is the field width of one index in [0, n).
func IndexBits(n int) int { return bits.Len(uint(n - 1)) }

// WriteIndices appends the +1 positions and then the -1 positions of t.
func (t *SparseTernary) WriteIndices(w *BitWriter) {
	width := IndexBits(t.n)
	for _, i := range t.Ones {
		w.WriteBits(uint64(i), width)
	}
	for _, i := range t.NegOnes {
		w.WriteBits(uint64(i), width)
	}
}

// ReadSparse reads ones and then negOnes indices written by WriteIndices.
func ReadSparse(r *BitReader, n, ones, negOnes int) (*SparseTernary, error) {
	width := IndexBits(n)
	read := func(count int) ([]int, error) {
		out := make([]int, count)
		for k := range out {
			v, ok := r.ReadBits(width)
			if !ok {
				return nil, ErrEncoding
			}
			out[k] = int(v)
		}
		return out, nil
	}
	o, err := read(ones)
	if err != nil {
		return nil, err
	}
	m, err := read(negOnes)
	if err != nil {
		return nil, err
	}
	t, err := NewSparseTernary(n, o, m)
	if err != nil {
		return nil, ErrEncoding
	}
	return t, nil
}
