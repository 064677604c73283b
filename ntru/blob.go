package ntru

import (
	"github.com/pkg/errors"

	"ntruencrypt/ntru/poly"
)

// Key blobs start with a five byte header: tag | OID | polynomial type.
// Regular and fast variants of a set share an OID, so the type byte is what
// selects between them.
const (
	tagPublicKey  = 0x01
	tagPrivateKey = 0x02
	headerLen     = 5
)

func putHeader(tag byte, p Params) []byte {
	return []byte{tag, p.OID[0], p.OID[1], p.OID[2], byte(p.PolyType)}
}

func readHeader(data []byte, tag byte) (Params, []byte, error) {
	if len(data) < headerLen {
		return Params{}, nil, errors.Wrap(ErrInvalidKey, "truncated header")
	}
	if data[0] != tag {
		return Params{}, nil, errors.Wrapf(ErrInvalidKey, "tag %#x, want %#x", data[0], tag)
	}
	if data[4] > byte(Product) {
		return Params{}, nil, errors.Wrapf(ErrInvalidKey, "polynomial type %d", data[4])
	}
	p, err := LookupOID([3]byte{data[1], data[2], data[3]}, PolyType(data[4]) == Product)
	if err != nil {
		return Params{}, nil, err
	}
	return p, data[headerLen:], nil
}

// MarshalBinary encodes k as header | PackBits(h).
func (k *PublicKey) MarshalBinary() ([]byte, error) {
	if k.H.N() != k.Params.N {
		return nil, errors.Wrap(ErrInvalidKey, "public polynomial has the wrong ring size")
	}
	return append(putHeader(tagPublicKey, k.Params), poly.PackBits(k.H, k.Params.Q)...), nil
}

// ParsePublicKey decodes the output of PublicKey.MarshalBinary.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	p, rest, err := readHeader(data, tagPublicKey)
	if err != nil {
		return nil, err
	}
	h, err := poly.UnpackBits(rest, p.N, p.Q)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "public polynomial")
	}
	return &PublicKey{Params: p, H: h}, nil
}

// privateTLen is the byte length of the encoded t.
func privateTLen(p Params) int {
	switch {
	case p.PolyType == Product:
		return (2*(p.Df1+p.Df2+p.Df3)*poly.IndexBits(p.N) + 7) / 8
	case p.Sparse:
		ones, neg := p.privateWeights()
		return ((ones+neg)*poly.IndexBits(p.N) + 7) / 8
	default:
		return poly.Ternary2Len(p.N)
	}
}

// MarshalBinary encodes k as header | PackBits(h) | t | fp, where fp is
// present only for sets without FastFp. Sparse and product t are written as
// index lists; dense t uses two bits per coefficient.
func (k *PrivateKey) MarshalBinary() ([]byte, error) {
	p := k.Params
	out := append(putHeader(tagPrivateKey, p), poly.PackBits(k.H, p.Q)...)

	switch t := k.T.(type) {
	case *poly.ProductForm:
		if p.PolyType != Product {
			return nil, errors.Wrap(ErrInvalidKey, "product form key under a simple set")
		}
		w := &poly.BitWriter{}
		t.F1.WriteIndices(w)
		t.F2.WriteIndices(w)
		t.F3.WriteIndices(w)
		out = append(out, w.Bytes()...)
	default:
		if p.PolyType != Simple {
			return nil, errors.Wrap(ErrInvalidKey, "simple key under a product set")
		}
		if !p.Sparse {
			out = append(out, poly.EncodeTernary2(t.Dense())...)
			break
		}
		s, ok := t.(*poly.SparseTernary)
		if !ok {
			var err error
			if s, err = poly.SparseFromDense(t.Dense()); err != nil {
				return nil, errors.Wrap(ErrInvalidKey, err.Error())
			}
		}
		w := &poly.BitWriter{}
		s.WriteIndices(w)
		out = append(out, w.Bytes()...)
	}

	if !p.FastFp {
		out = append(out, poly.EncodeTight(k.Fp)...)
	}
	return out, nil
}

// ParsePrivateKey decodes the output of PrivateKey.MarshalBinary.
func ParsePrivateKey(data []byte) (*PrivateKey, error) {
	p, rest, err := readHeader(data, tagPrivateKey)
	if err != nil {
		return nil, err
	}
	hLen, tLen := p.CiphertextLen(), privateTLen(p)
	want := hLen + tLen
	if !p.FastFp {
		want += poly.TightLen(p.N)
	}
	if len(rest) != want {
		return nil, errors.Wrapf(ErrInvalidKey, "private key body is %d bytes, want %d", len(rest), want)
	}

	h, err := poly.UnpackBits(rest[:hLen], p.N, p.Q)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "public polynomial")
	}
	t, err := decodePrivateT(p, rest[hLen:hLen+tLen])
	if err != nil {
		return nil, err
	}
	k := &PrivateKey{PublicKey: PublicKey{Params: p, H: h}, T: t}
	if !p.FastFp {
		if k.Fp, err = poly.DecodeTight(rest[hLen+tLen:], p.N); err != nil {
			return nil, errors.Wrap(ErrInvalidKey, "fp")
		}
		if !poly.Mul(k.F(), k.Fp, p.P).IsOne(p.P) {
			return nil, errors.Wrap(ErrInvalidKey, "fp is not the inverse of f mod 3")
		}
	}
	return k, nil
}

func decodePrivateT(p Params, data []byte) (poly.Ternary, error) {
	if p.PolyType == Simple && !p.Sparse {
		d, err := poly.DecodeTernary2(data, p.N)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKey, "private polynomial")
		}
		ones, neg := p.privateWeights()
		if d.Count(1) != ones || d.Count(-1) != neg {
			return nil, errors.Wrap(ErrInvalidKey, "private polynomial has the wrong weight")
		}
		return poly.NewDenseTernary(d)
	}

	r := poly.NewBitReader(data)
	var t poly.Ternary
	var err error
	if p.PolyType == Product {
		var f [3]*poly.SparseTernary
		weights := [3][2]int{{p.Df1, p.Df1}, {p.Df2, p.Df2}, {p.Df3, p.Df3}}
		for i, w := range weights {
			if f[i], err = poly.ReadSparse(r, p.N, w[0], w[1]); err != nil {
				return nil, errors.Wrap(ErrInvalidKey, "private polynomial")
			}
		}
		t, err = poly.NewProductForm(f[0], f[1], f[2])
	} else {
		ones, neg := p.privateWeights()
		t, err = poly.ReadSparse(r, p.N, ones, neg)
	}
	if err != nil || !r.Finish() {
		return nil, errors.Wrap(ErrInvalidKey, "private polynomial")
	}
	return t, nil
}
