// Package expand turns short seeds into the pseudo-random index streams and
// ternary masks used by the encryption padding. Everything here is
// deterministic in its inputs.
package expand

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Digest names the hash function driving an expander.
type Digest int

const (
	SHA256 Digest = iota + 1
	SHA512
	Keccak256
	Keccak512
	Blake2b256
	Blake2b512
)

// ErrUnknownDigest is returned by ParseDigest for unrecognised names.
var ErrUnknownDigest = errors.New("expand: unknown digest")

var digestNames = map[Digest]string{
	SHA256:     "sha256",
	SHA512:     "sha512",
	Keccak256:  "sha3-256",
	Keccak512:  "sha3-512",
	Blake2b256: "blake2b-256",
	Blake2b512: "blake2b-512",
}

func (d Digest) String() string {
	if s, ok := digestNames[d]; ok {
		return s
	}
	return fmt.Sprintf("digest(%d)", int(d))
}

// ParseDigest maps a name produced by String back to a Digest.
func ParseDigest(name string) (Digest, error) {
	for d, s := range digestNames {
		if s == name {
			return d, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownDigest, "%q", name)
}

// New returns a fresh hash state.
func (d Digest) New() hash.Hash {
	switch d {
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	case Keccak256:
		return sha3.New256()
	case Keccak512:
		return sha3.New512()
	case Blake2b256:
		h, _ := blake2b.New256(nil)
		return h
	case Blake2b512:
		h, _ := blake2b.New512(nil)
		return h
	}
	panic(fmt.Sprintf("expand: unknown digest %d", int(d)))
}

// Size returns the output length in bytes.
func (d Digest) Size() int { return d.New().Size() }

// Sum hashes data in one call.
func (d Digest) Sum(data ...[]byte) []byte {
	h := d.New()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// counterBlock returns H(seed || BE32(counter)).
func counterBlock(h hash.Hash, seed []byte, counter uint32) []byte {
	h.Reset()
	h.Write(seed)
	h.Write([]byte{byte(counter >> 24), byte(counter >> 16), byte(counter >> 8), byte(counter)})
	return h.Sum(nil)
}
