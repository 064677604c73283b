package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntruencrypt/ntru/poly"
)

var allDigests = []Digest{SHA256, SHA512, Keccak256, Keccak512, Blake2b256, Blake2b512}

func TestIndexGeneratorDeterministic(t *testing.T) {
	seed := []byte("index generator seed")
	for _, d := range allDigests {
		for _, n := range []int{11, 439, 1087} {
			c := poly.IndexBits(n)
			a := NewIndexGenerator(seed, n, c, 3, d)
			b := NewIndexGenerator(seed, n, c, 3, d)
			for i := 0; i < 10000; i++ {
				x, err := a.NextIndex()
				require.NoError(t, err)
				y, _ := b.NextIndex()
				require.Equal(t, x, y, "%s n=%d draw %d", d, n, i)
				require.True(t, x >= 0 && x < n)
			}
		}
	}
}

func TestIndexGeneratorSeedSensitivity(t *testing.T) {
	a := NewIndexGenerator([]byte{1}, 1087, 13, 1, SHA512)
	b := NewIndexGenerator([]byte{2}, 1087, 13, 1, SHA512)
	same := 0
	for i := 0; i < 200; i++ {
		x, _ := a.NextIndex()
		y, _ := b.NextIndex()
		if x == y {
			same++
		}
	}
	assert.Less(t, same, 20)
}

func TestIndexGeneratorMinCallsIrrelevantToStream(t *testing.T) {
	a := NewIndexGenerator([]byte("s"), 743, 10, 1, SHA256)
	b := NewIndexGenerator([]byte("s"), 743, 10, 9, SHA256)
	for i := 0; i < 2000; i++ {
		x, _ := a.NextIndex()
		y, _ := b.NextIndex()
		require.Equal(t, x, y)
	}
}

func TestIndexGeneratorCoversRange(t *testing.T) {
	g := NewIndexGenerator([]byte("coverage"), 11, 4, 1, SHA256)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v, _ := g.NextIndex()
		seen[v] = true
	}
	assert.Len(t, seen, 11)
}

// chunkStream decodes hash(seed || counter) blocks into MSB-first c-bit
// chunks independently of IndexGenerator.
func chunkStream(seed []byte, c, count int, d Digest) []uint64 {
	h := d.New()
	var bitsBuf []byte
	for counter := uint32(0); len(bitsBuf) < c*count; counter++ {
		for _, b := range counterBlock(h, seed, counter) {
			for k := 7; k >= 0; k-- {
				bitsBuf = append(bitsBuf, b>>uint(k)&1)
			}
		}
	}
	out := make([]uint64, count)
	for i := range out {
		for _, bit := range bitsBuf[i*c : (i+1)*c] {
			out[i] = out[i]<<1 | uint64(bit)
		}
	}
	return out
}

func TestIndexGeneratorMinimalWidthNeverReduces(t *testing.T) {
	cases := []struct{ n, c int }{{11, 4}, {439, 9}, {743, 10}, {1087, 11}, {1499, 11}}
	for _, tc := range cases {
		seed := []byte("minimal width")
		g := NewIndexGenerator(seed, tc.n, tc.c, 1, SHA256)
		require.Equal(t, uint64(tc.n), g.threshold, "n=%d", tc.n)

		var want []int
		for _, v := range chunkStream(seed, tc.c, 4000, SHA256) {
			if v < uint64(tc.n) {
				want = append(want, int(v))
			}
		}
		require.NotEmpty(t, want)
		for i, w := range want {
			got, err := g.NextIndex()
			require.NoError(t, err)
			require.Equal(t, w, got, "n=%d index %d", tc.n, i)
		}
	}
}

func TestIndexGeneratorWideChunksReduce(t *testing.T) {
	// 2^6 = 64, so chunks in [55, 64) are rejected and [11, 55) reduced
	seed := []byte("wide chunks")
	g := NewIndexGenerator(seed, 11, 6, 1, SHA256)
	require.Equal(t, uint64(55), g.threshold)

	reduced := false
	for _, v := range chunkStream(seed, 6, 2000, SHA256) {
		if v >= 55 {
			continue
		}
		reduced = reduced || v >= 11
		got, err := g.NextIndex()
		require.NoError(t, err)
		require.Equal(t, int(v%11), got)
	}
	assert.True(t, reduced)
}

func TestIndexGeneratorRejectsNarrowChunks(t *testing.T) {
	assert.Panics(t, func() { NewIndexGenerator(nil, 1087, 10, 1, SHA256) })
}

func TestTernaryMask(t *testing.T) {
	for _, d := range allDigests {
		m := TernaryMask([]byte("mask seed"), 1499, 2, true, d)
		require.Equal(t, 1499, m.N())
		for _, v := range m.Coeffs {
			require.True(t, v >= -1 && v <= 1)
		}
		again := TernaryMask([]byte("mask seed"), 1499, 2, true, d)
		require.Equal(t, m.Coeffs, again.Coeffs)

		other := TernaryMask([]byte("mask seed"), 1499, 2, false, d)
		assert.NotEqual(t, m.Coeffs, other.Coeffs)
	}
	// the number of precomputed blocks does not change the output
	assert.Equal(t,
		TernaryMask([]byte("x"), 743, 1, true, SHA256).Coeffs,
		TernaryMask([]byte("x"), 743, 14, true, SHA256).Coeffs)
}

func TestDigestNames(t *testing.T) {
	for _, d := range allDigests {
		got, err := ParseDigest(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
		assert.Equal(t, d.Size(), len(d.Sum([]byte("x"))))
	}
	_, err := ParseDigest("md5")
	assert.ErrorIs(t, err, ErrUnknownDigest)
	assert.Contains(t, err.Error(), `"md5"`)
}
