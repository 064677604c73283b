package expand

import (
	"hash"
	"math/bits"
)

// IndexGenerator expands a seed into an endless stream of indices in [0, N).
// The stream is a pure function of (seed, N, C, MinCalls, Digest): two
// generators built from the same inputs emit the same sequence.
type IndexGenerator struct {
	seed      []byte
	n         uint64
	c         int
	threshold uint64
	h         hash.Hash
	counter   uint32

	buf  []byte
	nbit int // bits consumed from buf
}

// NewIndexGenerator prepares a generator drawing c-bit chunks. c must be at
// least bits.Len(n-1); chunks at or above 2^c - (2^c mod n) are rejected and
// the rest are reduced mod n, so with the minimal c every chunk >= n is
// simply redrawn. minCalls hash blocks are computed up front.
func NewIndexGenerator(seed []byte, n, c, minCalls int, d Digest) *IndexGenerator {
	if n < 1 || c < bits.Len(uint(n-1)) || c > 32 {
		panic("expand: chunk width does not cover the index range")
	}
	span := uint64(1) << uint(c)
	g := &IndexGenerator{
		seed:      append([]byte(nil), seed...),
		n:         uint64(n),
		c:         c,
		threshold: span - span%uint64(n),
		h:         d.New(),
	}
	for i := 0; i < minCalls; i++ {
		g.refill()
	}
	return g
}

func (g *IndexGenerator) refill() {
	// drop whole consumed bytes; a partially used byte stays
	drop := g.nbit / 8
	g.buf = append(g.buf[drop:], counterBlock(g.h, g.seed, g.counter)...)
	g.nbit -= 8 * drop
	g.counter++
}

func (g *IndexGenerator) take() uint64 {
	for 8*len(g.buf)-g.nbit < g.c {
		g.refill()
	}
	var v uint64
	for i := 0; i < g.c; i++ {
		bit := g.buf[g.nbit/8] >> uint(7-g.nbit%8) & 1
		v = v<<1 | uint64(bit)
		g.nbit++
	}
	return v
}

// NextIndex returns the next index. It never fails; the error satisfies
// poly.IndexSource.
func (g *IndexGenerator) NextIndex() (int, error) {
	for {
		if v := g.take(); v < g.threshold {
			return int(v % g.n), nil
		}
	}
}

// Calls reports how many hash blocks have been computed.
func (g *IndexGenerator) Calls() int { return int(g.counter) }
