package prof

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAndDrain(t *testing.T) {
	var rec Recorder
	start := time.Now().Add(-time.Millisecond)
	rec.Track(start, "a")
	rec.Track(start, "b")

	got := rec.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Label)
	assert.GreaterOrEqual(t, got[0].Elapsed, time.Millisecond)
	assert.Empty(t, rec.Drain())
}

func TestRecorderConcurrent(t *testing.T) {
	var rec Recorder
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rec.Track(time.Now(), "x")
			}
		}()
	}
	wg.Wait()
	sums := Summarize(rec.Drain())
	require.Len(t, sums, 1)
	assert.Equal(t, 800, sums[0].Count)
}

func TestSummarize(t *testing.T) {
	sums := Summarize([]Sample{
		{"mul", 3 * time.Second},
		{"conv", time.Second},
		{"mul", time.Second},
	})
	require.Len(t, sums, 2)
	assert.Equal(t, Summary{Label: "mul", Count: 2, Total: 4 * time.Second, Min: time.Second, Max: 3 * time.Second}, sums[0])
	assert.Equal(t, 2*time.Second, sums[0].Mean())
	assert.Equal(t, "conv", sums[1].Label)
	assert.Zero(t, Summary{}.Mean())
}
