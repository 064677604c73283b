// Package prof collects wall-clock timings of labelled stages.
package prof

import (
	"sync"
	"time"
)

// Sample is one timed call.
type Sample struct {
	Label   string
	Elapsed time.Duration
}

// Recorder accumulates samples. The zero value is ready and safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

// Track appends the time elapsed since start under label, typically as
// defer rec.Track(time.Now(), "keygen/EES1087EP2").
func (r *Recorder) Track(start time.Time, label string) {
	elapsed := time.Since(start)
	r.mu.Lock()
	r.samples = append(r.samples, Sample{Label: label, Elapsed: elapsed})
	r.mu.Unlock()
}

// Drain hands back the samples in recording order and empties r.
func (r *Recorder) Drain() []Sample {
	r.mu.Lock()
	out := r.samples
	r.samples = nil
	r.mu.Unlock()
	return out
}

// Summary aggregates the samples sharing a label.
type Summary struct {
	Label string        `json:"label"`
	Count int           `json:"count"`
	Total time.Duration `json:"total_ns"`
	Min   time.Duration `json:"min_ns"`
	Max   time.Duration `json:"max_ns"`
}

// Mean is the average duration, zero for an empty summary.
func (s Summary) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Summarize groups samples by label in order of first appearance.
func Summarize(samples []Sample) []Summary {
	idx := make(map[string]int)
	var out []Summary
	for _, e := range samples {
		i, ok := idx[e.Label]
		if !ok {
			i = len(out)
			idx[e.Label] = i
			out = append(out, Summary{Label: e.Label, Min: e.Elapsed, Max: e.Elapsed})
		}
		s := &out[i]
		s.Count++
		s.Total += e.Elapsed
		if e.Elapsed < s.Min {
			s.Min = e.Elapsed
		}
		if e.Elapsed > s.Max {
			s.Max = e.Elapsed
		}
	}
	return out
}
