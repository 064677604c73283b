package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntruencrypt/ntru"
	"ntruencrypt/prof"
)

func TestChartsRender(t *testing.T) {
	rec := &prof.Recorder{}
	rng := rand.New(rand.NewSource(1))
	require.NoError(t, timeScheme(rec, rng, 1, []string{ntru.Toy11}))
	means := meanByLabel(prof.Summarize(rec.Drain()))
	assert.Contains(t, means, "keygen/"+ntru.Toy11)
	assert.Contains(t, means, "decrypt/"+ntru.Toy11)

	means["schoolbook/16"] = 1
	var buf bytes.Buffer
	require.NoError(t, newLineChart("t", "x", []int{16}, []string{"schoolbook"}, means).Render(&buf))
	require.NoError(t, newSchemeChart([]string{ntru.Toy11}, means).Render(&buf))
	assert.Contains(t, buf.String(), "echarts")
}

func TestMicros(t *testing.T) {
	assert.Equal(t, 1.5, micros(1500*time.Nanosecond))
}

func TestAppWritesReports(t *testing.T) {
	if testing.Short() {
		t.Skip("times every multiplication kernel")
	}
	out := t.TempDir()
	err := newApp().Run([]string{"ntrubench",
		"--runs", "1", "--scheme-runs", "1", "--set", ntru.Toy11,
		"--out", out, "--log-level", "error"})
	require.NoError(t, err)

	html, err := filepath.Glob(filepath.Join(out, "timings_*.html"))
	require.NoError(t, err)
	require.Len(t, html, 1)
	page, err := os.ReadFile(html[0])
	require.NoError(t, err)
	assert.Contains(t, string(page), "Ternary convolution mod 2048")

	js, err := filepath.Glob(filepath.Join(out, "timings_*.json"))
	require.NoError(t, err)
	require.Len(t, js, 1)
	body, err := os.ReadFile(js[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "keygen/"+ntru.Toy11)
}

func TestAppRejectsBadFlags(t *testing.T) {
	out := t.TempDir()
	err := newApp().Run([]string{"ntrubench", "--runs", "0", "--out", out})
	assert.Error(t, err)

	err = newApp().Run([]string{"ntrubench", "--log-level", "loud", "--out", out})
	assert.Error(t, err)

	err = timeScheme(&prof.Recorder{}, rand.New(rand.NewSource(1)), 1, []string{"EES0EP0"})
	assert.Error(t, err)
}
