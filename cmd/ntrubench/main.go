// Command ntrubench times the multiplication strategies and the
// cryptosystem operations and renders the results as an HTML page of charts.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"ntruencrypt/bigint"
	"ntruencrypt/ntru"
	"ntruencrypt/ntru/poly"
	"ntruencrypt/prof"
)

var (
	wordSizes  = []int{16, 32, 64, 128, 256, 512, 1024, 2048}
	ringSizes  = []int{439, 743, 1087, 1171, 1499}
	intKernels = []struct {
		name string
		mul  func(x, y bigint.Int) bigint.Int
	}{
		{"schoolbook", bigint.MulSchoolbook},
		{"karatsuba", bigint.MulKaratsuba},
		{"fourier", bigint.MulFourier},
	}
)

func randomInt(rng *rand.Rand, words int) bigint.Int {
	w := make([]uint64, words)
	for i := range w {
		w[i] = rng.Uint64()
	}
	w[words-1] |= 1 << 63
	return bigint.FromWords(false, w)
}

// timeIntMul records one entry per kernel and size, labelled kernel/size.
func timeIntMul(rec *prof.Recorder, rng *rand.Rand, runs int) {
	for _, words := range wordSizes {
		x, y := randomInt(rng, words), randomInt(rng, words)
		for _, k := range intKernels {
			for r := 0; r < runs; r++ {
				start := time.Now()
				k.mul(x, y)
				rec.Track(start, k.name+"/"+strconv.Itoa(words))
			}
		}
	}
}

// timeConvolution multiplies a random polynomial mod 2048 by a ternary one
// in each representation.
func timeConvolution(rec *prof.Recorder, rng *rand.Rand, runs int) error {
	for _, n := range ringSizes {
		a := poly.New(n)
		for i := range a.Coeffs {
			a.Coeffs[i] = rng.Int63n(2048)
		}
		src := poly.NewReaderSource(rng, n)
		sparse, err := poly.RandomSparse(n, n/8, n/8, src)
		if err != nil {
			return errors.Wrapf(err, "sparse N=%d", n)
		}
		product, err := poly.RandomProductForm(n, 9, 8, 5, 5, src)
		if err != nil {
			return errors.Wrapf(err, "product form N=%d", n)
		}
		dense := sparse.Dense()
		kernels := []struct {
			name string
			mul  func() poly.Poly
		}{
			{"schoolbook", func() poly.Poly { return poly.MulSchoolbook(dense, a, 2048) }},
			{"kronecker", func() poly.Poly { return poly.MulKronecker(dense, a, 2048) }},
			{"sparse", func() poly.Poly { return sparse.Mul(a, 2048) }},
			{"product", func() poly.Poly { return product.Mul(a, 2048) }},
		}
		for _, k := range kernels {
			for r := 0; r < runs; r++ {
				start := time.Now()
				k.mul()
				rec.Track(start, k.name+"/"+strconv.Itoa(n))
			}
		}
	}
	return nil
}

// timeScheme runs keygen, encrypt and decrypt for every catalogued set.
func timeScheme(rec *prof.Recorder, rng *rand.Rand, runs int, names []string) error {
	for _, name := range names {
		p, err := ntru.Lookup(name)
		if err != nil {
			return errors.Wrap(err, "lookup")
		}
		msg := make([]byte, p.MaxMsgLen())
		rng.Read(msg)
		for r := 0; r < runs; r++ {
			start := time.Now()
			key, err := ntru.GenerateKey(p, nil)
			rec.Track(start, "keygen/"+name)
			if err != nil {
				return errors.Wrapf(err, "keygen %s", name)
			}

			start = time.Now()
			ct, err := key.Public().Encrypt(msg, nil)
			rec.Track(start, "encrypt/"+name)
			if err != nil {
				return errors.Wrapf(err, "encrypt %s", name)
			}

			start = time.Now()
			_, err = key.Decrypt(ct)
			rec.Track(start, "decrypt/"+name)
			if err != nil {
				return errors.Wrapf(err, "decrypt %s", name)
			}
		}
	}
	return nil
}

func micros(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e3 }

// meanByLabel indexes summaries by label.
func meanByLabel(sums []prof.Summary) map[string]float64 {
	out := make(map[string]float64, len(sums))
	for _, s := range sums {
		out[s.Label] = micros(s.Mean())
	}
	return out
}

func newLineChart(title, xName string, xs []int, series []string, means map[string]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "mean wall time per call"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs", Type: "log"}),
	)
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = strconv.Itoa(x)
	}
	line.SetXAxis(labels)
	for _, s := range series {
		data := make([]opts.LineData, len(xs))
		for i, x := range xs {
			data[i] = opts.LineData{Value: means[s+"/"+strconv.Itoa(x)]}
		}
		line.AddSeries(s, data)
	}
	return line
}

func newSchemeChart(names []string, means map[string]float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "NTRUEncrypt operations", Subtitle: "mean wall time per call"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs"}),
	)
	bar.SetXAxis(names)
	for _, op := range []string{"keygen", "encrypt", "decrypt"} {
		data := make([]opts.BarData, len(names))
		for i, name := range names {
			data[i] = opts.BarData{Value: means[op+"/"+name]}
		}
		bar.AddSeries(op, data)
	}
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

const (
	flagRuns       = "runs"
	flagSchemeRuns = "scheme-runs"
	flagOut        = "out"
	flagSeed       = "seed"
	flagSet        = "set"
	flagLogLevel   = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ntrubench:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ntrubench",
		Usage: "time the multiplication kernels and NTRUEncrypt operations and chart the results",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagRuns, Value: 5, Usage: "repetitions per measurement"},
			&cli.IntFlag{Name: flagSchemeRuns, Value: 3, Usage: "key pairs per parameter set"},
			&cli.StringFlag{Name: flagOut, Value: "bench_reports", Usage: "output directory"},
			&cli.Int64Flag{Name: flagSeed, Value: 1, Usage: "seed for the benchmark inputs"},
			&cli.StringSliceFlag{Name: flagSet, Usage: "parameter set to time (repeatable); all sets when omitted"},
			&cli.StringFlag{Name: flagLogLevel, Value: "info", Usage: "log level (debug, info, warn, error)"},
		},
		Action: run,
	}
}

func newLogger(c *cli.Context) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.String(flagLogLevel))
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(level), nil
}

func run(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}
	runs, schemeRuns := c.Int(flagRuns), c.Int(flagSchemeRuns)
	if runs < 1 || schemeRuns < 1 {
		return errors.Errorf("--%s and --%s must be positive", flagRuns, flagSchemeRuns)
	}
	outDir := c.String(flagOut)
	names := c.StringSlice(flagSet)
	if len(names) == 0 {
		names = ntru.Names()
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	rng := rand.New(rand.NewSource(c.Int64(flagSeed)))

	rec := &prof.Recorder{}
	log.Info().Int("runs", runs).Msg("timing integer multiplication")
	timeIntMul(rec, rng, runs)
	log.Info().Ints("ring_sizes", ringSizes).Msg("timing ternary convolution")
	if err := timeConvolution(rec, rng, runs); err != nil {
		return errors.Wrap(err, "convolution")
	}
	log.Info().Strs("sets", names).Int("runs", schemeRuns).Msg("timing scheme operations")
	if err := timeScheme(rec, rng, schemeRuns, names); err != nil {
		return errors.Wrap(err, "scheme")
	}
	sums := prof.Summarize(rec.Drain())
	means := meanByLabel(sums)

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(outDir, fmt.Sprintf("timings_%s.json", ts))
	if err := saveJSON(jsonPath, sums); err != nil {
		log.Warn().Err(err).Str("path", jsonPath).Msg("save timings")
	} else {
		log.Info().Str("path", jsonPath).Msg("timings written")
	}

	page := components.NewPage()
	page.AddCharts(
		newLineChart("Big integer multiplication", "64-bit words", wordSizes, []string{"schoolbook", "karatsuba", "fourier"}, means),
		newLineChart("Ternary convolution mod 2048", "N", ringSizes, []string{"schoolbook", "kronecker", "sparse", "product"}, means),
		newSchemeChart(names, means),
	)

	htmlPath := filepath.Join(outDir, fmt.Sprintf("timings_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		return errors.Wrap(err, "create html")
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return errors.Wrap(err, "render html")
	}
	log.Info().Str("path", htmlPath).Msg("chart page written")
	return nil
}
