// Command genmock writes synthetic raw DWD station files for local runs and tests. The
// files follow the layout of the DWD climate data center products: semicolon separated,
// padded headers, -999 for missing readings and a trailing eor column. Output is
// deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir testdata/dwd -from 1996-01-01 -days 730 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

const sentinel = "-999"

var (
	meanHeader = []string{"STATIONS_ID", "MESS_DATUM", "  QN_3", "   F", "   D", "eor"}
	gustHeader = []string{"STATIONS_ID", "MESS_DATUM", "  QN", "FX_10", "FNX_10", "FMX_10", "DX_10", "eor"}
)

// station describes one synthetic station.
type station struct {
	prefix    string
	id        int
	meanSpeed float64 // m/s, mean of the hourly speed distribution
	prevail   float64 // prevailing wind direction in degrees
}

var stations = []station{
	{prefix: "City", id: 1048, meanSpeed: 3.2, prevail: 250},
	{prefix: "Airp", id: 1050, meanSpeed: 4.6, prevail: 240},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory for the generated raw files")
	from := flag.String("from", "1996-01-01", "first day of data (YYYY-MM-DD)")
	days := flag.Int("days", 730, "number of days to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	missingRate := flag.Float64("missing-rate", 0.01, "fraction of readings replaced by -999")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}
	start, err := time.Parse("2006-01-02", *from)
	if err != nil {
		return fmt.Errorf("parse -from: %w", err)
	}
	if *days <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	g := generator{
		rng:         rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)),
		start:       start,
		end:         start.AddDate(0, 0, *days),
		missingRate: *missingRate,
	}

	for _, st := range stations {
		mean := g.meanRows(st)
		path := filepath.Join(*outDir, profile.DWDFiles[st.prefix+"Mean"])
		if err := writeDWD(path, meanHeader, mean); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("%s mean: %d rows -> %s", st.prefix, len(mean), path)

		gust := g.gustRows(st)
		for i, part := range split(gust, 4) {
			path := filepath.Join(*outDir, profile.DWDFiles[st.prefix+"Gust"+strconv.Itoa(i+1)])
			if err := writeDWD(path, gustHeader, part); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			log.Printf("%s gust part %d: %d rows -> %s", st.prefix, i+1, len(part), path)
		}
	}
	return nil
}

type generator struct {
	rng         *rand.Rand
	start, end  time.Time
	missingRate float64
}

// meanRows produces one hourly record per hour. Speeds follow a Rayleigh-like
// distribution with a seasonal swing, stronger in winter.
func (g *generator) meanRows(st station) [][]string {
	var rows [][]string
	for ts := g.start; ts.Before(g.end); ts = ts.Add(time.Hour) {
		speed := g.speed(st.meanSpeed * seasonal(ts))
		dir := g.direction(st.prevail)
		rows = append(rows, []string{
			strconv.Itoa(st.id),
			ts.Format("2006010215"),
			"    3",
			g.maybeMissing(fmt.Sprintf("%.1f", speed)),
			g.maybeMissing(strconv.Itoa(int(dir))),
			"eor",
		})
	}
	return rows
}

// gustRows produces one 10-minute extreme record every 10 minutes.
func (g *generator) gustRows(st station) [][]string {
	var rows [][]string
	for ts := g.start; ts.Before(g.end); ts = ts.Add(10 * time.Minute) {
		mean := g.speed(st.meanSpeed * seasonal(ts))
		gust := mean * (1.3 + 0.5*g.rng.Float64())
		lull := mean * (0.3 + 0.4*g.rng.Float64())
		rows = append(rows, []string{
			strconv.Itoa(st.id),
			ts.Format("200601021504"),
			"    3",
			g.maybeMissing(fmt.Sprintf("%.1f", gust)),
			g.maybeMissing(fmt.Sprintf("%.1f", lull)),
			g.maybeMissing(fmt.Sprintf("%.1f", mean)),
			g.maybeMissing(strconv.Itoa(int(g.direction(st.prevail)))),
			"eor",
		})
	}
	return rows
}

func (g *generator) speed(scale float64) float64 {
	u := g.rng.Float64()
	return scale * math.Sqrt(-2*math.Log(1-u)) / math.Sqrt(math.Pi/2)
}

// direction draws around the prevailing direction, DWD style: 10° steps, 1..360.
func (g *generator) direction(prevail float64) float64 {
	d := prevail + g.rng.NormFloat64()*60
	d = math.Mod(math.Mod(d, 360)+360, 360)
	d = math.Round(d/10) * 10
	if d == 0 {
		d = 360
	}
	return d
}

func (g *generator) maybeMissing(v string) string {
	if g.rng.Float64() < g.missingRate {
		return sentinel
	}
	return v
}

func seasonal(ts time.Time) float64 {
	return 1 + 0.25*math.Cos(2*math.Pi*float64(ts.YearDay())/365)
}

// split divides rows into n consecutive parts of near-equal size.
func split(rows [][]string, n int) [][][]string {
	parts := make([][][]string, n)
	size := (len(rows) + n - 1) / n
	for i := range parts {
		lo := min(i*size, len(rows))
		hi := min(lo+size, len(rows))
		parts[i] = rows[lo:hi]
	}
	return parts
}

func writeDWD(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
