// Command validate checks the output of a run against the invariants of each table
// kind: normalized monthly rows sum to the canonical day count of their month, wind
// roses hold every sector and speed combination in order, comparison tables cover all
// twelve months and every table named in the manifest exists.
//
// Usage:
//
//	go run ./cmd/validate -output-dir 3_postprocessed_data -profile dwd
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	outputDir := flag.String("output-dir", "", "directory containing the run output and manifest.json")
	profileName := flag.String("profile", "dwd", "profile the output was produced with")
	flag.Parse()

	if *outputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*outputDir, *profileName); code != 0 {
		os.Exit(code)
	}
}

func run(outputDir, profileName string) int {
	fmt.Println("=== Wind Statistics Output Validation ===")
	fmt.Println()

	prof, err := profile.Lookup(profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	manifest, err := loadManifest(filepath.Join(outputDir, "manifest.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load manifest: %v\n", err)
		return 1
	}
	if manifest.Profile != prof.Name {
		fmt.Fprintf(os.Stderr, "FATAL: manifest is for profile %q, not %q\n", manifest.Profile, prof.Name)
		return 1
	}

	tables := make(map[string]*table, len(manifest.Tables))
	files := &phase{name: "Manifest tables present"}
	for _, name := range manifest.Tables {
		t, err := loadTable(filepath.Join(outputDir, name+".csv"))
		if err != nil {
			files.errorf("%s: %v", name, err)
			continue
		}
		tables[name] = t
	}

	phases := []*phase{
		files,
		validateMonthly(prof, tables, manifest.EmptyGroups),
		validateRoses(prof, tables),
		validateComparisons(prof, tables),
		validateDistributions(tables),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Run %s: %d tables, %d empty groups\n", manifest.RunID, len(manifest.Tables), len(manifest.EmptyGroups))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

type table struct {
	header []string
	rows   [][]string
}

func loadManifest(path string) (domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Manifest{}, err
	}
	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Manifest{}, err
	}
	return m, nil
}

func loadTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no header in %s", path)
	}
	return &table{header: all[0], rows: all[1:]}, nil
}

// ── Validation phases ──

func validateMonthly(prof profile.Profile, tables map[string]*table, emptyGroups []string) *phase {
	p := &phase{name: "Monthly rows sum to canonical days"}
	if !prof.Monthly {
		return p
	}
	for _, kind := range stationKinds(prof) {
		name := profile.TableName("mean_monthly", kind)
		t, ok := tables[name]
		if !ok {
			p.errorf("%s missing", name)
			continue
		}
		if want := append([]string{"Months"}, prof.Speed.Labels...); !slices.Equal(t.header, want) {
			p.errorf("%s header %v, want %v", name, t.header, want)
		}
		if len(t.rows) != len(domain.MonthLabels) {
			p.errorf("%s has %d rows, want %d", name, len(t.rows), len(domain.MonthLabels))
			continue
		}
		for i, row := range t.rows {
			month := domain.MonthLabels[i]
			if row[0] != month {
				p.errorf("%s row %d is %q, want %q", name, i+1, row[0], month)
			}
			sum, empty, err := rowSum(row[1:])
			if err != nil {
				p.errorf("%s %s: %v", name, month, err)
				continue
			}
			if empty {
				if !slices.Contains(emptyGroups, name+"/"+month) {
					p.errorf("%s %s is empty but not reported in the manifest", name, month)
				}
				continue
			}
			if days := domain.CanonicalDays(time.Month(i + 1)); math.Abs(sum-days) > 1e-6 {
				p.errorf("%s %s sums to %g, want %g", name, month, sum, days)
			}
		}
	}
	return p
}

func validateRoses(prof profile.Profile, tables map[string]*table) *phase {
	p := &phase{name: "Wind roses complete"}
	for _, kind := range stationKinds(prof) {
		for _, rose := range prof.Roses {
			name := profile.TableName("mean_windrose_"+rose.Name, kind)
			t, ok := tables[name]
			if !ok {
				p.errorf("%s missing", name)
				continue
			}
			checkRose(p, name, t, prof.Speed, rose.Scheme)
		}
	}
	return p
}

// checkRose verifies one tidy table: consecutive index, every sector for each bucket
// with buckets varying slowest, and no negative frequencies.
func checkRose(p *phase, name string, t *table, speed domain.SpeedScheme, dir domain.DirectionScheme) {
	want := dir.Sectors * speed.Len()
	if len(t.rows) != want {
		p.errorf("%s has %d rows, want %d", name, len(t.rows), want)
		return
	}
	for i, row := range t.rows {
		if len(row) != 4 {
			p.errorf("%s row %d has %d cells", name, i+1, len(row))
			continue
		}
		if row[0] != strconv.Itoa(i) {
			p.errorf("%s row %d index %q, want %d", name, i+1, row[0], i)
		}
		if wantDir := dir.Labels[i%dir.Sectors]; row[1] != wantDir {
			p.errorf("%s row %d direction %q, want %q", name, i+1, row[1], wantDir)
		}
		if wantSpeed := speed.Labels[i/dir.Sectors]; row[2] != wantSpeed {
			p.errorf("%s row %d speed range %q, want %q", name, i+1, row[2], wantSpeed)
		}
		if v, err := strconv.ParseFloat(row[3], 64); err != nil || v < 0 {
			p.errorf("%s row %d frequency %q is not a count", name, i+1, row[3])
		}
	}
}

func validateComparisons(prof profile.Profile, tables map[string]*table) *phase {
	p := &phase{name: "Comparison tables cover all months"}
	if !prof.Compare {
		return p
	}
	for _, kind := range stationKinds(prof) {
		name := profile.TableName(prof.CompareName, kind)
		t, ok := tables[name]
		if !ok {
			continue
		}
		if want := []string{"Months", "Mean", prof.ExtremeColumn}; !slices.Equal(t.header, want) {
			p.errorf("%s header %v, want %v", name, t.header, want)
		}
		if len(t.rows) != len(domain.MonthLabels) {
			p.errorf("%s has %d rows, want %d", name, len(t.rows), len(domain.MonthLabels))
			continue
		}
		for i, row := range t.rows {
			if row[0] != domain.MonthLabels[i] {
				p.errorf("%s row %d is %q, want %q", name, i+1, row[0], domain.MonthLabels[i])
			}
		}
	}
	return p
}

func validateDistributions(tables map[string]*table) *phase {
	p := &phase{name: "Distribution timestamps parse"}
	for name, t := range tables {
		if !strings.Contains(name, "_distrib_") {
			continue
		}
		if len(t.header) == 0 || t.header[0] != "Date" {
			p.errorf("%s index column %v, want Date", name, t.header)
			continue
		}
		for i, row := range t.rows {
			if _, err := time.Parse(domain.DistributionTimeLayout, row[0]); err != nil {
				p.errorf("%s row %d: %v", name, i+1, err)
				break
			}
		}
	}
	return p
}

// ── Helpers ──

func stationKinds(prof profile.Profile) []domain.StationKind {
	kinds := make([]domain.StationKind, len(prof.Stations))
	for i, st := range prof.Stations {
		kinds[i] = st.Kind
	}
	return kinds
}

// rowSum adds the cells of a row. A row whose cells are all empty is reported as
// empty; a partially empty row is an error.
func rowSum(cells []string) (sum float64, empty bool, err error) {
	blank := 0
	for _, c := range cells {
		if c == "" {
			blank++
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return 0, false, err
		}
		sum += v
	}
	switch blank {
	case 0:
		return sum, false, nil
	case len(cells):
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("%d of %d cells empty", blank, len(cells))
	}
}
