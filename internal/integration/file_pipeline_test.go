//go:build integration

package integration_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wind-stats-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/wind-stats-etl/internal/adapter/parquetfile"
	"github.com/couchcryptid/wind-stats-etl/internal/domain"
	"github.com/couchcryptid/wind-stats-etl/internal/observability"
	"github.com/couchcryptid/wind-stats-etl/internal/pipeline"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

const (
	meanHeader = "STATIONS_ID;MESS_DATUM;  QN_3;   F;   D;eor"
	gustHeader = "STATIONS_ID;MESS_DATUM;  QN;FX_10;FNX_10;FMX_10;DX_10;eor"
)

// writeRaw writes a semicolon separated DWD file into dir.
func writeRaw(t *testing.T, dir, name, header string, lines ...string) {
	t.Helper()
	content := header + "\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// seedDWD writes a minimal raw input set for both stations: a few hourly means in
// January and July and one gust reading per part file.
func seedDWD(t *testing.T, dir string) {
	t.Helper()
	for _, prefix := range []string{"City", "Airp"} {
		// The 1996 row predates the City automation cutoff. The two -999 rows fail
		// the validity check on speed and direction respectively.
		writeRaw(t, dir, profile.DWDFiles[prefix+"Mean"], meanHeader,
			"1048;1996010100;    3;   2.0; 250;eor",
			"1048;1998010100;    3;   2.0; 250;eor",
			"1048;1998010101;    3;   4.0;  90;eor",
			"1048;1998010102;    3;-999;  90;eor",
			"1048;1998070100;    3;  12.0;   5;eor",
			"1048;1998070101;    3;   0.5;-999;eor",
		)
		for i, ts := range []string{"199801010000", "199801010010", "199807010000", "199807010010"} {
			writeRaw(t, dir, profile.DWDFiles[prefix+"Gust"+string(rune('1'+i))], gustHeader,
				"1048;"+ts+";    3;   9.0;   1.0;-999; 250;eor",
			)
		}
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

// TestFilePipeline_DWD runs the dwd profile against real files on disk: the gota
// reader, the CSV writer and the Parquet archiver.
func TestFilePipeline_DWD(t *testing.T) {
	inDir, outDir, pqDir := t.TempDir(), t.TempDir(), t.TempDir()
	seedDWD(t, inDir)

	prof, err := profile.Lookup("dwd")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics, _ := observability.NewMetricsForTesting()
	p := pipeline.New(
		csvfile.NewReader(inDir, logger),
		csvfile.NewWriter(outDir, logger),
		parquetfile.NewArchiver(pqDir, logger),
		logger,
		metrics,
	)

	manifest, err := p.Run(context.Background(), prof)
	require.NoError(t, err)
	assert.Len(t, manifest.Tables, 2*6)

	data, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	var onDisk domain.Manifest
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, manifest.RunID, onDisk.RunID)
	assert.Equal(t, manifest.Tables, onDisk.Tables)

	t.Run("monthly", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(outDir, "wind_velocity_mean_monthly_city.csv"))
		require.Len(t, rows, 13)
		assert.Equal(t, []string{"Months", "<1", "1-3", "3-6", "6-10", ">10"}, rows[0])
		assert.Equal(t, []string{"Jan", "0", "15.5", "15.5", "0", "0"}, rows[1])
		assert.Equal(t, []string{"Feb", "", "", "", "", ""}, rows[2])
		assert.Equal(t, []string{"Jul", "0", "0", "0", "0", "31"}, rows[7])
	})

	t.Run("comparison", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(outDir, "wind_velocity_comp_gust_vs_mean_city.csv"))
		require.Len(t, rows, 13)
		assert.Equal(t, []string{"Months", "Mean", "Gust"}, rows[0])
		assert.Equal(t, []string{"Jan", "3", "9"}, rows[1])
		assert.Equal(t, []string{"Jul", "12", "9"}, rows[7])
	})

	t.Run("distribution", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(outDir, "wind_velocity_distrib_gust_city.csv"))
		require.Len(t, rows, 5, "four gust parts concatenated")
		assert.Equal(t, "Date", rows[0][0])
		assert.Equal(t, "1998-01-01 00:00:00", rows[1][0])
		assert.Equal(t, "1998-07-01 00:10:00", rows[4][0])

		airp := readCSV(t, filepath.Join(outDir, "wind_velocity_distrib_mean_airp.csv"))
		require.Len(t, airp, 5, "the cutoff applies to the City station only")
		assert.Equal(t, "1996-01-01 00:00:00", airp[1][0])
	})

	t.Run("parquet archive", func(t *testing.T) {
		recs, err := parquet.ReadFile[parquetfile.Record](filepath.Join(pqDir, "wind_velocity_distrib_mean_city.parquet"))
		require.NoError(t, err)
		assert.Len(t, recs, 3, "cutoff and invalid rows are not archived")
	})
}
