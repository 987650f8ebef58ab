package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSource     = "produkt_ff_stunde_city.txt"
	testGustSource = "produkt_zehn_min_fx_city_1.txt"
)

func dwdMeanConfig() CleanConfig {
	return CleanConfig{
		Kind:            City,
		Series:          Mean,
		TimestampColumn: "MESS_DATUM",
		TimestampLayout: "2006010215",
		Columns: map[string]Field{
			"STATIONS_ID": FieldStation,
			"QN_3":        FieldQuality,
			"F":           FieldSpeed,
			"D":           FieldDirection,
		},
		Required: []Field{FieldSpeed, FieldDirection},
		Validity: []Field{FieldSpeed, FieldDirection},
		Sentinel: DefaultSentinel,
	}
}

func dwdGustConfig() CleanConfig {
	return CleanConfig{
		Kind:            City,
		Series:          Gust,
		TimestampColumn: "MESS_DATUM",
		TimestampLayout: "200601021504",
		Columns: map[string]Field{
			"STATIONS_ID": FieldStation,
			"QN":          FieldQuality,
			"FX_10":       FieldMaxSpeed,
			"DX_10":       FieldMaxDirection,
			"FMX_10":      FieldMaxMean,
			"FNX_10":      FieldMinSpeed,
		},
		Required: []Field{FieldMaxSpeed},
		Validity: []Field{FieldMaxSpeed},
		Sentinel: DefaultSentinel,
	}
}

func TestClean_DWDMean(t *testing.T) {
	raw := RawTable{
		Source: testSource,
		Header: []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "   F", "   D", "eor"},
		Rows: [][]string{
			{"433", "1997070113", "    5", "   3.1", " 240", "eor"},
			{"433", "1997070114", "    5", "-999", " 250", "eor"},
			{"433", "1997070115", "    5", "   2.0", "-999", "eor"},
			{"433", "1997070116", "    5", "   0.0", "   0", "eor"},
		},
	}

	res, err := Clean(raw, dwdMeanConfig())
	require.NoError(t, err)

	require.Len(t, res.Observations, 2)
	assert.Equal(t, 4, res.RowsRead)
	assert.Equal(t, 2, res.DroppedInvalid)

	first := res.Observations[0]
	assert.Equal(t, time.Date(1997, 7, 1, 13, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, City, first.Kind)
	assert.Equal(t, Mean, first.Series)
	assert.Equal(t, 3.1, first.Value(FieldSpeed))
	assert.Equal(t, 240.0, first.Value(FieldDirection))
	assert.Equal(t, 433.0, first.Value(FieldStation))
	assert.Equal(t, 5.0, first.Value(FieldQuality))
	assert.True(t, IsMissing(first.Value(FieldMaxSpeed)), "unmapped field reads as missing")
}

func TestClean_GustSentinelKeepsRow(t *testing.T) {
	raw := RawTable{
		Source: testGustSource,
		Header: []string{"STATIONS_ID", "MESS_DATUM", "QN", "FX_10", "FNX_10", "FMX_10", "DX_10", "eor"},
		Rows: [][]string{
			{"433", "199707011350", "3", "12.4", "-999", "6.1", "230", "eor"},
			{"433", "199707011400", "3", "-999", "1.0", "5.0", "220", "eor"},
		},
	}

	res, err := Clean(raw, dwdGustConfig())
	require.NoError(t, err)

	require.Len(t, res.Observations, 1, "negative max speed drops the row")
	obs := res.Observations[0]
	assert.Equal(t, 12.4, obs.Value(FieldMaxSpeed))
	assert.True(t, math.IsNaN(obs.Value(FieldMinSpeed)), "sentinel becomes missing, row is retained")
	assert.Equal(t, 6.1, obs.Value(FieldMaxMean))
	assert.Equal(t, 1, res.SentinelMissing)
	assert.Equal(t, 1, res.DroppedInvalid)
}

func TestClean_Cutoff(t *testing.T) {
	cfg := dwdMeanConfig()
	cfg.Cutoff = time.Date(1997, 7, 1, 0, 0, 0, 0, time.UTC)

	raw := RawTable{
		Source: testSource,
		Header: []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "F", "D"},
		Rows: [][]string{
			{"433", "1997063023", "1", "3.0", "90"},
			{"433", "1997070100", "5", "3.0", "90"},
			{"433", "1997070101", "5", "3.0", "90"},
		},
	}

	res, err := Clean(raw, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Observations, 2, "rows at or after the cutoff are kept")
	assert.Equal(t, 1, res.DroppedCutoff)
	assert.Equal(t, cfg.Cutoff, res.Observations[0].Timestamp)
}

func TestClean_CutoffRowsNotCounted(t *testing.T) {
	cfg := dwdMeanConfig()
	cfg.Cutoff = time.Date(1997, 7, 1, 0, 0, 0, 0, time.UTC)

	raw := RawTable{
		Source: testSource,
		Header: []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "F", "D"},
		Rows: [][]string{
			{"-999", "1997063022", "1", "3.0", "90"},
			{"433", "1997063023", "1", "-999", "90"},
			{"-999", "1997070100", "5", "3.0", "90"},
		},
	}

	res, err := Clean(raw, cfg)
	require.NoError(t, err)
	require.Len(t, res.Observations, 1)
	assert.Equal(t, 2, res.DroppedCutoff)
	assert.Equal(t, 0, res.DroppedInvalid, "rows before the cutoff are not checked for validity")
	assert.Equal(t, 1, res.SentinelMissing, "only sentinels of kept rows are counted")
	assert.True(t, IsMissing(res.Observations[0].Value(FieldStation)))
}

func TestClean_MissingColumn(t *testing.T) {
	raw := RawTable{
		Source: testSource,
		Header: []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "F"},
		Rows:   [][]string{{"433", "1997070113", "5", "3.1"}},
	}

	_, err := Clean(raw, dwdMeanConfig())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "D", schemaErr.Column)
	assert.Contains(t, err.Error(), testSource)
}

func TestClean_MissingTimestampColumn(t *testing.T) {
	raw := RawTable{Source: testSource, Header: []string{"F", "D"}}

	_, err := Clean(raw, dwdMeanConfig())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "MESS_DATUM", schemaErr.Column)
}

func TestClean_ParseErrors(t *testing.T) {
	header := []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "F", "D"}

	tests := []struct {
		name   string
		row    []string
		column string
	}{
		{"bad timestamp", []string{"433", "1997-07-01", "5", "3.1", "240"}, "MESS_DATUM"},
		{"minute precision in hourly file", []string{"433", "199707011350", "5", "3.1", "240"}, "MESS_DATUM"},
		{"bad speed", []string{"433", "1997070113", "5", "fast", "240"}, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawTable{Source: testSource, Header: header, Rows: [][]string{tt.row}}
			_, err := Clean(raw, dwdMeanConfig())

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.column, parseErr.Column)
			assert.Equal(t, 2, parseErr.Row)
		})
	}
}

func TestClean_EmptyCellIsMissing(t *testing.T) {
	cfg := CleanConfig{
		Kind:            Airport,
		Series:          Gust,
		TimestampColumn: "Date",
		TimestampLayout: DistributionTimeLayout,
		Columns:         map[string]Field{"WindVelocity": FieldSpeed, "WindDirection": FieldDirection},
		Required:        []Field{FieldSpeed},
		Validity:        []Field{FieldSpeed},
		Sentinel:        DefaultSentinel,
	}
	raw := RawTable{
		Source: "wind_10min_max_airp.csv",
		Header: []string{"Date", "WindVelocity", "WindDirection"},
		Rows:   [][]string{{"2020-01-05 10:00:00", "8.5", ""}},
	}

	res, err := Clean(raw, cfg)
	require.NoError(t, err)
	require.Len(t, res.Observations, 1)
	assert.True(t, IsMissing(res.Observations[0].Value(FieldDirection)))
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	row := []string{"433", "1997070113", "5", "-999", "240"}
	raw := RawTable{Source: testSource, Header: []string{"STATIONS_ID", "MESS_DATUM", "QN_3", "F", "D"}, Rows: [][]string{row}}

	_, err := Clean(raw, dwdMeanConfig())
	require.NoError(t, err)
	assert.Equal(t, "-999", raw.Rows[0][3])
}

func TestConcat(t *testing.T) {
	a := CleanResult{Observations: []Observation{{Series: Gust}}, RowsRead: 3, DroppedInvalid: 2}
	b := CleanResult{Observations: []Observation{{Series: Gust}, {Series: Gust}}, RowsRead: 2, SentinelMissing: 1}

	out := Concat(a, b)

	assert.Len(t, out.Observations, 3)
	assert.Equal(t, 5, out.RowsRead)
	assert.Equal(t, 2, out.DroppedInvalid)
	assert.Equal(t, 1, out.SentinelMissing)
}
