package domain

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultSentinel is the DWD marker for values that are not available.
const DefaultSentinel = -999.0

// CleanConfig describes how to turn one raw table into an observation series.
type CleanConfig struct {
	Kind   StationKind
	Series Series

	TimestampColumn string
	TimestampLayout string

	// Columns maps trimmed raw header names to canonical fields. Unmapped columns
	// (e.g. DWD's "eor") are ignored.
	Columns map[string]Field

	// Required fields must be present in the header.
	Required []Field

	// Validity fields must hold a non-negative, non-missing value or the row is dropped.
	Validity []Field

	Sentinel float64

	// Cutoff, when non-zero, drops rows with a timestamp before it.
	Cutoff time.Time
}

// CleanResult is a cleaned series plus the bookkeeping needed for logs and metrics.
type CleanResult struct {
	Observations    []Observation
	RowsRead        int
	DroppedInvalid  int
	DroppedCutoff   int
	SentinelMissing int
}

// Clean parses timestamps, renames fields, converts sentinels to missing values and
// applies the validity and cutoff filters. The input table is not modified.
func Clean(raw RawTable, cfg CleanConfig) (CleanResult, error) {
	index := make(map[string]int, len(raw.Header))
	for i, name := range raw.Header {
		index[strings.TrimSpace(name)] = i
	}

	tsIdx, ok := index[cfg.TimestampColumn]
	if !ok {
		return CleanResult{}, &SchemaError{Source: raw.Source, Column: cfg.TimestampColumn}
	}

	fieldIdx := make(map[Field]int, len(cfg.Columns))
	fieldCol := make(map[Field]string, len(cfg.Columns))
	for col, field := range cfg.Columns {
		if i, ok := index[col]; ok {
			fieldIdx[field] = i
			fieldCol[field] = col
		}
	}
	for _, f := range cfg.Required {
		if _, ok := fieldIdx[f]; !ok {
			return CleanResult{}, &SchemaError{Source: raw.Source, Column: rawColumnFor(cfg.Columns, f)}
		}
	}

	res := CleanResult{
		Observations: make([]Observation, 0, len(raw.Rows)),
		RowsRead:     len(raw.Rows),
	}

	for r, row := range raw.Rows {
		// Row numbers are 1-based and count the header, matching what an editor shows.
		lineNo := r + 2

		tsRaw := cell(row, tsIdx)
		ts, err := time.Parse(cfg.TimestampLayout, tsRaw)
		if err != nil {
			return CleanResult{}, &ParseError{Source: raw.Source, Row: lineNo, Column: cfg.TimestampColumn, Value: tsRaw, Err: err}
		}

		values := make(map[Field]float64, len(fieldIdx))
		for field, i := range fieldIdx {
			v, err := parseNumeric(cell(row, i))
			if err != nil {
				return CleanResult{}, &ParseError{Source: raw.Source, Row: lineNo, Column: fieldCol[field], Value: cell(row, i), Err: err}
			}
			values[field] = v
		}

		if !cfg.Cutoff.IsZero() && ts.Before(cfg.Cutoff) {
			res.DroppedCutoff++
			continue
		}

		if !valid(values, cfg.Validity) {
			res.DroppedInvalid++
			continue
		}

		for field, v := range values {
			if v == cfg.Sentinel && cfg.Sentinel != 0 {
				values[field] = Missing()
				res.SentinelMissing++
			}
		}

		res.Observations = append(res.Observations, Observation{
			Timestamp: ts,
			Kind:      cfg.Kind,
			Series:    cfg.Series,
			Values:    values,
		})
	}

	return res, nil
}

// Concat joins several cleaned results in order, summing their counters.
func Concat(results ...CleanResult) CleanResult {
	var out CleanResult
	for _, r := range results {
		out.Observations = append(out.Observations, r.Observations...)
		out.RowsRead += r.RowsRead
		out.DroppedInvalid += r.DroppedInvalid
		out.DroppedCutoff += r.DroppedCutoff
		out.SentinelMissing += r.SentinelMissing
	}
	return out
}

// valid reports whether every validity field holds a non-negative value.
// NaN fails the comparison, so missing values are invalid too.
func valid(values map[Field]float64, fields []Field) bool {
	for _, f := range fields {
		v, ok := values[f]
		if !ok || !(v >= 0) {
			return false
		}
	}
	return true
}

var errNotNumeric = errors.New("not a number")

// parseNumeric parses a trimmed decimal value. Empty cells and the literal "NaN"
// (as gota renders empty cells) are missing.
func parseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || s == "NA" {
		return Missing(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumeric
	}
	return v, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rawColumnFor names the raw column expected for f. When several raw names map to the
// same field (QN and QN_3) the lexically first is reported.
func rawColumnFor(columns map[string]Field, f Field) string {
	for _, col := range slices.Sorted(maps.Keys(columns)) {
		if columns[col] == f {
			return col
		}
	}
	return string(f)
}
