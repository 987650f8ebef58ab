package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

// Reader loads raw delimited station files from a directory.
// It implements pipeline.Extractor.
type Reader struct {
	dir    string
	logger *slog.Logger
}

// NewReader creates a Reader rooted at dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{dir: dir, logger: logger}
}

// Extract reads the dataset's file into an untyped table. Every column is loaded as a
// string; typing happens in the cleaner so that parse failures carry row context.
func (r *Reader) Extract(ctx context.Context, ds profile.Dataset) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	path := filepath.Join(r.dir, ds.File)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open dataset %s: %w", ds.Name, err)
	}

	delim := ds.Delimiter
	if delim == 0 {
		delim = ','
	}

	header, more, err := readHeader(data, delim)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read header of dataset %s (%s): %w", ds.Name, path, err)
	}
	if !more {
		// gota refuses a frame without records; an empty period is still a valid input.
		r.logger.Warn("dataset has no records", "dataset", ds.Name, "file", path)
		return domain.RawTable{Source: ds.File, Header: header}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return domain.RawTable{}, fmt.Errorf("read dataset %s (%s): %w", ds.Name, path, df.Err)
	}

	table := frameToRaw(ds.File, df)
	r.logger.Debug("dataset read", "dataset", ds.Name, "file", path, "rows", len(table.Rows), "columns", len(table.Header))
	return table, nil
}

// readHeader returns the first record of data and whether any record follows it.
func readHeader(data []byte, delim rune) ([]string, bool, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, errors.New("file is empty")
	}
	if err != nil {
		return nil, false, err
	}
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return header, false, nil
	}
	return header, true, nil
}

// frameToRaw transposes a column-oriented DataFrame into header plus rows.
func frameToRaw(source string, df dataframe.DataFrame) domain.RawTable {
	header := df.Names()
	columns := make([][]string, len(header))
	for i, name := range header {
		columns[i] = df.Col(name).Records()
	}

	rows := make([][]string, df.Nrow())
	for r := range rows {
		row := make([]string, len(header))
		for c := range header {
			row[c] = columns[c][r]
		}
		rows[r] = row
	}
	return domain.RawTable{Source: source, Header: header, Rows: rows}
}
