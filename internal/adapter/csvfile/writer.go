package csvfile

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
)

// Writer writes output tables as comma-separated files with a header row and the
// index as first column. It implements pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on first write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Load writes table to <dir>/<name>.csv, replacing any previous file.
func (w *Writer) Load(ctx context.Context, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, table.Name+".csv")
	if err := writeAtomic(path, func(f *os.File) error { return encodeTable(f, table) }); err != nil {
		return fmt.Errorf("write table %s: %w", table.Name, err)
	}
	w.logger.Debug("table written", "table", table.Name, "rows", len(table.Rows), "path", path)
	return nil
}

// WriteManifest writes the run manifest as manifest.json.
func (w *Writer) WriteManifest(_ context.Context, m domain.Manifest) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, "manifest.json")
	return writeAtomic(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
}

func encodeTable(f *os.File, table domain.Table) error {
	cw := csv.NewWriter(f)
	header := append([]string{table.IndexName}, table.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(append([]string{row.Index}, row.Cells...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeAtomic writes through a temp file in the target directory and renames it into
// place, so a failed run never leaves a truncated table behind.
func writeAtomic(path string, fill func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
