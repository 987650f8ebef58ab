// Package parquetfile archives cleaned observation series as Parquet files, a typed
// columnar companion to the CSV distribution tables.
package parquetfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
)

// Record is the Parquet schema of one cleaned observation. Missing values are null.
type Record struct {
	Time         int64    `parquet:"time"` // unix seconds, UTC
	Station      string   `parquet:"station"`
	Series       string   `parquet:"series"`
	StationID    *float64 `parquet:"station_id"`
	Quality      *float64 `parquet:"quality"`
	Speed        *float64 `parquet:"speed_ms"`
	Direction    *float64 `parquet:"direction_deg"`
	MaxSpeed     *float64 `parquet:"max_speed_ms"`
	MaxDirection *float64 `parquet:"max_direction_deg"`
	MaxMean      *float64 `parquet:"max_mean_ms"`
	MinSpeed     *float64 `parquet:"min_speed_ms"`
}

// Archiver writes one Parquet file per series. It implements pipeline.Archiver.
type Archiver struct {
	dir    string
	logger *slog.Logger
}

// NewArchiver creates an Archiver rooted at dir.
func NewArchiver(dir string, logger *slog.Logger) *Archiver {
	return &Archiver{dir: dir, logger: logger}
}

// Archive writes obs to <dir>/<name>.parquet.
func (a *Archiver) Archive(ctx context.Context, name string, obs []domain.Observation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	records := make([]Record, len(obs))
	for i, o := range obs {
		records[i] = toRecord(o)
	}

	path := filepath.Join(a.dir, name+".parquet")
	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("write parquet %s: %w", name, err)
	}
	a.logger.Debug("series archived", "name", name, "rows", len(records), "path", path)
	return nil
}

func toRecord(o domain.Observation) Record {
	return Record{
		Time:         o.Timestamp.UTC().Unix(),
		Station:      string(o.Kind),
		Series:       string(o.Series),
		StationID:    optional(o, domain.FieldStation),
		Quality:      optional(o, domain.FieldQuality),
		Speed:        optional(o, domain.FieldSpeed),
		Direction:    optional(o, domain.FieldDirection),
		MaxSpeed:     optional(o, domain.FieldMaxSpeed),
		MaxDirection: optional(o, domain.FieldMaxDirection),
		MaxMean:      optional(o, domain.FieldMaxMean),
		MinSpeed:     optional(o, domain.FieldMinSpeed),
	}
}

// optional returns nil for missing values.
func optional(o domain.Observation, f domain.Field) *float64 {
	v := o.Value(f)
	if domain.IsMissing(v) {
		return nil
	}
	return &v
}
