package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/wind-stats-etl/internal/domain"
	"github.com/couchcryptid/wind-stats-etl/internal/observability"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

// Extractor reads one raw dataset.
type Extractor interface {
	Extract(ctx context.Context, ds profile.Dataset) (domain.RawTable, error)
}

// Loader writes output tables and the run manifest.
type Loader interface {
	Load(ctx context.Context, table domain.Table) error
	WriteManifest(ctx context.Context, m domain.Manifest) error
}

// Archiver stores cleaned series in a secondary format. Optional.
type Archiver interface {
	Archive(ctx context.Context, name string, obs []domain.Observation) error
}

// Pipeline runs one profile from raw files to output tables. A run is a single
// synchronous batch; any schema, parse or config error aborts it.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	archiver  Archiver
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Pass a nil archiver to skip secondary archiving.
func New(e Extractor, l Loader, a Archiver, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		archiver:  a,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run processes every station of the profile and returns the manifest of what was written.
func (p *Pipeline) Run(ctx context.Context, prof profile.Profile) (domain.Manifest, error) {
	if err := prof.Validate(); err != nil {
		return domain.Manifest{}, err
	}

	manifest := domain.NewManifest(prof.Name)
	p.logger.Info("run started", "profile", prof.Name, "run_id", manifest.RunID, "stations", len(prof.Stations))

	for _, st := range prof.Stations {
		if err := p.runStation(ctx, prof, st, &manifest); err != nil {
			return manifest, fmt.Errorf("station %s: %w", st.Kind, err)
		}
	}

	if err := p.loader.WriteManifest(ctx, manifest); err != nil {
		return manifest, fmt.Errorf("write manifest: %w", err)
	}
	p.metrics.LastSuccess.Set(float64(manifest.GeneratedAt.Unix()))
	p.logger.Info("run finished",
		"profile", prof.Name,
		"run_id", manifest.RunID,
		"tables", len(manifest.Tables),
		"empty_groups", len(manifest.EmptyGroups),
	)
	return manifest, nil
}

func (p *Pipeline) runStation(ctx context.Context, prof profile.Profile, st profile.Station, manifest *domain.Manifest) error {
	start := time.Now()
	mean, err := p.loadSeries(ctx, st.Mean)
	if err != nil {
		return err
	}
	extreme, err := p.loadSeries(ctx, st.Extreme)
	if err != nil {
		return err
	}
	p.metrics.StageDuration.WithLabelValues("extract_clean").Observe(time.Since(start).Seconds())

	start = time.Now()
	tables, empty := BuildTables(prof, st.Kind, mean.Observations, extreme.Observations)
	p.metrics.StageDuration.WithLabelValues("aggregate").Observe(time.Since(start).Seconds())

	for _, e := range empty {
		p.logger.Warn("empty group emitted as missing values", "table", e.Table, "group", e.Group)
		p.metrics.EmptyGroups.WithLabelValues(e.Table).Inc()
		manifest.EmptyGroups = append(manifest.EmptyGroups, e.Table+"/"+e.Group)
	}

	start = time.Now()
	for _, t := range tables {
		if err := p.loader.Load(ctx, t); err != nil {
			return fmt.Errorf("load %s: %w", t.Name, err)
		}
		p.metrics.TablesWritten.Inc()
		manifest.Tables = append(manifest.Tables, t.Name)
	}

	if p.archiver != nil && prof.Distributions {
		if err := p.archive(ctx, prof, st, mean.Observations, extreme.Observations); err != nil {
			return err
		}
	}
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())

	p.logger.Info("station processed",
		"station", st.Kind,
		"mean_observations", len(mean.Observations),
		"extreme_observations", len(extreme.Observations),
		"tables", len(tables),
	)
	return nil
}

func (p *Pipeline) archive(ctx context.Context, prof profile.Profile, st profile.Station, mean, extreme []domain.Observation) error {
	name := profile.TableName("distrib_mean", st.Kind)
	if err := p.archiver.Archive(ctx, name, mean); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	if prof.ExtremeTag == "" || len(extreme) == 0 {
		return nil
	}
	name = profile.TableName("distrib_"+prof.ExtremeTag, st.Kind)
	if err := p.archiver.Archive(ctx, name, extreme); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}

// loadSeries extracts and cleans each dataset and concatenates the results in order.
func (p *Pipeline) loadSeries(ctx context.Context, datasets []profile.Dataset) (domain.CleanResult, error) {
	results := make([]domain.CleanResult, 0, len(datasets))
	for _, ds := range datasets {
		raw, err := p.extractor.Extract(ctx, ds)
		if err != nil {
			return domain.CleanResult{}, fmt.Errorf("extract %s: %w", ds.Name, err)
		}

		res, err := domain.Clean(raw, ds.Clean)
		if err != nil {
			return domain.CleanResult{}, fmt.Errorf("clean %s: %w", ds.Name, err)
		}

		p.metrics.RowsRead.WithLabelValues(ds.Name).Add(float64(res.RowsRead))
		p.metrics.RowsDropped.WithLabelValues(ds.Name, "invalid").Add(float64(res.DroppedInvalid))
		p.metrics.RowsDropped.WithLabelValues(ds.Name, "cutoff").Add(float64(res.DroppedCutoff))
		p.metrics.MissingValues.WithLabelValues(ds.Name).Add(float64(res.SentinelMissing))
		p.logger.Info("dataset cleaned",
			"dataset", ds.Name,
			"rows_read", res.RowsRead,
			"kept", len(res.Observations),
			"dropped_invalid", res.DroppedInvalid,
			"dropped_cutoff", res.DroppedCutoff,
			"sentinel_missing", res.SentinelMissing,
		)
		results = append(results, res)
	}
	return domain.Concat(results...), nil
}
