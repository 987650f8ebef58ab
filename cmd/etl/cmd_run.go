package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/wind-stats-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/wind-stats-etl/internal/adapter/parquetfile"
	"github.com/couchcryptid/wind-stats-etl/internal/config"
	"github.com/couchcryptid/wind-stats-etl/internal/observability"
	"github.com/couchcryptid/wind-stats-etl/internal/pipeline"
	"github.com/couchcryptid/wind-stats-etl/internal/profile"
)

var runFlags struct {
	profile         string
	inputDir        string
	outputDir       string
	metricsTextfile string
	parquetDir      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one profile and write its tables",
	Long: `Read the raw files of a profile from the input directory, build every output
table and write them as CSV to the output directory together with manifest.json.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVarP(&runFlags.profile, "profile", "p", "dwd", "profile to run (see 'windstats profiles')")
	f.StringVar(&runFlags.inputDir, "input-dir", "", "directory with raw input files (overrides INPUT_DIR)")
	f.StringVar(&runFlags.outputDir, "output-dir", "", "directory for output tables (overrides OUTPUT_DIR)")
	f.StringVar(&runFlags.metricsTextfile, "metrics-textfile", "", "write run metrics in Prometheus text format to this file")
	f.StringVar(&runFlags.parquetDir, "parquet", "", "also archive cleaned series as Parquet into this directory")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runFlags.inputDir != "" {
		cfg.InputDir = runFlags.inputDir
	}
	if runFlags.outputDir != "" {
		cfg.OutputDir = runFlags.outputDir
	}

	prof, err := profile.Lookup(runFlags.profile)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var archiver pipeline.Archiver
	if runFlags.parquetDir != "" {
		archiver = parquetfile.NewArchiver(runFlags.parquetDir, logger)
		logger.Info("parquet archive enabled", "dir", runFlags.parquetDir)
	}

	p := pipeline.New(
		csvfile.NewReader(cfg.InputDir, logger),
		csvfile.NewWriter(cfg.OutputDir, logger),
		archiver,
		logger,
		metrics,
	)

	_, runErr := p.Run(cmd.Context(), prof)
	if runErr != nil {
		logger.Error("run failed", "profile", prof.Name, "error", runErr)
	}

	if runFlags.metricsTextfile != "" {
		if err := observability.WriteTextfile(runFlags.metricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Error("write metrics textfile", "path", runFlags.metricsTextfile, "error", err)
		}
	}
	return runErr
}
