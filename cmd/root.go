package cmd

import (
	"fmt"
	"os"

	"data-extractor/core/config"
	"data-extractor/core/logger"
	"data-extractor/core/storage"
	"data-extractor/feature/pipeline"
	"data-extractor/feature/sinks/truetabs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "data-extractor",
	Short: "Extract tabular data from heterogeneous sources",
	Long: `Data Extractor reads rows from relational databases, MongoDB, Redis,
Elasticsearch or CSV files, checks them against an expected schema and saves
them as an .xlsx workbook. It can also push record updates to TrueTabs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads well in a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger and the pipeline service.
func bootstrap() (*config.Config, *zap.Logger, *pipeline.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	// Object storage is optional; s3:// inputs and uploads fail without it.
	var store storage.Client
	if s, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Object storage unavailable", zap.Error(err))
	} else {
		store = s
	}

	svc := pipeline.NewService(pipeline.Deps{
		Database: cfg.Database,
		Storage:  store,
		Bucket:   cfg.Storage.Bucket,
		Remote:   truetabs.NewClient(cfg.TrueTabs, logg),
		Logger:   logg,
	})
	return cfg, logg, svc, nil
}
