package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brand-ranking/config"
	"brand-ranking/models"
	"brand-ranking/services"
	"brand-ranking/storage"
	"brand-ranking/utils"
)

// Flag values. Empty or negative values fall back to the environment config.
var (
	flagSource string
	flagDir    string
	flagDate   string
	flagTopN   int
	flagRankBy string
	flagBoard  string
	flagExport string
	verbose    bool
	quiet      bool
	noColor    bool
	logger     = utils.NewLogger()
)

var rootCmd = &cobra.Command{
	Use:   "brand-ranking",
	Short: "Rank marketplace brands from best-seller snapshots",
	Long: `brand-ranking aggregates a best-seller snapshot by brand, compares it with the
snapshot before it, and prints listing positions plus revenue and volume share
with long-tail brands consolidated into "Others".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger = utils.NewLoggerTo(cmd.ErrOrStderr(), utils.LevelFor(verbose, quiet))
		if noColor {
			color.NoColor = true
		}
	},
	RunE: runRanking,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the effective board configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		applyFlags(cfg)
		board, err := loadBoard(cfg)
		if err != nil {
			return err
		}
		return config.Write(cmd.OutOrStdout(), board)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagBoard, "board", "", "board YAML file (pinned brands, colors, cutoffs)")
	rootCmd.PersistentFlags().IntVar(&flagTopN, "top-n", -1, "cutoff applied to every ranked table (0 shows all brands)")
	rootCmd.PersistentFlags().StringVar(&flagRankBy, "rank-by", "", "metric for the positions table: count, sales or salesVolume")

	rootCmd.Flags().StringVar(&flagSource, "source", "", "snapshot source: csv or postgres")
	rootCmd.Flags().StringVar(&flagDir, "dir", "", "directory of <period>.csv snapshots")
	rootCmd.Flags().StringVar(&flagDate, "date", "", "snapshot period to rank (default: newest)")
	rootCmd.Flags().StringVar(&flagExport, "export", "", "write the ranked tables to this CSV file")

	rootCmd.AddCommand(boardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func runRanking(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	applyFlags(cfg)

	board, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	if cfg.SnapshotDate == "" {
		logger.Info("Loading newest snapshot from %s source", cfg.DataSource)
	} else {
		logger.Info("Loading snapshot %s from %s source", cfg.SnapshotDate, cfg.DataSource)
	}
	raw, err := storage.LoadPair(ctx, src, cfg.SnapshotDate)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}
	if raw.PreviousErr != nil {
		logger.Warn("Comparing without a previous snapshot: %v", raw.PreviousErr)
	}

	cleaner := services.NewCleaner(logger)
	pair := cleaner.CleanPair(raw)

	insightSvc := services.NewInsightService(logger, board)
	dashboard := insightSvc.Generate(pair)
	insightSvc.Print(cmd.OutOrStdout(), dashboard)

	if cfg.ExportPath == "" {
		return nil
	}
	return export(cfg.ExportPath, dashboard)
}

func applyFlags(cfg *config.Config) {
	if flagSource != "" {
		cfg.DataSource = flagSource
	}
	if flagDir != "" {
		cfg.SnapshotDir = flagDir
	}
	if flagDate != "" {
		cfg.SnapshotDate = flagDate
	}
	if flagBoard != "" {
		cfg.BoardFile = flagBoard
	}
	if flagExport != "" {
		cfg.ExportPath = flagExport
	}
}

// loadBoard reads the board file and applies the command-line overrides. An
// explicit --top-n (including 0) wins; TOP_N from the environment only applies
// when positive.
func loadBoard(cfg *config.Config) (*config.Board, error) {
	board, err := config.LoadBoard(cfg.BoardFile)
	if err != nil {
		return nil, err
	}
	if flagRankBy != "" {
		if err := board.SetRankBy(flagRankBy); err != nil {
			return nil, fmt.Errorf("--rank-by: %w", err)
		}
	}
	switch {
	case flagTopN >= 0:
		board.SetTopN(flagTopN)
	case cfg.TopN > 0:
		board.SetTopN(cfg.TopN)
	}
	return board, nil
}

func openSource(ctx context.Context, cfg *config.Config) (storage.SnapshotSource, error) {
	switch cfg.DataSource {
	case "csv":
		src, err := storage.NewCSVSource(cfg.SnapshotDir)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "postgres":
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		src, err := storage.NewPostgresSource(ctx, cfg.DSN(), cfg.Site, retry)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown data source %q (want csv or postgres)", cfg.DataSource)
	}
}

func export(path string, d *models.Dashboard) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := writeTables(w, d); err != nil {
		return err
	}
	logger.Info("Ranked tables exported to %s", path)
	return nil
}

// writeTables writes the three ranked tables in display order.
func writeTables(w storage.SeriesWriter, d *models.Dashboard) error {
	tables := []struct {
		title string
		stats []models.BrandStat
	}{
		{"positions", d.Positions},
		{"volume", d.ByVolume},
		{"revenue", d.ByRevenue},
	}
	for _, t := range tables {
		if err := w.WriteSeries(t.title, t.stats); err != nil {
			return fmt.Errorf("export %s: %w", t.title, err)
		}
	}
	return nil
}
