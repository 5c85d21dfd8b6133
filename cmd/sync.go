package cmd

import (
	"context"
	"fmt"
	"time"

	"festival-sync/core/config"
	"festival-sync/core/database"
	"festival-sync/core/logger"
	"festival-sync/core/storage"
	"festival-sync/feature/events"
	"festival-sync/feature/festival/models"
	festivalsync "festival-sync/feature/festival/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncRegions  []string
	syncDays     int
	syncPageSize int
	syncDryRun   bool
)

// syncCmd runs one ingestion pass across the configured regions. It is the
// entry point the external scheduler invokes periodically; it needs no
// arguments.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch listings and reconcile them into the store",
	Long: `Sync fetches event listings for each configured region, upserts
venues, festivals and artists, links lineups, and writes one run log row.

Per-region and per-entity failures are recorded in the run log and do not
abort the run; only a total failure (e.g. the log write itself) exits
non-zero.

Examples:
  # Sync the regions from configuration over the default window
  festival-sync sync

  # Sync two specific regions for the next 90 days
  festival-sync sync --region costa-rica --region berlin --days 90

  # Fetch and count without writing anything
  festival-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringArrayVar(&syncRegions, "region", nil, "Region to sync (repeatable; defaults to configured regions)")
	syncCmd.Flags().IntVar(&syncDays, "days", 0, "Size of the listing date window in days (defaults to configuration)")
	syncCmd.Flags().IntVar(&syncPageSize, "page-size", 0, "Listings per page (defaults to configuration)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Fetch and count but write nothing")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Snapshot archiving is optional; the sync runs fine without storage.
	var archiver *festivalsync.Archiver
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		archiver = festivalsync.NewArchiver(client, cfg.Storage.Bucket, l)
		if err := archiver.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to prepare snapshot bucket: %w", err)
		}
	}

	regions := syncRegions
	if len(regions) == 0 {
		regions = cfg.RegionList()
	}
	days := syncDays
	if days <= 0 {
		days = cfg.Events.WindowDays
	}
	pageSize := syncPageSize
	if pageSize <= 0 {
		pageSize = cfg.Events.PageSize
	}

	client := events.NewClient(cfg.Events, l)
	orch := festivalsync.NewOrchestrator(client, db, archiver, l)

	now := time.Now()
	summary, err := orch.Run(ctx, festivalsync.Options{
		Regions:  regions,
		DateFrom: now,
		DateTo:   now.AddDate(0, 0, days),
		PageSize: pageSize,
		DryRun:   syncDryRun,
	})
	if err != nil {
		return err
	}

	l.Info("Sync complete",
		zap.String("run_id", summary.RunID),
		zap.String("status", summary.Status),
		zap.Int("festivals_found", summary.FestivalsFound),
		zap.Int("artists_found", summary.ArtistsFound),
		zap.Int("errors", len(summary.Errors)),
		zap.Duration("duration", summary.Duration),
	)

	return nil
}
