package cmd

import (
	"context"
	"fmt"

	"festival-sync/core/config"
	"festival-sync/core/database"
	"festival-sync/core/logger"
	"festival-sync/feature/festival/models"
	festivalsync "festival-sync/feature/festival/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importCmd ingests manually curated events from a JSON file. These lack a
// stable external identifier, so duplicates are detected by the fuzzy
// name-similarity guard instead of slug upserts.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import manually curated events from a JSON file",
	Long: `Import reads a JSON array of curated events and inserts the ones not
already present. Existence is decided by an exact slug match first, then a
fuzzy name-prefix comparison against stored festival names.

Example file entry:
  {"name": "Ocaso Festival", "startDate": "2026-01-08", "venueName": "Tamarindo Beach", "city": "Tamarindo", "country": "Costa Rica"}`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	importer := festivalsync.NewImporter(db, l)
	res, err := importer.ImportFile(ctx, args[0])
	if err != nil {
		return err
	}

	l.Info("Import complete",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)),
	)
	for _, msg := range res.Errors {
		l.Warn("Import error", zap.String("error", msg))
	}

	return nil
}
