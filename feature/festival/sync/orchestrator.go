package sync

import (
	"context"
	"fmt"
	"time"

	"festival-sync/feature/events"
	"festival-sync/feature/festival/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxLoggedErrors caps the error list persisted with a run log.
// Truncation keeps the oldest entries.
const maxLoggedErrors = 20

// Options parameterize one orchestrator run.
type Options struct {
	// Regions are the region names to process, strictly in order.
	Regions []string
	// DateFrom and DateTo bound the listing date window.
	DateFrom time.Time
	DateTo   time.Time
	// PageSize is the page size requested from the events API.
	PageSize int
	// DryRun fetches and counts but performs no store writes, including
	// the run log.
	DryRun bool
}

// Summary aggregates one run's outcome across all regions.
type Summary struct {
	RunID          string
	Status         string
	FestivalsFound int
	ArtistsFound   int
	Errors         []string
	Duration       time.Duration
}

// Orchestrator drives the events client and the reconciler across regions
// and persists exactly one run-log row per invocation. Regions, listings
// and artists are all processed strictly sequentially: the remote API is
// rate-limited and is the bottleneck, so idempotent-retry simplicity wins
// over parallel throughput.
type Orchestrator struct {
	fetcher  events.Fetcher
	rec      *Reconciler
	db       *gorm.DB
	archiver *Archiver
	log      *zap.Logger
}

// NewOrchestrator wires an orchestrator. archiver may be nil to disable
// snapshot archiving.
func NewOrchestrator(fetcher events.Fetcher, db *gorm.DB, archiver *Archiver, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		rec:      NewReconciler(db, log),
		db:       db,
		archiver: archiver,
		log:      log,
	}
}

// Run executes one sync across the configured regions.
//
// Every failure below this level is recovered locally: a region whose fetch
// fails contributes one region-level error and zero counts, and processing
// moves to the next region. The only error Run itself returns is a failed
// run-log write, which is left for the entry point so operational alerting
// can observe total failure.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()

	var errs []string
	festivalsFound := 0
	artistsFound := 0

	for _, region := range opts.Regions {
		code, ok := events.ResolveRegion(region)
		if !ok {
			errs = append(errs, fmt.Sprintf("region %s: unknown region", region))
			continue
		}

		o.log.Info("Syncing region",
			zap.String("region", region),
			zap.Int("area_code", code),
		)

		listings, err := o.fetcher.FetchListings(ctx, code, opts.DateFrom, opts.DateTo, opts.PageSize)
		if err != nil {
			// Region-level error: counts stay zero for this region,
			// the run continues.
			errs = append(errs, fmt.Sprintf("region %s: %v", region, err))
			o.log.Warn("Region fetch failed", zap.String("region", region), zap.Error(err))
			continue
		}

		o.log.Info("Fetched listings", zap.String("region", region), zap.Int("count", len(listings)))

		if o.archiver != nil && !opts.DryRun {
			// Snapshot failures are operational noise, not run errors.
			if key, err := o.archiver.ArchiveListings(ctx, region, listings); err != nil {
				o.log.Warn("Failed to archive listings snapshot", zap.String("region", region), zap.Error(err))
			} else {
				o.log.Debug("Archived listings snapshot", zap.String("object", key))
			}
		}

		for _, listing := range listings {
			if opts.DryRun {
				festivalsFound++
				artistsFound += len(listing.Artists)
				continue
			}

			res := o.rec.ProcessListing(ctx, listing)
			errs = append(errs, res.Errors...)
			if res.FestivalProcessed {
				festivalsFound++
			}
			artistsFound += res.ArtistsLinked
		}
	}

	summary := &Summary{
		Status:         classifyRun(len(errs)),
		FestivalsFound: festivalsFound,
		ArtistsFound:   artistsFound,
		Errors:         capErrors(errs, maxLoggedErrors),
		Duration:       time.Since(start),
	}

	o.log.Info("Sync run finished",
		zap.String("status", summary.Status),
		zap.Int("festivals_found", summary.FestivalsFound),
		zap.Int("artists_found", summary.ArtistsFound),
		zap.Int("errors", len(errs)),
		zap.Duration("duration", summary.Duration),
	)

	if opts.DryRun {
		return summary, nil
	}

	// Writing the log row is the final step, so a killed run leaves no
	// partial log state behind.
	logRow := models.SyncLog{
		Status:         summary.Status,
		FestivalsFound: summary.FestivalsFound,
		ArtistsFound:   summary.ArtistsFound,
		Errors:         datatypes.NewJSONSlice(summary.Errors),
		DurationMS:     summary.Duration.Milliseconds(),
	}
	if err := o.db.WithContext(ctx).Create(&logRow).Error; err != nil {
		return summary, fmt.Errorf("failed to write sync log: %w", err)
	}
	summary.RunID = logRow.ID

	return summary, nil
}

// classifyRun maps the collected error count onto a run status: zero
// errors is a success, anything else is partial. Even a run where every
// region failed is partial; the orchestrator never writes "error".
func classifyRun(errCount int) string {
	if errCount == 0 {
		return models.RunStatusSuccess
	}
	return models.RunStatusPartial
}

// capErrors truncates to the first max entries, oldest first.
func capErrors(errs []string, max int) []string {
	if len(errs) <= max {
		return errs
	}
	return errs[:max]
}
