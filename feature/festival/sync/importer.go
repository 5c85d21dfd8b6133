package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"festival-sync/core/slug"
	"festival-sync/feature/festival/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CuratedEvent is one manually curated festival entry. These come from
// secondary sources without a stable external identifier, which is why
// insertion goes through the fuzzy dedup guard instead of slug upserts.
type CuratedEvent struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	VenueName string `json:"venueName"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Website   string `json:"website"`
}

// ImportResult summarizes one curated import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Importer inserts curated events, skipping anything the dedup guard
// considers already present.
type Importer struct {
	db    *gorm.DB
	rec   *Reconciler
	guard *DedupGuard
	log   *zap.Logger
}

// NewImporter creates an importer with the default dedup policy.
func NewImporter(db *gorm.DB, log *zap.Logger) *Importer {
	return &Importer{
		db:    db,
		rec:   NewReconciler(db, log),
		guard: NewDedupGuard(db),
		log:   log,
	}
}

// ImportFile reads a JSON array of curated events and imports them.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated events file: %w", err)
	}

	var curated []CuratedEvent
	if err := json.Unmarshal(data, &curated); err != nil {
		return nil, fmt.Errorf("failed to parse curated events file: %w", err)
	}

	return i.Import(ctx, curated), nil
}

// Import inserts each curated event unless the guard flags it as a
// duplicate. Per-event failures are collected and do not abort the rest.
func (i *Importer) Import(ctx context.Context, curated []CuratedEvent) *ImportResult {
	res := &ImportResult{}

	for _, ev := range curated {
		if ev.Name == "" {
			res.Errors = append(res.Errors, "curated event without a name")
			continue
		}

		s := slug.Make(ev.Name)
		if s == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("curated event name %q yields an empty slug", ev.Name))
			continue
		}

		hit, err := i.guard.Exists(ctx, ev.Name)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", ev.Name, err))
			continue
		}
		if hit {
			i.log.Debug("Skipping duplicate curated event", zap.String("name", ev.Name))
			res.Skipped++
			continue
		}

		var venueID *uint
		if ev.VenueName != "" {
			venue, err := i.upsertCuratedVenue(ctx, ev)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", ev.Name, err))
				continue
			}
			venueID = &venue.ID
		}

		festival := models.Festival{
			Name:      ev.Name,
			Slug:      s,
			StartDate: parseListingTime(ev.StartDate),
			EndDate:   parseListingTime(ev.EndDate),
			VenueID:   venueID,
			Website:   ev.Website,
			Status:    models.StatusUpcoming,
		}
		if err := i.db.WithContext(ctx).Create(&festival).Error; err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", ev.Name, err))
			continue
		}

		i.log.Info("Imported curated event", zap.String("slug", festival.Slug))
		res.Imported++
	}

	return res
}

func (i *Importer) upsertCuratedVenue(ctx context.Context, ev CuratedEvent) (*models.Venue, error) {
	var existing models.Venue
	err := i.db.WithContext(ctx).Where("name = ?", ev.VenueName).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}

	venue := models.Venue{Name: ev.VenueName, City: ev.City, Country: ev.Country}
	if err := i.db.WithContext(ctx).Create(&venue).Error; err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return &venue, nil
}
