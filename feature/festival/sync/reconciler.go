package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"festival-sync/core/slug"
	"festival-sync/feature/events"
	"festival-sync/feature/festival/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// imageBaseURL is the source's image host; listings only carry the
	// file path.
	imageBaseURL = "https://images.ra.co"
	// eventBaseURL prefixes relative content URLs from listings.
	eventBaseURL = "https://ra.co"
)

// Reconciler is the sole writer of venue, artist, festival and lineup rows
// during a sync. Every upsert is a keyed lookup followed by an insert when
// absent, so re-running with identical input never duplicates data.
type Reconciler struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewReconciler creates a reconciler on an explicit store handle.
func NewReconciler(db *gorm.DB, log *zap.Logger) *Reconciler {
	return &Reconciler{db: db, log: log}
}

// ListingResult reports what one listing contributed to the run.
type ListingResult struct {
	// FestivalProcessed is true once the listing's venue and festival
	// rows are in place.
	FestivalProcessed bool
	// ArtistsLinked counts artists upserted and linked to the festival.
	ArtistsLinked int
	// Errors collects per-entity failures, keyed by the failing entity.
	Errors []string
}

// ProcessListing reconciles one listing: venue first (the festival
// references it), then the festival, then each artist with its lineup
// link. Per-artist failures are recorded and do not abort the remaining
// artists; a venue or festival failure aborts only this listing.
func (r *Reconciler) ProcessListing(ctx context.Context, l events.Listing) ListingResult {
	var res ListingResult

	venueID, err := r.UpsertVenue(ctx, l.Venue)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("listing %q: venue: %v", l.Title, err))
		return res
	}

	festivalID, err := r.UpsertFestival(ctx, l, venueID)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("listing %q: festival: %v", l.Title, err))
		return res
	}
	res.FestivalProcessed = true

	performanceDate := parseListingTime(l.Date)

	for _, a := range l.Artists {
		artistID, err := r.UpsertArtist(ctx, a)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", a.Name, err))
			continue
		}

		if err := r.LinkArtist(ctx, festivalID, artistID, performanceDate, l.StartTime, l.EndTime); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", a.Name, err))
			continue
		}
		res.ArtistsLinked++
	}

	return res
}

// UpsertVenue looks a venue up by exact name and inserts it when absent.
// Returns nil without error when the listing has no venue (a valid "TBA").
func (r *Reconciler) UpsertVenue(ctx context.Context, v *events.ListingVenue) (*uint, error) {
	if v == nil || v.Name == "" {
		return nil, nil
	}

	var existing models.Venue
	err := r.db.WithContext(ctx).Where("name = ?", v.Name).First(&existing).Error
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}

	venue := models.Venue{
		Name:    v.Name,
		City:    v.Area.Name,
		Country: v.Area.Country.Name,
		Address: v.Address,
	}
	if err := r.db.WithContext(ctx).Create(&venue).Error; err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	r.log.Debug("Created venue", zap.String("name", venue.Name), zap.Uint("id", venue.ID))
	return &venue.ID, nil
}

// UpsertArtist looks an artist up by slug and inserts it when absent.
func (r *Reconciler) UpsertArtist(ctx context.Context, a events.ListingArtist) (uint, error) {
	s := slug.Make(a.Name)
	if s == "" {
		return 0, fmt.Errorf("artist name %q yields an empty slug", a.Name)
	}

	var existing models.Artist
	err := r.db.WithContext(ctx).Where("slug = ?", s).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up artist: %w", err)
	}

	artist := models.Artist{
		Name:      a.Name,
		Slug:      s,
		SourceURL: absoluteURL(a.ContentURL),
	}
	if err := r.db.WithContext(ctx).Create(&artist).Error; err != nil {
		return 0, fmt.Errorf("failed to create artist: %w", err)
	}

	r.log.Debug("Created artist", zap.String("slug", artist.Slug), zap.Uint("id", artist.ID))
	return artist.ID, nil
}

// UpsertFestival looks a festival up by its composite slug and inserts it
// when absent.
func (r *Reconciler) UpsertFestival(ctx context.Context, l events.Listing, venueID *uint) (uint, error) {
	s := slug.ForFestival(l.Title, l.ID)

	var existing models.Festival
	err := r.db.WithContext(ctx).Where("slug = ?", s).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up festival: %w", err)
	}

	festival := models.Festival{
		Name:      l.Title,
		Slug:      s,
		StartDate: parseListingTime(l.Date),
		EndDate:   parseListingTime(l.EndTime),
		VenueID:   venueID,
		Website:   absoluteURL(l.ContentURL),
		Status:    models.StatusUpcoming,
		Metadata: datatypes.JSONMap{
			"external_id": l.ID,
			"attending":   l.Attending,
		},
	}
	if l.FlyerFront != "" {
		festival.ImageURL = imageBaseURL + l.FlyerFront
	}

	if err := r.db.WithContext(ctx).Create(&festival).Error; err != nil {
		return 0, fmt.Errorf("failed to create festival: %w", err)
	}

	r.log.Debug("Created festival", zap.String("slug", festival.Slug), zap.Uint("id", festival.ID))
	return festival.ID, nil
}

// LinkArtist inserts the lineup association for (festivalID, artistID).
// A duplicate pair is a no-op: the existence check catches almost all of
// them, and the unique index backstop turns the rest into a swallowed
// gorm.ErrDuplicatedKey.
func (r *Reconciler) LinkArtist(ctx context.Context, festivalID, artistID uint, performanceDate *time.Time, startTime, endTime string) error {
	var existing models.LineupEntry
	err := r.db.WithContext(ctx).
		Where("festival_id = ? AND artist_id = ?", festivalID, artistID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up lineup entry: %w", err)
	}

	entry := models.LineupEntry{
		FestivalID:      festivalID,
		ArtistID:        artistID,
		PerformanceDate: performanceDate,
		StartTime:       startTime,
		EndTime:         endTime,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to create lineup entry: %w", err)
	}

	return nil
}

// parseListingTime parses the source's ISO-8601 timestamps, with and
// without offset. Unparseable or empty values come back nil.
func parseListingTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// absoluteURL prefixes the source host onto relative content URLs.
func absoluteURL(contentURL string) string {
	if contentURL == "" || strings.HasPrefix(contentURL, "http") {
		return contentURL
	}
	return eventBaseURL + contentURL
}
