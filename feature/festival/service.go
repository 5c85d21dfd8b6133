package festival

import (
	"context"
	"errors"

	"festival-sync/feature/festival/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service reads festival data for downstream consumers. It never writes;
// the sync pipeline owns all mutations.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewService creates the read service on an explicit store handle.
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// ArtistDetail bundles an artist with its spotlight side-table rows,
// produced by the video-reel pipeline outside this service.
type ArtistDetail struct {
	models.Artist
	Spotlights []models.ArtistSpotlight `json:"spotlights,omitempty"`
}

// GetFestivalBySlug returns a festival with venue and lineup, or nil when
// no such slug exists. Absence is not an error.
func (s *Service) GetFestivalBySlug(ctx context.Context, slug string) (*models.Festival, error) {
	var festival models.Festival
	err := s.db.WithContext(ctx).
		Preload("Venue").
		Preload("Lineup.Artist").
		Where("slug = ?", slug).
		First(&festival).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &festival, nil
}

// GetArtistBySlug returns an artist with any spotlight clips, or nil when
// no such slug exists.
func (s *Service) GetArtistBySlug(ctx context.Context, slug string) (*ArtistDetail, error) {
	var artist models.Artist
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	detail := &ArtistDetail{Artist: artist}
	err = s.db.WithContext(ctx).
		Preload("VideoClips").
		Where("artist_id = ?", artist.ID).
		Find(&detail.Spotlights).Error
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ListUpcoming returns upcoming festivals ordered by start date.
func (s *Service) ListUpcoming(ctx context.Context, limit int) ([]models.Festival, error) {
	if limit <= 0 {
		limit = 50
	}
	var festivals []models.Festival
	err := s.db.WithContext(ctx).
		Preload("Venue").
		Where("status = ?", models.StatusUpcoming).
		Order("start_date").
		Limit(limit).
		Find(&festivals).Error
	return festivals, err
}

// RecentRuns returns the newest sync log rows.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.SyncLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
