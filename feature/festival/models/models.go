package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Festival status values. Transitions between them are driven externally;
// the sync core only ever writes the default.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusPast      = "past"
	StatusCancelled = "cancelled"
)

// Run log status values. The orchestrator writes success and partial;
// error stays in the column's domain for writers outside the sync core.
const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusError   = "error"
)

// Venue is a physical location festivals take place at.
// Identity is the exact case-sensitive name; venues are created on first
// sighting, enriched in place later, and never deleted by the sync.
type Venue struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	City      string `gorm:"size:255"`
	Country   string `gorm:"size:255"`
	Address   string `gorm:"size:512"`
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Artist is a performer. Identity is the derived slug; bio, links and
// genres are populated by enrichment outside the sync core.
type Artist struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Slug      string `gorm:"size:255;not null;uniqueIndex"`
	Bio       string `gorm:"type:text"`
	Genres    string `gorm:"size:512"`
	SourceURL string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Festival is one event edition. The slug composes the normalized title
// with the external source identifier, so two real-world events sharing a
// title still get distinct rows.
type Festival struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Slug      string `gorm:"size:300;not null;uniqueIndex"`
	StartDate *time.Time
	EndDate   *time.Time
	// VenueID is nullable: a listing without a venue is a valid "TBA".
	VenueID  *uint
	Venue    *Venue `gorm:"foreignKey:VenueID"`
	Website  string `gorm:"size:512"`
	ImageURL string `gorm:"size:512"`
	Status   string `gorm:"size:16;not null;default:upcoming"`
	// Metadata carries the external source's identifier and any
	// source-specific counters (e.g. "attending").
	Metadata  datatypes.JSONMap
	CreatedAt time.Time
	UpdatedAt time.Time

	Lineup []LineupEntry `gorm:"foreignKey:FestivalID"`
}

// LineupEntry links an artist to a festival. The (festival, artist) pair is
// unique; re-linking is a no-op, never a duplicate row.
type LineupEntry struct {
	ID              uint    `gorm:"primaryKey"`
	FestivalID      uint    `gorm:"not null;uniqueIndex:idx_lineup_festival_artist"`
	ArtistID        uint    `gorm:"not null;uniqueIndex:idx_lineup_festival_artist"`
	Artist          *Artist `gorm:"foreignKey:ArtistID"`
	Stage           string  `gorm:"size:255"`
	PerformanceDate *time.Time
	StartTime       string `gorm:"size:64"`
	EndTime         string `gorm:"size:64"`
	Headliner       bool
	AnnouncedAt     time.Time `gorm:"autoCreateTime"`
}

// SyncLog is the append-only record of one orchestrator run. It is written
// exactly once, as the run's last step, and never mutated afterwards.
type SyncLog struct {
	ID             string `gorm:"primaryKey;size:36"`
	Status         string `gorm:"size:16;not null"`
	FestivalsFound int
	ArtistsFound   int
	// Errors holds at most 20 messages, oldest first.
	Errors     datatypes.JSONSlice[string]
	DurationMS int64
	CreatedAt  time.Time
}

// BeforeCreate assigns a run ID when the caller did not.
func (s *SyncLog) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ArtistSpotlight is the one-way side table produced by the video-reel
// pipeline. The sync core never writes it; the read API serves it.
type ArtistSpotlight struct {
	ID        uint   `gorm:"primaryKey"`
	ArtistID  uint   `gorm:"not null;index"`
	Title     string `gorm:"size:255"`
	CreatedAt time.Time

	VideoClips []VideoClip `gorm:"foreignKey:SpotlightID"`
}

// VideoClip is one compiled clip inside a spotlight.
type VideoClip struct {
	ID          uint   `gorm:"primaryKey"`
	SpotlightID uint   `gorm:"not null;index"`
	SourceURL   string `gorm:"size:512"`
	StartSecond int
	EndSecond   int
	Title       string `gorm:"size:255"`
}

// Migrate creates or updates the schema for every model. Deployments that
// own their schema migration can skip this and rely on the same constraints
// being in place.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Venue{},
		&Artist{},
		&Festival{},
		&LineupEntry{},
		&SyncLog{},
		&ArtistSpotlight{},
		&VideoClip{},
	)
}
