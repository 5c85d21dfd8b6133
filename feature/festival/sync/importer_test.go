package sync_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"festival-sync/feature/festival/models"
	festivalsync "festival-sync/feature/festival/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportCuratedEvents(t *testing.T) {
	db := setupTestDB(t)
	importer := festivalsync.NewImporter(db, zap.NewNop())

	res := importer.Import(context.Background(), []festivalsync.CuratedEvent{
		{
			Name:      "Ocaso Festival",
			StartDate: "2026-01-08",
			VenueName: "Tamarindo Beach",
			City:      "Tamarindo",
			Country:   "Costa Rica",
		},
		{Name: "Day Zero"},
	})

	assert.Equal(t, 2, res.Imported)
	assert.Zero(t, res.Skipped)
	assert.Empty(t, res.Errors)

	var festival models.Festival
	require.NoError(t, db.Where("slug = ?", "ocaso-festival").First(&festival).Error)
	require.NotNil(t, festival.VenueID)
	require.NotNil(t, festival.StartDate)

	var venue models.Venue
	require.NoError(t, db.First(&venue, *festival.VenueID).Error)
	assert.Equal(t, "Tamarindo", venue.City)
}

func TestImportSkipsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	importer := festivalsync.NewImporter(db, zap.NewNop())

	// Synced earlier with an external id suffix; the fuzzy fallback must
	// still catch the curated copy.
	require.NoError(t, db.Create(&models.Festival{
		Name: "Envision Festival 2026",
		Slug: "envision-festival-2026-123",
	}).Error)

	res := importer.Import(context.Background(), []festivalsync.CuratedEvent{
		{Name: "Envision Festival 2026"},
		{Name: "BPM Festival"},
	})

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.EqualValues(t, 2, countRows(t, db, &models.Festival{}))
}

func TestImportIsolatesFailures(t *testing.T) {
	db := setupTestDB(t)
	importer := festivalsync.NewImporter(db, zap.NewNop())

	res := importer.Import(context.Background(), []festivalsync.CuratedEvent{
		{Name: ""},
		{Name: "Day Zero"},
	})

	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Errors, 1)
}

func TestImportRejectsEmptySlugNames(t *testing.T) {
	db := setupTestDB(t)
	importer := festivalsync.NewImporter(db, zap.NewNop())

	// All-symbol names slugify to nothing; both must be rejected with a
	// clear error instead of colliding on an empty slug.
	res := importer.Import(context.Background(), []festivalsync.CuratedEvent{
		{Name: "!!!"},
		{Name: "---"},
		{Name: "Day Zero"},
	})

	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "empty slug")
	assert.Contains(t, res.Errors[1], "empty slug")
	assert.EqualValues(t, 1, countRows(t, db, &models.Festival{}))
}

func TestImportFile(t *testing.T) {
	db := setupTestDB(t)
	importer := festivalsync.NewImporter(db, zap.NewNop())

	path := filepath.Join(t.TempDir(), "curated.json")
	payload, err := json.Marshal([]festivalsync.CuratedEvent{{Name: "Ocaso Festival"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	res, err := importer.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	// Unreadable path surfaces as an error.
	_, err = importer.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
