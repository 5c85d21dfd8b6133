package sync_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"festival-sync/feature/events"
	"festival-sync/feature/festival/models"
	festivalsync "festival-sync/feature/festival/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFetcher serves canned listings (or errors) per area code.
type fakeFetcher struct {
	listings map[int][]events.Listing
	errs     map[int]error
	calls    []int
}

func (f *fakeFetcher) FetchListings(ctx context.Context, areaCode int, dateFrom, dateLte time.Time, pageSize int) ([]events.Listing, error) {
	f.calls = append(f.calls, areaCode)
	if err := f.errs[areaCode]; err != nil {
		return nil, err
	}
	return f.listings[areaCode], nil
}

func costaRicaCode(t *testing.T) int {
	t.Helper()
	code, ok := events.ResolveRegion("costa-rica")
	require.True(t, ok)
	return code
}

func TestRunSuccess(t *testing.T) {
	db := setupTestDB(t)
	fetcher := &fakeFetcher{
		listings: map[int][]events.Listing{
			costaRicaCode(t): {envisionListing()},
		},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())

	summary, err := orch.Run(context.Background(), festivalsync.Options{
		Regions:  []string{"costa-rica"},
		DateFrom: time.Now(),
		DateTo:   time.Now().AddDate(1, 0, 0),
		PageSize: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusSuccess, summary.Status)
	assert.Equal(t, 1, summary.FestivalsFound)
	assert.Equal(t, 2, summary.ArtistsFound)
	assert.Empty(t, summary.Errors)
	assert.NotEmpty(t, summary.RunID)

	var logRow models.SyncLog
	require.NoError(t, db.First(&logRow, "id = ?", summary.RunID).Error)
	assert.Equal(t, models.RunStatusSuccess, logRow.Status)
	assert.Equal(t, 1, logRow.FestivalsFound)
	assert.Equal(t, 2, logRow.ArtistsFound)
	assert.Empty(t, logRow.Errors)
	assert.GreaterOrEqual(t, logRow.DurationMS, int64(0))
}

func TestRunIdempotentAcrossInvocations(t *testing.T) {
	db := setupTestDB(t)
	fetcher := &fakeFetcher{
		listings: map[int][]events.Listing{
			costaRicaCode(t): {envisionListing()},
		},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())
	opts := festivalsync.Options{Regions: []string{"costa-rica"}, PageSize: 20}

	_, err := orch.Run(context.Background(), opts)
	require.NoError(t, err)
	_, err = orch.Run(context.Background(), opts)
	require.NoError(t, err)

	// Entity rows unchanged after the second run; only run logs accrue.
	assert.EqualValues(t, 1, countRows(t, db, &models.Venue{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Festival{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.Artist{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.LineupEntry{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.SyncLog{}))
}

func TestRunContinuesPastFailedRegion(t *testing.T) {
	db := setupTestDB(t)
	crCode := costaRicaCode(t)
	berlinCode, ok := events.ResolveRegion("berlin")
	require.True(t, ok)

	fetcher := &fakeFetcher{
		listings: map[int][]events.Listing{
			berlinCode: {envisionListing()},
		},
		errs: map[int]error{
			crCode: fmt.Errorf("connection reset"),
		},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())

	summary, err := orch.Run(context.Background(), festivalsync.Options{
		Regions:  []string{"costa-rica", "berlin"},
		PageSize: 20,
	})
	require.NoError(t, err)

	// Region order preserved, failed region skipped, second processed.
	assert.Equal(t, []int{crCode, berlinCode}, fetcher.calls)
	assert.Equal(t, models.RunStatusPartial, summary.Status)
	assert.Equal(t, 1, summary.FestivalsFound)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "costa-rica")
}

func TestRunAllRegionsFailedIsPartial(t *testing.T) {
	db := setupTestDB(t)
	fetcher := &fakeFetcher{
		errs: map[int]error{costaRicaCode(t): fmt.Errorf("boom")},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())

	summary, err := orch.Run(context.Background(), festivalsync.Options{
		Regions: []string{"costa-rica", "no-such-region"},
	})
	require.NoError(t, err)

	// Even a run where nothing was processed classifies as partial;
	// "error" is never written by the orchestrator.
	assert.Equal(t, models.RunStatusPartial, summary.Status)
	assert.Zero(t, summary.FestivalsFound)
	assert.Len(t, summary.Errors, 2)

	var logRow models.SyncLog
	require.NoError(t, db.Order("created_at DESC").First(&logRow).Error)
	assert.Equal(t, models.RunStatusPartial, logRow.Status)
}

func TestRunCapsErrorList(t *testing.T) {
	db := setupTestDB(t)

	// Every artist fails to upsert, producing more errors than the cap.
	listing := envisionListing()
	listing.Artists = nil
	for i := 0; i < 25; i++ {
		listing.Artists = append(listing.Artists, events.ListingArtist{Name: "???"})
	}

	fetcher := &fakeFetcher{
		listings: map[int][]events.Listing{costaRicaCode(t): {listing}},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())

	summary, err := orch.Run(context.Background(), festivalsync.Options{Regions: []string{"costa-rica"}})
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusPartial, summary.Status)
	assert.Len(t, summary.Errors, 20)

	var logRow models.SyncLog
	require.NoError(t, db.First(&logRow, "id = ?", summary.RunID).Error)
	assert.Len(t, []string(logRow.Errors), 20)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	fetcher := &fakeFetcher{
		listings: map[int][]events.Listing{costaRicaCode(t): {envisionListing()}},
	}
	orch := festivalsync.NewOrchestrator(fetcher, db, nil, zap.NewNop())

	summary, err := orch.Run(context.Background(), festivalsync.Options{
		Regions: []string{"costa-rica"},
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FestivalsFound)
	assert.Equal(t, 2, summary.ArtistsFound)
	assert.Empty(t, summary.RunID)

	assert.EqualValues(t, 0, countRows(t, db, &models.Festival{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.SyncLog{}))
}
