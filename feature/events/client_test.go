package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"festival-sync/feature/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pageResponse builds the endpoint envelope for one page of listings.
func pageResponse(listings []map[string]any, total int) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"eventListings": map[string]any{
				"data":         listings,
				"totalResults": total,
			},
		},
	}
}

func simpleListing(id, title string) map[string]any {
	return map[string]any{"id": id, "title": title}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*events.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := events.Config{Endpoint: ts.URL, DelayMS: 0, TimeoutSeconds: 5}
	return events.NewClient(cfg, zap.NewNop()), ts
}

func TestFetchListingsTerminatesOnEmptyPage(t *testing.T) {
	// Decreasing page sizes down to zero; declared total larger than
	// actually served, so only the empty page stops pagination.
	pages := [][]map[string]any{
		{simpleListing("1", "a"), simpleListing("2", "b")},
		{simpleListing("3", "c")},
		{},
	}

	var requested []int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables struct {
				Page int `json:"page"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requested = append(requested, body.Variables.Page)

		page := body.Variables.Page - 1
		require.Less(t, page, len(pages))
		json.NewEncoder(w).Encode(pageResponse(pages[page], 100))
	})

	listings, err := client.FetchListings(context.Background(), 445, time.Now(), time.Now().AddDate(1, 0, 0), 2)
	require.NoError(t, err)
	assert.Len(t, listings, 3)
	assert.Equal(t, []int{1, 2, 3}, requested)
	assert.Equal(t, "3", listings[2].ID)
}

func TestFetchListingsStopsAtDeclaredTotal(t *testing.T) {
	// totalResults = 4: no further page must be requested once the
	// cumulative count reaches it.
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		page := []map[string]any{
			simpleListing(fmt.Sprintf("%d", calls*2-1), "x"),
			simpleListing(fmt.Sprintf("%d", calls*2), "y"),
		}
		json.NewEncoder(w).Encode(pageResponse(page, 4))
	})

	listings, err := client.FetchListings(context.Background(), 445, time.Now(), time.Now(), 2)
	require.NoError(t, err)
	assert.Len(t, listings, 4)
	assert.Equal(t, 2, calls)
}

func TestFetchListingsPartialOnNonSuccessStatus(t *testing.T) {
	// First page succeeds, second answers 503: the accumulated prefix is
	// returned without error.
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(pageResponse([]map[string]any{simpleListing("1", "a")}, 10))
	})

	listings, err := client.FetchListings(context.Background(), 445, time.Now(), time.Now(), 1)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchListingsMalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := client.FetchListings(context.Background(), 445, time.Now(), time.Now(), 10)
	assert.Error(t, err)
}

func TestFetchListingsRequestShape(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query     string `json:"query"`
			Variables struct {
				Filters struct {
					Areas struct {
						Eq int `json:"eq"`
					} `json:"areas"`
					ListingDate struct {
						Gte string `json:"gte"`
						Lte string `json:"lte"`
					} `json:"listingDate"`
				} `json:"filters"`
				PageSize int `json:"pageSize"`
				Page     int `json:"page"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.NotEmpty(t, body.Query)
		assert.Equal(t, 34, body.Variables.Filters.Areas.Eq)
		assert.Equal(t, "2026-01-01T00:00:00Z", body.Variables.Filters.ListingDate.Gte)
		assert.Equal(t, "2026-12-31T00:00:00Z", body.Variables.Filters.ListingDate.Lte)
		assert.Equal(t, 18, body.Variables.PageSize)
		assert.Equal(t, 1, body.Variables.Page)

		json.NewEncoder(w).Encode(pageResponse(nil, 0))
	})

	_, err := client.FetchListings(context.Background(), 34, from, to, 18)
	require.NoError(t, err)
}

func TestResolveRegion(t *testing.T) {
	code, ok := events.ResolveRegion("costa-rica")
	assert.True(t, ok)
	assert.NotZero(t, code)

	_, ok = events.ResolveRegion("atlantis")
	assert.False(t, ok)

	assert.Contains(t, events.KnownRegions(), "berlin")
}
