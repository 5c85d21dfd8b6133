package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// listingsQuery selects the listing fields the reconciler consumes.
const listingsQuery = `query GET_EVENT_LISTINGS($filters: FilterInputDtoInput, $pageSize: Int, $page: Int) {
  eventListings(filters: $filters, pageSize: $pageSize, page: $page) {
    data {
      id
      title
      date
      startTime
      endTime
      contentUrl
      flyerFront
      attending
      venue {
        name
        address
        area {
          name
          country {
            name
          }
        }
      }
      artists {
        name
        contentUrl
      }
    }
    totalResults
  }
}`

// Fetcher yields the flat listing sequence for one region and date window.
// The sync orchestrator depends on this interface, not the concrete client.
type Fetcher interface {
	FetchListings(ctx context.Context, areaCode int, dateFrom, dateLte time.Time, pageSize int) ([]Listing, error)
}

// Client talks to the remote events service over its query protocol.
// Each FetchListings call is independent and stateless across calls.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewClient creates an events client from configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}

	// Token bucket with burst 1: the first page goes out immediately,
	// subsequent pages are spaced by the configured delay.
	delay := time.Duration(cfg.DelayMS) * time.Millisecond

	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
		log:      log,
	}
}

// FetchListings pages through the query endpoint and returns every listing
// for the region and date window.
//
// Pagination advances until a page comes back empty or the cumulative count
// reaches the total declared by the endpoint. A non-success HTTP status ends
// pagination and returns what was accumulated so far: a short result set is
// a valid partial outcome, not a failure. Network and decode errors do
// propagate; the caller treats those as a region-level error.
func (c *Client) FetchListings(ctx context.Context, areaCode int, dateFrom, dateLte time.Time, pageSize int) ([]Listing, error) {
	var all []Listing
	total := -1

	for page := 1; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		items, declaredTotal, ok, err := c.fetchPage(ctx, areaCode, dateFrom, dateLte, pageSize, page)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Non-success status already logged; keep the accumulated prefix.
			return all, nil
		}

		if len(items) == 0 {
			break
		}

		all = append(all, items...)
		total = declaredTotal

		c.log.Debug("Fetched listings page",
			zap.Int("page", page),
			zap.Int("page_items", len(items)),
			zap.Int("accumulated", len(all)),
			zap.Int("total_results", total),
		)

		if total >= 0 && len(all) >= total {
			break
		}
	}

	return all, nil
}

// fetchPage issues one query-protocol request. The third return value is
// false when the endpoint answered with a non-success status.
func (c *Client) fetchPage(ctx context.Context, areaCode int, dateFrom, dateLte time.Time, pageSize, page int) ([]Listing, int, bool, error) {
	body := queryRequest{
		Query: listingsQuery,
		Variables: queryVariables{
			Filters: queryFilters{
				Areas: eqFilter{Eq: areaCode},
				ListingDate: rangeFilter{
					Gte: dateFrom.Format(time.RFC3339),
					Lte: dateLte.Format(time.RFC3339),
				},
			},
			PageSize: pageSize,
			Page:     page,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to fetch listings page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Events API returned non-success status, stopping pagination",
			zap.Int("status", resp.StatusCode),
			zap.Int("page", page),
		)
		return nil, 0, false, nil
	}

	var decoded listingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, 0, false, fmt.Errorf("failed to decode listings page %d: %w", page, err)
	}

	return decoded.Data.EventListings.Data, decoded.Data.EventListings.TotalResults, true, nil
}
