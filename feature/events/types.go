package events

// Listing is one raw event record returned by the query protocol,
// carrying nested venue and artist data.
type Listing struct {
	// ID is the external source's event identifier.
	ID string `json:"id"`
	// Title is the event name as published by the source.
	Title string `json:"title"`
	// Date is the event's listing date (ISO-8601).
	Date string `json:"date"`
	// StartTime and EndTime bound the performance, when known.
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	// ContentURL is the source's canonical page for the event.
	ContentURL string `json:"contentUrl"`
	// FlyerFront is the image filename, joined onto the image host
	// template by the reconciler.
	FlyerFront string `json:"flyerFront"`
	// Attending is the source's popularity counter.
	Attending int `json:"attending"`

	Venue   *ListingVenue   `json:"venue"`
	Artists []ListingArtist `json:"artists"`
}

// ListingVenue is the nested venue record of a listing.
type ListingVenue struct {
	Name    string      `json:"name"`
	Address string      `json:"address"`
	Area    ListingArea `json:"area"`
}

// ListingArea is the geographic scope a venue belongs to.
type ListingArea struct {
	Name    string `json:"name"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// ListingArtist is the nested artist record of a listing.
type ListingArtist struct {
	Name       string `json:"name"`
	ContentURL string `json:"contentUrl"`
}

// queryRequest is the JSON body posted to the query endpoint.
type queryRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	Filters  queryFilters `json:"filters"`
	PageSize int          `json:"pageSize"`
	Page     int          `json:"page"`
}

type queryFilters struct {
	Areas       eqFilter    `json:"areas"`
	ListingDate rangeFilter `json:"listingDate"`
}

type eqFilter struct {
	Eq int `json:"eq"`
}

type rangeFilter struct {
	Gte string `json:"gte"`
	Lte string `json:"lte"`
}

// listingsResponse mirrors the endpoint's envelope:
// {data: {eventListings: {data: [...], totalResults}}}
type listingsResponse struct {
	Data struct {
		EventListings struct {
			Data         []Listing `json:"data"`
			TotalResults int       `json:"totalResults"`
		} `json:"eventListings"`
	} `json:"data"`
}
