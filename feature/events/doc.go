// Package events implements the client for the remote events service.
//
// The service exposes a single query endpoint accepting a JSON body with
// region and listing-date filters plus a page number, and answers with a
// page of listings and the total result count. The client paginates until a
// page is empty or the declared total is reached, spacing page fetches with
// a fixed courtesy delay (token bucket, burst 1, so the first page is never
// delayed).
//
// Failure semantics follow the ingestion error taxonomy: a non-success HTTP
// status ends pagination and yields the accumulated partial result, while
// network and payload errors propagate to the orchestrator, which records
// them as a region-level error.
package events
