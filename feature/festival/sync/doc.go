// Package sync contains the ingestion pipeline for festival listings: the
// reconciler that upserts venues, artists and festivals and links lineups,
// the orchestrator that drives the events client across regions and writes
// the run log, the fuzzy dedup guard for sources without stable external
// identifiers, and the optional raw-listing snapshot archiver.
//
// # Idempotency
//
// Every write goes through a keyed lookup first (venue by exact name,
// artist by slug, festival by composite slug, lineup by festival/artist
// pair), with the store's unique indexes as a backstop, so running the same
// sync twice changes nothing the second time. That property is also the
// crash recovery mechanism: no transactions wrap a listing's multi-row
// upsert sequence, and an interrupted run is simply re-run.
//
// # Failure isolation
//
// Failures are recovered at the narrowest possible scope - artist, listing,
// region - and surface only as entries in the run log's capped error list
// and its partial status. Nothing below the process entry point terminates
// a run.
package sync
