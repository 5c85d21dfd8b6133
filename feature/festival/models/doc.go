// Package models defines the relational rows the festival feature reads
// and the sync pipeline writes: venues, artists, festivals, lineup entries,
// run logs, and the spotlight side table produced downstream.
//
// Uniqueness lives in the store: artist slug, festival slug, and the
// (festival, artist) lineup pair each carry a unique index the reconciler
// relies on for idempotent re-runs.
package models
