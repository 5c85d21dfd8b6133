// Package festival exposes ingested festival data to downstream consumers:
// festivals and artists by slug, upcoming festivals, and recent sync runs.
//
// The package is strictly read-only over the store. Writes happen in the
// sync subpackage (the ingestion pipeline) and, for the spotlight side
// table, in the external video-reel pipeline.
package festival
