// Package storage provides the object storage client used to archive raw
// listing snapshots fetched from the events API.
//
// It wraps the Minio SDK behind a narrow Client interface so the archiver
// can be tested against a mock (see the mocks subpackage). Archiving is an
// optional feature: when storage is disabled in configuration, the sync
// runs without it.
package storage
