package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"festival-sync/core/storage"
	"festival-sync/feature/events"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes the raw listings fetched for a region to object storage,
// one JSON snapshot per region per run day. Snapshots exist for replay and
// debugging; the sync itself never reads them back.
type Archiver struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewArchiver creates an archiver on the given storage client.
func NewArchiver(client storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, log: log}
}

// EnsureBucket creates the snapshot bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	a.log.Info("Created snapshot bucket", zap.String("bucket", a.bucket))
	return nil
}

// ArchiveListings uploads one region's listings and returns the object key.
func (a *Archiver) ArchiveListings(ctx context.Context, region string, listings []events.Listing) (string, error) {
	key := fmt.Sprintf("snapshots/%s/%s/listings.json", region, time.Now().UTC().Format("2006-01-02"))

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal listings: %w", err)
	}

	_, err = a.client.PutObject(
		ctx,
		a.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return key, nil
}
