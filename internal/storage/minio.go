package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/geotracker/backend/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO stores objects in a MinIO (or S3-compatible) bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	base   string
}

func NewMinIO(cfg *config.Config) (*MinIO, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.MinIOUseSSL {
		scheme = "https"
	}

	return &MinIO{
		client: client,
		bucket: cfg.MinIOBucket,
		base:   scheme + "://" + cfg.MinIOEndpoint,
	}, nil
}

func (m *MinIO) Save(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return m.base + "/" + m.bucket + "/" + name, nil
}

// Delete accepts either a bare object name or a stored URL.
func (m *MinIO) Delete(ctx context.Context, name string) error {
	return m.client.RemoveObject(ctx, m.bucket, path.Base(name), minio.RemoveObjectOptions{})
}
