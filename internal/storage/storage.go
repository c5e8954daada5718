// Package storage abstracts where uploaded files (profile images,
// receipts, attachments) live: Backblaze B2 in production, local disk
// in development.
package storage

import (
	"context"
	"io"

	"homeschool/internal/config"
)

type Store interface {
	// Upload writes the object and returns a client-fetchable URL.
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks the backend from config: B2 when credentials are present,
// local disk otherwise.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.B2AccountID != "" && cfg.B2AppKey != "" && cfg.B2BucketName != "" {
		return NewB2Store(ctx, cfg.B2AccountID, cfg.B2AppKey, cfg.B2BucketName)
	}
	return NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
}
