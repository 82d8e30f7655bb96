// Package storage is the filesystem abstraction uploaded assets are written
// through. Two drivers exist:
//   - "local": a directory on the local filesystem, served by the API itself
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.New(storage.Config{Driver: "local", LocalRoot: "public", LocalURL: "/public"})
//	err = disk.Put(ctx, "1700000000000_latte.png", file)
//	icon := disk.URL("1700000000000_latte.png") // "/public/1700000000000_latte.png"
package storage

import (
	"context"
	"fmt"
	"io"
)

// Disk is the driver interface.
type Disk interface {
	// Put writes everything read from r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the reference clients use to fetch path.
	URL(path string) string
}

// Config selects and configures a driver.
type Config struct {
	Driver string // "local" or "s3"

	LocalRoot string
	LocalURL  string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string // empty for real AWS
	S3URL      string
}

// New builds the disk named by cfg.Driver.
func New(ctx context.Context, cfg Config) (Disk, error) {
	switch cfg.Driver {
	case "", "local":
		d, err := NewLocal(cfg.LocalRoot, cfg.LocalURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "s3":
		d, err := newS3Disk(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("storage: unsupported STORAGE_DISK %q (supported: local, s3)", cfg.Driver)
	}
}
