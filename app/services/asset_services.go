package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/cafepos/pkg/storage"
)

// DefaultIcon is the icon of a product created without an image.
const DefaultIcon = "☕"

// AssetService writes uploaded product images to a storage disk.
type AssetService struct {
	disk storage.Disk
	now  func() time.Time
}

func NewAssetService(disk storage.Disk) *AssetService {
	return &AssetService{disk: disk, now: time.Now}
}

// Store saves r as "<unix millis>_<base name>" and returns the servable
// reference together with the stored name. Directory components of
// filename are discarded. When the name is taken the stamp is advanced
// until it is free, so an earlier upload is never replaced.
func (s *AssetService) Store(ctx context.Context, filename string, r io.Reader) (ref, name string, err error) {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}

	stamp := s.now().UnixMilli()
	name = strconv.FormatInt(stamp, 10) + "_" + base
	for s.disk.Exists(ctx, name) {
		stamp++
		name = strconv.FormatInt(stamp, 10) + "_" + base
	}

	if err := s.disk.Put(ctx, name, r); err != nil {
		return "", "", fmt.Errorf("store asset: %w", err)
	}
	return s.disk.URL(name), name, nil
}

// Discard removes a stored asset. Used to roll back an upload whose product
// could not be saved.
func (s *AssetService) Discard(ctx context.Context, name string) error {
	return s.disk.Delete(ctx, name)
}
