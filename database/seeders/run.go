// Package seeders holds the database seed functions run at startup and by
// `pos seed`. Seeders must be idempotent.
package seeders

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/pkg/logger"
)

// Options carries the values seeders need from configuration.
type Options struct {
	AdminUsername string
	AdminPassword string
}

type SeederFunc func(ctx context.Context, db *gorm.DB, opts Options) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder. Call it from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and stops
// at the first error.
func RunAll(ctx context.Context, db *gorm.DB, opts Options) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		if err := e.fn(ctx, db, opts); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		logger.Debug("seeder: done", "name", e.name)
	}
	return nil
}
