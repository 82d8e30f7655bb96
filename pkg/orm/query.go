// Package orm is the storage gateway: parameterised statement execution and
// result materialisation over an injected *gorm.DB. Statements use "?"
// placeholders; GORM rewrites them for the active dialect.
package orm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/pkg/metrics"
)

type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Exec runs a statement and returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, stmt string, args ...interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("exec", time.Now())

	res := g.db.WithContext(ctx).Exec(stmt, args...)
	if res.Error != nil {
		return 0, fmt.Errorf("orm: exec: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Insert stores model and writes the assigned primary key back onto it.
func (g *Gateway) Insert(ctx context.Context, model interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := g.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("orm: insert: %w", err)
	}
	return nil
}

// QueryOne scans the first row into dest. found is false when the statement
// produced no rows; dest is left untouched in that case.
func (g *Gateway) QueryOne(ctx context.Context, dest interface{}, stmt string, args ...interface{}) (bool, error) {
	defer metrics.ObserveDBQuery("query_one", time.Now())

	res := g.db.WithContext(ctx).Raw(stmt, args...).Scan(dest)
	if res.Error != nil {
		return false, fmt.Errorf("orm: query one: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// QueryAll scans every row into dest, which must point to a slice.
func (g *Gateway) QueryAll(ctx context.Context, dest interface{}, stmt string, args ...interface{}) error {
	defer metrics.ObserveDBQuery("query_all", time.Now())

	if err := g.db.WithContext(ctx).Raw(stmt, args...).Scan(dest).Error; err != nil {
		return fmt.Errorf("orm: query all: %w", err)
	}
	return nil
}

// Latest loads the limit rows with the highest id into dest (a pointer to a
// slice of models), newest first. The limit clause is rendered by the
// dialect, so this works on every supported driver.
func (g *Gateway) Latest(ctx context.Context, dest interface{}, limit int) error {
	defer metrics.ObserveDBQuery("query_all", time.Now())

	if err := g.db.WithContext(ctx).Order("id desc").Limit(limit).Find(dest).Error; err != nil {
		return fmt.Errorf("orm: latest: %w", err)
	}
	return nil
}

// Transaction runs fn against a gateway bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	defer metrics.ObserveDBQuery("transaction", time.Now())

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx})
	})
}
