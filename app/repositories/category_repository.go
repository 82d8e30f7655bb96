package repositories

import (
	"context"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
)

type CategoryRepository struct {
	gw *orm.Gateway
}

func NewCategoryRepository(gw *orm.Gateway) *CategoryRepository {
	return &CategoryRepository{gw: gw}
}

// All returns every category in insertion order.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.gw.QueryAll(ctx, &categories, "SELECT id, name FROM categories ORDER BY id")
	return categories, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.gw.Insert(ctx, category)
}

// DeleteWithProducts removes every product in the category and then the
// category itself, in one transaction.
func (r *CategoryRepository) DeleteWithProducts(ctx context.Context, id int64) error {
	return r.gw.Transaction(ctx, func(tx *orm.Gateway) error {
		if _, err := tx.Exec(ctx, "DELETE FROM products WHERE category_id = ?", id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "DELETE FROM categories WHERE id = ?", id)
		return err
	})
}
