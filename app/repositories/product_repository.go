package repositories

import (
	"context"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
)

type ProductRepository struct {
	gw *orm.Gateway
}

func NewProductRepository(gw *orm.Gateway) *ProductRepository {
	return &ProductRepository{gw: gw}
}

// AllWithCategory returns every product with its category name attached.
// Products whose category is unset or gone get a nil name.
func (r *ProductRepository) AllWithCategory(ctx context.Context) ([]models.ProductListing, error) {
	products := []models.ProductListing{}
	err := r.gw.QueryAll(ctx, &products, `
		SELECT p.*, c.name AS category_name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.id`)
	return products, err
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.gw.Insert(ctx, product)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.gw.Exec(ctx, "DELETE FROM products WHERE id = ?", id)
	return err
}
