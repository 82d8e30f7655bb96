package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
)

type OrderRepository struct {
	gw *orm.Gateway
}

func NewOrderRepository(gw *orm.Gateway) *OrderRepository {
	return &OrderRepository{gw: gw}
}

// Create stores order and sets its id and created_at.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.gw.Insert(ctx, order)
}

// Recent returns up to limit orders, newest (highest id) first.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.gw.Latest(ctx, &orders, limit)
	return orders, err
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.gw.Exec(ctx, "DELETE FROM orders WHERE id = ?", id)
	return err
}

// OrderTotal is the slice of an order the sales report needs.
type OrderTotal struct {
	CreatedAt time.Time
	Total     float64
}

// Totals returns created_at and total of every order.
func (r *OrderRepository) Totals(ctx context.Context) ([]OrderTotal, error) {
	var rows []OrderTotal
	err := r.gw.QueryAll(ctx, &rows, "SELECT created_at, total FROM orders")
	return rows, err
}
