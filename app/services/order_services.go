package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/app/repositories"
	"github.com/shashiranjanraj/cafepos/pkg/event"
	"github.com/shashiranjanraj/cafepos/pkg/metrics"
)

// EventOrderCreated is fired with the stored models.Order as payload.
const EventOrderCreated = "order.created"

// RecentOrdersLimit caps the admin order listing.
const RecentOrdersLimit = 50

type OrderService struct {
	orders *repositories.OrderRepository
	bus    *event.Bus
}

func NewOrderService(orders *repositories.OrderRepository, bus *event.Bus) *OrderService {
	return &OrderService{orders: orders, bus: bus}
}

// Create stores a pending order exactly as submitted; total is not checked
// against the items.
func (s *OrderService) Create(ctx context.Context, items models.Items, total float64) (models.Order, error) {
	order := models.Order{
		Items:  items,
		Total:  total,
		Status: models.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return order, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.bus.Fire(EventOrderCreated, order)
	return order, nil
}

// Recent returns the newest orders first.
func (s *OrderService) Recent(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.Recent(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return nil
}

// ParseTotal reads an order total as submitted: a JSON number or a string
// holding one. Anything else, including NaN and infinities, is 0.
func ParseTotal(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
