package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/app/repositories"
)

// SalesDays is how many of the most recent trading days the report covers.
const SalesDays = 7

type SalesService struct {
	orders *repositories.OrderRepository
	loc    *time.Location
}

// NewSalesService buckets orders by calendar day in loc (the server's local
// zone when nil).
func NewSalesService(orders *repositories.OrderRepository, loc *time.Location) *SalesService {
	if loc == nil {
		loc = time.Local
	}
	return &SalesService{orders: orders, loc: loc}
}

// Daily sums order totals per calendar day and returns the most recent
// days that have orders, newest first. Days without orders are absent.
func (s *SalesService) Daily(ctx context.Context) ([]models.DailySale, error) {
	rows, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}

	sums := make(map[string]decimal.Decimal)
	for _, row := range rows {
		day := row.CreatedAt.In(s.loc).Format("2006-01-02")
		sums[day] = sums[day].Add(decimal.NewFromFloat(row.Total))
	}

	days := make([]string, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > SalesDays {
		days = days[:SalesDays]
	}

	out := make([]models.DailySale, 0, len(days))
	for _, day := range days {
		out = append(out, models.DailySale{SaleDate: day, Total: sums[day].InexactFloat64()})
	}
	return out, nil
}
