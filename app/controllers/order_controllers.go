package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/app/services"
	"github.com/shashiranjanraj/cafepos/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
	sales  *services.SalesService
}

func NewOrderController(orders *services.OrderService, sales *services.SalesService) *OrderController {
	return &OrderController{orders: orders, sales: sales}
}

// Store handles POST /orders. It is public: customers order without a token.
func (oc *OrderController) Store(c *ctx.Context) error {
	var body struct {
		Items models.Items    `json:"items"`
		Total json.RawMessage `json:"total"`
	}
	if err := c.BindJSON(&body); err != nil {
		return err
	}

	order, err := oc.orders.Create(c.Context(), body.Items, services.ParseTotal(body.Total))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      order.ID,
	})
}

func (oc *OrderController) Index(c *ctx.Context) error {
	list, err := oc.orders.Recent(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (oc *OrderController) Destroy(c *ctx.Context) error {
	if id, ok := c.ParamInt("id"); ok {
		if err := oc.orders.Delete(c.Context(), id); err != nil {
			return err
		}
	}
	return c.Success()
}

// DailySales handles GET /daily-sales.
func (oc *OrderController) DailySales(c *ctx.Context) error {
	sales, err := oc.sales.Daily(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}
