package controllers

import (
	"encoding/json"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/ctx"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
	"github.com/shashiranjanraj/cafepos/pkg/ws"
)

// FeedController streams newly created orders to admin screens.
type FeedController struct {
	hub *ws.Hub
}

func NewFeedController(hub *ws.Hub) *FeedController {
	return &FeedController{hub: hub}
}

// Stream upgrades GET /orders/feed to a websocket.
func (fc *FeedController) Stream(c *ctx.Context) error {
	if err := fc.hub.Upgrade(c.W, c.R); err != nil {
		// The upgrader has already answered the request.
		logger.WithCtx(c.Context()).Warn("order feed", "error", err.Error())
	}
	return nil
}

// Publish is the order.created listener. The message is the order as
// GET /orders lists it.
func (fc *FeedController) Publish(payload interface{}) {
	order, ok := payload.(models.Order)
	if !ok {
		return
	}
	data, err := json.Marshal(order)
	if err != nil {
		logger.Error("order feed: encode", "order_id", order.ID, "error", err.Error())
		return
	}
	fc.hub.Broadcast(data)
}
