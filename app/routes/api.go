// Package routes holds the POS route table.
package routes

import (
	"github.com/shashiranjanraj/cafepos/app/controllers"
	"github.com/shashiranjanraj/cafepos/pkg/ctx"
	"github.com/shashiranjanraj/cafepos/pkg/middleware"
	"github.com/shashiranjanraj/cafepos/pkg/router"
)

// Controllers are the handlers the route table dispatches to.
type Controllers struct {
	Auth       *controllers.AuthController
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Orders     *controllers.OrderController
	Pages      *controllers.PageController
	Feed       *controllers.FeedController
}

// Register mounts every route. Customer-facing reads, login and order
// placement are public; everything else goes through the token guard.
func Register(r *router.Router, c Controllers, authorizer middleware.Authorizer) {
	r.Get("/", "pages.home", ctx.Wrap(c.Pages.Login))
	r.Get("/login", "pages.login", ctx.Wrap(c.Pages.Login))
	r.Get("/public/*", "pages.public", ctx.Wrap(c.Pages.Public))

	r.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	r.Get("/categories", "categories.index", ctx.Wrap(c.Categories.Index))
	r.Get("/products", "products.index", ctx.Wrap(c.Products.Index))
	r.Post("/orders", "orders.store", ctx.Wrap(c.Orders.Store))

	admin := r.Group("/", middleware.Auth(authorizer, middleware.HeaderToken))
	admin.Post("/categories", "categories.store", ctx.Wrap(c.Categories.Store))
	admin.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(c.Categories.Destroy))
	admin.Post("/products", "products.store", ctx.Wrap(c.Products.Store))
	admin.Delete("/products/{id}", "products.destroy", ctx.Wrap(c.Products.Destroy))
	admin.Get("/orders", "orders.index", ctx.Wrap(c.Orders.Index))
	admin.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(c.Orders.Destroy))
	admin.Get("/daily-sales", "sales.daily", ctx.Wrap(c.Orders.DailySales))

	r.Get("/orders/feed", "orders.feed", ctx.Wrap(c.Feed.Stream),
		middleware.Auth(authorizer, middleware.HeaderOrQueryToken("token")))

	r.NotFound(ctx.Wrap(c.Pages.Fallback))
}
