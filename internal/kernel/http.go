// Package kernel assembles the HTTP handler: global middleware, the
// metrics endpoint and the route table, over injected dependencies.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/app/controllers"
	"github.com/shashiranjanraj/cafepos/app/repositories"
	"github.com/shashiranjanraj/cafepos/app/routes"
	"github.com/shashiranjanraj/cafepos/app/services"
	"github.com/shashiranjanraj/cafepos/pkg/cache"
	"github.com/shashiranjanraj/cafepos/pkg/event"
	"github.com/shashiranjanraj/cafepos/pkg/metrics"
	"github.com/shashiranjanraj/cafepos/pkg/middleware"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
	"github.com/shashiranjanraj/cafepos/pkg/reqid"
	"github.com/shashiranjanraj/cafepos/pkg/router"
	"github.com/shashiranjanraj/cafepos/pkg/storage"
	"github.com/shashiranjanraj/cafepos/pkg/ws"
)

// Deps are the long-lived resources the handlers share. Cache may be nil.
type Deps struct {
	DB       *gorm.DB
	Disk     storage.Disk
	Cache    *cache.Cache
	CacheTTL time.Duration
	Hub      *ws.Hub
	Bus      *event.Bus

	WebRoot   string
	PublicDir string
	Location  *time.Location // day boundary for sales; nil means local
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(d Deps) *HTTPKernel {
	gw := orm.New(d.DB)
	if d.Bus == nil {
		d.Bus = event.NewBus()
	}

	users := repositories.NewUserRepository(gw)
	orders := repositories.NewOrderRepository(gw)

	authSvc := services.NewAuthService(users)
	catalog := services.NewCatalogService(
		repositories.NewCategoryRepository(gw),
		repositories.NewProductRepository(gw),
		services.NewAssetService(d.Disk),
		d.Cache,
		d.CacheTTL,
	)
	orderSvc := services.NewOrderService(orders, d.Bus)
	salesSvc := services.NewSalesService(orders, d.Location)

	feed := controllers.NewFeedController(d.Hub)
	d.Bus.Listen(services.EventOrderCreated, feed.Publish)

	r := router.New()

	// Global middleware (outermost → innermost):
	//  1. Prometheus metrics
	//  2. Recovery
	//  3. Request ID
	//  4. Logger
	//  5. CORS, which also ends every preflight
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/metrics", "metrics", metrics.Handler())

	routes.Register(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Categories: controllers.NewCategoryController(catalog),
		Products:   controllers.NewProductController(catalog),
		Orders:     controllers.NewOrderController(orderSvc, salesSvc),
		Pages:      controllers.NewPageController(d.WebRoot, d.PublicDir),
		Feed:       feed,
	}, authSvc)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes lists the mounted routes for route:list.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
