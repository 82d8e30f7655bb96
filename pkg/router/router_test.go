package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafepos/pkg/router"
)

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) }
}

func TestGroupMiddlewareOnlyWrapsGroupRoutes(t *testing.T) {
	r := router.New()
	deny := func(http.Handler) http.Handler { return status(http.StatusUnauthorized) }

	r.Get("/categories", "categories.index", status(http.StatusOK))
	admin := r.Group("/", deny)
	admin.Post("/categories", "categories.store", status(http.StatusOK))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotFoundCoversUnroutedMethod(t *testing.T) {
	r := router.New()
	r.Get("/orders", "orders.index", status(http.StatusOK))
	r.NotFound(status(http.StatusNotFound))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/nope", nil),
		httptest.NewRequest(http.MethodPut, "/orders", nil),
	} {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, req.Method+" "+req.URL.Path)
	}
}

func TestRoutes(t *testing.T) {
	r := router.New()
	r.Delete("/products/{id}", "products.destroy", status(http.StatusOK))
	r.Get("/products", "products.index", status(http.StatusOK))
	r.Post("/products", "products.store", status(http.StatusOK))

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/products", Name: "products.index"},
		{Method: http.MethodPost, Path: "/products", Name: "products.store"},
		{Method: http.MethodDelete, Path: "/products/{id}", Name: "products.destroy"},
	}, r.Routes())
}
