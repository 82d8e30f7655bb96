package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/cafepos/app/services"
	"github.com/shashiranjanraj/cafepos/pkg/ctx"
)

type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

func (cc *CategoryController) Index(c *ctx.Context) error {
	list, err := cc.catalog.Categories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (cc *CategoryController) Store(c *ctx.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&body); err != nil {
		return err
	}

	if _, err := cc.catalog.CreateCategory(c.Context(), body.Name); err != nil {
		return err
	}
	return c.Success()
}

// Destroy treats a non-numeric id as a successful no-op.
func (cc *CategoryController) Destroy(c *ctx.Context) error {
	if id, ok := c.ParamInt("id"); ok {
		if err := cc.catalog.DeleteCategory(c.Context(), id); err != nil {
			return err
		}
	}
	return c.Success()
}

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

func (pc *ProductController) Index(c *ctx.Context) error {
	list, err := pc.catalog.Products(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Store handles the multipart product form. Missing or unparsable fields
// fall back to their defaults.
func (pc *ProductController) Store(c *ctx.Context) error {
	if err := c.BindMultipart(); err != nil {
		return err
	}

	in := services.NewProduct{
		Name:         c.FormValue("name"),
		Price:        parsePrice(c.FormValue("price")),
		CategoryID:   parseCategoryID(c.FormValue("category_id")),
		HasSweetness: c.FormValue("has_sweetness") == "true",
	}

	if f, hdr, ok := c.FormFile("image"); ok {
		defer f.Close()
		in.Image = f
		in.ImageName = hdr.Filename
	}

	if _, err := pc.catalog.CreateProduct(c.Context(), in); err != nil {
		return err
	}
	return c.Success()
}

func (pc *ProductController) Destroy(c *ctx.Context) error {
	if id, ok := c.ParamInt("id"); ok {
		if err := pc.catalog.DeleteProduct(c.Context(), id); err != nil {
			return err
		}
	}
	return c.Success()
}

// parsePrice returns 0 for empty, unparsable, negative or non-finite input.
func parsePrice(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseCategoryID(v string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
