package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/app/repositories"
	"github.com/shashiranjanraj/cafepos/pkg/cache"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
)

const (
	categoriesCacheKey = "pos:categories"
	productsCacheKey   = "pos:products"
)

// CatalogService manages categories and products. Listings read through the
// cache; every mutation evicts both listings.
type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
	assets     *AssetService
	cache      *cache.Cache
	ttl        time.Duration
}

func NewCatalogService(
	categories *repositories.CategoryRepository,
	products *repositories.ProductRepository,
	assets *AssetService,
	c *cache.Cache,
	ttl time.Duration,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		assets:     assets,
		cache:      c,
		ttl:        ttl,
	}
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if s.cache.Get(ctx, categoriesCacheKey, &list) {
		return list, nil
	}

	list, err := s.categories.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.remember(ctx, categoriesCacheKey, list)
	return list, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	category := models.Category{Name: name}
	if err := s.categories.Create(ctx, &category); err != nil {
		return category, fmt.Errorf("create category: %w", err)
	}
	s.evict(ctx)
	return category, nil
}

// DeleteCategory removes the category and every product in it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.DeleteWithProducts(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	s.evict(ctx)
	return nil
}

func (s *CatalogService) Products(ctx context.Context) ([]models.ProductListing, error) {
	var list []models.ProductListing
	if s.cache.Get(ctx, productsCacheKey, &list) {
		return list, nil
	}

	list, err := s.products.AllWithCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.remember(ctx, productsCacheKey, list)
	return list, nil
}

// NewProduct is the input of CreateProduct. Image is optional.
type NewProduct struct {
	Name         string
	Price        float64
	CategoryID   int64
	HasSweetness bool

	Image     io.Reader
	ImageName string
}

// CreateProduct stores the image, if any, and inserts the product. Without
// an image the product gets DefaultIcon.
func (s *CatalogService) CreateProduct(ctx context.Context, in NewProduct) (models.Product, error) {
	categoryID := in.CategoryID
	product := models.Product{
		Name:         in.Name,
		Price:        in.Price,
		CategoryID:   &categoryID,
		Icon:         DefaultIcon,
		HasSweetness: in.HasSweetness,
	}

	var stored string
	if in.Image != nil {
		ref, name, err := s.assets.Store(ctx, in.ImageName, in.Image)
		if err != nil {
			return product, fmt.Errorf("create product: %w", err)
		}
		product.Icon, stored = ref, name
	}

	if err := s.products.Create(ctx, &product); err != nil {
		if stored != "" {
			if derr := s.assets.Discard(ctx, stored); derr != nil {
				logger.WithCtx(ctx).Warn("discard orphaned upload", "file", stored, "error", derr.Error())
			}
		}
		return product, fmt.Errorf("create product: %w", err)
	}
	s.evict(ctx)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.evict(ctx)
	return nil
}

func (s *CatalogService) remember(ctx context.Context, key string, v interface{}) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache set failed", "key", key, "error", err.Error())
	}
}

// evict drops both listings; a product listing embeds category names.
func (s *CatalogService) evict(ctx context.Context) {
	if err := s.cache.Del(ctx, categoriesCacheKey, productsCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("cache evict failed", "error", err.Error())
	}
}
