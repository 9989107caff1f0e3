package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
)

const (
	LatestProductsLimit = 12

	photoCleanupTimeout = 5 * time.Second
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Quantity    int
	Shipping    bool
}

// PhotoUpload is the raw photo attached to a new product.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      repository.CategoryCache
	photos     repository.PhotoStorage
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	log        logger.Logger
}

func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	cache repository.CategoryCache,
	photos repository.PhotoStorage,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      cache,
		photos:     photos,
		cacheTTL:   cacheTTL,
		metrics:    m,
		log:        log.Named("CatalogService"),
	}
}

// ListCategories serves from the cache and refills it from the store on a miss.
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		s.log.Warnf("category cache read failed, falling back to store: %v", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if err := s.cache.Set(ctx, categories, s.cacheTTL); err != nil {
		s.log.Warnf("failed to cache categories: %v", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	existing, err := s.categories.FindByName(ctx, name)
	switch {
	case err == nil && existing != nil:
		return nil, ErrCategoryExists
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup category %q: %w", name, err)
	}

	category, err := s.categories.Create(ctx, &entity.Category{Name: name})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warnf("failed to invalidate category cache: %v", err)
	}
	return category, nil
}

// CreateProduct checks the category, stores the photo, then inserts the product.
// A photo whose product could not be inserted is removed again.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput, photo *PhotoUpload) (*entity.Product, error) {
	if _, err := s.categories.FindByID(ctx, in.Category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("lookup category %q: %w", in.Category, err)
	}

	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
	}

	if photo != nil && len(photo.Data) > 0 {
		stored, err := s.photos.Upload(ctx, photo.FileName, photo.ContentType, photo.Data)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		product.Photo = stored
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		if product.Photo != nil {
			s.removePhoto(ctx, product.Photo.Key)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.metrics.ProductsCreated.Inc()
	return created, nil
}

func (s *CatalogService) removePhoto(ctx context.Context, key string) {
	rmCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), photoCleanupTimeout)
	defer cancel()
	if err := s.photos.Delete(rmCtx, key); err != nil {
		s.log.Warnf("failed to remove orphaned photo %s: %v", key, err)
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.ListLatest(ctx, LatestProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
