package repository

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	FindByID(ctx context.Context, categoryID string) (*entity.Category, error)
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	// ListLatest returns up to limit products, newest first, without photo data.
	ListLatest(ctx context.Context, limit int64) ([]entity.Product, error)
}

// CategoryCache holds the full category list. Get returns ErrCacheMiss when empty.
type CategoryCache interface {
	Get(ctx context.Context) ([]entity.Category, error)
	Set(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// PhotoStorage stores product photos and returns their public location.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (*entity.Photo, error)
	Delete(ctx context.Context, key string) error
}
