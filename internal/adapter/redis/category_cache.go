package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const categoryListKey = "catalog:categories"

type categoryCache struct {
	client redis.Cmdable
}

func NewCategoryCache(client redis.Cmdable) repository.CategoryCache {
	return &categoryCache{client: client}
}

func (c *categoryCache) Get(ctx context.Context) ([]entity.Category, error) {
	val, err := c.client.Get(ctx, categoryListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get categories from redis: %w", err)
	}

	var categories []entity.Category
	if err := json.Unmarshal(val, &categories); err != nil {
		_ = c.Invalidate(ctx)
		return nil, fmt.Errorf("failed to unmarshal cached categories: %w", err)
	}
	return categories, nil
}

func (c *categoryCache) Set(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	if categories == nil {
		categories = []entity.Category{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	if err := c.client.Set(ctx, categoryListKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set categories in redis: %w", err)
	}
	return nil
}

func (c *categoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoryListKey).Err(); err != nil {
		return fmt.Errorf("failed to delete categories from redis: %w", err)
	}
	return nil
}
