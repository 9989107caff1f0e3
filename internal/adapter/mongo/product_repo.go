package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

type mongoPhoto struct {
	Key         string `bson:"key"`
	URL         string `bson:"url"`
	ContentType string `bson:"content_type"`
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    primitive.ObjectID `bson:"category"`
	Quantity    int                `bson:"quantity"`
	Shipping    bool               `bson:"shipping"`
	Photo       *mongoPhoto        `bson:"photo,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoProduct) toEntity() entity.Product {
	p := entity.Product{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Shipping:    m.Shipping,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if !m.Category.IsZero() {
		p.Category = m.Category.Hex()
	}
	if m.Photo != nil {
		p.Photo = &entity.Photo{Key: m.Photo.Key, URL: m.Photo.URL, ContentType: m.Photo.ContentType}
	}
	return p
}

type productRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewProductRepository(db *mongo.Database, log logger.Logger) repository.ProductRepository {
	return &productRepository{
		collection: db.Collection(productCollectionName),
		log:        log.Named("ProductRepository"),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	categoryID, err := objectID(product.Category)
	if err != nil {
		return nil, fmt.Errorf("product category: %w", err)
	}

	now := time.Now().UTC()
	doc := mongoProduct{
		ID:          primitive.NewObjectID(),
		Name:        product.Name,
		Slug:        entity.Slugify(product.Name),
		Description: product.Description,
		Price:       product.Price,
		Category:    categoryID,
		Quantity:    product.Quantity,
		Shipping:    product.Shipping,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Photo != nil {
		doc.Photo = &mongoPhoto{Key: product.Photo.Key, URL: product.Photo.URL, ContentType: product.Photo.ContentType}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert product %q: %w", product.Name, err)
	}
	r.log.Infow("product created", "product_id", doc.ID.Hex(), "slug", doc.Slug)

	created := doc.toEntity()
	return &created, nil
}

func (r *productRepository) ListLatest(ctx context.Context, limit int64) ([]entity.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"photo": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toEntity())
	}
	return products, nil
}
