package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryCollectionName = "categories"

type mongoCategory struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Slug string             `bson:"slug"`
}

func (m *mongoCategory) toEntity() entity.Category {
	return entity.Category{ID: m.ID.Hex(), Name: m.Name, Slug: m.Slug}
}

type categoryRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewCategoryRepository(db *mongo.Database, log logger.Logger) repository.CategoryRepository {
	collection := db.Collection(categoryCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure unique slug index on %s: %v", categoryCollectionName, err)
	}

	return &categoryRepository{
		collection: collection,
		log:        log.Named("CategoryRepository"),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	name := strings.TrimSpace(category.Name)
	doc := mongoCategory{
		ID:   primitive.NewObjectID(),
		Name: name,
		Slug: entity.Slugify(name),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert category %q: %w", name, err)
	}
	created := doc.toEntity()
	return &created, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, categoryID string) (*entity.Category, error) {
	oid, err := objectID(categoryID)
	if err != nil {
		return nil, err
	}

	var doc mongoCategory
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	c := doc.toEntity()
	return &c, nil
}

// FindByName matches the name case-insensitively.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$"
	filter := bson.M{"name": primitive.Regex{Pattern: pattern, Options: "i"}}

	var doc mongoCategory
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %q: %w", name, err)
	}
	c := doc.toEntity()
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	categories := make([]entity.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, docs[i].toEntity())
	}
	return categories, nil
}
