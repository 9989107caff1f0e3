package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Phone     string             `bson:"phone"`
	Address   string             `bson:"address"`
	Answer    string             `bson:"answer"`
	Role      int                `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toEntity() *entity.User {
	return &entity.User{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Phone:     m.Phone,
		Address:   m.Address,
		Answer:    m.Answer,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type userRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewUserRepository(db *mongo.Database, log logger.Logger) repository.UserRepository {
	collection := db.Collection(userCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warnf("failed to ensure unique email index on %s: %v", userCollectionName, err)
	}

	return &userRepository{
		collection: collection,
		log:        log.Named("UserRepository"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	now := time.Now().UTC()
	doc := mongoUser{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(user.Name),
		Email:     normalizeEmail(user.Email),
		Password:  user.Password,
		Phone:     user.Phone,
		Address:   user.Address,
		Answer:    user.Answer,
		Role:      int(user.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user %s: %w", doc.Email, err)
	}
	r.log.Infow("user created", "user_id", doc.ID.Hex())
	return doc.toEntity(), nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc mongoUser
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (r *userRepository) FindByEmailAndAnswer(ctx context.Context, email, answer string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email), "answer": answer})
}

func (r *userRepository) UpdateByID(ctx context.Context, userID string, params repository.UpdateUserParams) (*entity.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Password != nil {
		set["password"] = *params.Password
	}
	if params.Phone != nil {
		set["phone"] = *params.Phone
	}
	if params.Address != nil {
		set["address"] = *params.Address
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoUser
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return doc.toEntity(), nil
}
