package mongo

import (
	"context"
	"errors"
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

const orderCollectionName = "orders"

type mongoOrder struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Products  []primitive.ObjectID `bson:"products"`
	Payment   bson.M               `bson:"payment,omitempty"`
	Buyer     primitive.ObjectID   `bson:"buyer"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (m *mongoOrder) toEntity() *entity.Order {
	products := make([]string, 0, len(m.Products))
	for _, id := range m.Products {
		products = append(products, id.Hex())
	}
	return &entity.Order{
		ID:        m.ID.Hex(),
		Products:  products,
		Payment:   m.Payment,
		Buyer:     m.Buyer.Hex(),
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type mongoBuyer struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// mongoOrderDetails is the shape produced by orderDetailsPipeline.
type mongoOrderDetails struct {
	ID        primitive.ObjectID `bson:"_id"`
	Products  []mongoProduct     `bson:"products"`
	Payment   bson.M             `bson:"payment,omitempty"`
	Buyer     mongoBuyer         `bson:"buyer"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoOrderDetails) toEntity() entity.OrderDetails {
	products := make([]entity.Product, 0, len(m.Products))
	for i := range m.Products {
		products = append(products, m.Products[i].toEntity())
	}
	buyer := entity.Buyer{Name: m.Buyer.Name}
	if !m.Buyer.ID.IsZero() {
		buyer.ID = m.Buyer.ID.Hex()
	}
	return entity.OrderDetails{
		ID:        m.ID.Hex(),
		Products:  products,
		Payment:   m.Payment,
		Buyer:     buyer,
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type orderRepository struct {
	collection *mongo.Collection
	log        logger.Logger
}

func NewOrderRepository(db *mongo.Database, log logger.Logger) repository.OrderRepository {
	return &orderRepository{
		collection: db.Collection(orderCollectionName),
		log:        log.Named("OrderRepository"),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (string, error) {
	buyerID, err := objectID(order.Buyer)
	if err != nil {
		return "", fmt.Errorf("order buyer: %w", err)
	}
	products := make([]primitive.ObjectID, 0, len(order.Products))
	for _, id := range order.Products {
		oid, err := objectID(id)
		if err != nil {
			return "", fmt.Errorf("order product: %w", err)
		}
		products = append(products, oid)
	}

	status := order.Status
	if status == "" {
		status = entity.StatusNotProcess
	}

	now := time.Now().UTC()
	doc := mongoOrder{
		ID:        primitive.NewObjectID(),
		Products:  products,
		Payment:   order.Payment,
		Buyer:     buyerID,
		Status:    string(status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return doc.ID.Hex(), nil
}

// orderDetailsPipeline resolves products (minus photo) and the buyer name
// for the orders selected by params.
func orderDetailsPipeline(params repository.ListOrdersParams, buyerID primitive.ObjectID) mongo.Pipeline {
	match := bson.D{}
	if !buyerID.IsZero() {
		match = bson.D{{Key: "buyer", Value: buyerID}}
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if params.NewestFirst {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}})
	}

	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: productCollectionName},
			{Key: "localField", Value: "products"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "products"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: userCollectionName},
			{Key: "localField", Value: "buyer"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "buyer"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$buyer"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "products.photo", Value: 0}}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "buyer", Value: bson.D{
				{Key: "_id", Value: "$buyer._id"},
				{Key: "name", Value: "$buyer.name"},
			}},
		}}},
	)
}

func (r *orderRepository) ListDetailed(ctx context.Context, params repository.ListOrdersParams) ([]entity.OrderDetails, error) {
	var buyerID primitive.ObjectID
	if params.BuyerID != "" {
		oid, err := objectID(params.BuyerID)
		if err != nil {
			return nil, err
		}
		buyerID = oid
	}

	cursor, err := r.collection.Aggregate(ctx, orderDetailsPipeline(params, buyerID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoOrderDetails
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]entity.OrderDetails, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toEntity())
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	oid, err := objectID(orderID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoOrder
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	r.log.Infow("order status updated", "order_id", orderID, "status", status)
	return doc.toEntity(), nil
}
