package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
)

type ListOrdersParams struct {
	// BuyerID restricts the result to one buyer when set.
	BuyerID string
	// NewestFirst sorts by creation time descending.
	NewestFirst bool
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (string, error)
	// ListDetailed returns orders with buyer and products resolved.
	ListDetailed(ctx context.Context, params ListOrdersParams) ([]entity.OrderDetails, error)
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)
}
