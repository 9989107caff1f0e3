package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
)

type OrderService struct {
	orders  repository.OrderRepository
	events  EventPublisher
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewOrderService(orders repository.OrderRepository, events EventPublisher, m *metrics.Metrics, log logger.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		events:  events,
		metrics: m,
		log:     log.Named("OrderService"),
	}
}

func (s *OrderService) ListBuyerOrders(ctx context.Context, buyerID string) ([]entity.OrderDetails, error) {
	orders, err := s.orders.ListDetailed(ctx, repository.ListOrdersParams{BuyerID: buyerID})
	if err != nil {
		return nil, fmt.Errorf("list orders of buyer %s: %w", buyerID, err)
	}
	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]entity.OrderDetails, error) {
	orders, err := s.orders.ListDetailed(ctx, repository.ListOrdersParams{NewestFirst: true})
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update status of order %s: %w", orderID, err)
	}

	s.metrics.OrderStatusUpdates.WithLabelValues(string(status)).Inc()

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	event := OrderStatusUpdatedEvent{OrderID: order.ID, BuyerID: order.Buyer, Status: string(order.Status)}
	if err := s.events.Publish(pubCtx, SubjectOrderStatusUpdated, event); err != nil {
		s.log.Warnf("failed to publish status change of order %s: %v", order.ID, err)
	}
	return order, nil
}
