package service

import (
	"context"
	"time"
)

const (
	SubjectUserRegistered     = "users.registered"
	SubjectOrderStatusUpdated = "orders.status_updated"

	publishTimeout = 3 * time.Second
)

type EventPublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
}

type Mailer interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type OrderStatusUpdatedEvent struct {
	OrderID string `json:"order_id"`
	BuyerID string `json:"buyer_id"`
	Status  string `json:"status"`
}
