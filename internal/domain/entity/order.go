package entity

import (
	"time"
)

type OrderStatus string

const (
	StatusNotProcess OrderStatus = "Not Process"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func (s OrderStatus) IsValid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string                 `json:"_id"`
	Products  []string               `json:"products"`
	Payment   map[string]interface{} `json:"payment,omitempty"`
	Buyer     string                 `json:"buyer"`
	Status    OrderStatus            `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Buyer is the part of a user shown next to an order.
type Buyer struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// OrderDetails is an order with its buyer and products resolved.
// Product photos are never part of it.
type OrderDetails struct {
	ID        string                 `json:"_id"`
	Products  []Product              `json:"products"`
	Payment   map[string]interface{} `json:"payment,omitempty"`
	Buyer     Buyer                  `json:"buyer"`
	Status    OrderStatus            `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}
