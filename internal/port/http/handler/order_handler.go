package handler

import (
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/middleware"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders OrderService
	log    logger.Logger
}

func NewOrderHandler(orders OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log.Named("OrderHTTPHandler")}
}

// MyOrders answers with the caller's orders as a bare JSON array.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "UnAuthorized Access", nil)
		return
	}

	orders, err := h.orders.ListBuyerOrders(r.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to list buyer orders", "user_id", userID, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error WHile Geting Orders", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilOrders(orders))
}

func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllOrders(r.Context())
	if err != nil {
		h.log.Errorw("failed to list all orders", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error WHile Geting Orders", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilOrders(orders))
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, entity.OrderStatus(req.Status))
	switch {
	case errors.Is(err, service.ErrInvalidOrderStatus):
		writeFailure(w, http.StatusBadRequest, "Invalid Order Status", nil)
		return
	case errors.Is(err, service.ErrOrderNotFound):
		writeFailure(w, http.StatusNotFound, "Order Not Found", nil)
		return
	case err != nil:
		h.log.Errorw("failed to update order status", "order_id", orderID, "status", req.Status, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error While Updateing Order", err)
		return
	}

	h.log.Infow("order status updated", "order_id", order.ID, "status", order.Status)
	writeJSON(w, http.StatusOK, order)
}

func nonNilOrders(orders []entity.OrderDetails) []entity.OrderDetails {
	if orders == nil {
		return []entity.OrderDetails{}
	}
	return orders
}
