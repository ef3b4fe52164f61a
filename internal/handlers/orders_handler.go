package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/aws"
	"github.com/goldenhair/storefront/internal/orders"
	"github.com/goldenhair/storefront/internal/validation"
)

func (h *handler) countRateLimited() {
	h.cfg.Metrics.Count(context.Background(), aws.MetricRateLimited, "")
}

// createOrder handles cash-on-delivery intake. Validation short-circuits on
// the first failing field with a specific reason; storage failures stay
// generic so nothing internal leaks.
func (h *handler) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if msg, ok := validation.CheckCreateOrder(h.validate, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	paymentStatus := orders.PaymentPending
	if req.PaymentMethod == orders.MethodOnline {
		// Intake accepts online generically; payment completion happens
		// through verification, this row just records the attempt.
		paymentStatus = orders.PaymentAwaiting
	}

	order := orders.Order{
		OrderID:         uuid.NewString(),
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		ProductPrice:    req.ProductPrice,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		OrderStatus:     orders.StatusPending,
	}

	if err := h.cfg.Orders.Create(ctx, order); err != nil {
		h.cfg.Logger.Error("order insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order. Please try again."})
		return
	}

	h.cfg.Logger.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("payment_method", order.PaymentMethod))
	h.cfg.Metrics.Count(ctx, aws.MetricOrdersCreated, order.PaymentMethod)
	h.publishEvent(ctx, aws.OrderEvent{
		Type:          aws.EventOrderCreated,
		OrderID:       order.OrderID,
		PaymentMethod: order.PaymentMethod,
		CorrelationID: c.GetHeader("X-Request-Id"),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.OrderID,
		"message":  "Order placed successfully",
	})
}

// publishEvent is best effort: the order row is already durable and the
// customer response must not depend on the queue.
func (h *handler) publishEvent(ctx context.Context, ev aws.OrderEvent) {
	if h.cfg.Publisher == nil {
		return
	}
	if err := h.cfg.Publisher.PublishOrderEvent(ctx, ev); err != nil {
		h.cfg.Logger.Warn("order event publish failed",
			zap.String("order_id", ev.OrderID), zap.Error(err))
	}
}

// getOrder serves the admin dashboard's order detail view.
func (h *handler) getOrder(c *gin.Context) {
	order, err := h.cfg.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.cfg.Logger.Error("order lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatus is the staff transition surface. The store's
// conditional write makes concurrent staff actions lose cleanly.
func (h *handler) updateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}

	order, err := h.cfg.Orders.Get(ctx, orderID)
	if err != nil {
		h.cfg.Logger.Error("order lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !orders.ValidTransition(order.OrderStatus, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status transition from " + order.OrderStatus + " to " + req.Status,
		})
		return
	}

	err = h.cfg.Orders.UpdateOrderStatus(ctx, orderID, order.OrderStatus, req.Status)
	if err == orders.ErrStatusMismatch {
		// Someone else moved it between our read and write.
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, reload and retry"})
		return
	}
	if err != nil {
		h.cfg.Logger.Error("status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	h.cfg.Logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", order.OrderStatus),
		zap.String("to", req.Status))
	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": orderID, "order_status": req.Status})
}
