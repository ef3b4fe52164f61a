package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/aws"
	"github.com/goldenhair/storefront/internal/orders"
	"github.com/goldenhair/storefront/internal/payments"
	"github.com/goldenhair/storefront/internal/validation"
)

// createPaymentOrder asks the gateway to open a transaction. Only the
// public key id goes back to the client; the secret stays server-side.
func (h *handler) createPaymentOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if msg, ok := validation.CheckPaymentOrder(h.validate, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if h.cfg.Gateway == nil || h.cfg.RazorpayKeyID == "" {
		h.cfg.Logger.Error("payment gateway not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = "receipt_" + h.nowFunc().UTC().Format("20060102150405")
	}

	gw, err := h.cfg.Gateway.CreateOrder(ctx, payments.MinorUnits(req.Amount), currency, receipt, req.Notes)
	if err != nil {
		h.cfg.Logger.Error("gateway order create failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  gw.OrderID,
		"amount":   gw.Amount,
		"currency": gw.Currency,
		"keyId":    h.cfg.RazorpayKeyID,
	})
}

// verifyPayment is the trust boundary: nothing the client sends is believed
// until the gateway signature is recomputed from the server-held secret.
func (h *handler) verifyPayment(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "Invalid request body"})
		return
	}
	if msg, ok := validation.CheckVerifyPayment(h.validate, &req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": msg})
		return
	}

	if h.cfg.RazorpayKeySecret == "" {
		h.cfg.Logger.Error("razorpay key secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"verified": false, "error": "Configuration error"})
		return
	}

	if !payments.VerifySignature(h.cfg.RazorpayKeySecret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		// Generic message: no hints for forgery attempts.
		h.cfg.Logger.Warn("signature verification failed",
			zap.String("razorpay_order_id", req.RazorpayOrderID),
			zap.String("razorpay_payment_id", req.RazorpayPaymentID))
		h.cfg.Metrics.Count(ctx, aws.MetricPaymentsRejected, orders.MethodOnline)
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "Payment verification failed"})
		return
	}

	now := h.nowFunc().UTC()
	order := orders.Order{
		OrderID:           uuid.NewString(),
		ProductID:         req.ProductID,
		ProductName:       req.ProductName,
		ProductPrice:      req.ProductPrice,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerAddress:   req.CustomerAddress,
		PaymentMethod:     orders.MethodOnline,
		PaymentStatus:     orders.PaymentCompleted,
		OrderStatus:       orders.StatusConfirmed,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		VerifiedAt:        &now,
	}

	dedup := h.cfg.Dedup.NewRecord(req.RazorpayOrderID, req.RazorpayPaymentID, order.OrderID)
	err := h.cfg.Orders.CreateVerified(ctx, h.cfg.Dedup.TableName(), dedup, order)

	switch {
	case err == orders.ErrDuplicatePayment:
		// Replayed verification: resolve to the original order instead of
		// writing a second row.
		rec, getErr := h.cfg.Dedup.Get(ctx, req.RazorpayOrderID, req.RazorpayPaymentID)
		if getErr != nil || rec == nil {
			h.cfg.Logger.Error("dedup lookup failed after duplicate",
				zap.String("razorpay_order_id", req.RazorpayOrderID), zap.Error(getErr))
			c.JSON(http.StatusOK, gin.H{
				"verified": true,
				"warning":  "Payment verified but order storage failed. Please contact support.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"verified": true,
			"order_id": rec.OrderID,
			"message":  "Payment already verified",
		})
		return

	case err != nil:
		// The money really was captured: report verified with a support
		// warning rather than failing the customer, and reconcile manually.
		h.cfg.Logger.Error("verified order storage failed",
			zap.String("razorpay_order_id", req.RazorpayOrderID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"verified": true,
			"warning":  "Payment verified but order storage failed. Please contact support.",
		})
		return
	}

	h.cfg.Logger.Info("payment verified",
		zap.String("order_id", order.OrderID),
		zap.String("razorpay_order_id", req.RazorpayOrderID))
	h.cfg.Metrics.Count(ctx, aws.MetricPaymentsVerified, orders.MethodOnline)
	h.publishEvent(ctx, aws.OrderEvent{
		Type:            aws.EventPaymentVerified,
		OrderID:         order.OrderID,
		PaymentMethod:   orders.MethodOnline,
		RazorpayOrderID: req.RazorpayOrderID,
		CorrelationID:   c.GetHeader("X-Request-Id"),
	})

	c.JSON(http.StatusOK, gin.H{
		"verified": true,
		"order_id": order.OrderID,
		"message":  "Payment verified and order confirmed",
	})
}
