package validation

import "strings"

// CreateOrderRequest is the payload for POST /orders (cash-on-delivery
// intake; payment_method is validated generically so online is accepted too).
// Field order matters: validation errors are reported for the first failing
// field in declaration order.
type CreateOrderRequest struct {
	ProductID       string  `json:"product_id" validate:"required"`
	ProductName     string  `json:"product_name" validate:"required"`
	ProductPrice    float64 `json:"product_price" validate:"required,gt=0"`
	CustomerName    string  `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone   string  `json:"customer_phone" validate:"required,inmobile"`
	CustomerAddress string  `json:"customer_address" validate:"required,min=10,max=500"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=online cod"`
}

// Normalize cleans fields the way customers actually type them before
// validation runs: names and addresses are trimmed, phone numbers lose
// spaces and hyphens.
func (r *CreateOrderRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = cleanPhone(r.CustomerPhone)
	r.CustomerAddress = strings.TrimSpace(r.CustomerAddress)
}

// CreatePaymentOrderRequest is the payload for POST /payments/order.
// Amount is in major units (rupees); the handler converts to minor units
// before calling the gateway. The upper bound is a sanity cap against
// fat-finger or abuse amounts.
type CreatePaymentOrderRequest struct {
	Amount   float64           `json:"amount" validate:"required,gt=0,lte=10000000"`
	Currency string            `json:"currency,omitempty"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// VerifyPaymentRequest is the payload for POST /payments/verify. The three
// gateway callback fields come first so their absence short-circuits before
// customer re-validation.
type VerifyPaymentRequest struct {
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	ProductID         string  `json:"product_id" validate:"required"`
	ProductName       string  `json:"product_name" validate:"required"`
	ProductPrice      float64 `json:"product_price" validate:"required,gt=0"`
	CustomerName      string  `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone     string  `json:"customer_phone" validate:"required,inmobile"`
	CustomerAddress   string  `json:"customer_address" validate:"required,min=10,max=500"`
}

func (r *VerifyPaymentRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = cleanPhone(r.CustomerPhone)
	r.CustomerAddress = strings.TrimSpace(r.CustomerAddress)
}

var phoneCleaner = strings.NewReplacer(" ", "", "-", "")

func cleanPhone(s string) string {
	return phoneCleaner.Replace(s)
}
