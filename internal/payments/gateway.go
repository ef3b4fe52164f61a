package payments

import (
	"context"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is the gateway's view of one checkout attempt. Amount is in
// minor units (paise).
type GatewayOrder struct {
	OrderID  string
	Amount   int64
	Currency string
}

// Gateway opens transactions with the payment processor. The concrete
// implementation wraps the Razorpay SDK; tests substitute a fake.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
}

// MinorUnits converts a major-unit amount (rupees) to minor units (paise).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RazorpayGateway calls the Razorpay orders API with Basic-auth
// credentials. The secret never leaves the server.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds a gateway from the key pair.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder opens a gateway transaction and returns its handle. The SDK
// does not take a context; the ctx parameter keeps the interface honest for
// other implementations.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("gateway order create: response missing id")
	}

	out := &GatewayOrder{OrderID: id, Amount: amountMinor, Currency: currency}
	if amt, ok := body["amount"].(float64); ok {
		out.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		out.Currency = cur
	}
	return out, nil
}
