package orders

import "time"

// Payment methods
const (
	MethodCOD    = "cod"
	MethodOnline = "online"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentAwaiting  = "awaiting"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Order statuses, mutated only by staff after creation.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order is the item stored in the orders DynamoDB table. Online orders are
// written only after signature verification, already completed/confirmed;
// cod orders start at pending/pending.
type Order struct {
	OrderID           string     `dynamodbav:"order_id"` // PK
	ProductID         string     `dynamodbav:"product_id"`
	ProductName       string     `dynamodbav:"product_name"`
	ProductPrice      float64    `dynamodbav:"product_price"` // major units, INR
	CustomerName      string     `dynamodbav:"customer_name"`
	CustomerPhone     string     `dynamodbav:"customer_phone"`
	CustomerAddress   string     `dynamodbav:"customer_address"`
	PaymentMethod     string     `dynamodbav:"payment_method"` // cod | online
	PaymentStatus     string     `dynamodbav:"payment_status"`
	OrderStatus       string     `dynamodbav:"order_status"`
	RazorpayOrderID   string     `dynamodbav:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string     `dynamodbav:"razorpay_payment_id,omitempty"`
	RazorpaySignature string     `dynamodbav:"razorpay_signature,omitempty"`
	VerifiedAt        *time.Time `dynamodbav:"verified_at,omitempty"`
	NotifiedAt        *time.Time `dynamodbav:"notified_at,omitempty"`
	CreatedAt         time.Time  `dynamodbav:"created_at"`
	UpdatedAt         time.Time  `dynamodbav:"updated_at"`
}

// validTransitions are the staff-driven order_status moves. Cancellation is
// allowed only before shipping.
var validTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

// ValidTransition reports whether staff may move an order from one status
// to another.
func ValidTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
