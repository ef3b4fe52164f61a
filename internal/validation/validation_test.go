package validation

import (
	"strings"
	"testing"
)

func validIntake() CreateOrderRequest {
	return CreateOrderRequest{
		ProductID:       "hs-001",
		ProductName:     "Natural Lace Hair System",
		ProductPrice:    8000,
		CustomerName:    "Rahul Singh",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 MG Road, Pune, 411001",
		PaymentMethod:   "cod",
	}
}

func TestCheckCreateOrder_Phone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"98765 43210", true},   // spaces stripped
		{"98765-43210", true},   // hyphens stripped
		{"5876543210", false},   // leading digit below 6
		{"0876543210", false},   // leading zero
		{"98765432100", false},  // 11 digits
		{"987654321", false},    // 9 digits
		{"98765x3210", false},   // alphabetic
		{"+919876543210", false}, // country code not accepted
		{"", false},
	}

	v := New()
	for _, tc := range cases {
		req := validIntake()
		req.CustomerPhone = tc.phone
		msg, ok := CheckCreateOrder(v, &req)
		if ok != tc.ok {
			t.Errorf("phone %q: ok = %v, want %v (msg %q)", tc.phone, ok, tc.ok, msg)
		}
		if !tc.ok && msg != "Please provide a valid 10-digit Indian phone number" {
			t.Errorf("phone %q: unexpected message %q", tc.phone, msg)
		}
	}
}

func TestCheckCreateOrder_NormalizesFields(t *testing.T) {
	v := New()
	req := validIntake()
	req.CustomerName = "  Rahul Singh  "
	req.CustomerPhone = "98765 432-10"
	req.CustomerAddress = " 12 MG Road, Pune, 411001 "

	if msg, ok := CheckCreateOrder(v, &req); !ok {
		t.Fatalf("expected valid request, got %q", msg)
	}
	if req.CustomerName != "Rahul Singh" {
		t.Errorf("name not trimmed: %q", req.CustomerName)
	}
	if req.CustomerPhone != "9876543210" {
		t.Errorf("phone not cleaned: %q", req.CustomerPhone)
	}
	if req.CustomerAddress != "12 MG Road, Pune, 411001" {
		t.Errorf("address not trimmed: %q", req.CustomerAddress)
	}
}

func TestCheckCreateOrder_AddressBoundary(t *testing.T) {
	v := New()

	req := validIntake()
	req.CustomerAddress = strings.Repeat("a", 9)
	if _, ok := CheckCreateOrder(v, &req); ok {
		t.Fatalf("9-char address should be rejected")
	}

	req = validIntake()
	req.CustomerAddress = strings.Repeat("a", 10)
	if msg, ok := CheckCreateOrder(v, &req); !ok {
		t.Fatalf("10-char address should be accepted, got %q", msg)
	}

	req = validIntake()
	req.CustomerAddress = strings.Repeat("a", 501)
	if _, ok := CheckCreateOrder(v, &req); ok {
		t.Fatalf("501-char address should be rejected")
	}
}

func TestCheckCreateOrder_NameBoundary(t *testing.T) {
	v := New()

	req := validIntake()
	req.CustomerName = "A"
	if msg, ok := CheckCreateOrder(v, &req); ok || msg != "Please provide a valid name (2-100 characters)" {
		t.Fatalf("1-char name: ok=%v msg=%q", ok, msg)
	}

	req = validIntake()
	req.CustomerName = strings.Repeat("n", 101)
	if _, ok := CheckCreateOrder(v, &req); ok {
		t.Fatalf("101-char name should be rejected")
	}
}

func TestCheckCreateOrder_ProductAndMethod(t *testing.T) {
	v := New()

	req := validIntake()
	req.ProductPrice = 0
	if msg, ok := CheckCreateOrder(v, &req); ok || msg != "Invalid product details" {
		t.Fatalf("zero price: ok=%v msg=%q", ok, msg)
	}

	req = validIntake()
	req.PaymentMethod = "upi"
	if msg, ok := CheckCreateOrder(v, &req); ok || msg != "Invalid payment method" {
		t.Fatalf("bad method: ok=%v msg=%q", ok, msg)
	}

	// Both accepted values pass.
	for _, m := range []string{"cod", "online"} {
		req = validIntake()
		req.PaymentMethod = m
		if msg, ok := CheckCreateOrder(v, &req); !ok {
			t.Fatalf("method %q rejected: %q", m, msg)
		}
	}
}

func TestCheckPaymentOrder_AmountBoundary(t *testing.T) {
	v := New()

	if msg, ok := CheckPaymentOrder(v, &CreatePaymentOrderRequest{Amount: 10000000}); !ok {
		t.Fatalf("amount 10,000,000 should be accepted, got %q", msg)
	}
	if _, ok := CheckPaymentOrder(v, &CreatePaymentOrderRequest{Amount: 10000001}); ok {
		t.Fatalf("amount 10,000,001 should be rejected")
	}
	if _, ok := CheckPaymentOrder(v, &CreatePaymentOrderRequest{Amount: 0}); ok {
		t.Fatalf("zero amount should be rejected")
	}
	if _, ok := CheckPaymentOrder(v, &CreatePaymentOrderRequest{Amount: -5}); ok {
		t.Fatalf("negative amount should be rejected")
	}
}

func TestCheckVerifyPayment_MissingGatewayFieldsShortCircuit(t *testing.T) {
	v := New()

	// Gateway fields absent and customer fields invalid: the gateway
	// message must win because those fields are declared first.
	req := VerifyPaymentRequest{
		ProductID:    "hs-001",
		ProductName:  "Natural Lace Hair System",
		ProductPrice: 8000,
		CustomerName: "x",
	}
	msg, ok := CheckVerifyPayment(v, &req)
	if ok || msg != "Missing payment details" {
		t.Fatalf("ok=%v msg=%q, want missing payment details", ok, msg)
	}
}

func TestCheckVerifyPayment_RevalidatesCustomerFields(t *testing.T) {
	v := New()
	req := VerifyPaymentRequest{
		RazorpayPaymentID: "pay_abc",
		RazorpayOrderID:   "order_abc",
		RazorpaySignature: "deadbeef",
		ProductID:         "hs-001",
		ProductName:       "Natural Lace Hair System",
		ProductPrice:      8000,
		CustomerName:      "Rahul Singh",
		CustomerPhone:     "1234567890",
		CustomerAddress:   "12 MG Road, Pune, 411001",
	}
	msg, ok := CheckVerifyPayment(v, &req)
	if ok || msg != "Invalid phone number" {
		t.Fatalf("ok=%v msg=%q, want invalid phone number", ok, msg)
	}
}
