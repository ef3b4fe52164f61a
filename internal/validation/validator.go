package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Indian mobile numbers: 10 digits, first digit 6-9. Applied after
// Normalize has stripped spaces and hyphens.
var indianMobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)

// New returns a configured validator with the custom phone rule registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// panics only on a nil function, safe to ignore
	_ = v.RegisterValidation("inmobile", func(fl validatorv10.FieldLevel) bool {
		return indianMobileRe.MatchString(fl.Field().String())
	})

	return v
}

// Human-readable rejection messages per struct field. Validation failures
// carry no secrets, so the client gets the specific reason.
var createOrderMessages = map[string]string{
	"ProductID":       "Invalid product details",
	"ProductName":     "Invalid product details",
	"ProductPrice":    "Invalid product details",
	"CustomerName":    "Please provide a valid name (2-100 characters)",
	"CustomerPhone":   "Please provide a valid 10-digit Indian phone number",
	"CustomerAddress": "Please provide a complete delivery address (10-500 characters)",
	"PaymentMethod":   "Invalid payment method",
}

var paymentOrderMessages = map[string]string{
	"Amount": "Invalid amount. Must be between 1 and 10,000,000",
}

var verifyPaymentMessages = map[string]string{
	"RazorpayPaymentID": "Missing payment details",
	"RazorpayOrderID":   "Missing payment details",
	"RazorpaySignature": "Missing payment details",
	"ProductID":         "Invalid product details",
	"ProductName":       "Invalid product details",
	"ProductPrice":      "Invalid product details",
	"CustomerName":      "Invalid customer name",
	"CustomerPhone":     "Invalid phone number",
	"CustomerAddress":   "Please provide a complete address",
}

// firstMessage maps a validator error to the message of the first failing
// field. validator/v10 reports fields in struct declaration order, which
// gives us the short-circuit ordering the endpoints promise.
func firstMessage(err error, messages map[string]string) string {
	if ve, ok := err.(validatorv10.ValidationErrors); ok && len(ve) > 0 {
		if msg, ok := messages[ve[0].StructField()]; ok {
			return msg
		}
	}
	return "Invalid request"
}
