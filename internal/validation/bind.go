package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// normalizer is implemented by request types that clean up user-typed
// fields before validation.
type normalizer interface {
	Normalize()
}

// CheckCreateOrder normalizes and validates an intake request. On failure
// it returns the human-readable message for the first failing field.
func CheckCreateOrder(v *validatorv10.Validate, req *CreateOrderRequest) (string, bool) {
	return check(v, req, createOrderMessages)
}

// CheckPaymentOrder validates a gateway order-creation request.
func CheckPaymentOrder(v *validatorv10.Validate, req *CreatePaymentOrderRequest) (string, bool) {
	if err := v.Struct(req); err != nil {
		return firstMessage(err, paymentOrderMessages), false
	}
	return "", true
}

// CheckVerifyPayment normalizes and validates a verification request. The
// verification endpoint is an independent entry point, so customer fields
// are re-checked with the same rules as intake rather than trusted.
func CheckVerifyPayment(v *validatorv10.Validate, req *VerifyPaymentRequest) (string, bool) {
	return check(v, req, verifyPaymentMessages)
}

func check(v *validatorv10.Validate, req normalizer, messages map[string]string) (string, bool) {
	req.Normalize()
	if err := v.Struct(req); err != nil {
		return firstMessage(err, messages), false
	}
	return "", true
}
