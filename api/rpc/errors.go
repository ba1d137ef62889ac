package rpc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ErrorDomain = "storefront"

// Reasons attached to failures as errdetails.ErrorInfo.
const (
	ReasonEmptyCart          = "EMPTY_CART"
	ReasonProductUnavailable = "PRODUCT_UNAVAILABLE"
	ReasonInsufficientStock  = "INSUFFICIENT_STOCK"
	ReasonCurrencyMismatch   = "CURRENCY_MISMATCH"
	ReasonNotFound           = "NOT_FOUND"
	ReasonInvalidTransition  = "INVALID_TRANSITION"
	ReasonInvalidStatus      = "INVALID_STATUS"
	ReasonInvalidArgument    = "INVALID_ARGUMENT"
)

// Error returns a status error carrying reason as ErrorInfo. An empty
// reason yields a plain status error.
func Error(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	if reason == "" {
		return st.Err()
	}
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}

// Reason extracts the ErrorInfo reason from a status error, or "".
func Reason(err error) string {
	var se interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &se) {
		return ""
	}
	for _, d := range se.GRPCStatus().Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
