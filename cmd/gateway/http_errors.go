package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/storefront/api/rpc"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// httpStatusFromGRPC maps a gRPC client error to an HTTP status and a
// machine readable code. An ErrorInfo reason wins over the generic code.
func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	var (
		httpStatus int
		code       string
	)
	switch st.Code() {
	case codes.InvalidArgument:
		httpStatus, code = http.StatusBadRequest, "INVALID_ARGUMENT"
	case codes.FailedPrecondition:
		httpStatus, code = http.StatusBadRequest, "FAILED_PRECONDITION"
	case codes.OutOfRange:
		httpStatus, code = http.StatusBadRequest, "OUT_OF_RANGE"
	case codes.NotFound:
		httpStatus, code = http.StatusNotFound, "NOT_FOUND"
	case codes.AlreadyExists:
		httpStatus, code = http.StatusConflict, "ALREADY_EXISTS"
	case codes.Aborted:
		httpStatus, code = http.StatusConflict, "ABORTED"
	case codes.PermissionDenied:
		httpStatus, code = http.StatusForbidden, "PERMISSION_DENIED"
	case codes.Unauthenticated:
		httpStatus, code = http.StatusUnauthorized, "UNAUTHENTICATED"
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	if reason := rpc.Reason(err); reason != "" {
		code = reason
	}
	return httpStatus, code, st.Message()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// writeRPCError logs server side failures and writes the mapped error.
func writeRPCError(w http.ResponseWriter, r *http.Request, err error) {
	httpStatus, code, msg := httpStatusFromGRPC(err)
	if httpStatus >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "upstream call failed",
			slog.String("path", r.URL.Path), slog.Any("err", err))
	}
	writeError(w, httpStatus, code, msg)
}
