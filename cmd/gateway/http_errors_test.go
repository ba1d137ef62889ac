package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/storefront/api/rpc"
)

func TestHTTPStatusFromGRPC(t *testing.T) {
	t.Run("InvalidArgument -> 400", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, "bad")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		err := status.Error(codes.NotFound, "missing")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("Unavailable -> 503", func(t *testing.T) {
		err := status.Error(codes.Unavailable, "down")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("DeadlineExceeded -> 503", func(t *testing.T) {
		err := status.Error(codes.DeadlineExceeded, "timeout")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("non-grpc error -> 500", func(t *testing.T) {
		err := errors.New("boom")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})
}

func TestHTTPStatusFromGRPC_Reasons(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient stock", rpc.Error(codes.FailedPrecondition, rpc.ReasonInsufficientStock, "out"), http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"empty cart", rpc.Error(codes.FailedPrecondition, rpc.ReasonEmptyCart, "empty"), http.StatusBadRequest, "EMPTY_CART"},
		{"precondition without reason", status.Error(codes.FailedPrecondition, "no"), http.StatusBadRequest, "FAILED_PRECONDITION"},
		{"invalid status", rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidStatus, "lost"), http.StatusBadRequest, "INVALID_STATUS"},
		{"order not found", rpc.Error(codes.NotFound, rpc.ReasonNotFound, "order not found"), http.StatusNotFound, "NOT_FOUND"},
		{"already exists", status.Error(codes.AlreadyExists, "dup"), http.StatusConflict, "ALREADY_EXISTS"},
		{"aborted", status.Error(codes.Aborted, "retry"), http.StatusConflict, "ABORTED"},
		{"permission", status.Error(codes.PermissionDenied, "no"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"unauthenticated", status.Error(codes.Unauthenticated, "who"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"internal hides message", status.Error(codes.Internal, "pq: secret"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStatus, gotCode, msg := httpStatusFromGRPC(tt.err)
			assert.Equal(t, tt.wantStatus, gotStatus)
			assert.Equal(t, tt.wantCode, gotCode)
			assert.NotContains(t, msg, "secret")
		})
	}
}
