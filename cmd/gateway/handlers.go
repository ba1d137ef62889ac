package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/pkg/idempotency"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
	maxBodyBytes         = 1 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid JSON body")
		return false
	}
	return true
}

// Catalog

func (s *server) listProducts(w http.ResponseWriter, r *http.Request) {
	req := &catalogv1.ListProductsRequest{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be an integer")
			return
		}
		req.Limit = int32(n)
	}

	resp, err := s.catalog.ListProducts(r.Context(), req)
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) getProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.GetProduct(r.Context(), &catalogv1.GetProductRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Product)
}

func (s *server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req catalogv1.CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.catalog.CreateProduct(r.Context(), &req)
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.Product)
}

// Cart

type cartItemBody struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (s *server) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cart.GetCart(r.Context(), &cartv1.UserID{ID: userID(r.Context())})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	cart, err := s.cart.AddItem(r.Context(), &cartv1.UpdateCartItemRequest{
		UserID: userID(r.Context()),
		Item:   &cartv1.CartItem{ProductID: body.ProductID, Quantity: body.Quantity},
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *server) setCartItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	cart, err := s.cart.SetItemQuantity(r.Context(), &cartv1.UpdateCartItemRequest{
		UserID: userID(r.Context()),
		Item:   &cartv1.CartItem{ProductID: chi.URLParam(r, "productId"), Quantity: body.Quantity},
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cart.RemoveItem(r.Context(), &cartv1.RemoveCartItemRequest{
		UserID:    userID(r.Context()),
		ProductID: chi.URLParam(r, "productId"),
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *server) quote(w http.ResponseWriter, r *http.Request) {
	q, err := s.checkout.Quote(r.Context(), &checkoutv1.QuoteRequest{UserID: userID(r.Context())})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Orders

func (s *server) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := userID(ctx)

	key := strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
	if key == "" || s.idem == nil {
		o, err := s.orders.PlaceOrder(ctx, &orderv1.PlaceOrderRequest{UserID: uid})
		if err != nil {
			writeRPCError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, o)
		return
	}

	// Keys are scoped per user so two customers cannot collide.
	scoped := uid + ":" + key
	cached, found, err := s.idem.Begin(ctx, scoped)
	switch {
	case errors.Is(err, idempotency.ErrInFlight):
		writeError(w, http.StatusConflict, "IDEMPOTENCY_IN_FLIGHT", "a request with this Idempotency-Key is in progress")
		return
	case err != nil:
		s.log.ErrorContext(ctx, "idempotency begin failed", slog.Any("err", err))
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "idempotency store unavailable")
		return
	case found:
		w.Header().Set(headerReplayed, "true")
		writeRaw(w, http.StatusCreated, cached)
		return
	}

	o, err := s.orders.PlaceOrder(ctx, &orderv1.PlaceOrderRequest{UserID: uid})
	if err != nil {
		if outcomeUnknown(err) {
			// The order may have committed; the key stays reserved until its TTL.
			s.log.WarnContext(ctx, "place order outcome unknown, keeping idempotency key",
				slog.String("code", status.Code(err).String()))
		} else {
			s.releaseKey(ctx, scoped)
		}
		writeRPCError(w, r, err)
		return
	}

	body, err := json.Marshal(o)
	if err != nil {
		s.releaseKey(ctx, scoped)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if err := s.idem.Complete(context.WithoutCancel(ctx), scoped, body); err != nil {
		s.log.WarnContext(ctx, "idempotency complete failed", slog.Any("err", err))
	}
	writeRaw(w, http.StatusCreated, body)
}

func (s *server) releaseKey(ctx context.Context, key string) {
	if err := s.idem.Release(context.WithoutCancel(ctx), key); err != nil {
		s.log.WarnContext(ctx, "idempotency release failed", slog.Any("err", err))
	}
}

// outcomeUnknown reports whether err leaves it open if the call took effect
// on the server.
func outcomeUnknown(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Unknown:
		return true
	}
	return false
}

func writeRaw(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := s.orders.ListOrders(r.Context(), &orderv1.ListOrdersRequest{UserID: userID(r.Context())})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.Context(), &orderv1.GetOrderRequest{
		UserID:  userID(r.Context()),
		OrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.CancelOrder(r.Context(), &orderv1.CancelOrderRequest{
		UserID:  userID(r.Context()),
		OrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *server) adminListOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := s.orders.AdminListOrders(r.Context(), &orderv1.AdminListOrdersRequest{})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) adminSetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	o, err := s.orders.AdminSetStatus(r.Context(), &orderv1.AdminSetStatusRequest{
		OrderID: chi.URLParam(r, "id"),
		Status:  body.Status,
	})
	if err != nil {
		writeRPCError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
