package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const tracerName = "github.com/dwikikusuma/storefront/internal/order"

type Service struct {
	uow      UnitOfWork
	orders   OrderReader
	notifier Notifier
	log      *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithTracer(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer(tracerName) }
}

// NewService wires the order coordinator. notifier may be nil.
func NewService(uow UnitOfWork, orders OrderReader, notifier Notifier, opts ...Option) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	s := &Service{
		uow:      uow,
		orders:   orders,
		notifier: notifier,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder turns the user's cart into a pending order. Stock decrements,
// order creation and the cart clear commit together or not at all.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.place", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return domain.Order{}, s.fail(ctx, span, "place order", ErrInvalidInput)
	}

	var created domain.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		cart, err := tx.Carts().LockActive(ctx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(cart.Lines) == 0 {
			return ErrEmptyCart
		}

		lines, err := mergeLines(cart.Lines)
		if err != nil {
			return err
		}
		ids := make([]string, len(lines))
		for i, ln := range lines {
			ids[i] = ln.ProductID
		}
		sort.Strings(ids)

		products, err := tx.Products().GetMany(ctx, ids)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		if len(products) != len(ids) {
			return ErrProductUnavailable
		}

		currency := products[ids[0]].Currency
		for _, id := range ids {
			if products[id].Currency != currency {
				return ErrCurrencyMismatch
			}
		}

		// ascending id order keeps row locks ordered across overlapping orders
		qty := make(map[string]int32, len(lines))
		for _, ln := range lines {
			qty[ln.ProductID] = ln.Quantity
		}
		for _, id := range ids {
			ok, err := tx.Products().DecrementStock(ctx, id, qty[id])
			if err != nil {
				return err
			}
			if !ok {
				span.SetAttributes(attribute.String("order.short_product_id", id))
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, id)
			}
		}

		items := make([]domain.OrderItem, 0, len(lines))
		for _, ln := range lines {
			p := products[ln.ProductID]
			items = append(items, domain.OrderItem{
				ProductID:  p.ID,
				Name:       p.Name,
				UnitAmount: p.UnitAmount,
				Quantity:   ln.Quantity,
			})
		}

		created, err = tx.Orders().Create(ctx, domain.NewOrder(userID, currency, items))
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := tx.Carts().Clear(ctx, cart.CartID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, s.fail(ctx, span, "place order", err)
	}

	span.SetAttributes(
		attribute.String("order.id", created.ID),
		attribute.Int64("order.total_amount", created.TotalAmount),
	)
	span.SetStatus(codes.Ok, "order placed")
	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", created.ID),
		slog.String("user_id", userID),
		slog.Int64("total_amount", created.TotalAmount),
		slog.Int("items", len(created.Items)),
	)

	s.notifier.NotifyOrderPlaced(context.WithoutCancel(ctx), userID, created.ID, created.TotalAmount, created.Currency)
	return created, nil
}

// CancelOrder lets a customer cancel their own pending order. The units
// go back to stock in the same unit of work.
func (s *Service) CancelOrder(ctx context.Context, userID, orderID string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.cancel", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("order.id", orderID),
	))
	defer span.End()

	var updated domain.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		o, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return ErrNotFound
		}
		if !o.Status.CustomerCancellable() {
			return domain.ErrNotCancellable
		}

		updated, err = tx.Orders().UpdateStatus(ctx, o.ID, o.Status, domain.StatusCancelled)
		if err != nil {
			return err
		}
		return s.restock(ctx, tx, o)
	})
	if err != nil {
		return domain.Order{}, s.fail(ctx, span, "cancel order", err)
	}

	span.SetStatus(codes.Ok, "order cancelled")
	s.log.InfoContext(ctx, "order cancelled", slog.String("order_id", updated.ID), slog.String("user_id", userID))
	return updated, nil
}

// SetStatus is the operator transition. It only moves the status; an
// operator cancel leaves stock alone, unlike CancelOrder.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.set_status", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.target_status", status),
	))
	defer span.End()

	next, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Order{}, s.fail(ctx, span, "set status", err)
	}

	var updated domain.Order
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		o, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Status.CanTransitionTo(next); err != nil {
			return err
		}

		updated, err = tx.Orders().UpdateStatus(ctx, o.ID, o.Status, next)
		return err
	})
	if err != nil {
		return domain.Order{}, s.fail(ctx, span, "set status", err)
	}

	span.SetStatus(codes.Ok, "status updated")
	s.log.InfoContext(ctx, "order status updated",
		slog.String("order_id", updated.ID),
		slog.String("status", updated.Status.String()),
	)

	s.notifier.NotifyStatusChanged(context.WithoutCancel(ctx), updated.UserID, updated.ID, updated.Status)
	return updated, nil
}

// GetOrder hides orders owned by someone else behind ErrNotFound.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (domain.Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != userID {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// restock returns every item of o to stock, unconditionally.
func (s *Service) restock(ctx context.Context, tx Tx, o domain.Order) error {
	qty := make(map[string]int32, len(o.Items))
	for _, it := range o.Items {
		qty[it.ProductID] += it.Quantity
	}
	ids := make([]string, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ok, err := tx.Products().IncrementStock(ctx, id, qty[id])
		if err != nil {
			return fmt.Errorf("restock %s: %w", id, err)
		}
		if !ok {
			s.log.WarnContext(ctx, "restock skipped, product gone",
				slog.String("order_id", o.ID),
				slog.String("product_id", id),
			)
		}
	}
	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	if IsRejection(err) {
		span.SetStatus(codes.Error, "rejected")
		s.log.DebugContext(ctx, op+" rejected", slog.Any("err", err))
		return err
	}
	span.SetStatus(codes.Error, err.Error())
	s.log.ErrorContext(ctx, op+" failed", slog.Any("err", err))
	return err
}

// mergeLines folds duplicate product lines into one, keeping first-seen order.
func mergeLines(lines []CartLine) ([]CartLine, error) {
	out := make([]CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity %d for product %s", ErrInvalidInput, ln.Quantity, ln.ProductID)
		}
		if i, ok := index[ln.ProductID]; ok {
			out[i].Quantity += ln.Quantity
			continue
		}
		index[ln.ProductID] = len(out)
		out = append(out, ln)
	}
	return out, nil
}
