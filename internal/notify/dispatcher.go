package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

const tracerName = "github.com/dwikikusuma/storefront/internal/notify"

type Options struct {
	Workers int
	Queue   int
	// Timeout bounds delivery of one event to all sinks.
	Timeout time.Duration

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

type job struct {
	ev Event
	sc trace.SpanContext
}

// Dispatcher queues events on a bounded channel drained by a fixed worker
// pool. A full queue drops the event.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	log     *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

func NewDispatcher(sinks []Sink, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Queue < 0 {
		opts.Queue = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	d := &Dispatcher{
		sinks:   sinks,
		timeout: opts.Timeout,
		log:     opts.Logger,
		tracer:  tp.Tracer(tracerName),
		now:     time.Now,
		queue:   make(chan job, opts.Queue),
	}
	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.work()
	}
	return d
}

func (d *Dispatcher) NotifyOrderPlaced(ctx context.Context, userID, orderID string, totalAmount int64, currency string) {
	d.enqueue(ctx, Event{
		Kind:        KindOrderPlaced,
		UserID:      userID,
		OrderID:     orderID,
		Status:      domain.StatusPending.String(),
		TotalAmount: totalAmount,
		Currency:    currency,
	})
}

func (d *Dispatcher) NotifyStatusChanged(ctx context.Context, userID, orderID string, status domain.Status) {
	d.enqueue(ctx, Event{
		Kind:    KindStatusChanged,
		UserID:  userID,
		OrderID: orderID,
		Status:  status.String(),
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, ev Event) {
	ev.ID = uuid.NewString()
	ev.OccurredAt = d.now().UTC()

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("notify: dispatcher closed, event dropped",
			slog.String("type", string(ev.Kind)), slog.String("order_id", ev.OrderID))
		return
	}

	select {
	case d.queue <- job{ev: ev, sc: trace.SpanContextFromContext(ctx)}:
	default:
		d.log.Warn("notify: queue full, event dropped",
			slog.String("type", string(ev.Kind)), slog.String("order_id", ev.OrderID))
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx := trace.ContextWithSpanContext(context.Background(), j.sc)
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	for _, sink := range d.sinks {
		d.deliverOne(ctx, sink, j.ev)
	}
}

// deliverOne contains a panicking sink so the worker and the remaining
// sinks keep running.
func (d *Dispatcher) deliverOne(ctx context.Context, sink Sink, ev Event) {
	ctx, span := d.tracer.Start(ctx, "notify.deliver", trace.WithAttributes(
		attribute.String("notify.sink", sink.Name()),
		attribute.String("notify.type", string(ev.Kind)),
		attribute.String("order.id", ev.OrderID),
	))
	defer span.End()

	fail := func(msg string, err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.log.Warn(msg,
			slog.String("sink", sink.Name()),
			slog.String("type", string(ev.Kind)),
			slog.String("order_id", ev.OrderID),
			slog.Any("err", err))
	}
	defer func() {
		if p := recover(); p != nil {
			fail("notify: sink panicked", fmt.Errorf("panic: %v", p))
		}
	}()

	if err := sink.Deliver(ctx, ev); err != nil {
		fail("notify: delivery failed", err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

// Close stops accepting events and waits for queued ones to be delivered,
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
