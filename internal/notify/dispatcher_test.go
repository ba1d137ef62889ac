package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/goleak"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

type captureSink struct {
	name string
	err  error
	gate chan struct{}

	mu     sync.Mutex
	events []Event
	traces []trace.TraceID
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Deliver(ctx context.Context, ev Event) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	s.traces = append(s.traces, trace.SpanContextFromContext(ctx).TraceID())
	return s.err
}

func (s *captureSink) got() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func opts() Options {
	return Options{Workers: 2, Queue: 16, Timeout: time.Second, Logger: logger.Discard()}
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	failing := &captureSink{name: "broken", err: errors.New("boom")}
	ok := &captureSink{name: "ok"}
	d := NewDispatcher([]Sink{failing, ok}, opts())

	d.NotifyOrderPlaced(context.Background(), "u1", "o1", 4200, "IDR")
	d.NotifyStatusChanged(context.Background(), "u1", "o1", domain.StatusShipped)
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, failing.got(), 2)
	events := ok.got()
	require.Len(t, events, 2)

	byKind := map[Kind]Event{}
	for _, ev := range events {
		byKind[ev.Kind] = ev
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.OccurredAt.IsZero())
	}
	placed := byKind[KindOrderPlaced]
	assert.Equal(t, "o1", placed.OrderID)
	assert.Equal(t, int64(4200), placed.TotalAmount)
	assert.Equal(t, "IDR", placed.Currency)
	assert.Equal(t, "pending", placed.Status)
	assert.Equal(t, "shipped", byKind[KindStatusChanged].Status)
}

type panicSink struct{}

func (panicSink) Name() string { return "panicky" }

func (panicSink) Deliver(context.Context, Event) error { panic("nil map write") }

func TestDispatcher_SinkPanicIsContained(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	after := &captureSink{name: "ok"}
	o := opts()
	o.Workers = 1
	o.TracerProvider = tp
	d := NewDispatcher([]Sink{panicSink{}, after}, o)

	d.NotifyOrderPlaced(context.Background(), "u1", "o1", 1, "IDR")
	d.NotifyOrderPlaced(context.Background(), "u1", "o2", 1, "IDR")
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, after.got(), 2)

	var failed int
	for _, s := range sr.Ended() {
		if s.Name() == "notify.deliver" && s.Status().Code == codes.Error {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	gate := make(chan struct{})
	sink := &captureSink{name: "slow", gate: gate}
	d := NewDispatcher([]Sink{sink}, Options{Workers: 1, Queue: 1, Timeout: 5 * time.Second, Logger: logger.Discard()})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			d.NotifyOrderPlaced(context.Background(), "u", "o", 1, "IDR")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked the caller")
	}

	close(gate)
	require.NoError(t, d.Close(context.Background()))
	n := len(sink.got())
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 2)
}

func TestDispatcher_TimeoutBoundsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	sink := &captureSink{name: "stuck", gate: make(chan struct{})}
	d := NewDispatcher([]Sink{sink}, Options{Workers: 1, Queue: 1, Timeout: 20 * time.Millisecond, Logger: logger.Discard()})

	d.NotifyOrderPlaced(context.Background(), "u", "o", 1, "IDR")
	require.NoError(t, d.Close(context.Background()))
	assert.Empty(t, sink.got())
}

func TestDispatcher_AfterCloseIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	sink := &captureSink{name: "ok"}
	d := NewDispatcher([]Sink{sink}, opts())
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	d.NotifyOrderPlaced(context.Background(), "u", "o", 1, "IDR")
	assert.Empty(t, sink.got())
}

func TestDispatcher_CloseHonorsContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	gate := make(chan struct{})
	sink := &captureSink{name: "slow", gate: gate}
	d := NewDispatcher([]Sink{sink}, Options{Workers: 1, Queue: 1, Timeout: 5 * time.Second, Logger: logger.Discard()})
	d.NotifyOrderPlaced(context.Background(), "u", "o", 1, "IDR")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(gate)
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_PropagatesTrace(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	sink := &captureSink{name: "ok"}
	o := opts()
	o.TracerProvider = tp
	d := NewDispatcher([]Sink{sink}, o)

	ctx, span := tp.Tracer("test").Start(context.Background(), "place")
	d.NotifyOrderPlaced(ctx, "u", "o", 1, "IDR")
	span.End()
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, sink.traces, 1)
	assert.Equal(t, span.SpanContext().TraceID(), sink.traces[0])

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "notify.deliver")
}
