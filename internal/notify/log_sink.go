package notify

import (
	"context"
	"log/slog"
)

type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(ctx context.Context, ev Event) error {
	s.log.InfoContext(ctx, "order event",
		slog.String("id", ev.ID),
		slog.String("type", string(ev.Kind)),
		slog.String("user_id", ev.UserID),
		slog.String("order_id", ev.OrderID),
		slog.String("status", ev.Status),
		slog.Int64("total_amount", ev.TotalAmount),
		slog.String("currency", ev.Currency),
	)
	return nil
}
