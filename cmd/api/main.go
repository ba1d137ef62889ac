package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/storefront/internal/catalog/grpc"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/storefront/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"

	"github.com/dwikikusuma/storefront/internal/notify"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	ordergrpc "github.com/dwikikusuma/storefront/internal/order/grpc"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/dwikikusuma/storefront/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	flush, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: "storefront-api",
		Env:         cfg.AppEnv,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
	})
	if err != nil {
		log.Error("telemetry setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Error("backend init failed", slog.String("store", cfg.Store), slog.Any("err", err))
		os.Exit(1)
	}
	defer b.close()

	sinks, closeSinks, err := buildSinks(cfg.Notify, b.db, log)
	if err != nil {
		log.Error("notify sinks init failed", slog.Any("err", err))
		os.Exit(1)
	}
	dispatcher := notify.NewDispatcher(sinks, notify.Options{
		Workers: cfg.Notify.Workers,
		Queue:   cfg.Notify.Queue,
		Timeout: cfg.Notify.Timeout,
		Logger:  log,
	})

	// Catalog
	catalogSvc := catalogapp.NewService(b.products)

	// Cart
	cartSvc := cartapp.NewService(b.carts, cartadapter.NewCatalogLookup(catalogSvc))

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, 10)

	// Order
	orderSvc := orderapp.NewService(b.uow, b.orders, dispatcher, orderapp.WithLogger(log))

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", addr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary(log)))
	catalogv1.RegisterCatalogServiceServer(grpcServer, cgrpc.NewServer(catalogSvc))
	cartv1.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(cartSvc))
	checkoutv1.RegisterCheckoutServiceServer(grpcServer, checkoutgrpc.NewServer(checkoutSvc))
	orderv1.RegisterOrderServiceServer(grpcServer, ordergrpc.NewServer(orderSvc))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	for _, name := range []string{"", catalogv1.ServiceName, cartv1.ServiceName, checkoutv1.ServiceName, orderv1.ServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("grpc starting", slog.String("addr", addr), slog.String("store", cfg.Store))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")
	hs.Shutdown()

	if !shutdown.Bounded(10*time.Second, grpcServer.GracefulStop, grpcServer.Stop) {
		log.Warn("graceful stop timeout, forcing stop")
	}
	wg.Wait()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Notify.Timeout)
	defer drainCancel()
	if err := dispatcher.Close(drainCtx); err != nil {
		log.Warn("notify drain incomplete", slog.Any("err", err))
	}
	if err := closeSinks(); err != nil {
		log.Warn("notify sink close failed", slog.Any("err", err))
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := flush(flushCtx); err != nil {
		log.Warn("telemetry flush failed", slog.Any("err", err))
	}

	log.Info("bye")
}

func logUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		lvl := slog.LevelDebug
		if err != nil {
			lvl = slog.LevelInfo
		}
		log.Log(ctx, lvl, "rpc",
			slog.String("method", info.FullMethod),
			slog.String("code", statusCode(err)),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp, err
	}
}
