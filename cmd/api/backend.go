package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc/status"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/notify"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	ordermem "github.com/dwikikusuma/storefront/internal/order/infra/memory"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

type backend struct {
	db *sql.DB // nil for the memory store

	products catalogapp.ProductRepo
	carts    cartapp.CartRepo
	uow      orderapp.UnitOfWork
	orders   orderapp.OrderReader
}

func (b backend) close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (backend, error) {
	switch cfg.Store {
	case "memory":
		log.Warn("using in-memory store, data is lost on exit")
		products := catalogmem.NewProductRepo()
		carts := cartmem.NewCartRepo()
		store := ordermem.NewStore(carts, products)
		return backend{products: products, carts: carts, uow: store, orders: store}, nil

	case "postgres":
		db, err := postgres.Open(postgres.Config{
			Host:         cfg.Postgres.Host,
			Port:         cfg.Postgres.Port,
			User:         cfg.Postgres.User,
			Pass:         cfg.Postgres.Pass,
			DB:           cfg.Postgres.DB,
			SSLMode:      cfg.Postgres.SSLMode,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
		})
		if err != nil {
			return backend{}, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return backend{}, err
		}
		return backend{
			db:       db,
			products: catalogpg.NewProductRepo(db),
			carts:    cartpg.NewCartRepo(db),
			uow:      orderpg.NewUnitOfWork(db, cfg.TxTimeout),
			orders:   orderpg.NewOrderRepo(db),
		}, nil

	default:
		return backend{}, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
}

// buildSinks turns NOTIFY_SINKS into sinks. The returned func closes the
// broker connections.
func buildSinks(cfg config.Notify, db *sql.DB, log *slog.Logger) ([]notify.Sink, func() error, error) {
	var (
		sinks   []notify.Sink
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	for _, name := range cfg.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, notify.NewLogSink(log.With("component", "notify")))
		case "kafka":
			k := notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
			sinks = append(sinks, k)
			closers = append(closers, k.Close)
		case "rabbitmq":
			r, err := notify.DialRabbit(cfg.RabbitURL, cfg.RabbitExchange)
			if err != nil {
				_ = closeAll()
				return nil, nil, err
			}
			sinks = append(sinks, r)
			closers = append(closers, r.Close)
		case "sendgrid":
			if db == nil {
				log.Warn("sendgrid sink needs the postgres store for recipients, skipped")
				continue
			}
			if cfg.SendGridKey == "" {
				log.Warn("SENDGRID_API_KEY is empty, sendgrid sink skipped")
				continue
			}
			sinks = append(sinks, notify.NewSendGridSink(cfg.SendGridKey, cfg.MailFrom, notify.NewSQLRecipients(db)))
		default:
			_ = closeAll()
			return nil, nil, fmt.Errorf("unknown notify sink %q", name)
		}
	}
	return sinks, closeAll, nil
}

func statusCode(err error) string {
	return status.Code(err).String()
}
