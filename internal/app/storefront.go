package app

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/statestore"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const slotReadyTimeout = 30 * time.Second

// A Storefront serves the shopper facing API: listings, cart, wishlist,
// filter and checkout.
type Storefront struct {
	ctx        context.Context
	cfg        config.Config
	lc         lifecycle
	tlsConfig  *tls.Config
	slot       port.StateSlot
	orders     port.OrderPublisher
	handler    http.Handler
	httpServer httphandler.HTTPServer
}

// NewStorefront builds every component and panics when one of them
// cannot start.
func NewStorefront(ctx context.Context, cfg config.Config) *Storefront {
	app := &Storefront{ctx: ctx, cfg: cfg, lc: newLifecycle(ctx)}

	initLogger(cfg.LogLevel)
	app.initTLS()
	app.initStateSlot()
	app.initOrders()
	app.initHandler()
	app.httpServer = httphandler.NewHTTPServer(cfg.Storefront.HTTPServerAddr, app.handler)

	return app
}

func (app *Storefront) initTLS() {
	const op = "Storefront.initTLS"

	tlsConfig, err := brokerTLS(app.cfg)
	if err != nil {
		fallDown(op, err)
	}
	app.tlsConfig = tlsConfig
}

func (app *Storefront) initStateSlot() {
	const op = "Storefront.initStateSlot"
	log := slog.With("op", op)

	switch app.cfg.State.Slot {
	case config.SlotFile:
		slot, err := statestore.NewFileSlot(app.cfg.State.Dir)
		if err != nil {
			fallDown(op, err)
		}
		app.slot = slot

	case config.SlotRedis:
		slot, err := statestore.NewRedisSlot(app.cfg.State.RedisURL)
		if err != nil {
			fallDown(op, err)
		}
		if err := pingWithRetry(app.ctx, slot.Ping); err != nil {
			slot.Close()
			fallDown(op, err)
		}
		app.lc.onClose(slot.Close)
		app.slot = slot

	case config.SlotKafka:
		slot, err := kafka.NewStateSlot(kafka.StateSlotConfig{
			SeedBrokers: app.cfg.Broker.SeedBrokers,
			Stream:      app.cfg.Broker.Topics.StateSnapshots,
			Group:       app.cfg.Broker.StateGroup,
			TLSConfig:   app.tlsConfig,
		})
		if err != nil {
			fallDown(op, err)
		}
		app.lc.goRun(slot.Run)
		app.lc.onClose(slot.Close)

		ctx, cancel := context.WithTimeout(app.ctx, slotReadyTimeout)
		defer cancel()
		if err := slot.WaitReady(ctx); err != nil {
			fallDown(op, err)
		}
		app.slot = slot

	default:
		app.slot = statestore.NewMemorySlot()
	}

	log.Info("state slot is ready", "slot", app.cfg.State.Slot)
}

func (app *Storefront) initOrders() {
	const op = "Storefront.initOrders"

	if !app.cfg.Broker.PublishOrders {
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		fallDown(op, err)
	}

	topic := app.cfg.Broker.Topics.Orders
	serde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		fallDown(op, err)
	}

	producer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, topic, app.tlsConfig),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		fallDown(op, err)
	}
	app.lc.onClose(producer.Close)
	app.orders = producer
}

func (app *Storefront) initHandler() {
	const op = "Storefront.initHandler"

	cartCodec, err := schema.NewCartCodec(app.cfg.State.Codec)
	if err != nil {
		fallDown(op, err)
	}
	wishlistCodec, err := schema.NewWishlistCodec(app.cfg.State.Codec)
	if err != nil {
		fallDown(op, err)
	}

	fetcher, err := catalog.NewHTTPFetcher(app.cfg.Catalog.URL, nil)
	if err != nil {
		fallDown(op, err)
	}

	cart := service.NewCartStore(app.ctx, app.slot, cartCodec)
	wishlist := service.NewWishlistStore(app.ctx, app.slot, wishlistCodec)
	filter := service.NewFilterStore()
	checkout := service.NewCheckout(cart, app.orders)

	app.handler = httphandler.NewStorefrontRouter(httphandler.StorefrontDeps{
		Storefront: service.NewStorefront(service.NewCatalog(fetcher), cart, wishlist, filter),
		Cart:       cart,
		Wishlist:   wishlist,
		Filter:     filter,
		Checkout:   checkout,
	})
}

// Run starts the http server. stop is called when a background component
// fails.
func (app *Storefront) Run(stop context.CancelFunc) {
	app.lc.goRun(app.httpServer.Run)
	app.lc.watch(stop)

	slog.Info("storefront is running")
}

func (app *Storefront) Close(ctx context.Context) {
	slog.Info("storefront is closing...")

	app.httpServer.Close(ctx)
	app.lc.closeAll()

	slog.Info("storefront is closed")
}
