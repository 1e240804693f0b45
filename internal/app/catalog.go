package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Catalog serves the product list with simulated latency.
type Catalog struct {
	ctx        context.Context
	cfg        config.Config
	lc         lifecycle
	reader     port.ProductsReader
	handler    http.Handler
	httpServer httphandler.HTTPServer
}

func NewCatalog(ctx context.Context, cfg config.Config) *Catalog {
	app := &Catalog{ctx: ctx, cfg: cfg, lc: newLifecycle(ctx)}

	initLogger(cfg.LogLevel)
	app.initReader()
	app.handler = httphandler.NewCatalogRouter(app.reader, cfg.Catalog.Latency)
	app.httpServer = httphandler.NewHTTPServer(cfg.Catalog.HTTPServerAddr, app.handler)

	return app
}

func (app *Catalog) initReader() {
	const op = "Catalog.initReader"
	log := slog.With("op", op)

	if app.cfg.Catalog.Source != config.SourcePostgres {
		app.reader = catalog.NewMemoryReader(catalog.SeedProducts())
		log.Info("serving seed catalog from memory")
		return
	}

	db, err := storage.NewSQLDB(app.cfg.Catalog.SQLDB)
	if err != nil {
		fallDown(op, err)
	}
	if err := pingWithRetry(app.ctx, db.Ping); err != nil {
		db.Close()
		fallDown(op, err)
	}
	app.lc.onClose(db.Close)

	repo := storage.NewProductsRepository(db)
	if app.cfg.Catalog.SeedSQL {
		if err := repo.StoreProducts(app.ctx, catalog.SeedProducts()); err != nil {
			fallDown(op, err)
		}
		log.Info("seed catalog stored")
	}
	app.reader = repo
}

func (app *Catalog) Run(stop context.CancelFunc) {
	app.lc.goRun(app.httpServer.Run)
	app.lc.watch(stop)

	slog.Info("catalog is running")
}

func (app *Catalog) Close(ctx context.Context) {
	slog.Info("catalog is closing...")

	app.httpServer.Close(ctx)
	app.lc.closeAll()

	slog.Info("catalog is closed")
}
