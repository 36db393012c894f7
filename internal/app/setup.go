// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/goinventory/internal/config"
	"github.com/abgdnv/goinventory/internal/service"
	"github.com/abgdnv/goinventory/internal/store"
	"github.com/abgdnv/goinventory/internal/transport/rest"
	"github.com/abgdnv/goinventory/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService   service.ProductService
	InventoryService service.InventoryService
	Logger           *slog.Logger
}

// SetupDependencies wires the stores and services. A nil dbPool selects the
// in-memory stores, used when no database is configured and in tests.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	var productStore store.ProductStore
	var inventoryStore store.InventoryStore
	if dbPool != nil {
		productStore = store.NewPgProductStore(dbPool)
		inventoryStore = store.NewPgInventoryStore(dbPool)
	} else {
		productStore = store.NewMemoryProductStore()
		inventoryStore = store.NewMemoryInventoryStore()
	}

	return &Dependencies{
		ProductService:   service.NewProductService(productStore, logger),
		InventoryService: service.NewInventoryService(inventoryStore, productStore, logger),
		Logger:           logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the inventory service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewProductHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
	inventoryHandler := rest.NewInventoryHandler(deps.InventoryService, deps.Logger)
	inventoryHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
