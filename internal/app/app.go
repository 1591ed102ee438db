// Package app wires the client together: configuration, API client, session,
// entity stores, aggregators and persistence live in one explicit container
// with a clear initialization and teardown boundary. Nothing here is a
// package-level singleton; tests build as many containers as they like.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ssegura/abasto/internal/alerts"
	"github.com/ssegura/abasto/internal/api"
	"github.com/ssegura/abasto/internal/config"
	"github.com/ssegura/abasto/internal/loading"
	"github.com/ssegura/abasto/internal/models"
	"github.com/ssegura/abasto/internal/persist"
	"github.com/ssegura/abasto/internal/session"
	"github.com/ssegura/abasto/internal/store"
	"github.com/ssegura/abasto/internal/ui"
)

// App is the assembled client.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Client  *api.Client
	Persist *persist.Manager
	Session *session.Store
	Loading *loading.Tracker
	Alerts  *alerts.Center

	Products   *store.Store[models.Product]
	Sales      *store.Store[models.Sale]
	Deliveries *store.Store[models.Delivery]
	Suppliers  *store.Store[models.Supplier]
	Customers  *store.Store[models.Customer]
	Employees  *store.Store[models.Employee]

	closeLog func() error
}

// New builds the container and rehydrates persisted state.
func New(cfg config.Config) (*App, error) {
	pm, err := persist.NewManager(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("init state dir: %w", err)
	}

	log, closeLog, err := newLogger(cfg, pm.Dir())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := api.NewClient(cfg.APIURL)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Client:   client,
		Persist:  pm,
		Session:  session.New(client, pm, log),
		Loading:  &loading.Tracker{},
		Alerts:   alerts.NewCenter(),
		closeLog: closeLog,
	}

	a.Products = newStore[models.Product](a, "products")
	a.Sales = newStore[models.Sale](a, "sales")
	a.Deliveries = newStore[models.Delivery](a, "deliveries")
	a.Suppliers = newStore[models.Supplier](a, "suppliers")
	a.Customers = newStore[models.Customer](a, "customers")
	a.Employees = newStore[models.Employee](a, "employees")

	if cache, ok := pm.LoadCache(); ok {
		a.Products.Hydrate(cache.Products)
		a.Sales.Hydrate(cache.Sales)
		a.Deliveries.Hydrate(cache.Deliveries)
		a.Suppliers.Hydrate(cache.Suppliers)
		a.Customers.Hydrate(cache.Customers)
		a.Employees.Hydrate(cache.Employees)
	}

	return a, nil
}

func newStore[T store.Record](a *App, name string) *store.Store[T] {
	backend := api.NewResource[T](a.Client, name)
	return store.New[T](name, backend, a.Session, a.Loading, a.Alerts, a.Log)
}

// StartBackground launches the periodic session checker.
func (a *App) StartBackground(ctx context.Context) {
	a.Session.StartChecker(ctx, a.Config.SessionCheckEvery)
}

// SaveCache persists the current entity lists.
func (a *App) SaveCache() error {
	return a.Persist.SaveCache(persist.CacheState{
		Products:   a.Products.Snapshot().Items,
		Sales:      a.Sales.Snapshot().Items,
		Deliveries: a.Deliveries.Snapshot().Items,
		Suppliers:  a.Suppliers.Snapshot().Items,
		Customers:  a.Customers.Snapshot().Items,
		Employees:  a.Employees.Snapshot().Items,
	})
}

// Close flushes and releases resources.
func (a *App) Close() error {
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}

// Run boots the client TUI until the context is cancelled or the user quits,
// saving the entity cache on the way out.
func Run(ctx context.Context, cfg config.Config) error {
	a, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	a.StartBackground(ctx)

	uiErr := ui.Run(ui.Options{
		Context:    ctx,
		Log:        a.Log,
		Session:    a.Session,
		Loading:    a.Loading,
		Alerts:     a.Alerts,
		Products:   a.Products,
		Sales:      a.Sales,
		Deliveries: a.Deliveries,
		Suppliers:  a.Suppliers,
		Customers:  a.Customers,
		Employees:  a.Employees,
	})

	if err := a.SaveCache(); err != nil {
		a.Log.Warn("persist entity cache failed", "err", err)
	}
	return uiErr
}
