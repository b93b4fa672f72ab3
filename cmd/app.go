package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wanderergaurav/Varuna-marine/api"
	"github.com/wanderergaurav/Varuna-marine/config"
	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/infrastructure"
	"github.com/wanderergaurav/Varuna-marine/infrastructure/observability"
	"github.com/wanderergaurav/Varuna-marine/memstore"
	"github.com/wanderergaurav/Varuna-marine/repository"
	"github.com/wanderergaurav/Varuna-marine/service"
)

// App is the wired ledger: storage backend, event fan-out and services
type App struct {
	Services api.Services
	Metrics  *observability.MetricsProvider

	closers []func(context.Context)
}

// Bootstrap connects the storage backend and wires the services on top of it
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	catalog, err := memstore.LoadRouteCatalog(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load route catalog: %w", err)
	}
	resolver := service.NewRouteResolver(catalog.ShipRoutes)

	log.Info("Initializing event bus...")
	eventBus := events.NewBus()

	log.Info("Initializing metrics...")
	app.Metrics = observability.NewMetricsProvider(cfg)
	if err := app.Metrics.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	app.Metrics.ObserveBus(eventBus)
	app.closers = append(app.closers, func(ctx context.Context) {
		if err := app.Metrics.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Error shutting down metrics provider")
		}
	})

	if cfg.NATSEnabled {
		if err := app.connectNATS(ctx, cfg, eventBus); err != nil {
			app.Close(ctx)
			return nil, err
		}
	}

	var uowFactory service.UnitOfWorkFactory
	if cfg.UsesMemoryBackend() {
		log.WithField("routes", len(catalog.Routes)).Info("Using in-memory storage backend")
		store := memstore.NewStore(catalog.Models())
		uowFactory = memstore.NewUnitOfWorkFactory(store, eventBus)
	} else {
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.closers = append(app.closers, func(context.Context) {
			log.Info("Closing database connection...")
			db.Close()
		})
		log.Info("Database connection established successfully")
		uowFactory = repository.NewUnitOfWorkFactory(db, eventBus)
	}

	app.Services = api.Services{
		Routes:     service.NewRouteService(uowFactory),
		Compliance: service.NewComplianceService(uowFactory, resolver),
		Banking:    service.NewBankingService(uowFactory, resolver),
		Pools:      service.NewPoolService(uowFactory, resolver),
	}
	log.Info("Services initialized successfully")

	return app, nil
}

func (a *App) connectNATS(ctx context.Context, cfg *config.Config, eventBus *events.Bus) error {
	log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	a.closers = append(a.closers, func(context.Context) {
		if err := client.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	})

	mapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureLedgerEventStream(client, mapper); err != nil {
		return err
	}

	infrastructure.NewNATSEventPublisher(client, mapper, a.Metrics).Forward(eventBus)
	log.Info("Forwarding ledger events to NATS")
	return nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
	a.closers = nil
}
