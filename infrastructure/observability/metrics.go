package observability

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/wanderergaurav/Varuna-marine/config"
	"github.com/wanderergaurav/Varuna-marine/events"
)

// MetricsProvider manages OpenTelemetry metrics for the ledger service
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	ledgerEventsCounter          metric.Int64Counter
	poolMembersCounter           metric.Int64Counter
	poolTransferCounter          metric.Float64Counter
	bankedAmountCounter          metric.Float64Counter
	httpRequestsCounter          metric.Int64Counter
	httpRequestDurationHist      metric.Float64Histogram
	natsMessagesPublishedCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.markInitialized()
		return nil
	}

	var (
		exporter sdkmetric.Exporter
		err      error
	)
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.markInitialized()
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
	)
	if err := mp.initializeWithReader(reader); err != nil {
		return err
	}

	// Set as global meter provider
	otel.SetMeterProvider(mp.meterProvider)

	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) initializeWithReader(reader sdkmetric.Reader) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	mp.meter = mp.meterProvider.Meter("varuna-ledger")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	return nil
}

func (mp *MetricsProvider) markInitialized() {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.initialized = true
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.ledgerEventsCounter, err = mp.meter.Int64Counter(
		LedgerEventsTotal,
		metric.WithDescription("Total number of committed ledger events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger events counter: %w", err)
	}

	mp.poolMembersCounter, err = mp.meter.Int64Counter(
		PoolMembersTotal,
		metric.WithDescription("Total number of ships placed in pools"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pool members counter: %w", err)
	}

	mp.poolTransferCounter, err = mp.meter.Float64Counter(
		PoolTransferAmount,
		metric.WithDescription("Compliance balance moved from donors to receivers by pools"),
		metric.WithUnit("gCO2eq"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pool transfer counter: %w", err)
	}

	mp.bankedAmountCounter, err = mp.meter.Float64Counter(
		BankedAmount,
		metric.WithDescription("Compliance surplus moved into the bank"),
		metric.WithUnit("gCO2eq"),
	)
	if err != nil {
		return fmt.Errorf("failed to create banked amount counter: %w", err)
	}

	mp.httpRequestsCounter, err = mp.meter.Int64Counter(
		HTTPRequestsTotal,
		metric.WithDescription("Total number of HTTP requests served"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP requests counter: %w", err)
	}

	mp.httpRequestDurationHist, err = mp.meter.Float64Histogram(
		HTTPRequestDuration,
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request duration histogram: %w", err)
	}

	mp.natsMessagesPublishedCounter, err = mp.meter.Int64Counter(
		NATSMessagesPublishedTotal,
		metric.WithDescription("Total number of NATS messages published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create NATS messages published counter: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// ObserveBus records every ledger event committed through the bus
func (mp *MetricsProvider) ObserveBus(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		mp.RecordLedgerEvent(ctx, event)
	})
}

// RecordLedgerEvent counts a committed ledger event and the amounts it moved
func (mp *MetricsProvider) RecordLedgerEvent(ctx context.Context, event events.Event) {
	if !mp.isEnabled() {
		return
	}

	mp.ledgerEventsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, string(event.Type())),
		),
	)

	switch e := event.(type) {
	case events.SurplusBankedEvent:
		amount, _ := e.Amount.Float64()
		mp.bankedAmountCounter.Add(ctx, amount)
	case events.PoolCreatedEvent:
		mp.poolMembersCounter.Add(ctx, int64(e.MemberCount))
		transferred, _ := e.Transferred.Float64()
		mp.poolTransferCounter.Add(ctx, transferred)
	}
}

// RecordHTTPRequest records a served request with its duration
func (mp *MetricsProvider) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelMethod, method),
		attribute.String(LabelRoute, route),
		attribute.String(LabelStatus, strconv.Itoa(status)),
	)

	mp.httpRequestsCounter.Add(context.Background(), 1, attrs)
	mp.httpRequestDurationHist.Record(context.Background(), duration.Seconds(), attrs)
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// isEnabled checks if metrics are enabled and initialized
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}
