package observability

// Metric name prefixes
const (
	MetricPrefix = "varuna_ledger"
)

// Metric names
const (
	// Ledger metrics
	LedgerEventsTotal  = MetricPrefix + ".ledger.events_total"
	PoolMembersTotal   = MetricPrefix + ".pools.members_total"
	PoolTransferAmount = MetricPrefix + ".pools.transferred_gco2eq"
	BankedAmount       = MetricPrefix + ".banking.banked_gco2eq"

	// HTTP metrics
	HTTPRequestsTotal   = MetricPrefix + ".http.requests_total"
	HTTPRequestDuration = MetricPrefix + ".http.request_duration"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelEventType = "event_type"
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
)
