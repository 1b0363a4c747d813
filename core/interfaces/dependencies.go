// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache stores catalog responses; nil disables caching
	Cache Cache

	// HTTPClient performs upstream requests
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics records upstream and cache activity; nil disables recording
	Metrics Metrics
}

// LoggerOrNop returns the configured logger or a discarding one
func (d Dependencies) LoggerOrNop() Logger {
	if d.Logger == nil {
		return NopLogger{}
	}
	return d.Logger
}

// MetricsOrNop returns the configured metrics recorder or a discarding one
func (d Dependencies) MetricsOrNop() Metrics {
	if d.Metrics == nil {
		return NopMetrics{}
	}
	return d.Metrics
}
