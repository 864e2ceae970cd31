// Package config defines the query server configuration and how it is loaded.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8081".
	Addr string `koanf:"addr"`

	// ElasticsearchAddresses lists the nodes the client connects to.
	ElasticsearchAddresses []string `koanf:"es_addresses"`
	ElasticsearchUsername  string   `koanf:"es_username"`
	ElasticsearchPassword  string   `koanf:"es_password"`

	// ElasticsearchWaitRetries and ElasticsearchWaitDelay bound the startup readiness wait.
	ElasticsearchWaitRetries int           `koanf:"es_wait_retries"`
	ElasticsearchWaitDelay   time.Duration `koanf:"es_wait_delay"`

	// SpanIndex holds the Jaeger spans used by every view except the all-errors view.
	SpanIndex string `koanf:"span_index"`

	// ErrorSpanIndex holds the Jaeger spans scanned by the all-errors view.
	ErrorSpanIndex string `koanf:"error_span_index"`

	// ServiceName is matched against process.serviceName.
	ServiceName string `koanf:"service_name"`

	// TransferOperation is the operation name of money transfers.
	TransferOperation string `koanf:"transfer_operation"`

	// PercentileOperations is the operation allow-list of the percentile view.
	PercentileOperations []string `koanf:"percentile_operations"`

	// PageSize is the fixed number of hits fetched per query.
	PageSize int `koanf:"page_size"`

	// QueryTimeout bounds a single backend query. Zero disables it.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":8081",
		ElasticsearchAddresses:   []string{"http://localhost:9200"},
		ElasticsearchWaitRetries: 30,
		ElasticsearchWaitDelay:   5 * time.Second,
		SpanIndex:                "jaeger-span-2024-07-22",
		ErrorSpanIndex:           "jaeger-span-2024-07-23",
		ServiceName:              "dotnet-bank-api",
		TransferOperation:        "POST Transactions/Transfer",
		PercentileOperations: []string{
			"POST Transactions/Transfer",
			"POST /api/v1/transactions/fee",
			"POST /api/v1/transactions/deposit",
			"POST /api/v1/transactions/withdraw",
			"POST /api/v1/transactions/refund",
			"POST /api/v1/transactions/payment",
		},
		PageSize: 1000,
	}
}
