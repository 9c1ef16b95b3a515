package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished HTTP requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_http_requests_total",
		Help: "Finished HTTP requests by route and status code",
	}, []string{"route", "code"})

	// StoreReads counts full-collection reads per collection.
	StoreReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_store_reads_total",
		Help: "Document store collection reads",
	}, []string{"collection"})

	// StoreWrites counts full-collection writes per collection.
	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_store_writes_total",
		Help: "Document store collection writes",
	}, []string{"collection"})

	// StoreWriteErrors counts failed collection writes per collection.
	StoreWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_store_write_errors_total",
		Help: "Failed document store collection writes",
	}, []string{"collection"})

	// AICalls counts outbound calls to the text-generation API by model.
	AICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_ai_calls_total",
		Help: "Outbound text-generation API calls by model",
	}, []string{"model"})

	// AICallErrors counts failed outbound calls by failure kind.
	AICallErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prepinsight_ai_call_errors_total",
		Help: "Failed text-generation API calls by kind",
	}, []string{"kind"})
)
