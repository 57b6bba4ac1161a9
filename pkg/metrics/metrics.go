package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_events_consumed_total",
			Help: "Number of cart events fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_events_processed_total",
			Help: "Number of cart events applied successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_events_failed_total",
			Help: "Number of cart events failed to apply",
		},
		[]string{"topic"},
	)
	KafkaEventsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_events_skipped_total",
			Help: "Cart events committed without being applied",
		},
		[]string{"topic", "reason"}, // malformed|invalid_event|key_mismatch|invalid_session|unknown_product
	)
)

var (
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations applied",
		},
		[]string{"op"}, // add|remove|set_quantity|clear
	)
	CheckoutResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_checkouts_total",
			Help: "Checkout attempts by result",
		},
		[]string{"result"}, // empty|cancelled|completed
	)
	StorageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_storage_errors_total",
			Help: "Storage slot failures (load/persist)",
		},
		[]string{"op"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_cache_operations_total",
			Help: "Session cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_cache_size",
			Help: "Number of cart sessions currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов ничего не делает.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaEventsSkipped,
			CartMutations, CheckoutResults, StorageErrors,
			CacheOps, CacheSize,
		)
	})
}
