package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	planGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ada",
			Name:      "plan_generations_total",
			Help:      "Count of diet plan generations by result.",
		},
		[]string{"result"},
	)

	planGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ada",
			Name:      "plan_generation_duration_seconds",
			Help:      "Latency of the generative service for diet plans.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80},
		},
	)

	storeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ada",
			Name:      "store_lookups_total",
			Help:      "Count of nearby-store lookups by result.",
		},
		[]string{"result"},
	)

	authEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ada",
			Name:      "auth_events_total",
			Help:      "Count of register, login and logout attempts by outcome.",
		},
		[]string{"event", "outcome"},
	)

	weightEntries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ada",
			Name:      "weight_entries_total",
			Help:      "Count of recorded weight entries.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(planGenerations, planGenerationDuration, storeLookups, authEvents, weightEntries)
	})
}

func ObservePlanGeneration(result string, elapsed time.Duration) {
	planGenerations.WithLabelValues(result).Inc()
	planGenerationDuration.Observe(elapsed.Seconds())
}

func IncStoreLookup(result string) {
	storeLookups.WithLabelValues(result).Inc()
}

func IncAuthEvent(event, outcome string) {
	authEvents.WithLabelValues(event, outcome).Inc()
}

func IncWeightEntry() {
	weightEntries.Inc()
}
