package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreErrors counts key/value store failures by backend and operation.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lovecorner_store_errors_total",
		Help: "Total number of key/value store errors by backend and operation",
	}, []string{"backend", "operation"})

	// ReactionToggles counts applied reaction toggles by target kind and reaction kind.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lovecorner_reaction_toggles_total",
		Help: "Total number of reaction toggles by target and kind",
	}, []string{"target", "kind"})

	// NotificationFanouts counts notifications written to another user's log.
	NotificationFanouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lovecorner_notification_fanouts_total",
		Help: "Total number of reply notifications fanned out to comment authors",
	})
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The default registry rejects duplicate collectors, so the instance is
// created once and shared.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(service)
	})
	return promInst
}

// MetricsMiddleware wraps the Prometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
