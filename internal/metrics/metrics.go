// Package metrics defines and registers all custom Prometheus metrics for the
// pedidos API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto); HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pedidos"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderTransitionsTotal counts status changes applied to orders.
// Labels:
//   - from: previous status (e.g. "solicitado")
//   - to: new status (e.g. "descargado")
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"from", "to"},
)

// OrderRejectionsTotal counts order mutations refused by the lifecycle rules.
// Label:
//   - reason: "invalid_transition" or "captured"
var OrderRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_rejections_total",
		Help:      "Total number of order mutations rejected by the lifecycle rules.",
	},
	[]string{"reason"},
)

// OrderCancellationsTotal counts cancel/reactivate toggles.
// Label:
//   - cancelled: "true" for cancel, "false" for reactivate
var OrderCancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_cancellations_total",
		Help:      "Total number of cancel and reactivate operations.",
	},
	[]string{"cancelled"},
)

// IdempotentReplaysTotal counts order creations answered from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_idempotent_replays_total",
		Help:      "Total number of order creations replayed from an Idempotency-Key.",
	},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UserRegistrationsTotal counts registration attempts.
// Labels:
//   - rol: requested role
//   - result: "ok" or "rolled_back"
var UserRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_registrations_total",
		Help:      "Total number of user registrations, by role and result.",
	},
	[]string{"rol", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SagaCompensationsTotal counts compensating actions executed on rollback.
// Labels:
//   - step: name of the undone step (e.g. "delete_user", "remove_image")
//   - result: "ok" or "failed" (a failed compensation leaves an orphan behind)
var SagaCompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_compensations_total",
		Help:      "Total number of compensating actions run during rollbacks.",
	},
	[]string{"step", "result"},
)
