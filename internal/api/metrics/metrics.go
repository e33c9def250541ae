// Package metrics defines and registers the custom Prometheus metrics of the
// portfolio API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric of the API, including the per-route HTTP
// collectors the router registers.
const Namespace = "portfolio"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts accounts created.
// Label:
//   - role: "builder" or "manager"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_found" or "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - status: the initial status of the project
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by initial status.",
	},
	[]string{"status"},
)

// ProjectStatusUpdatesTotal counts builder status changes.
// Label:
//   - result: "applied" or "rejected"
var ProjectStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "project_status_updates_total",
		Help:      "Total number of project status update attempts, by result.",
	},
	[]string{"result"},
)

// ProjectDeletionsTotal counts manager delete requests.
// Label:
//   - result: "deleted" or "rejected"
var ProjectDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "project_deletions_total",
		Help:      "Total number of project delete attempts, by result.",
	},
	[]string{"result"},
)

// StoredProjects tracks how many projects are currently held.
var StoredProjects = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "stored_projects",
		Help:      "Current number of projects in the repository.",
	},
)

// Result label values shared by handlers.
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultDeleted  = "deleted"
)
