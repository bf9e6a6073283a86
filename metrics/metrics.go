// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the kiosk's Prometheus instruments.
type Metrics struct {
	TeamsRegistered prometheus.Counter
	Submissions     *prometheus.CounterVec
	ModeTransitions prometheus.Counter
	CatalogSize     prometheus.Gauge
}

// New registers the kiosk metrics against reg and returns them. Tests pass
// their own registry so repeated construction never panics on duplicates.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TeamsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "scavenged_teams_registered_total",
			Help: "Number of teams registered since boot.",
		}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scavenged_submissions_total",
			Help: "Codeword submissions by outcome.",
		}, []string{"result"}),
		ModeTransitions: factory.NewCounter(prometheus.CounterOpts{
			Name: "scavenged_mode_transitions_total",
			Help: "Number of mode switches since boot.",
		}),
		CatalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scavenged_catalog_checkpoints",
			Help: "Checkpoints currently in the catalog.",
		}),
	}
}
