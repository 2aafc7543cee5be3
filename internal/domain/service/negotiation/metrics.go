package negotiation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "startupconnect",
	Subsystem: "workflow",
	Name:      "attempts_total",
	Help:      "Workflow attempts by kind and outcome.",
}, []string{"kind", "result"})
