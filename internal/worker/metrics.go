package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var pollCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "startupconnect",
	Subsystem: "poll",
	Name:      "cycles_total",
	Help:      "Poll fetch cycles by key and outcome.",
}, []string{"key", "result"})
