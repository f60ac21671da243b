package driver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drivermgr",
			Subsystem: "lookup",
			Name:      "lookups_total",
			Help:      "Total number of driver lookups by outcome.",
		},
		[]string{"outcome"},
	)
	lookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "drivermgr",
			Subsystem: "lookup",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of driver lookups by outcome.",
		},
		[]string{"outcome"},
	)
	probeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drivermgr",
			Subsystem: "oracle",
			Name:      "probes_total",
			Help:      "Total number of local package probes by result.",
		},
		[]string{"result"},
	)
)
