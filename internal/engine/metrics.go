package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hecate",
		Name:      "dispatches_total",
		Help:      "Inputs dispatched, by resulting action.",
	}, []string{"accion"})
	metricCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hecate",
		Name:      "commands_total",
		Help:      "Menu commands executed, by command.",
	}, []string{"comando"})
	metricChildren = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hecate",
		Name:      "child_actas_total",
		Help:      "Child records generated.",
	})
	metricLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hecate",
		Name:      "level",
		Help:      "Current Testiateria level.",
	})
)
