package loop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vectoroids_tick_duration_seconds",
		Help:    "Time spent simulating one tick",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.016},
	})

	repaintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vectoroids_repaints_total",
		Help: "Repaint requests by outcome",
	}, []string{"result"}) // Bounded: "drawn", "dropped", "failed"

	controllersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vectoroids_controllers_active",
		Help: "Controllers between initialize and dispose",
	})

	roundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vectoroids_rounds_total",
		Help: "Rounds started",
	})
)
