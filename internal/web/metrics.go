package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vectoroids_websocket_connections_active",
		Help: "Currently connected players",
	})

	wsMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vectoroids_websocket_messages_total",
		Help: "WebSocket messages by direction and type",
	}, []string{"direction", "type"}) // Bounded: in/out x message types

	wsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vectoroids_websocket_rejected_total",
		Help: "Connections and messages turned away",
	}, []string{"reason"}) // Bounded: "upgrade", "rate_limit", "invalid", "slow_client"
)
