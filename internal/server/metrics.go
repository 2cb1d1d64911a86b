package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arc59_transfers_total",
		Help: "Transfer attempts by outcome.",
	}, []string{"outcome"})

	directoryPassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arc59_directory_passes_total",
		Help: "Asset directory passes by outcome.",
	}, []string{"outcome"})
)
