package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	syncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbrbot_sync_runs_total",
			Help: "Total number of rate feed sync runs",
		},
		[]string{"result"},
	)

	syncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cbrbot_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last successful rate feed sync",
		},
	)

	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbrbot_commands_total",
			Help: "Total number of handled chat commands",
		},
		[]string{"command", "result"},
	)
)

func ObserveSync(err error, at time.Time) {
	if err != nil {
		syncRunsTotal.WithLabelValues(ResultFailure).Inc()
		return
	}
	syncRunsTotal.WithLabelValues(ResultSuccess).Inc()
	syncLastSuccess.Set(float64(at.Unix()))
}

func ObserveCommand(command string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	commandsTotal.WithLabelValues(command, result).Inc()
}
