package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/avi3tal/flowguard/pkg/validation"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowguard_validations_total",
		Help: "Validation requests processed, partitioned by outcome.",
	}, []string{"outcome"})

	findingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowguard_findings_total",
		Help: "Findings produced across all validations, partitioned by code.",
	}, []string{"code"})
)

func observeResult(res validation.Result) {
	outcome := "valid"
	if !res.Valid {
		outcome = "invalid"
	}
	validationsTotal.WithLabelValues(outcome).Inc()

	for _, f := range res.Errors {
		findingsTotal.WithLabelValues(string(f.Code)).Inc()
	}
	for _, f := range res.Warnings {
		findingsTotal.WithLabelValues(string(f.Code)).Inc()
	}
}
