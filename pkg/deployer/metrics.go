/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deployStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profilectl_deploy_step_duration_seconds",
			Help:    "Time taken by each deployment pipeline step",
			Buckets: []float64{0.1, 1, 5, 15, 60, 300, 600},
		},
		[]string{"step"},
	)

	deploysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profilectl_deploys_total",
			Help: "Total number of deployment attempts",
		},
		[]string{"status"}, // success or error
	)
)
