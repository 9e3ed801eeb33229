/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profilectl_render_duration_seconds",
			Help:    "Time taken to render all artifacts for a profile",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profilectl_renders_total",
			Help: "Total number of render attempts",
		},
		[]string{"status"}, // success or error
	)
)
