/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/profilekit/profilectl/pkg/errors"
)

// serveMetrics exposes the process Prometheus registry on addr under
// /metrics for the duration of a run. It returns the bound address
// (addr may carry port 0) and a shutdown function that stops the
// listener.
func serveMetrics(addr string) (string, func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot listen on %s", addr), err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux}

	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("metrics listener failed", "error", serveErr)
		}
	}()

	slog.Info("serving metrics", "addr", ln.Addr().String())
	return ln.Addr().String(), srv.Shutdown, nil
}
