// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin assembles the operator surface served on the admin
// listener: mutating pool operations, runtime log level, health and the
// metrics endpoint. It is meant to be bound to localhost.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	healthAPI "github.com/vechain/stakepool/api/admin/health"
	"github.com/vechain/stakepool/api/admin/loglevel"
	"github.com/vechain/stakepool/api/admin/ops"
	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/pool"
)

func New(logLevel *slog.LevelVar, tracker *health.Health, svc *pool.Service, metricsOn bool) http.HandlerFunc {
	router := mux.NewRouter()

	loglevel.New(logLevel).Mount(router, "/admin/loglevel")
	healthAPI.New(tracker).Mount(router, "/admin/health")
	ops.New(svc).Mount(router, "/admin/ops")
	if metricsOn {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
