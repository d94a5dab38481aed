// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"

	"github.com/vechain/stakepool/api/admin"
	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/pool"
)

// StartAdminServer binds the operator surface to addr and serves it until
// the returned closer runs.
func StartAdminServer(
	addr string,
	logLevel *slog.LevelVar,
	tracker *health.Health,
	svc *pool.Service,
	metricsOn bool,
) (string, func(), error) {
	return startServer("admin API", addr, "/admin", admin.New(logLevel, tracker, svc, metricsOn))
}
