// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/health"
)

// how long the pool may run behind the clock before the endpoint reports 503
const defaultSettleTolerance = time.Hour

type API struct {
	tracker *health.Health
}

func New(tracker *health.Health) *API {
	return &API{tracker: tracker}
}

func (h *API) handleGetHealth(w http.ResponseWriter, req *http.Request) error {
	tolerance := defaultSettleTolerance
	if q := req.URL.Query().Get("tolerance"); q != "" {
		parsed, err := time.ParseDuration(q)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "tolerance"))
		}
		tolerance = parsed
	}

	acc, err := h.tracker.Status(tolerance)
	if err != nil {
		return err
	}

	if !acc.Healthy {
		// headers written after WriteHeader are dropped
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, acc)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
