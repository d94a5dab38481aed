// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
)

// Staking exposes the pool ledger for read.
type Staking struct {
	svc *pool.Service
}

func New(svc *pool.Service) *Staking {
	return &Staking{svc}
}

func (s *Staking) handleGetStatus(w http.ResponseWriter, req *http.Request) error {
	var now uint64
	if nowParam := req.URL.Query().Get("now"); nowParam != "" {
		parsed, err := strconv.ParseUint(nowParam, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "now"))
		}
		now = parsed
	}

	params := s.svc.Params()
	totalSupply, err := s.svc.TotalSupply()
	if err != nil {
		return err
	}
	info, err := s.svc.RewardInfo(now)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Status{
		Address:        s.svc.Address(),
		CustodianToken: params.Custodian,
		RewardToken:    params.RewardToken,
		Authority:      params.Authority,
		PhaseDuration:  params.PhaseDuration,
		TotalSupply:    hexOrDecimal(totalSupply),
		LastBoundary:   info.LastBoundary,
		CurrentPhase:   info.CurrentPhase,
		ProjectedPhase: info.ProjectedPhase,
	})
}

func (s *Staking) handleGetSupplies(w http.ResponseWriter, _ *http.Request) error {
	points, err := s.svc.ValidSupplies()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertSupplyPoints(points))
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := stakepool.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	info, err := s.svc.UserInfo(*addr)
	if err != nil {
		return err
	}
	custodianBalance, rewardBalance, err := s.svc.Balances(*addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &AccountInfo{
		Balance:          hexOrDecimal(info.Balance),
		Rewarded:         hexOrDecimal(info.Rewarded),
		Unpaid:           hexOrDecimal(info.Unpaid),
		CustodianBalance: hexOrDecimal(custodianBalance),
		RewardBalance:    hexOrDecimal(rewardBalance),
		Points:           convertSupplyPoints(info.Points),
	})
}

func (s *Staking) handleGetAccountHistory(w http.ResponseWriter, req *http.Request) error {
	addr, err := stakepool.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var from uint64
	if fromParam := req.URL.Query().Get("from"); fromParam != "" {
		from, err = strconv.ParseUint(fromParam, 10, 32)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "from"))
		}
	}
	entries, err := s.svc.UserDistHistory(*addr, uint32(from))
	if err != nil {
		if errors.Is(err, pool.ErrInvalidRange) {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertHistory(entries))
}

func (s *Staking) handleGetDistributions(w http.ResponseWriter, req *http.Request) error {
	var from, limit uint64
	var err error
	if fromParam := req.URL.Query().Get("from"); fromParam != "" {
		from, err = strconv.ParseUint(fromParam, 10, 32)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "from"))
		}
	}
	if limitParam := req.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.ParseUint(limitParam, 10, 32)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "limit"))
		}
	}
	dists, err := s.svc.Distributions(uint32(from), uint32(limit))
	if err != nil {
		return err
	}
	converted := make([]*Distribution, len(dists))
	for i, dist := range dists {
		converted[i] = convertDistribution(dist)
	}
	return utils.WriteJSON(w, converted)
}

func (s *Staking) handleGetDistribution(w http.ResponseWriter, req *http.Request) error {
	phaseNum, err := strconv.ParseUint(mux.Vars(req)["phase"], 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "phase"))
	}
	dist, err := s.svc.Distribution(uint32(phaseNum))
	if err != nil {
		return err
	}
	if dist == nil {
		return utils.WriteJSON(w, nil)
	}
	return utils.WriteJSON(w, convertDistribution(dist))
}

func (s *Staking) handleGetOperators(w http.ResponseWriter, _ *http.Request) error {
	operators, err := s.svc.Operators()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertOperators(operators))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStatus))
	sub.Path("/supplies").
		Methods(http.MethodGet).
		Name("GET /staking/supplies").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSupplies))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/accounts/{address}/history").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/history").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccountHistory))
	sub.Path("/distributions").
		Methods(http.MethodGet).
		Name("GET /staking/distributions").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetDistributions))
	sub.Path("/distributions/{phase}").
		Methods(http.MethodGet).
		Name("GET /staking/distributions/{phase}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetDistribution))
	sub.Path("/operators").
		Methods(http.MethodGet).
		Name("GET /staking/operators").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetOperators))
}
