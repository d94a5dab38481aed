// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ops exposes the pool's mutating operations on the admin
// listener. It is the operator's surface; the public API stays read-only.
package ops

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
)

type Ops struct {
	svc *pool.Service
}

func New(svc *pool.Service) *Ops {
	return &Ops{svc}
}

// convertPoolError maps ledger sentinels onto HTTP statuses. Anything
// unrecognized stays a 500.
func convertPoolError(err error) error {
	switch {
	case errors.Is(err, pool.ErrUnauthorized):
		return utils.Forbidden(err)
	case errors.Is(err, pool.ErrInvalidAmount),
		errors.Is(err, pool.ErrInsufficientBalance),
		errors.Is(err, pool.ErrNotReady),
		errors.Is(err, pool.ErrReentrantCall),
		errors.Is(err, pool.ErrTransferFailed),
		errors.Is(err, pool.ErrOverflow):
		return utils.BadRequest(err)
	default:
		return err
	}
}

func (o *Ops) stakeResult(staker stakepool.Address) (*StakeResult, error) {
	info, err := o.svc.UserInfo(staker)
	if err != nil {
		return nil, err
	}
	return &StakeResult{
		Staker:  staker,
		Balance: hexOrDecimal(info.Balance),
	}, nil
}

func (o *Ops) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var sr StakeRequest
	if err := utils.ParseJSON(req.Body, &sr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := o.svc.Deposit(sr.Staker, amountOf(sr.Amount), sr.Timestamp); err != nil {
		return convertPoolError(err)
	}
	res, err := o.stakeResult(sr.Staker)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (o *Ops) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var sr StakeRequest
	if err := utils.ParseJSON(req.Body, &sr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := o.svc.Withdraw(sr.Staker, amountOf(sr.Amount), sr.Timestamp); err != nil {
		return convertPoolError(err)
	}
	res, err := o.stakeResult(sr.Staker)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (o *Ops) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var cr ClaimRequest
	if err := utils.ParseJSON(req.Body, &cr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	paid, err := o.svc.Claim(cr.Staker, cr.Timestamp)
	if err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, &ClaimResult{
		Staker: cr.Staker,
		Paid:   hexOrDecimal(paid),
	})
}

func (o *Ops) handleDistribute(w http.ResponseWriter, req *http.Request) error {
	var dr DistributeRequest
	if err := utils.ParseJSON(req.Body, &dr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	dist, err := o.svc.NotifyReward(dr.Operator, amountOf(dr.Amount), dr.Timestamp)
	if err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, &Distribution{
		Phase:       dist.Phase,
		Timestamp:   dist.Timestamp,
		Amount:      hexOrDecimal(dist.Amount),
		ValidSupply: hexOrDecimal(dist.ValidSupply),
	})
}

func (o *Ops) handleAddOperator(w http.ResponseWriter, req *http.Request) error {
	var or OperatorRequest
	if err := utils.ParseJSON(req.Body, &or); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	added, err := o.svc.AddOperator(or.Address, or.Identity)
	if err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, utils.M{"added": added})
}

func (o *Ops) handleRevokeOperator(w http.ResponseWriter, req *http.Request) error {
	addr, err := stakepool.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	revoked, err := o.svc.RevokeOperator(*addr)
	if err != nil {
		return convertPoolError(err)
	}
	return utils.WriteJSON(w, utils.M{"revoked": revoked})
}

func (o *Ops) handleMint(w http.ResponseWriter, req *http.Request) error {
	var mr MintRequest
	if err := utils.ParseJSON(req.Body, &mr); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if params := o.svc.Params(); mr.Token != params.Custodian && mr.Token != params.RewardToken {
		return utils.BadRequest(errors.Errorf("unknown token %v", mr.Token))
	}
	if err := o.svc.Mint(mr.Token, mr.Holder, amountOf(mr.Amount)); err != nil {
		return convertPoolError(err)
	}
	custodian, reward, err := o.svc.Balances(mr.Holder)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &BalancesResult{
		Holder:           mr.Holder,
		CustodianBalance: hexOrDecimal(custodian),
		RewardBalance:    hexOrDecimal(reward),
	})
}

func (o *Ops) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/deposits").
		Methods(http.MethodPost).
		Name("POST /ops/deposits").
		HandlerFunc(utils.WrapHandlerFunc(o.handleDeposit))
	sub.Path("/withdrawals").
		Methods(http.MethodPost).
		Name("POST /ops/withdrawals").
		HandlerFunc(utils.WrapHandlerFunc(o.handleWithdraw))
	sub.Path("/claims").
		Methods(http.MethodPost).
		Name("POST /ops/claims").
		HandlerFunc(utils.WrapHandlerFunc(o.handleClaim))
	sub.Path("/distributions").
		Methods(http.MethodPost).
		Name("POST /ops/distributions").
		HandlerFunc(utils.WrapHandlerFunc(o.handleDistribute))
	sub.Path("/operators").
		Methods(http.MethodPost).
		Name("POST /ops/operators").
		HandlerFunc(utils.WrapHandlerFunc(o.handleAddOperator))
	sub.Path("/operators/{address}").
		Methods(http.MethodDelete).
		Name("DELETE /ops/operators/{address}").
		HandlerFunc(utils.WrapHandlerFunc(o.handleRevokeOperator))
	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("POST /ops/mint").
		HandlerFunc(utils.WrapHandlerFunc(o.handleMint))
}
