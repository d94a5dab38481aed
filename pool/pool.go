// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the phase-indexed staking reward ledger. Stake
// deposited during a phase becomes reward-eligible from the next phase on;
// each settled phase receives exactly one distribution, and holders accrue
// their share of every distribution their eligible stake covered.
//
// All ledger state lives in slots of a backing state. Every mutation runs
// under a checkpoint and reverts whole on any failure, including the moves
// on collaborating token ledgers.
package pool

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/accountant"
	"github.com/vechain/stakepool/pool/phase"
	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/storage"
)

// Asset is a fungible token ledger the pool moves value through.
type Asset interface {
	// Address identifies the ledger.
	Address() stakepool.Address
	// Transfer moves amount between holders.
	Transfer(from, to stakepool.Address, amount *big.Int) error
}

// AdminOracle answers whether an address may fund distributions.
type AdminOracle interface {
	IsActive(addr stakepool.Address) (bool, error)
}

// Pool is the staking reward ledger bound to one address on a state.
// It is not safe for concurrent use, callers serialize mutations.
type Pool struct {
	addr      stakepool.Address
	state     *state.State
	context   *storage.Context
	slots     *ledgerSlots
	custodian Asset
	reward    Asset
	admins    AdminOracle

	inWithdraw bool
}

// New creates a pool ledger over the given state and collaborators.
func New(addr stakepool.Address, st *state.State, custodian, reward Asset, admins AdminOracle) *Pool {
	context := storage.NewContext(addr, st)
	return &Pool{
		addr:      addr,
		state:     st,
		context:   context,
		slots:     newLedgerSlots(context),
		custodian: custodian,
		reward:    reward,
		admins:    admins,
	}
}

// Address returns the ledger address of the pool.
func (p *Pool) Address() stakepool.Address {
	return p.addr
}

// Deposit records stake moved into the pool for the staker. The caller
// must be the custodian token ledger, which transfers the stake to the
// pool before invoking it. The stake becomes reward-eligible from the
// phase after the currently settled one.
func (p *Pool) Deposit(caller, staker stakepool.Address, amount *big.Int, now uint64) error {
	if caller != p.custodian.Address() {
		return errors.Wrapf(ErrUnauthorized, "deposit caller %v", caller)
	}
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(ErrInvalidAmount, "deposit")
	}
	now = resolveNow(now)

	checkpoint := p.state.NewCheckpoint()
	if err := p.deposit(staker, amount, now); err != nil {
		p.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (p *Pool) deposit(staker stakepool.Address, amount *big.Int, now uint64) error {
	duration, err := p.slots.duration.Get()
	if err != nil {
		return err
	}
	if duration == 0 {
		return errors.Wrap(ErrNotReady, "pool not initialized")
	}

	lastBoundary, err := p.slots.lastBoundary.Get()
	if err != nil {
		return err
	}
	if lastBoundary == 0 {
		// the first deposit ever starts the phase clock
		lastBoundary = phase.Boundary(now, duration)
		if err := p.slots.lastBoundary.Set(lastBoundary); err != nil {
			return err
		}
	}
	current, err := p.currentPhase()
	if err != nil {
		return err
	}
	settled := phase.Settled(now, lastBoundary, duration, current)

	if err := p.slots.totalSupply.Add(amount); err != nil {
		return err
	}
	account, err := p.getAccount(staker)
	if err != nil {
		return err
	}
	account.Balance.Add(account.Balance, amount)
	if err := p.slots.accounts.Set(staker, account); err != nil {
		return err
	}

	if err := p.slots.supply.IncreaseAt(settled+1, amount); err != nil {
		return err
	}
	return p.accountTimeline(staker).IncreaseAt(settled+1, amount)
}

// Withdraw moves stake back to the staker and shrinks their eligible
// supply from the settled phase on. A withdrawal nested inside another,
// through a reentrant custodian ledger, is rejected outright.
func (p *Pool) Withdraw(staker stakepool.Address, amount *big.Int, now uint64) error {
	if p.inWithdraw {
		return errors.Wrap(ErrReentrantCall, "withdraw")
	}
	p.inWithdraw = true
	defer func() { p.inWithdraw = false }()

	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(ErrInvalidAmount, "withdraw")
	}
	now = resolveNow(now)

	checkpoint := p.state.NewCheckpoint()
	if err := p.withdraw(staker, amount, now); err != nil {
		p.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (p *Pool) withdraw(staker stakepool.Address, amount *big.Int, now uint64) error {
	account, err := p.getAccount(staker)
	if err != nil {
		return err
	}
	if account.Balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "withdraw %v, balance %v", amount, account.Balance)
	}
	total, err := p.slots.totalSupply.Get()
	if err != nil {
		return err
	}
	if total.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "withdraw %v, total supply %v", amount, total)
	}

	duration, err := p.slots.duration.Get()
	if err != nil {
		return err
	}
	lastBoundary, err := p.slots.lastBoundary.Get()
	if err != nil {
		return err
	}
	current, err := p.currentPhase()
	if err != nil {
		return err
	}
	settled := phase.Settled(now, lastBoundary, duration, current)

	if err := p.custodian.Transfer(p.addr, staker, amount); err != nil {
		return errors.Wrapf(ErrTransferFailed, "withdraw: %v", err)
	}

	if err := p.slots.totalSupply.Sub(amount); err != nil {
		return err
	}
	account.Balance.Sub(account.Balance, amount)
	if err := p.slots.accounts.Set(staker, account); err != nil {
		return err
	}

	if err := p.slots.supply.DecreaseAt(settled, amount); err != nil {
		return err
	}
	return p.accountTimeline(staker).DecreaseAt(settled, amount)
}

// Claim pays out the staker's accrued rewards not yet paid, returning
// the amount moved. Claiming with nothing unpaid is an error.
func (p *Pool) Claim(staker stakepool.Address) (*big.Int, error) {
	checkpoint := p.state.NewCheckpoint()
	paid, err := p.claim(staker)
	if err != nil {
		p.state.RevertTo(checkpoint)
		return nil, err
	}
	return paid, nil
}

func (p *Pool) claim(staker stakepool.Address) (*big.Int, error) {
	account, err := p.getAccount(staker)
	if err != nil {
		return nil, err
	}
	unpaid, err := p.unpaid(staker, account)
	if err != nil {
		return nil, err
	}
	if unpaid.Sign() <= 0 {
		return nil, errors.Wrap(ErrInsufficientBalance, "nothing to claim")
	}

	if err := p.reward.Transfer(p.addr, staker, unpaid); err != nil {
		return nil, errors.Wrapf(ErrTransferFailed, "claim: %v", err)
	}
	account.Rewarded.Add(account.Rewarded, unpaid)
	if err := p.slots.accounts.Set(staker, account); err != nil {
		return nil, err
	}
	return unpaid, nil
}

// NotifyReward settles the current phase with a distribution funded by
// the caller, a registered operator. The phase must have passed on the
// clock. The distribution snapshot carries the supply eligible for the
// settled phase, and the cursor moves to the next phase.
func (p *Pool) NotifyReward(caller stakepool.Address, amount *big.Int, now uint64) (*Distribution, error) {
	active, err := p.admins.IsActive(caller)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.Wrapf(ErrUnauthorized, "operator %v", caller)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "reward")
	}
	now = resolveNow(now)

	checkpoint := p.state.NewCheckpoint()
	dist, err := p.notifyReward(caller, amount, now)
	if err != nil {
		p.state.RevertTo(checkpoint)
		return nil, err
	}
	return dist, nil
}

func (p *Pool) notifyReward(caller stakepool.Address, amount *big.Int, now uint64) (*Distribution, error) {
	duration, err := p.slots.duration.Get()
	if err != nil {
		return nil, err
	}
	if duration == 0 {
		return nil, errors.Wrap(ErrNotReady, "pool not initialized")
	}
	lastBoundary, err := p.slots.lastBoundary.Get()
	if err != nil {
		return nil, err
	}
	current, err := p.currentPhase()
	if err != nil {
		return nil, err
	}
	settled := phase.Settled(now, lastBoundary, duration, current)
	if settled <= current {
		return nil, errors.Wrapf(ErrNotReady, "phase %d still open", current)
	}

	if err := p.reward.Transfer(caller, p.addr, amount); err != nil {
		return nil, errors.Wrapf(ErrTransferFailed, "reward: %v", err)
	}

	validSupply, err := p.slots.supply.FrontAmountAt(current)
	if err != nil {
		return nil, err
	}
	if recorded, err := p.slots.distributions.Has(storage.IndexKey(current)); err != nil {
		return nil, err
	} else if recorded {
		return nil, errors.Errorf("pool: distribution for phase %d already recorded", current)
	}
	dist := &Distribution{
		Phase:       current,
		Timestamp:   now,
		Amount:      amount,
		ValidSupply: validSupply,
	}
	if err := p.slots.distributions.Set(storage.IndexKey(current), dist); err != nil {
		return nil, err
	}

	if err := p.slots.supply.AdvanceFront(current); err != nil {
		return nil, err
	}
	if err := p.slots.currentPhase.Set(uint64(current) + 1); err != nil {
		return nil, err
	}
	if err := p.slots.lastBoundary.Set(lastBoundary + duration); err != nil {
		return nil, err
	}
	if err := p.slots.supply.ExtendTo(settled); err != nil {
		return nil, err
	}
	return dist, nil
}

// TotalSupply returns the stake held by the pool.
func (p *Pool) TotalSupply() (*big.Int, error) {
	return p.slots.totalSupply.Get()
}

// ValidSupplies returns the pool's supply timeline points.
func (p *Pool) ValidSupplies() ([]*timeline.SupplyPoint, error) {
	return p.slots.supply.Points()
}

// RewardInfo reports the distribution cursor and the phase the clock
// projects as settled at now.
func (p *Pool) RewardInfo(now uint64) (*RewardInfo, error) {
	now = resolveNow(now)
	duration, err := p.slots.duration.Get()
	if err != nil {
		return nil, err
	}
	lastBoundary, err := p.slots.lastBoundary.Get()
	if err != nil {
		return nil, err
	}
	current, err := p.currentPhase()
	if err != nil {
		return nil, err
	}
	return &RewardInfo{
		LastBoundary:   lastBoundary,
		PhaseDuration:  duration,
		CurrentPhase:   current,
		ProjectedPhase: phase.Settled(now, lastBoundary, duration, current),
	}, nil
}

// UserInfo bundles the holder's balance, pending rewards and timeline.
func (p *Pool) UserInfo(staker stakepool.Address) (*UserInfo, error) {
	account, err := p.getAccount(staker)
	if err != nil {
		return nil, err
	}
	unpaid, err := p.unpaid(staker, account)
	if err != nil {
		return nil, err
	}
	points, err := p.accountTimeline(staker).Points()
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		Balance:  account.Balance,
		Rewarded: account.Rewarded,
		Unpaid:   unpaid,
		Points:   points,
	}, nil
}

// UserDistHistory reports the holder's per-phase reward outcomes from
// fromPhase up to the distribution cursor.
func (p *Pool) UserDistHistory(staker stakepool.Address, fromPhase uint32) ([]*accountant.HistoryEntry, error) {
	current, err := p.currentPhase()
	if err != nil {
		return nil, err
	}
	points, err := p.accountTimeline(staker).Points()
	if err != nil {
		return nil, err
	}
	return accountant.HistorySlice(points, p.lookupDistribution, fromPhase, current)
}

// Distribution returns the record of the given phase, nil when the phase
// has not settled.
func (p *Pool) Distribution(phaseNum uint32) (*Distribution, error) {
	return p.slots.distributions.Get(storage.IndexKey(phaseNum))
}

// Distributions returns up to limit records starting at fromPhase, in
// phase order. A zero limit means no cap.
func (p *Pool) Distributions(fromPhase uint32, limit uint32) ([]*Distribution, error) {
	current, err := p.currentPhase()
	if err != nil {
		return nil, err
	}
	if fromPhase >= current {
		return nil, nil
	}
	count := uint64(current) - uint64(fromPhase)
	if limit != 0 && uint64(limit) < count {
		count = uint64(limit)
	}
	dists := make([]*Distribution, 0, count)
	for i := uint64(0); i < count; i++ {
		dist, err := p.slots.distributions.Get(storage.IndexKey(uint64(fromPhase) + i))
		if err != nil {
			return nil, err
		}
		if dist != nil {
			dists = append(dists, dist)
		}
	}
	return dists, nil
}

func (p *Pool) currentPhase() (uint32, error) {
	current, err := p.slots.currentPhase.Get()
	if err != nil {
		return 0, err
	}
	return uint32(current), nil
}

func (p *Pool) getAccount(staker stakepool.Address) (*Account, error) {
	account, err := p.slots.accounts.Get(staker)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &Account{Balance: new(big.Int), Rewarded: new(big.Int)}, nil
	}
	return account, nil
}

func (p *Pool) accountTimeline(staker stakepool.Address) *timeline.Timeline {
	items, ctrl := accountTimelineSlots(staker)
	return timeline.New(p.context, items, ctrl)
}

func (p *Pool) unpaid(staker stakepool.Address, account *Account) (*big.Int, error) {
	points, err := p.accountTimeline(staker).Points()
	if err != nil {
		return nil, err
	}
	current, err := p.currentPhase()
	if err != nil {
		return nil, err
	}
	accrued, err := accountant.Accrued(points, p.lookupDistribution, current)
	if err != nil {
		return nil, err
	}
	return accountant.Unpaid(accrued, account.Rewarded), nil
}

// lookupDistribution adapts the ledger to the accountant's record lookup.
func (p *Pool) lookupDistribution(phaseNum uint32) (*accountant.PhaseRecord, error) {
	dist, err := p.slots.distributions.Get(storage.IndexKey(phaseNum))
	if err != nil || dist == nil {
		return nil, err
	}
	return &accountant.PhaseRecord{
		Amount:      dist.Amount,
		ValidSupply: dist.ValidSupply,
		Timestamp:   dist.Timestamp,
	}, nil
}

func resolveNow(now uint64) uint64 {
	if now == 0 {
		return uint64(time.Now().Unix())
	}
	return now
}
