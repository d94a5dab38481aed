// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/pool/accountant"
	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var logger = log.WithContext("pkg", "pool")

const (
	distCacheSize = 1024

	// stateStoreName names the ledger's slot namespace in the backing
	// store, leaving room for other namespaces in the same database.
	stateStoreName = "pool.state"
)

// OpenState creates a State over the ledger namespace of the store.
func OpenState(store kv.Store) *state.State {
	return state.New(kv.Bucket(stateStoreName).NewStore(store))
}

// ActivityRecorder persists pool activities as they happen.
// *eventdb.EventDB satisfies it.
type ActivityRecorder interface {
	Append(events []*eventdb.Event) error
}

// Service serializes access to one pool ledger over a persistent store
// and keeps the auxiliary surfaces fed: the activity recorder, the event
// feed and the distribution cache. It is safe for concurrent use.
type Service struct {
	addr     stakepool.Address
	recorder ActivityRecorder
	params   Params

	mu        sync.Mutex
	state     *state.State
	pool      *Pool
	custodian *token.Token
	reward    *token.Token
	auth      *authority.Authority

	feed      co.Signal
	distCache *cache.LRU
}

// NewService opens the pool ledger at addr on the given store. The store
// must hold an initialized ledger. recorder may be nil to skip activity
// recording.
func NewService(store kv.Store, addr stakepool.Address, recorder ActivityRecorder) (*Service, error) {
	st := OpenState(store)
	params, err := ReadParams(addr, st)
	if err != nil {
		return nil, err
	}
	if params.PhaseDuration == 0 {
		return nil, errors.Wrap(ErrNotReady, "pool not initialized")
	}
	distCache, err := cache.NewLRU(distCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Service{
		addr:      addr,
		recorder:  recorder,
		params:    *params,
		distCache: distCache,
	}
	s.rebind(st)
	s.publishGauges()
	return s, nil
}

// publishGauges refreshes the ledger gauges, which otherwise start from
// zero after a restart.
func (s *Service) publishGauges() {
	if total, err := s.pool.TotalSupply(); err == nil {
		metricTotalSupply().Set(wholeTokens(total))
	}
	if cursor, err := s.pool.currentPhase(); err == nil {
		metricDistributionCursor().Set(int64(cursor))
	}
}

// rebind binds the ledger and its collaborators to the given state.
func (s *Service) rebind(st *state.State) {
	s.state = st
	s.custodian = token.New(s.params.Custodian, st)
	s.reward = token.New(s.params.RewardToken, st)
	s.auth = authority.New(s.params.Authority, st)
	s.pool = New(s.addr, st, s.custodian, s.reward, s.auth)
}

// commit writes the journaled changes through to the store. The journal
// keeps staged writes, so the ledger is rebound to a fresh state.
func (s *Service) commit() error {
	if err := s.state.Stage().Commit(); err != nil {
		return err
	}
	s.rebind(s.state.Checkout())
	return nil
}

// Address returns the ledger address of the pool.
func (s *Service) Address() stakepool.Address {
	return s.addr
}

// Params returns the pool configuration.
func (s *Service) Params() Params {
	return s.params
}

// NewWaiter creates a waiter signalled on every recorded activity.
func (s *Service) NewWaiter() co.Waiter {
	return s.feed.NewWaiter()
}

// Deposit moves amount of custodian tokens from the staker into the pool
// and records the stake, as one atomic unit. A zero now reads the wall
// clock.
func (s *Service) Deposit(staker stakepool.Address, amount *big.Int, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = resolveNow(now)

	checkpoint := s.state.NewCheckpoint()
	if err := s.deposit(staker, amount, now); err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}
	if err := s.commit(); err != nil {
		return err
	}
	logger.Debug("deposit", "staker", staker, "amount", amount)
	s.publishGauges()
	s.record(eventdb.KindDeposit, staker, amount, now)
	return nil
}

func (s *Service) deposit(staker stakepool.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(ErrInvalidAmount, "deposit")
	}
	if err := s.custodian.Transfer(staker, s.addr, amount); err != nil {
		return errors.Wrapf(ErrTransferFailed, "deposit: %v", err)
	}
	return s.pool.Deposit(s.params.Custodian, staker, amount, now)
}

// Withdraw moves stake back to the staker.
func (s *Service) Withdraw(staker stakepool.Address, amount *big.Int, now uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = resolveNow(now)

	checkpoint := s.state.NewCheckpoint()
	if err := s.pool.Withdraw(staker, amount, now); err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}
	if err := s.commit(); err != nil {
		return err
	}
	logger.Debug("withdraw", "staker", staker, "amount", amount)
	s.publishGauges()
	s.record(eventdb.KindWithdrawal, staker, amount, now)
	return nil
}

// Claim pays out the staker's unpaid rewards, returning the amount moved.
// now only stamps the activity record.
func (s *Service) Claim(staker stakepool.Address, now uint64) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = resolveNow(now)

	checkpoint := s.state.NewCheckpoint()
	paid, err := s.pool.Claim(staker)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	logger.Debug("claim", "staker", staker, "paid", paid)
	s.record(eventdb.KindClaim, staker, paid, now)
	return paid, nil
}

// NotifyReward settles the current phase with a distribution funded by
// the operator.
func (s *Service) NotifyReward(operator stakepool.Address, amount *big.Int, now uint64) (*Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now = resolveNow(now)

	checkpoint := s.state.NewCheckpoint()
	dist, err := s.pool.NotifyReward(operator, amount, now)
	if err != nil {
		s.state.RevertTo(checkpoint)
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	logger.Info("distribution settled",
		"phase", dist.Phase,
		"amount", dist.Amount,
		"validSupply", dist.ValidSupply,
		"operator", operator)
	s.recordDistribution(operator, dist)
	return dist, nil
}

// AddOperator registers an operator allowed to fund distributions.
// Returns false when the operator is already registered.
func (s *Service) AddOperator(operator stakepool.Address, identity stakepool.Bytes32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkpoint := s.state.NewCheckpoint()
	added, err := s.auth.Add(operator, identity)
	if err != nil || !added {
		s.state.RevertTo(checkpoint)
		return false, err
	}
	if err := s.commit(); err != nil {
		return false, err
	}
	logger.Info("operator added", "operator", operator)
	return true, nil
}

// RevokeOperator deactivates a registered operator. Returns false when
// the operator is unknown.
func (s *Service) RevokeOperator(operator stakepool.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkpoint := s.state.NewCheckpoint()
	revoked, err := s.auth.Revoke(operator)
	if err != nil || !revoked {
		s.state.RevertTo(checkpoint)
		return false, err
	}
	if err := s.commit(); err != nil {
		return false, err
	}
	logger.Info("operator revoked", "operator", operator)
	return true, nil
}

// Mint issues tokens on one of the pool's collaborating ledgers.
// tokenAddr must name the custodian or the reward token.
func (s *Service) Mint(tokenAddr, holder stakepool.Address, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount == nil || amount.Sign() <= 0 {
		return errors.Wrap(ErrInvalidAmount, "mint")
	}
	var ledger *token.Token
	switch tokenAddr {
	case s.params.Custodian:
		ledger = s.custodian
	case s.params.RewardToken:
		ledger = s.reward
	default:
		return errors.Errorf("pool: unknown token %v", tokenAddr)
	}

	checkpoint := s.state.NewCheckpoint()
	if err := ledger.Mint(holder, amount); err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}
	if err := s.commit(); err != nil {
		return err
	}
	logger.Info("minted", "token", tokenAddr, "holder", holder, "amount", amount)
	return nil
}

// TotalSupply returns the stake held by the pool.
func (s *Service) TotalSupply() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.TotalSupply()
}

// ValidSupplies returns the pool's supply timeline points.
func (s *Service) ValidSupplies() ([]*timeline.SupplyPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.ValidSupplies()
}

// RewardInfo reports the distribution cursor and the phase the clock
// projects as settled at now.
func (s *Service) RewardInfo(now uint64) (*RewardInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.RewardInfo(now)
}

// UserInfo bundles the holder's balance, pending rewards and timeline.
func (s *Service) UserInfo(staker stakepool.Address) (*UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.UserInfo(staker)
}

// UserDistHistory reports the holder's per-phase reward outcomes from
// fromPhase up to the distribution cursor.
func (s *Service) UserDistHistory(staker stakepool.Address, fromPhase uint32) ([]*accountant.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.UserDistHistory(staker, fromPhase)
}

// Distribution returns the settled record of the phase, nil when the
// phase has not settled. Settled records never change, so they are
// served from an LRU once read.
func (s *Service) Distribution(phaseNum uint32) (*Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursor, err := s.pool.currentPhase()
	if err != nil {
		return nil, err
	}
	if phaseNum >= cursor {
		return nil, nil
	}
	v, err := s.distCache.GetOrLoad(phaseNum, func(any) (any, error) {
		return s.pool.Distribution(phaseNum)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Distribution), nil
}

// ReportCacheStats publishes the distribution cache counters and logs
// the hit rate when it moved since the last report.
func (s *Service) ReportCacheStats() {
	hit, miss, rate, changed := s.distCache.Stats().Snapshot()
	if changed {
		logger.Info("distribution cache stats", "hit", hit, "miss", miss, "rate", rate)
	}
	metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
	metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
}

// Distributions returns up to limit records starting at fromPhase, in
// phase order. A zero limit means no cap.
func (s *Service) Distributions(fromPhase uint32, limit uint32) ([]*Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Distributions(fromPhase, limit)
}

// Balances reports the holder's custodian and reward token balances.
func (s *Service) Balances(holder stakepool.Address) (custodian *big.Int, reward *big.Int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if custodian, err = s.custodian.BalanceOf(holder); err != nil {
		return nil, nil, err
	}
	if reward, err = s.reward.BalanceOf(holder); err != nil {
		return nil, nil, err
	}
	return custodian, reward, nil
}

// Operators lists the registered distribution operators.
func (s *Service) Operators() ([]*authority.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.AllOperators()
}

// record saves the activity and wakes feed waiters. Recording failures
// do not fail the committed operation.
func (s *Service) record(kind eventdb.Kind, account stakepool.Address, amount *big.Int, ts uint64) {
	metricActivityCount().AddWithLabel(1, map[string]string{"kind": string(kind)})
	if s.recorder != nil {
		event := &eventdb.Event{
			Timestamp: ts,
			Kind:      kind,
			Account:   account,
			Amount:    amount,
		}
		cursor, err := s.pool.currentPhase()
		if err == nil {
			event.Phase = cursor
			err = s.recorder.Append([]*eventdb.Event{event})
		}
		if err != nil {
			logger.Warn("activity not recorded", "kind", kind, "err", err)
		}
	}
	s.feed.Broadcast()
}

func (s *Service) recordDistribution(operator stakepool.Address, dist *Distribution) {
	metricActivityCount().AddWithLabel(1, map[string]string{"kind": string(eventdb.KindDistribution)})
	metricDistributionCursor().Set(int64(dist.Phase) + 1)
	if s.recorder != nil {
		if err := s.recorder.Append([]*eventdb.Event{{
			Timestamp: dist.Timestamp,
			Kind:      eventdb.KindDistribution,
			Account:   operator,
			Amount:    dist.Amount,
			Phase:     dist.Phase,
		}}); err != nil {
			logger.Warn("activity not recorded", "kind", eventdb.KindDistribution, "err", err)
		}
	}
	s.feed.Broadcast()
}
