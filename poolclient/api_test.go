// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poolclient

import (
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/staking"
	"github.com/vechain/stakepool/api/subscriptions"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/poolclient/common"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/test/testpool"
)

const (
	eventsLimit = 1000

	day = testpool.PhaseDuration
	t0  = testpool.T0
)

var preSeededStaker stakepool.Address

func initAPIServer(t *testing.T) (*testpool.Pool, *httptest.Server) {
	tp := testpool.New(t)

	// run one full reward cycle so every endpoint has data to serve
	seedActivities(t, tp)

	router := mux.NewRouter()

	staking.New(tp.Svc).Mount(router, "/staking")

	events.New(tp.DB, eventsLimit).Mount(router, "/events")

	subs := subscriptions.New(tp.Svc, tp.DB, []string{"*"})
	t.Cleanup(subs.Close)
	subs.Mount(router, "/subscriptions")

	return tp, httptest.NewServer(router)
}

func seedActivities(t *testing.T, tp *testpool.Pool) {
	staker := tp.NewStaker(t, 1000)

	require.NoError(t, tp.Svc.Deposit(staker, testpool.Tokens(100), t0+100))

	// phase 0 settles empty, phase 1 carries the stake deposited during phase 0
	_, err := tp.Svc.NotifyReward(tp.Operator, testpool.Tokens(500), t0+day+10)
	require.NoError(t, err)
	_, err = tp.Svc.NotifyReward(tp.Operator, testpool.Tokens(400), t0+2*day+10)
	require.NoError(t, err)

	_, err = tp.Svc.Claim(staker, t0+2*day+20)
	require.NoError(t, err)

	preSeededStaker = staker
}

func TestAPIs(t *testing.T) {
	tp, ts := initAPIServer(t)
	defer ts.Close()

	for name, tt := range map[string]func(*testing.T, *testpool.Pool, *httptest.Server){
		"testStakingEndpoint":       testStakingEndpoint,
		"testEventsEndpoint":        testEventsEndpoint,
		"testSubscriptionsEndpoint": testSubscriptionsEndpoint,
	} {
		t.Run(name, func(t *testing.T) {
			tt(t, tp, ts)
		})
	}
}

func testStakingEndpoint(t *testing.T, tp *testpool.Pool, ts *httptest.Server) {
	c := New(ts.URL)

	// 1. Test GET /staking
	t.Run("GetStatus", func(t *testing.T) {
		status, err := c.Status(t0 + 2*day + 50)
		require.NoError(t, err)
		assert.Equal(t, tp.PoolAddr, status.Address)
		assert.Equal(t, tp.CustodianAddr, status.CustodianToken)
		assert.Equal(t, tp.RewardAddr, status.RewardToken)
		assert.Equal(t, tp.AuthorityAddr, status.Authority)
		assert.Equal(t, day, status.PhaseDuration)
		assert.Equal(t, t0+2*day, status.LastBoundary)
		assert.Equal(t, uint32(2), status.CurrentPhase)
		assert.Equal(t, uint32(2), status.ProjectedPhase)
		assert.Positive(t, (*big.Int)(&status.TotalSupply).Sign())
	})

	// 2. Test GET /staking/supplies
	t.Run("GetSupplies", func(t *testing.T) {
		points, err := c.ValidSupplies()
		require.NoError(t, err)
		assert.NotEmpty(t, points)
	})

	// 3. Test GET /staking/accounts/{address}
	t.Run("GetAccount", func(t *testing.T) {
		account, err := c.Account(&preSeededStaker)
		require.NoError(t, err)
		assert.Equal(t, testpool.Tokens(100).String(), (*big.Int)(&account.Balance).String())
		assert.Equal(t, testpool.Tokens(400).String(), (*big.Int)(&account.Rewarded).String())
		assert.Zero(t, (*big.Int)(&account.Unpaid).Sign())
		assert.Equal(t, testpool.Tokens(900).String(), (*big.Int)(&account.CustodianBalance).String())
		assert.Equal(t, testpool.Tokens(400).String(), (*big.Int)(&account.RewardBalance).String())
		assert.NotEmpty(t, account.Points)
	})

	// 4. Test GET /staking/accounts/{address}/history
	t.Run("GetAccountHistory", func(t *testing.T) {
		entries, err := c.AccountHistory(&preSeededStaker, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint32(0), entries[0].Phase)
		assert.Zero(t, (*big.Int)(&entries[0].UserReward).Sign())
		assert.Equal(t, uint32(1), entries[1].Phase)
		assert.Equal(t, testpool.Tokens(100).String(), (*big.Int)(&entries[1].ValidSupply).String())
		assert.Equal(t, testpool.Tokens(400).String(), (*big.Int)(&entries[1].UserReward).String())

		entries, err = c.AccountHistory(&preSeededStaker, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint32(1), entries[0].Phase)

		// a start beyond the distribution cursor is rejected
		_, err = c.AccountHistory(&preSeededStaker, 5)
		assert.ErrorIs(t, err, common.ErrNot200Status)
	})

	// 5. Test GET /staking/distributions
	t.Run("GetDistributions", func(t *testing.T) {
		dists, err := c.Distributions(0, 0)
		require.NoError(t, err)
		require.Len(t, dists, 2)
		assert.Equal(t, uint32(0), dists[0].Phase)
		assert.Equal(t, uint32(1), dists[1].Phase)

		dists, err = c.Distributions(1, 5)
		require.NoError(t, err)
		require.Len(t, dists, 1)
		assert.Equal(t, uint32(1), dists[0].Phase)
	})

	// 6. Test GET /staking/distributions/{phase}
	t.Run("GetDistribution", func(t *testing.T) {
		dist, err := c.Distribution(1)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), dist.Phase)
		assert.Equal(t, t0+2*day+10, dist.Timestamp)
		assert.Equal(t, testpool.Tokens(400).String(), (*big.Int)(&dist.Amount).String())
		assert.Equal(t, testpool.Tokens(100).String(), (*big.Int)(&dist.ValidSupply).String())

		// an unsettled phase has no record yet
		_, err = c.Distribution(9)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	// 7. Test GET /staking/operators
	t.Run("GetOperators", func(t *testing.T) {
		operators, err := c.Operators()
		require.NoError(t, err)
		require.Len(t, operators, 1)
		assert.Equal(t, tp.Operator, operators[0].Address)
		assert.True(t, operators[0].Active)
	})
}

func testEventsEndpoint(t *testing.T, _ *testpool.Pool, ts *httptest.Server) {
	c := New(ts.URL)

	// 1. Test POST /events (filter activities)
	t.Run("FilterEvents", func(t *testing.T) {
		payload := &events.EventFilter{
			Kinds:   []eventdb.Kind{eventdb.KindDeposit, eventdb.KindClaim},
			Account: &preSeededStaker,
			Options: &events.Options{Offset: 0, Limit: 10},
		}

		filtered, err := c.FilterEvents(payload)
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, eventdb.KindDeposit, filtered[0].Kind)
		assert.Equal(t, testpool.Tokens(100).String(), (*big.Int)(&filtered[0].Amount).String())
		assert.Equal(t, eventdb.KindClaim, filtered[1].Kind)
		assert.Equal(t, testpool.Tokens(400).String(), (*big.Int)(&filtered[1].Amount).String())
	})

	// 2. Test descending order
	t.Run("FilterEventsDesc", func(t *testing.T) {
		payload := &events.EventFilter{
			Account: &preSeededStaker,
			Options: &events.Options{Offset: 0, Limit: 10},
			Order:   eventdb.DESC,
		}

		filtered, err := c.FilterEvents(payload)
		require.NoError(t, err)
		require.NotEmpty(t, filtered)
		assert.Equal(t, eventdb.KindClaim, filtered[0].Kind)
	})

	// 3. Test timestamp range
	t.Run("FilterEventsRange", func(t *testing.T) {
		payload := &events.EventFilter{
			Account: &preSeededStaker,
			Range:   &events.Range{From: t0 + 2*day + 15, To: t0 + 2*day + 25},
			Options: &events.Options{Offset: 0, Limit: 10},
		}

		filtered, err := c.FilterEvents(payload)
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, eventdb.KindClaim, filtered[0].Kind)
	})

	// 4. Test the distribution trail left by the operator
	t.Run("FilterDistributions", func(t *testing.T) {
		payload := &events.EventFilter{
			Kinds:   []eventdb.Kind{eventdb.KindDistribution},
			Options: &events.Options{Offset: 0, Limit: 10},
		}

		filtered, err := c.FilterEvents(payload)
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, uint32(0), filtered[0].Phase)
		assert.Equal(t, uint32(1), filtered[1].Phase)
	})
}

func testSubscriptionsEndpoint(t *testing.T, tp *testpool.Pool, ts *httptest.Server) {
	c, err := NewWithWS(ts.URL)
	require.NoError(t, err)

	// 1. Test replaying the recorded trail from the start
	t.Run("ReplayActivity", func(t *testing.T) {
		activityChan, err := c.SubscribeActivityAt(0)
		require.NoError(t, err)

		first := <-activityChan
		require.NoError(t, first.Error)
		assert.Equal(t, uint64(1), first.Data.Seq)
		assert.Equal(t, eventdb.KindDeposit, first.Data.Kind)
		assert.Equal(t, preSeededStaker, first.Data.Account)
	})

	// 2. Test receiving activities recorded after subscribing
	t.Run("LiveActivity", func(t *testing.T) {
		activityChan, err := c.SubscribeActivity()
		require.NoError(t, err)

		staker := tp.NewStaker(t, 100)
		require.NoError(t, tp.Svc.Deposit(staker, testpool.Tokens(50), t0+2*day+100))

		var got *subscriptions.ActivityMessage
		select {
		case ev := <-activityChan:
			require.NoError(t, ev.Error)
			got = ev.Data
		case <-time.After(5 * time.Second):
			t.Fatal("no activity pushed")
		}

		assert.Equal(t, eventdb.KindDeposit, got.Kind)
		assert.Equal(t, staker, got.Account)
		assert.Equal(t, testpool.Tokens(50).String(), (*big.Int)(&got.Amount).String())
	})
}

func TestSubscribeWithoutWS(t *testing.T) {
	c := New("http://localhost:8669")

	_, err := c.SubscribeActivity()
	assert.Error(t, err)
	_, err = c.SubscribeActivityAt(0)
	assert.Error(t, err)
}
