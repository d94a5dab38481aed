// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testpool boots a fully initialized in-memory pool service, the
// shared fixture of API and client tests.
package testpool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/token"
)

// PhaseDuration is the phase length every test pool runs with.
const PhaseDuration = stakepool.DefaultPhaseDuration

// T0 is a phase aligned instant tests hang their scenarios on.
const T0 = uint64(1700006400)

// Tokens scales n into base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// Pool is an initialized in-memory pool with one registered operator
// holding a large reward balance.
type Pool struct {
	Svc      *pool.Service
	DB       *eventdb.EventDB
	Operator stakepool.Address

	PoolAddr      stakepool.Address
	CustodianAddr stakepool.Address
	RewardAddr    stakepool.Address
	AuthorityAddr stakepool.Address
}

// New builds the fixture, everything torn down through t.Cleanup.
func New(t *testing.T) *Pool {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	st := pool.OpenState(store)

	poolAddr := stakepool.BytesToAddress([]byte("pool"))
	custodianAddr := stakepool.BytesToAddress([]byte("custodian-token"))
	rewardAddr := stakepool.BytesToAddress([]byte("reward-token"))
	authAddr := stakepool.BytesToAddress([]byte("authority"))
	operator := datagen.RandAddress()

	require.NoError(t, pool.Initialize(poolAddr, st, pool.Params{
		PhaseDuration: PhaseDuration,
		Custodian:     custodianAddr,
		RewardToken:   rewardAddr,
		Authority:     authAddr,
	}))
	added, err := authority.New(authAddr, st).Add(operator, stakepool.Blake2b([]byte("operator-one")))
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, token.New(rewardAddr, st).Mint(operator, Tokens(1_000_000)))
	require.NoError(t, st.Stage().Commit())

	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	svc, err := pool.NewService(store, poolAddr, db)
	require.NoError(t, err)

	return &Pool{
		Svc:           svc,
		DB:            db,
		Operator:      operator,
		PoolAddr:      poolAddr,
		CustodianAddr: custodianAddr,
		RewardAddr:    rewardAddr,
		AuthorityAddr: authAddr,
	}
}

// NewStaker mints custodian funds for a fresh address.
func (p *Pool) NewStaker(t *testing.T, funds int64) stakepool.Address {
	staker := datagen.RandAddress()
	require.NoError(t, p.Svc.Mint(p.CustodianAddr, staker, Tokens(funds)))
	return staker
}
