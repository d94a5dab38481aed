// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api/admin"
	"github.com/vechain/stakepool/api/admin/ops"
	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/test/testpool"
)

const day = testpool.PhaseDuration

var t0 = testpool.T0

func tokens(n int64) *big.Int {
	return testpool.Tokens(n)
}

func amount(n int64) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(tokens(n))
}

type testEnv struct {
	*testpool.Pool
	ts      *httptest.Server
	tracker *health.Health
}

func initAdminServer(t *testing.T) *testEnv {
	tp := testpool.New(t)

	var logLevel slog.LevelVar
	tracker := health.New()
	handler := admin.New(&logLevel, tracker, tp.Svc, false)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &testEnv{Pool: tp, ts: ts, tracker: tracker}
}

func (env *testEnv) httpGet(t *testing.T, path string) ([]byte, int) {
	res, err := http.Get(env.ts.URL + path)
	require.NoError(t, err)
	return readResponse(t, res)
}

func (env *testEnv) httpPost(t *testing.T, path string, body interface{}) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(env.ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return readResponse(t, res)
}

func (env *testEnv) httpDelete(t *testing.T, path string) ([]byte, int) {
	req, err := http.NewRequest(http.MethodDelete, env.ts.URL+path, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return readResponse(t, res)
}

func readResponse(t *testing.T, res *http.Response) ([]byte, int) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestAdminLogLevel(t *testing.T) {
	env := initAdminServer(t)

	body, statusCode := env.httpGet(t, "/admin/loglevel")
	require.Equal(t, http.StatusOK, statusCode)
	assert.Contains(t, string(body), "INFO")

	body, statusCode = env.httpPost(t, "/admin/loglevel", map[string]string{"level": "debug"})
	require.Equal(t, http.StatusOK, statusCode)
	assert.Contains(t, string(body), "DEBUG")

	_, statusCode = env.httpPost(t, "/admin/loglevel", map[string]string{"level": "nope"})
	assert.Equal(t, http.StatusBadRequest, statusCode)
}

func TestAdminHealth(t *testing.T) {
	env := initAdminServer(t)

	// nothing observed yet, within tolerance of process start
	env.tracker.LedgerStatus(true)
	env.tracker.Observe(2, 2)

	body, statusCode := env.httpGet(t, "/admin/health")
	require.Equal(t, http.StatusOK, statusCode)

	var status health.Status
	require.NoError(t, json.Unmarshal(body, &status))
	assert.True(t, status.Healthy)
	assert.Equal(t, uint32(2), status.DistributionCursor)

	// a cursor stuck behind the clock turns the endpoint into a 503
	env.tracker.Observe(2, 5)
	_, statusCode = env.httpGet(t, "/admin/health?tolerance=1ns")
	assert.Equal(t, http.StatusServiceUnavailable, statusCode)
}

func TestAdminOps(t *testing.T) {
	env := initAdminServer(t)
	alice := env.NewStaker(t, 1000)

	// deposit
	body, statusCode := env.httpPost(t, "/admin/ops/deposits", &ops.StakeRequest{
		Staker:    alice,
		Amount:    amount(400),
		Timestamp: t0 + 100,
	})
	require.Equal(t, http.StatusOK, statusCode)
	var stake ops.StakeResult
	require.NoError(t, json.Unmarshal(body, &stake))
	assert.Equal(t, alice, stake.Staker)
	assert.Equal(t, tokens(400).String(), (*big.Int)(&stake.Balance).String())

	// withdraw part of it
	body, statusCode = env.httpPost(t, "/admin/ops/withdrawals", &ops.StakeRequest{
		Staker:    alice,
		Amount:    amount(100),
		Timestamp: t0 + 200,
	})
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(body, &stake))
	assert.Equal(t, tokens(300).String(), (*big.Int)(&stake.Balance).String())

	// withdrawing more than staked is refused
	_, statusCode = env.httpPost(t, "/admin/ops/withdrawals", &ops.StakeRequest{
		Staker:    alice,
		Amount:    amount(10_000),
		Timestamp: t0 + 300,
	})
	assert.Equal(t, http.StatusBadRequest, statusCode)

	// distribute phase 0, nobody eligible yet
	body, statusCode = env.httpPost(t, "/admin/ops/distributions", &ops.DistributeRequest{
		Operator:  env.Operator,
		Amount:    amount(90),
		Timestamp: t0 + day + 10,
	})
	require.Equal(t, http.StatusOK, statusCode)
	var dist ops.Distribution
	require.NoError(t, json.Unmarshal(body, &dist))
	assert.Equal(t, uint32(0), dist.Phase)
	assert.Equal(t, "0", (*big.Int)(&dist.ValidSupply).String())

	// distribute phase 1, alice holds the whole eligible supply
	body, statusCode = env.httpPost(t, "/admin/ops/distributions", &ops.DistributeRequest{
		Operator:  env.Operator,
		Amount:    amount(80),
		Timestamp: t0 + 2*day + 10,
	})
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(body, &dist))
	assert.Equal(t, uint32(1), dist.Phase)
	assert.Equal(t, tokens(300).String(), (*big.Int)(&dist.ValidSupply).String())

	// settling again while the phase is still open is refused
	_, statusCode = env.httpPost(t, "/admin/ops/distributions", &ops.DistributeRequest{
		Operator:  env.Operator,
		Amount:    amount(1),
		Timestamp: t0 + 2*day + 20,
	})
	assert.Equal(t, http.StatusBadRequest, statusCode)

	// a stranger cannot fund distributions
	_, statusCode = env.httpPost(t, "/admin/ops/distributions", &ops.DistributeRequest{
		Operator:  datagen.RandAddress(),
		Amount:    amount(1),
		Timestamp: t0 + 3*day + 10,
	})
	assert.Equal(t, http.StatusForbidden, statusCode)

	// claim the phase 1 payout
	body, statusCode = env.httpPost(t, "/admin/ops/claims", &ops.ClaimRequest{
		Staker:    alice,
		Timestamp: t0 + 2*day + 30,
	})
	require.Equal(t, http.StatusOK, statusCode)
	var claim ops.ClaimResult
	require.NoError(t, json.Unmarshal(body, &claim))
	assert.Equal(t, tokens(80).String(), (*big.Int)(&claim.Paid).String())

	// nothing left to claim
	_, statusCode = env.httpPost(t, "/admin/ops/claims", &ops.ClaimRequest{
		Staker:    alice,
		Timestamp: t0 + 2*day + 40,
	})
	assert.Equal(t, http.StatusBadRequest, statusCode)

	// garbage body
	res, err := http.Post(env.ts.URL+"/admin/ops/deposits", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAdminOperators(t *testing.T) {
	env := initAdminServer(t)

	candidate := datagen.RandAddress()
	body, statusCode := env.httpPost(t, "/admin/ops/operators", &ops.OperatorRequest{
		Address:  candidate,
		Identity: stakepool.Blake2b([]byte("operator-two")),
	})
	require.Equal(t, http.StatusOK, statusCode)
	assert.JSONEq(t, `{"added": true}`, string(body))

	// registering twice reports false
	body, statusCode = env.httpPost(t, "/admin/ops/operators", &ops.OperatorRequest{
		Address:  candidate,
		Identity: stakepool.Blake2b([]byte("operator-two")),
	})
	require.Equal(t, http.StatusOK, statusCode)
	assert.JSONEq(t, `{"added": false}`, string(body))

	body, statusCode = env.httpDelete(t, "/admin/ops/operators/"+candidate.String())
	require.Equal(t, http.StatusOK, statusCode)
	assert.JSONEq(t, `{"revoked": true}`, string(body))

	body, statusCode = env.httpDelete(t, "/admin/ops/operators/"+candidate.String())
	require.Equal(t, http.StatusOK, statusCode)
	assert.JSONEq(t, `{"revoked": false}`, string(body))

	_, statusCode = env.httpDelete(t, "/admin/ops/operators/not-an-address")
	assert.Equal(t, http.StatusBadRequest, statusCode)
}

func TestAdminMint(t *testing.T) {
	env := initAdminServer(t)
	holder := datagen.RandAddress()

	body, statusCode := env.httpPost(t, "/admin/ops/mint", &ops.MintRequest{
		Token:  env.CustodianAddr,
		Holder: holder,
		Amount: amount(123),
	})
	require.Equal(t, http.StatusOK, statusCode)

	var balances ops.BalancesResult
	require.NoError(t, json.Unmarshal(body, &balances))
	assert.Equal(t, holder, balances.Holder)
	assert.Equal(t, tokens(123).String(), (*big.Int)(&balances.CustodianBalance).String())
	assert.Equal(t, "0", (*big.Int)(&balances.RewardBalance).String())

	// minting on a foreign ledger is refused
	_, statusCode = env.httpPost(t, "/admin/ops/mint", &ops.MintRequest{
		Token:  datagen.RandAddress(),
		Holder: holder,
		Amount: amount(1),
	})
	assert.Equal(t, http.StatusBadRequest, statusCode)
}
