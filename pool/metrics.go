// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/stakepool"
)

var (
	metricActivityCount      = metrics.LazyLoadCounterVec("pool_activity_count", []string{"kind"})
	metricCacheHitMiss       = metrics.LazyLoadGaugeVec("pool_cache_hit_miss_count", []string{"event"})
	metricDistributionCursor = metrics.LazyLoadGauge("pool_distribution_cursor")
	metricTotalSupply        = metrics.LazyLoadGauge("pool_total_supply_tokens")
)

// wholeTokens renders a base-unit amount in whole tokens, the resolution
// gauges can carry.
func wholeTokens(amount *big.Int) int64 {
	return new(big.Int).Div(amount, stakepool.RewardScale).Int64()
}
