// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/pool/accountant"
	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
)

// Status is the pool summary.
type Status struct {
	Address        stakepool.Address    `json:"address"`
	CustodianToken stakepool.Address    `json:"custodianToken"`
	RewardToken    stakepool.Address    `json:"rewardToken"`
	Authority      stakepool.Address    `json:"authority"`
	PhaseDuration  uint64               `json:"phaseDuration"`
	TotalSupply    math.HexOrDecimal256 `json:"totalSupply,string"`
	LastBoundary   uint64               `json:"lastBoundary"`
	CurrentPhase   uint32               `json:"currentPhase"`
	ProjectedPhase uint32               `json:"projectedPhase"`
}

// SupplyPoint is one point of a reward-eligible supply timeline.
type SupplyPoint struct {
	Phase  uint32               `json:"phase"`
	Amount math.HexOrDecimal256 `json:"amount,string"`
}

// AccountInfo for marshal staker account.
type AccountInfo struct {
	Balance          math.HexOrDecimal256 `json:"balance,string"`
	Rewarded         math.HexOrDecimal256 `json:"rewarded,string"`
	Unpaid           math.HexOrDecimal256 `json:"unpaid,string"`
	CustodianBalance math.HexOrDecimal256 `json:"custodianBalance,string"`
	RewardBalance    math.HexOrDecimal256 `json:"rewardBalance,string"`
	Points           []*SupplyPoint       `json:"points"`
}

// HistoryEntry is one phase outcome of a staker.
type HistoryEntry struct {
	Phase       uint32               `json:"phase"`
	Timestamp   uint64               `json:"timestamp"`
	ValidSupply math.HexOrDecimal256 `json:"validSupply,string"`
	UserReward  math.HexOrDecimal256 `json:"userReward,string"`
}

// Distribution is one settled phase record.
type Distribution struct {
	Phase       uint32               `json:"phase"`
	Timestamp   uint64               `json:"timestamp"`
	Amount      math.HexOrDecimal256 `json:"amount,string"`
	ValidSupply math.HexOrDecimal256 `json:"validSupply,string"`
}

// Operator is one registry entry.
type Operator struct {
	Address  stakepool.Address `json:"address"`
	Identity stakepool.Bytes32 `json:"identity"`
	Active   bool              `json:"active"`
}

func hexOrDecimal(b *big.Int) math.HexOrDecimal256 {
	if b == nil {
		return math.HexOrDecimal256{}
	}
	return math.HexOrDecimal256(*b)
}

func convertSupplyPoints(points []*timeline.SupplyPoint) []*SupplyPoint {
	converted := make([]*SupplyPoint, len(points))
	for i, p := range points {
		converted[i] = &SupplyPoint{
			Phase:  p.Phase,
			Amount: hexOrDecimal(p.Amount),
		}
	}
	return converted
}

func convertHistory(entries []*accountant.HistoryEntry) []*HistoryEntry {
	converted := make([]*HistoryEntry, len(entries))
	for i, e := range entries {
		converted[i] = &HistoryEntry{
			Phase:       e.Phase,
			Timestamp:   e.Timestamp,
			ValidSupply: hexOrDecimal(e.ValidSupply),
			UserReward:  hexOrDecimal(e.UserReward),
		}
	}
	return converted
}

func convertDistribution(dist *pool.Distribution) *Distribution {
	return &Distribution{
		Phase:       dist.Phase,
		Timestamp:   dist.Timestamp,
		Amount:      hexOrDecimal(dist.Amount),
		ValidSupply: hexOrDecimal(dist.ValidSupply),
	}
}

func convertOperators(operators []*authority.Operator) []*Operator {
	converted := make([]*Operator, len(operators))
	for i, op := range operators {
		converted[i] = &Operator{
			Address:  op.Address,
			Identity: op.Identity,
			Active:   op.Active,
		}
	}
	return converted
}
