// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
)

// Account is a holder's ledger entry. Balance is the stake currently
// held, Rewarded the rewards already paid out.
type Account struct {
	Balance  *big.Int
	Rewarded *big.Int
}

// Distribution records the reward handed out for one settled phase.
type Distribution struct {
	Phase       uint32
	Timestamp   uint64
	Amount      *big.Int
	ValidSupply *big.Int
}

// Params configures a pool ledger at bootstrap.
type Params struct {
	PhaseDuration uint64
	Custodian     stakepool.Address
	RewardToken   stakepool.Address
	Authority     stakepool.Address
}

// RewardInfo describes the distribution cursor and its clock projection.
type RewardInfo struct {
	LastBoundary   uint64
	PhaseDuration  uint64
	CurrentPhase   uint32
	ProjectedPhase uint32
}

// UserInfo bundles a holder's view of the ledger.
type UserInfo struct {
	Balance  *big.Int
	Rewarded *big.Int
	Unpaid   *big.Int
	Points   []*timeline.SupplyPoint
}
