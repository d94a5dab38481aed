// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ops

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/stakepool"
)

// StakeRequest moves custodian tokens between a staker and the pool.
// A zero timestamp reads the wall clock.
type StakeRequest struct {
	Staker    stakepool.Address     `json:"staker"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Timestamp uint64                `json:"timestamp,omitempty"`
}

// StakeResult reports the staker's pool balance after the move.
type StakeResult struct {
	Staker  stakepool.Address    `json:"staker"`
	Balance math.HexOrDecimal256 `json:"balance,string"`
}

// ClaimRequest pays out a staker's unpaid rewards.
type ClaimRequest struct {
	Staker    stakepool.Address `json:"staker"`
	Timestamp uint64            `json:"timestamp,omitempty"`
}

// ClaimResult reports the amount paid out.
type ClaimResult struct {
	Staker stakepool.Address    `json:"staker"`
	Paid   math.HexOrDecimal256 `json:"paid,string"`
}

// DistributeRequest settles the current phase with a reward distribution
// funded by the operator.
type DistributeRequest struct {
	Operator  stakepool.Address     `json:"operator"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Timestamp uint64                `json:"timestamp,omitempty"`
}

// Distribution is the settled phase record.
type Distribution struct {
	Phase       uint32               `json:"phase"`
	Timestamp   uint64               `json:"timestamp"`
	Amount      math.HexOrDecimal256 `json:"amount,string"`
	ValidSupply math.HexOrDecimal256 `json:"validSupply,string"`
}

// OperatorRequest registers an address allowed to fund distributions.
type OperatorRequest struct {
	Address  stakepool.Address `json:"address"`
	Identity stakepool.Bytes32 `json:"identity"`
}

// MintRequest credits freshly minted tokens to a holder on one of the
// pool's token ledgers.
type MintRequest struct {
	Token  stakepool.Address     `json:"token"`
	Holder stakepool.Address     `json:"holder"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// BalancesResult reports a holder's balances on both token ledgers.
type BalancesResult struct {
	Holder           stakepool.Address    `json:"holder"`
	CustodianBalance math.HexOrDecimal256 `json:"custodianBalance,string"`
	RewardBalance    math.HexOrDecimal256 `json:"rewardBalance,string"`
}

func amountOf(a *math.HexOrDecimal256) *big.Int {
	if a == nil {
		return nil
	}
	return (*big.Int)(a)
}

func hexOrDecimal(b *big.Int) math.HexOrDecimal256 {
	if b == nil {
		return math.HexOrDecimal256{}
	}
	return math.HexOrDecimal256(*b)
}
