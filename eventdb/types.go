// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/vechain/stakepool/stakepool"
)

//Kind classifies a pool activity.
type Kind string

const (
	KindDeposit      Kind = "deposit"
	KindWithdrawal   Kind = "withdrawal"
	KindClaim        Kind = "claim"
	KindDistribution Kind = "distribution"
)

//Event represents a pool activity that can be stored in db.
type Event struct {
	Seq       uint64 // assigned on append
	Timestamp uint64
	Kind      Kind
	Account   stakepool.Address // the staker, or the funding operator for distributions
	Amount    *big.Int
	Phase     uint32 // distribution cursor at the time of the activity
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

//Range bounds matched events by timestamp, both ends inclusive.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

//Filter filter
type Filter struct {
	Kinds   []Kind
	Account *stakepool.Address
	Range   *Range
	Options *Options
	Order   Order //default asc
}
