// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import "math/big"

// Constants of the staking pool.
const (
	// DefaultPhaseDuration length of a reward phase in seconds.
	DefaultPhaseDuration uint64 = 24 * 60 * 60

	// MinPhaseDuration the shortest phase length a pool accepts.
	MinPhaseDuration uint64 = 60
)

var (
	// RewardScale fixed-point scale of reward arithmetic (18 decimals).
	RewardScale = big.NewInt(1e18)

	// MaxStorageAmount upper bound of any stored amount, one word of 256 bits.
	MaxStorageAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)
