// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accountant turns a holder's supply timeline and the per-phase
// distribution records into earned reward amounts. All arithmetic runs on
// 256-bit integers with 1e18 fixed-point scaling and fails loudly instead
// of truncating.
package accountant

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
)

var (
	// ErrOverflow is returned when an accrual step exceeds 256 bits.
	ErrOverflow = errors.New("accountant: value exceeds 256 bits")
	// ErrInvalidRange is returned when a history query names an empty phase range.
	ErrInvalidRange = errors.New("accountant: invalid phase range")
)

// scale keeps the reward-per-token quotient in 1e18 fixed point.
var scale = uint256.MustFromBig(stakepool.RewardScale)

// PhaseRecord is the distribution outcome of a settled phase.
type PhaseRecord struct {
	Amount      *big.Int
	ValidSupply *big.Int
	Timestamp   uint64
}

// LookupFunc resolves the distribution record of a settled phase,
// nil when the phase saw none.
type LookupFunc func(phase uint32) (*PhaseRecord, error)

// HistoryEntry reports a holder's outcome for one settled phase.
type HistoryEntry struct {
	Phase       uint32
	Timestamp   uint64
	ValidSupply *big.Int
	UserReward  *big.Int
}

// Accrued sums the rewards the given supply timeline earned over all
// settled phases. Explicit points each cover their own phase; the tail
// amount carries forward over the phases after it. Phases at or past
// currentPhase have not settled and earn nothing yet.
func Accrued(points []*timeline.SupplyPoint, lookup LookupFunc, currentPhase uint32) (*big.Int, error) {
	total := new(uint256.Int)

	credit := func(phase uint32, stake *big.Int) error {
		record, err := lookup(phase)
		if err != nil {
			return err
		}
		reward, err := phaseReward(stake, record)
		if err != nil {
			return err
		}
		if _, overflow := total.AddOverflow(total, reward); overflow {
			return errors.Wrap(ErrOverflow, "accrued total")
		}
		return nil
	}

	for _, point := range points {
		if point.Phase >= currentPhase || point.Amount.Sign() <= 0 {
			continue
		}
		if err := credit(point.Phase, point.Amount); err != nil {
			return nil, err
		}
	}

	if len(points) > 0 {
		tail := points[len(points)-1]
		if tail.Amount.Sign() > 0 {
			for phase := uint64(tail.Phase) + 1; phase < uint64(currentPhase); phase++ {
				if err := credit(uint32(phase), tail.Amount); err != nil {
					return nil, err
				}
			}
		}
	}
	return total.ToBig(), nil
}

// Unpaid returns the accrued amount not yet paid out, floored at zero.
func Unpaid(accrued, rewarded *big.Int) *big.Int {
	if accrued.Cmp(rewarded) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(accrued, rewarded)
}

// HistorySlice reports the holder's per-phase outcomes over
// [fromPhase, currentPhase). The range must name at least one settled
// phase and the holder must have a supply history.
func HistorySlice(points []*timeline.SupplyPoint, lookup LookupFunc, fromPhase, currentPhase uint32) ([]*HistoryEntry, error) {
	if fromPhase >= currentPhase {
		return nil, errors.Wrapf(ErrInvalidRange, "from %d, current %d", fromPhase, currentPhase)
	}
	if len(points) == 0 {
		return nil, errors.Wrap(ErrInvalidRange, "no supply history")
	}

	entries := make([]*HistoryEntry, 0, uint64(currentPhase)-uint64(fromPhase))
	idx := 0
	for phase := uint64(fromPhase); phase < uint64(currentPhase); phase++ {
		for idx+1 < len(points) && uint64(points[idx+1].Phase) <= phase {
			idx++
		}
		stake := new(big.Int)
		if uint64(points[idx].Phase) <= phase {
			stake = points[idx].Amount
		}

		record, err := lookup(uint32(phase))
		if err != nil {
			return nil, err
		}
		reward, err := phaseReward(stake, record)
		if err != nil {
			return nil, err
		}

		entry := &HistoryEntry{
			Phase:       uint32(phase),
			ValidSupply: new(big.Int),
			UserReward:  reward.ToBig(),
		}
		if record != nil {
			entry.Timestamp = record.Timestamp
			if record.ValidSupply != nil {
				entry.ValidSupply = record.ValidSupply
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// phaseReward computes the reward a stake earns over a single phase as
// stake * amount * 1e18 / validSupply / 1e18, multiplying before dividing
// so quotient dust stays below one token unit.
func phaseReward(stake *big.Int, record *PhaseRecord) (*uint256.Int, error) {
	reward := new(uint256.Int)
	if record == nil || stake.Sign() <= 0 {
		return reward, nil
	}
	if record.Amount == nil || record.Amount.Sign() <= 0 {
		return reward, nil
	}
	if record.ValidSupply == nil || record.ValidSupply.Sign() <= 0 {
		return reward, nil
	}

	u, overflow := uint256.FromBig(stake)
	if overflow {
		return nil, errors.Wrap(ErrOverflow, "stake")
	}
	amount, overflow := uint256.FromBig(record.Amount)
	if overflow {
		return nil, errors.Wrap(ErrOverflow, "distribution amount")
	}
	supply, overflow := uint256.FromBig(record.ValidSupply)
	if overflow {
		return nil, errors.Wrap(ErrOverflow, "valid supply")
	}

	if _, overflow = reward.MulOverflow(u, amount); overflow {
		return nil, errors.Wrap(ErrOverflow, "phase reward")
	}
	if _, overflow = reward.MulOverflow(reward, scale); overflow {
		return nil, errors.Wrap(ErrOverflow, "phase reward")
	}
	reward.Div(reward, supply)
	reward.Div(reward, scale)
	return reward, nil
}
