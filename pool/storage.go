// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/timeline"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/storage"
)

// slot positions of the pool ledger, derived from variable names the way
// contract storage is laid out
var (
	slotPhaseDuration = storage.NameToSlot("phase-duration")
	slotLastBoundary  = storage.NameToSlot("last-boundary")
	slotCurrentPhase  = storage.NameToSlot("current-phase")
	slotTotalSupply   = storage.NameToSlot("total-supply")
	slotCustodian     = storage.NameToSlot("custodian-token")
	slotRewardToken   = storage.NameToSlot("reward-token")
	slotAuthority     = storage.NameToSlot("authority")
	slotAccounts      = storage.NameToSlot("accounts")
	slotDistributions = storage.NameToSlot("distributions")
	slotSupplyItems   = storage.NameToSlot("supply-timeline-items")
	slotSupplyCtrl    = storage.NameToSlot("supply-timeline-ctrl")
)

// ledgerSlots bundles the typed accessors of one pool ledger.
type ledgerSlots struct {
	duration      *storage.Uint64
	lastBoundary  *storage.Uint64
	currentPhase  *storage.Uint64
	totalSupply   *storage.Uint256
	custodian     *storage.Address
	rewardToken   *storage.Address
	authority     *storage.Address
	accounts      *storage.Mapping[stakepool.Address, *Account]
	distributions *storage.Mapping[storage.IndexKey, *Distribution]
	supply        *timeline.Timeline
}

func newLedgerSlots(context *storage.Context) *ledgerSlots {
	return &ledgerSlots{
		duration:      storage.NewUint64(context, slotPhaseDuration),
		lastBoundary:  storage.NewUint64(context, slotLastBoundary),
		currentPhase:  storage.NewUint64(context, slotCurrentPhase),
		totalSupply:   storage.NewUint256(context, slotTotalSupply),
		custodian:     storage.NewAddress(context, slotCustodian),
		rewardToken:   storage.NewAddress(context, slotRewardToken),
		authority:     storage.NewAddress(context, slotAuthority),
		accounts:      storage.NewMapping[stakepool.Address, *Account](context, slotAccounts),
		distributions: storage.NewMapping[storage.IndexKey, *Distribution](context, slotDistributions),
		supply:        timeline.New(context, slotSupplyItems, slotSupplyCtrl),
	}
}

// accountTimelineSlots derives the per-holder supply timeline positions.
func accountTimelineSlots(addr stakepool.Address) (items, ctrl stakepool.Bytes32) {
	return stakepool.Blake2b([]byte("account-timeline-items"), addr.Bytes()),
		stakepool.Blake2b([]byte("account-timeline-ctrl"), addr.Bytes())
}

// Initialize writes the pool configuration into an empty ledger. It is
// applied exactly once, before the first operation.
func Initialize(addr stakepool.Address, st *state.State, params Params) error {
	if params.PhaseDuration == 0 {
		return errors.Wrap(ErrInvalidAmount, "phase duration")
	}
	slots := newLedgerSlots(storage.NewContext(addr, st))

	duration, err := slots.duration.Get()
	if err != nil {
		return err
	}
	if duration != 0 {
		return errors.New("pool: already initialized")
	}

	if err := slots.duration.Set(params.PhaseDuration); err != nil {
		return err
	}
	slots.custodian.Set(&params.Custodian)
	slots.rewardToken.Set(&params.RewardToken)
	slots.authority.Set(&params.Authority)
	return nil
}

// ReadParams loads the persisted pool configuration. A zero PhaseDuration
// means the ledger was never initialized.
func ReadParams(addr stakepool.Address, st *state.State) (*Params, error) {
	slots := newLedgerSlots(storage.NewContext(addr, st))

	duration, err := slots.duration.Get()
	if err != nil {
		return nil, err
	}
	custodian, err := slots.custodian.Get()
	if err != nil {
		return nil, err
	}
	rewardToken, err := slots.rewardToken.Get()
	if err != nil {
		return nil, err
	}
	authority, err := slots.authority.Get()
	if err != nil {
		return nil, err
	}
	return &Params{
		PhaseDuration: duration,
		Custodian:     custodian,
		RewardToken:   rewardToken,
		Authority:     authority,
	}, nil
}
