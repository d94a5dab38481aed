// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/stakepool"
)

// Range bounds matched activities by timestamp, both ends inclusive.
// A To below From leaves the range open ended.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventFilter selects recorded pool activities.
type EventFilter struct {
	Kinds   []eventdb.Kind     `json:"kinds,omitempty"`
	Account *stakepool.Address `json:"account,omitempty"`
	Range   *Range             `json:"range,omitempty"`
	Options *Options           `json:"options,omitempty"`
	Order   eventdb.Order      `json:"order,omitempty"`
}

func convertFilter(filter *EventFilter) *eventdb.Filter {
	f := &eventdb.Filter{
		Kinds:   filter.Kinds,
		Account: filter.Account,
		Order:   filter.Order,
		Options: &eventdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		},
	}
	if filter.Range != nil {
		f.Range = &eventdb.Range{
			From: filter.Range.From,
			To:   filter.Range.To,
		}
	}
	return f
}

// FilteredEvent is one recorded pool activity in json format.
type FilteredEvent struct {
	Seq       uint64               `json:"seq"`
	Timestamp uint64               `json:"timestamp"`
	Kind      eventdb.Kind         `json:"kind"`
	Account   stakepool.Address    `json:"account"`
	Amount    math.HexOrDecimal256 `json:"amount,string"`
	Phase     uint32               `json:"phase"`
}

// convert an eventdb.Event into a json format event
func convertEvent(event *eventdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Seq:       event.Seq,
		Timestamp: event.Timestamp,
		Kind:      event.Kind,
		Account:   event.Account,
		Phase:     event.Phase,
	}
	if event.Amount != nil {
		fe.Amount = math.HexOrDecimal256(*event.Amount)
	}
	return fe
}
