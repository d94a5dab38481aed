// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/stakepool"
)

// ActivityMessage is one recorded pool activity pushed to subscribers.
type ActivityMessage struct {
	Seq       uint64               `json:"seq"`
	Timestamp uint64               `json:"timestamp"`
	Kind      eventdb.Kind         `json:"kind"`
	Account   stakepool.Address    `json:"account"`
	Amount    math.HexOrDecimal256 `json:"amount,string"`
	Phase     uint32               `json:"phase"`
}

func convertActivity(event *eventdb.Event) *ActivityMessage {
	msg := &ActivityMessage{
		Seq:       event.Seq,
		Timestamp: event.Timestamp,
		Kind:      event.Kind,
		Account:   event.Account,
		Phase:     event.Phase,
	}
	if event.Amount != nil {
		msg.Amount = math.HexOrDecimal256(*event.Amount)
	}
	return msg
}
